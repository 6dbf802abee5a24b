package research

import (
	"fmt"
	"net/http"

	"github.com/aaronn/openclaw-research-tool/pkg/httpext"
	"github.com/sashabaranov/go-openai"
)

// bodyPreviewLimit bounds how much of an unparseable body is shown.
const bodyPreviewLimit = 200

// StatusError is a non-2xx response, with guidance for the common cases.
type StatusError struct {
	*httpext.StatusError
}

func (e *StatusError) Error() string {
	switch e.Code {
	case http.StatusUnauthorized:
		return "Authentication failed (401). Check your OPENROUTER_API_KEY.\n" +
			"Get a key at https://openrouter.ai/keys"
	case http.StatusPaymentRequired:
		return "Insufficient credits (402). Add credits at https://openrouter.ai/credits"
	case http.StatusTooManyRequests:
		return "Rate limited (429). Wait a moment and try again."
	default:
		return fmt.Sprintf("API error (%s): %s", e.Status(), e.Body)
	}
}

func (e *StatusError) Unwrap() error {
	return e.StatusError
}

// ParseError is a 2xx response whose body is not valid JSON for ChatResponse.
type ParseError struct {
	Preview string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Failed to parse API response: %s\n%v", e.Preview, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// APIError is an error envelope inside an otherwise successful response.
type APIError struct {
	Err *openai.APIError
}

func (e *APIError) Error() string {
	return "API error: " + e.Err.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}
