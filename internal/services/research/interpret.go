package research

import (
	"encoding/json"

	"github.com/aaronn/openclaw-research-tool/internal/infrastructure/openrouter"
	"github.com/aaronn/openclaw-research-tool/internal/services/research/models"
	"github.com/aaronn/openclaw-research-tool/pkg/httpext"
)

// Interpret checks the status, decodes the body and surfaces any error
// envelope. The body of a non-2xx response is never parsed.
func Interpret(resp *openrouter.Response) (*models.ChatResponse, error) {
	if !httpext.IsSuccess(resp.StatusCode) {
		return nil, &StatusError{&httpext.StatusError{Code: resp.StatusCode, Body: string(resp.Body)}}
	}

	var chat models.ChatResponse
	if err := json.Unmarshal(resp.Body, &chat); err != nil {
		return nil, &ParseError{Preview: httpext.Preview(resp.Body, bodyPreviewLimit), Err: err}
	}

	if chat.Error != nil {
		return nil, &APIError{Err: chat.Error}
	}

	return &chat, nil
}
