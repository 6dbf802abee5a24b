package httpext

import (
	"fmt"
	"net/http"
)

// StatusError is a non-2xx HTTP response. Body holds the raw response text.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.Code, http.StatusText(e.Code))
}

// Status renders the code the way it is shown to users, e.g. "500 Internal Server Error".
func (e *StatusError) Status() string {
	if text := http.StatusText(e.Code); text != "" {
		return fmt.Sprintf("%d %s", e.Code, text)
	}
	return fmt.Sprintf("%d", e.Code)
}

// IsSuccess reports whether code is in the 2xx range.
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}

// Preview returns at most n characters of body, never splitting a rune.
func Preview(body []byte, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range string(body) {
		if count == n {
			return string(body[:i])
		}
		count++
	}
	return string(body)
}
