package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Error is a backend error response. The backend reports failures as a
// JSON object with a single "error" message field.
type Error struct {
	Message string
	Status  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend error: %d - %s", e.Status, e.Message)
}

// UserMessage returns the backend-provided message when present, else
// the given fallback.
func (e *Error) UserMessage(fallback string) string {
	if e.Message != "" {
		return e.Message
	}
	return fallback
}

// errorFromResponse builds an *Error from a non-2xx response body.
func errorFromResponse(resp *http.Response) *Error {
	apiErr := &Error{
		Status:  resp.StatusCode,
		Message: http.StatusText(resp.StatusCode),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	}

	return apiErr
}
