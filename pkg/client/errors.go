package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response. Body is the parsed JSON when the response
// was JSON, Raw is always the text as received.
type APIError struct {
	Status  int
	Message string
	Body    any
	Raw     string
}

func newAPIError(status int, raw []byte) *APIError {
	e := &APIError{Status: status, Raw: string(raw)}

	var parsed any
	if len(raw) > 0 && json.Unmarshal(raw, &parsed) == nil {
		e.Body = parsed
		if obj, ok := parsed.(map[string]any); ok {
			if msg, ok := obj["message"].(string); ok {
				e.Message = msg
			}
		}
	}

	if e.Message == "" {
		e.Message = e.Raw
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

func (e *APIError) Error() string {
	return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message)
}

// IsStatus reports whether err is an *APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
