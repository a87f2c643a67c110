package utils

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrBadRequest         = errors.New("bad request")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ErrStoreNotInitialized is reported when the document store failed to open at startup.
var ErrStoreNotInitialized = fmt.Errorf("%w: store not initialized", ErrStorageUnavailable)

// Error is a classified failure with a message safe to show to users.
// Kind is one of the Err* sentinels above.
type Error struct {
	Kind    error
	Message string
	Detail  any
	Err     error
}

func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewValidationError is a BadRequest carrying per-field messages.
func NewValidationError(message string, fields map[string]string) *Error {
	e := &Error{Kind: ErrBadRequest, Message: message}
	if len(fields) > 0 {
		e.Detail = fields
	}
	return e
}

// WithDetail attaches the value reported under "error" in the response body.
func (e *Error) WithDetail(detail any) *Error {
	e.Detail = detail
	return e
}

// WithCause records the underlying error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

func (e *Error) Error() string {
	msg := e.Message
	if fields, ok := e.Detail.(map[string]string); ok {
		msg = fmt.Sprintf("%s: %s", msg, FormatValidationErrors(fields))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UpstreamError is a failed call to the external catalog.
// Body holds the upstream JSON body when it parsed, otherwise the raw text or transport error message.
type UpstreamError struct {
	Status int
	Body   any
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("upstream status %d", e.Status)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// StatusCode maps an error to its HTTP status.
func StatusCode(err error) int {
	var upstream *UpstreamError
	switch {
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
