package readwise

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for Readwise API operations.
var (
	ErrMissingToken           = errors.New("readwise: missing access token")
	ErrInvalidToken           = errors.New("readwise: invalid access token")
	ErrUnexpectedAuthResponse = errors.New("readwise: unexpected response from auth endpoint")
	ErrRateLimitExceeded      = errors.New("readwise: rate limit exceeded, received too many 429 responses")
	ErrUnexpectedStatus       = errors.New("readwise: network error")
	ErrContentTypeMismatch    = errors.New("readwise: response content type is not JSON")
	ErrInvalidResponse        = errors.New("readwise: response failed validation")
	ErrMissingID              = errors.New("readwise: document id is required")
)

// StatusError is returned for non-2xx responses other than 429.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.Code, http.StatusText(e.Code))
	}
	return "network error: " + status
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// Error wraps an underlying error with operation context.
type Error struct {
	Op  string // "list", "update", "verify"
	ID  string // document id, if applicable
	Err error
}

func (e *Error) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("readwise %s [%s]: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("readwise %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with the operation and document id it happened in.
func NewError(op, id string, err error) error {
	return &Error{Op: op, ID: id, Err: err}
}

// StatusCode reports the upstream HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return 0, false
}
