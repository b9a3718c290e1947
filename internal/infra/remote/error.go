package remote

import (
	"context"
	"fmt"
	"net/http"

	domainerrors "quest/internal/domain/errors"
	"quest/internal/errors"
)

const maxErrorBodyLength = 512

// Error describes a failed remote call. StatusCode is zero when no response arrived.
// Every Error matches domainerrors.ErrRemoteUnavailable.
type Error struct {
	Method     string
	Endpoint   string
	StatusCode int
	Body       string
	Cause      error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0 && e.Cause != nil:
		return fmt.Sprintf("remote %s %s: status %d: %v: %s", e.Method, e.Endpoint, e.StatusCode, e.Cause, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("remote %s %s: status %d: %s", e.Method, e.Endpoint, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("remote %s %s: %v", e.Method, e.Endpoint, e.Cause)
	}
}

// Unwrap exposes the transport or decoding cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is makes every remote failure match the remote-unavailable class.
func (e *Error) Is(target error) bool {
	return errors.Is(domainerrors.ErrRemoteUnavailable, target)
}

// Timeout reports whether the call was aborted by its deadline.
func (e *Error) Timeout() bool {
	return errors.Is(e.Cause, context.DeadlineExceeded)
}

// HTTPCode returns the status surfaced to API callers.
func (e *Error) HTTPCode() int {
	if e.Timeout() {
		return http.StatusGatewayTimeout
	}

	return domainerrors.ErrRemoteUnavailable.HTTPCode()
}

// ErrorCode returns the business error code
func (e *Error) ErrorCode() string {
	return domainerrors.ErrRemoteUnavailable.ErrorCode()
}

// Message returns the user-friendly error message
func (e *Error) Message() string {
	return domainerrors.ErrRemoteUnavailable.Message()
}

// Details returns the upstream status and body.
func (e *Error) Details() string {
	if e.StatusCode == 0 {
		return ""
	}

	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Body)
}

func truncateBody(body []byte) string {
	if len(body) <= maxErrorBodyLength {
		return string(body)
	}

	return string(body[:maxErrorBodyLength]) + "..."
}
