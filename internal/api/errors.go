package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized covers missing, expired or rejected tokens (HTTP 401).
	// Callers must treat it as a de-authentication signal.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the backend refuses the caller's role
	// (HTTP 403) without invalidating the session.
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable covers transport failures: the request never produced an
	// application-level response.
	ErrUnavailable = errors.New("server unavailable")
)

// RejectedError is a non-success application response. Message carries the
// server-provided error text verbatim and is shown to the operator as-is.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "request rejected"
	}
	return fmt.Sprintf("request rejected: %s", e.Message)
}

// ServerMessage extracts the verbatim server error text from err, if any.
func ServerMessage(err error) string {
	var rej *RejectedError
	if errors.As(err, &rej) {
		return rej.Message
	}
	return ""
}
