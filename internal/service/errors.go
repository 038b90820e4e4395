package service

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed backend call.
type Kind int

const (
	// NetworkFailure covers transport errors where no response arrived.
	NetworkFailure Kind = iota
	// AuthenticationRejected is a 401/403 response.
	AuthenticationRejected
	// ValidationRejected is any other 4xx response.
	ValidationRejected
	// ServerFailure is a 5xx response.
	ServerFailure
)

func (k Kind) String() string {
	switch k {
	case NetworkFailure:
		return "network failure"
	case AuthenticationRejected:
		return "authentication rejected"
	case ValidationRejected:
		return "validation rejected"
	case ServerFailure:
		return "server failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the structured failure returned by backends.
// Message is the server-supplied message and may be empty.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	var msg string
	switch {
	case e.Message != "" && e.Status != 0:
		msg = fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	case e.Message != "":
		msg = fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Status != 0:
		msg = fmt.Sprintf("%s (%d %s)", e.Kind, e.Status, http.StatusText(e.Status))
	default:
		msg = e.Kind.String()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindForStatus maps an HTTP status code to an error kind.
// Only meaningful for non-2xx codes.
func KindForStatus(code int) Kind {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return AuthenticationRejected
	case code >= 400 && code < 500:
		return ValidationRejected
	default:
		return ServerFailure
	}
}

// MessageOf returns the server-supplied message carried by err,
// or fallback when there is none.
func MessageOf(err error, fallback string) string {
	var se *Error
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}

// KindOf reports the kind of err. Errors that are not *Error count as
// network failures.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return NetworkFailure
}
