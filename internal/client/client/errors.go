package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/tradeboard/internal/client/transport"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("not logged in")
	ErrUnavailable     = transport.ErrUnavailable
	ErrRejected        = errors.New("request rejected")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("listing not found")
)

// TransportError is re-exported so callers need not import transport.
type TransportError = transport.TransportError

// ValidationError names the first field that failed local checks.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// RequestRejectedError carries the backend's own error text.
type RequestRejectedError struct {
	StatusCode int
	Message    string
}

func (e *RequestRejectedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if text := http.StatusText(e.StatusCode); text != "" {
		return text
	}
	return fmt.Sprintf("request rejected with status %d", e.StatusCode)
}

func (e *RequestRejectedError) Is(target error) bool {
	switch target {
	case ErrRejected:
		return true
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}
