package types

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the sentinel behind every ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrNetwork is the sentinel behind every NetworkError.
	ErrNetwork = errors.New("network unavailable")

	// ErrUnauthorized is the sentinel behind every AuthError.
	ErrUnauthorized = errors.New("not authorized")

	// ErrServer is the sentinel behind every ServerError.
	ErrServer = errors.New("server error")

	// ErrStorage is returned (wrapped) when device storage cannot be used.
	ErrStorage = errors.New("storage unavailable")

	// ErrNotAuthenticated is returned by operations that require a session.
	ErrNotAuthenticated = errors.New("not signed in")
)

// FallbackMessage is shown when the server gives no usable message.
const FallbackMessage = "something went wrong, please try again"

// ValidationError is a client-side form check failure.
type ValidationError struct {
	Field   string
	Message string
}

// Invalid returns a ValidationError for field.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NetworkError means no response was received (dial failure, timeout, cancel).
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() []error { return []error{ErrNetwork, e.Err} }

// AuthError is a 401 that could not be recovered by refreshing the session.
type AuthError struct {
	Message string
	Err     error // refresh failure, if a refresh was attempted
}

func (e *AuthError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = ErrUnauthorized.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s (refresh: %v)", msg, e.Err)
	}
	return msg
}

func (e *AuthError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnauthorized}
	}
	return []error{ErrUnauthorized, e.Err}
}

// ServerError is any non-2xx response other than a recoverable 401.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

func (e *ServerError) Unwrap() error { return ErrServer }

// StorageError wraps a failing Token Store operation.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Err} }

// UserMessage renders err the way a front end should display it.
func UserMessage(err error) string {
	var (
		ve *ValidationError
		se *ServerError
		ae *AuthError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.Message
	case errors.As(err, &ae):
		if ae.Err == nil && ae.Message != "" && ae.Message != FallbackMessage {
			return ae.Message
		}
		return "your session has expired, please sign in again"
	case errors.Is(err, ErrNotAuthenticated):
		return "please sign in first"
	case errors.Is(err, ErrNetwork):
		return "could not reach the server, check your connection"
	case errors.As(err, &se):
		if se.Message != "" {
			return se.Message
		}
		return FallbackMessage
	case errors.Is(err, ErrStorage):
		return "local storage is unavailable"
	default:
		return FallbackMessage
	}
}
