package movie

import (
	"errors"
	"fmt"
)

// Error kinds returned by search providers
var (
	// ErrRequestFailed indicates a transport or HTTP-level failure
	ErrRequestFailed = errors.New("request failed")
	// ErrAPI indicates the provider reported a failure in its payload
	ErrAPI = errors.New("api error")
)

// SearchError is the single error type returned by providers.
// Its message is meant to be shown to the user verbatim.
type SearchError struct {
	Kind       error
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *SearchError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *SearchError) Unwrap() error {
	return e.Err
}

// Is matches the error kind so errors.Is(err, ErrAPI) works
func (e *SearchError) Is(target error) bool {
	return target == e.Kind
}

// Detail returns a log-friendly description including the cause
func (e *SearchError) Detail() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Provider, e.Message, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Message, e.StatusCode)
}

// RequestFailed builds a transport-level SearchError
func RequestFailed(provider, message string, status int, cause error) *SearchError {
	return &SearchError{
		Kind:       ErrRequestFailed,
		Provider:   provider,
		StatusCode: status,
		Message:    message,
		Err:        cause,
	}
}

// APIFailure builds a SearchError for a failure reported by the provider
func APIFailure(provider, message string, status int) *SearchError {
	return &SearchError{
		Kind:       ErrAPI,
		Provider:   provider,
		StatusCode: status,
		Message:    message,
	}
}

// Message extracts the user-facing message from any error
func Message(err error) string {
	if err == nil {
		return ""
	}
	var se *SearchError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}
