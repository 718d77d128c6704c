package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")

	// ErrProvider is matched by every *ProviderError via errors.Is.
	ErrProvider = errors.New("provider error")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ProviderErrorKind classifies why a provider call failed.
type ProviderErrorKind string

const (
	// ProviderErrNetwork covers transport failures and timeouts.
	ProviderErrNetwork ProviderErrorKind = "network"
	// ProviderErrStatus is a non-2xx HTTP response.
	ProviderErrStatus ProviderErrorKind = "status"
	// ProviderErrDecode is a body that could not be parsed.
	ProviderErrDecode ProviderErrorKind = "decode"
	// ProviderErrShape is a parsed body without an articles list.
	ProviderErrShape ProviderErrorKind = "shape"
	// ProviderErrUpstream is an error payload reported by the provider itself.
	ProviderErrUpstream ProviderErrorKind = "upstream"
	// ProviderErrInvalidRequest is a request rejected before it was sent.
	ProviderErrInvalidRequest ProviderErrorKind = "invalid_request"
	// ProviderErrUnavailable is a call short-circuited by an open circuit breaker.
	ProviderErrUnavailable ProviderErrorKind = "unavailable"
)

// ProviderError is the single failure type returned by provider adapters.
type ProviderError struct {
	Provider   string
	Kind       ProviderErrorKind
	StatusCode int
	Message    string
	Err        error
}

// Error returns a human readable description of the failure.
func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Provider, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrProvider) true for every provider failure.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

// Retryable reports whether repeating the same request may succeed.
// Network failures, 429 and 5xx are retryable. Everything else is not.
func (e *ProviderError) Retryable() bool {
	switch e.Kind {
	case ProviderErrNetwork:
		return true
	case ProviderErrStatus:
		return e.StatusCode == 429 || e.StatusCode >= 500
	default:
		return false
	}
}

// AsProviderError extracts a *ProviderError from err's chain.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
