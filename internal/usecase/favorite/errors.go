// Package favorite provides use cases for a user's saved articles: resolving the
// user record for an authenticated identity, adding favorites idempotently and
// listing them newest first.
package favorite

import "errors"

// Sentinel errors for favorite use case operations.
var (
	// ErrUnauthorized indicates that no authenticated identity was supplied.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidInput indicates that required fields are missing or malformed.
	// It is joined with an *entity.ValidationError describing the field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUserNotFound indicates that the identity has never saved anything.
	ErrUserNotFound = errors.New("user not found")
)
