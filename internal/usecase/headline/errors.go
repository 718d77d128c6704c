package headline

import "errors"

var (
	// ErrCategoryNotFound is returned for a category outside the canonical set.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrInvalidPage is returned for page numbers below 1.
	ErrInvalidPage = errors.New("page must be >= 1")
)
