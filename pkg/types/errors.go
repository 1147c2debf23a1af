package types

import "errors"

// Domain errors for catalogue lookups and validation
var (
	// Lookup errors
	ErrComponentNotFound = errors.New("component not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrPatternNotFound   = errors.New("pattern not found")
	ErrExampleNotFound   = errors.New("example not found")

	// Validation errors
	ErrInvalidID           = errors.New("invalid identifier")
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrInvalidComponentRef = errors.New("invalid component reference")
	ErrEmptyQuery          = errors.New("search query is required")
)
