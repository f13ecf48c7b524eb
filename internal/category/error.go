package category

import "errors"

var (
	ErrNameRequired     = errors.New("category name cannot be empty")
	ErrCategoryNotFound = errors.New("category not found")
)
