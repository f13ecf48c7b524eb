package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidPrice    = errors.New("price must be non-negative")
	ErrInvalidStock    = errors.New("stock must be non-negative")
	ErrNameRequired    = errors.New("product name is required")
)
