package address

import "errors"

var (
	ErrNotFound        = errors.New("address not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrStreetRequired  = errors.New("street is required")
	ErrCityRequired    = errors.New("city is required")
)
