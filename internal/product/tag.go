package product

import (
	"errors"
	"time"
)

// Tag is a merchandising label attached to products.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	ErrTagNameRequired = errors.New("tag name is required")
	ErrTagNotFound     = errors.New("tag not found")
)
