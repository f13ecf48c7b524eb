package product

import "time"

type Product struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Description        *string  `json:"description,omitempty"`
	Price              float64  `json:"price"`
	Image              string   `json:"image"`
	CategoryID         string   `json:"category_id"`
	CategorySlug       string   `json:"category"`
	Stock              int      `json:"stock"`
	Featured           bool     `json:"featured"`
	Rating             *float64 `json:"rating,omitempty"`
	NumReviews         *int     `json:"num_reviews,omitempty"`
	DiscountPercentage *float64 `json:"discount_percentage,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductQueryOptions narrows a catalog listing.
type ProductQueryOptions struct {
	CategoryID  *string
	Search      *string
	MinPrice    *float64
	MaxPrice    *float64
	InStockOnly bool
	Featured    *bool
	Limit       *int32
	Page        *int32
}

type NewProductInput struct {
	Name               string
	Description        *string
	Price              float64
	Image              string
	CategoryID         string
	Stock              int
	Featured           bool
	DiscountPercentage *float64
}

type UpdateProductInput struct {
	ProductID          string
	Name               *string
	Description        *string
	Price              *float64
	Image              *string
	CategoryID         *string
	Stock              *int
	Featured           *bool
	DiscountPercentage *float64
}
