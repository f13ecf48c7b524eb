package cart

import "foodbasket-be/internal/product"

// LineItem is one (product, quantity) pair in a cart. Quantity is
// always >= 1 while the line exists; a line that would drop to zero is
// removed instead.
type LineItem struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}
