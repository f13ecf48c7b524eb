package order

import "errors"

var (
	// -- Validation & Input --
	ErrNoItems        = errors.New("order has no items")
	ErrInvalidStatus  = errors.New("invalid order status")
	ErrInvalidOrderID = errors.New("invalid order id")

	// -- Resource State --
	ErrOrderNotFound     = errors.New("order not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnauthorized      = errors.New("unauthorized")

	// -- Remote collaborator --
	ErrRemote = errors.New("order creation failed")
)
