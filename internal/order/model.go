package order

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusShipped    OrderStatus = "SHIPPED"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// DeliveryAddress is the address snapshot stored on an order.
type DeliveryAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// DeliveryMethod describes how and when an order is delivered.
type DeliveryMethod struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	EstimatedDays int     `json:"estimatedDays"`
}

// PaymentMethod identifies what the customer pays with. LastFour is
// set only for card-backed methods.
type PaymentMethod struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	LastFour *string `json:"lastFour,omitempty"`
}

// Well-known payment method ids the platform reacts to after order
// creation (wallet debit, pay-later record).
const (
	PaymentMethodWallet   = "wallet"
	PaymentMethodPayLater = "pay_later"
)

// OrderItem is a denormalized product snapshot taken at checkout time.
type OrderItem struct {
	ID        uint    `json:"id"`
	OrderID   string  `json:"order_id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

// Order is immutable from the storefront's perspective once created;
// only its status moves, and only through the platform.
type Order struct {
	ID                string          `json:"id"`
	OrderNumber       string          `json:"order_number"`
	UserID            uint            `json:"user_id"`
	Items             []OrderItem     `json:"items"`
	DeliveryAddress   DeliveryAddress `json:"delivery_address"`
	DeliveryMethod    DeliveryMethod  `json:"delivery_method"`
	PaymentMethod     PaymentMethod   `json:"payment_method"`
	Subtotal          float64         `json:"subtotal"`
	DeliveryFee       float64         `json:"delivery_fee"`
	Discount          float64         `json:"discount"`
	Total             float64         `json:"total"`
	Notes             *string         `json:"notes,omitempty"`
	EstimatedDelivery time.Time       `json:"estimated_delivery"`
	Status            OrderStatus     `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CreateOrderInput is the normalized payload the order-creation endpoint
// accepts. Field names follow the wire format of the storefront client.
type CreateOrderInput struct {
	UserID            uint            `json:"user_id"`
	Items             []CreateItem    `json:"items"`
	DeliveryAddress   DeliveryAddress `json:"delivery_address"`
	DeliveryMethod    DeliveryMethod  `json:"delivery_method"`
	PaymentMethod     PaymentMethod   `json:"payment_method"`
	Subtotal          float64         `json:"subtotal"`
	DeliveryFee       float64         `json:"delivery_fee"`
	Discount          float64         `json:"discount"`
	Total             float64         `json:"total"`
	Notes             *string         `json:"notes,omitempty"`
	EstimatedDelivery time.Time       `json:"estimated_delivery"`
}

type CreateItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	UserID *uint
	Status *OrderStatus
}

type OrderSort struct {
	Field     string
	Direction string
}
