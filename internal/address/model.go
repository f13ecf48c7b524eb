package address

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	ID     uuid.UUID `json:"id"`
	UserID uint      `json:"user_id"`

	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`

	IsDefault bool `json:"isDefault"`
	IsActive  bool `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

type CreateAddressInput struct {
	Street       string
	City         string
	State        string
	ZipCode      string
	SetAsDefault bool
}

type UpdateAddressInput struct {
	AddressID    uuid.UUID
	Street       string
	City         string
	State        string
	ZipCode      string
	SetAsDefault bool
}
