package paylater

import "errors"

var (
	ErrNotFound       = errors.New("pay later order not found")
	ErrInvalidAmount  = errors.New("payment amount must be positive")
	ErrAlreadySettled = errors.New("pay later order already settled")
	ErrOverpayment    = errors.New("payment exceeds outstanding amount")
)
