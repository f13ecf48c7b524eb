package checkout

import "errors"

var (
	// -- Guards --
	ErrNotAuthenticated = errors.New("user not authenticated")
	ErrCartEmpty        = errors.New("cart is empty")

	// -- Step preconditions --
	ErrMissingAddress        = errors.New("delivery address not selected")
	ErrMissingDeliveryMethod = errors.New("delivery method not selected")
	ErrMissingPaymentMethod  = errors.New("payment method not selected")

	// -- Transitions --
	ErrProcessing        = errors.New("order placement in progress")
	ErrFlowComplete      = errors.New("checkout already completed")
	ErrInvalidTransition = errors.New("invalid checkout transition")
)
