package checkout

import "errors"

var (
	ErrOutOfStock          = errors.New("requested quantity exceeds available stock")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrMissingCustomerName = errors.New("customer name is required")
	ErrSubmissionFailed    = errors.New("sale submission failed")

	ErrSessionNotFound    = errors.New("checkout session not found")
	ErrLineNotFound       = errors.New("item not found in cart")
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	ErrInvalidDiscount    = errors.New("discount percent must be between 0 and 100")
	ErrInvalidPayment     = errors.New("unknown payment method")
)
