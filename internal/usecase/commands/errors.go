package commands

import (
	"errors"
)

type CheckoutErrorKind string

const (
	KindValidation             CheckoutErrorKind = "VALIDATION"
	KindEmptyCart              CheckoutErrorKind = "EMPTY_CART"
	KindInvalidProduct         CheckoutErrorKind = "INVALID_PRODUCT"
	KindInsufficientStock      CheckoutErrorKind = "INSUFFICIENT_STOCK"
	KindInvalidPromotion       CheckoutErrorKind = "INVALID_PROMOTION"
	KindPromotionMinimumNotMet CheckoutErrorKind = "PROMOTION_MINIMUM_NOT_MET"
	KindInsufficientPoints     CheckoutErrorKind = "INSUFFICIENT_POINTS"
	KindPersistence            CheckoutErrorKind = "PERSISTENCE"

	KindOrderNotFound        CheckoutErrorKind = "ORDER_NOT_FOUND"
	KindForbidden            CheckoutErrorKind = "FORBIDDEN"
	KindInvalidTransition    CheckoutErrorKind = "INVALID_TRANSITION"
	KindCancelWindowClosed   CheckoutErrorKind = "CANCEL_WINDOW_CLOSED"
	KindIdempotencyKeyReused CheckoutErrorKind = "IDEMPOTENCY_KEY_REUSED"
)

// Messages shown to the customer. Kept stable for existing clients.
const (
	MsgMissingCheckoutDetails = "Payment method and shipping info are required"
	MsgIncompleteShipping     = "Complete shipping information is required"
	MsgNegativePoints         = "Points to redeem must not be negative"
	MsgNoteTooLong            = "Note must be at most 1000 characters"
	MsgEmptyCart              = "Cart is empty"
	MsgInvalidProduct         = "Invalid product in cart"
	MsgInvalidPromotion       = "Invalid or expired promotion code"
	MsgPromotionMinimumNotMet = "Order does not meet minimum value for promotion"
	MsgInsufficientPoints     = "Not enough points"
	MsgCreateOrderFailed      = "Error creating order"
	MsgOrderNotFound          = "Order not found"
	MsgOrderForbidden         = "Not authorized to access this order"
	MsgCancelNotAllowed       = "Only new orders can be canceled"
	MsgCancelWindowClosed     = "Orders can only be canceled within 30 minutes of placement"
	MsgInvalidTransition      = "Order status cannot be changed this way"
	MsgIdempotencyKeyReused   = "Idempotency key was already used with a different request"
	MsgProductNotFound        = "Product not found"
	MsgInvalidQuantity        = "Quantity must be between 1 and 999"
	MsgInvalidStatus          = "Invalid order status"
	MsgUpdateOrderFailed      = "Error updating order"
	MsgUpdateCartFailed       = "Error updating cart"
)

// CheckoutError is the single error type use cases hand to the transport layer.
type CheckoutError struct {
	Kind    CheckoutErrorKind
	message string
	cause   error
}

func NewCheckoutError(kind CheckoutErrorKind, message string, cause error) *CheckoutError {
	return &CheckoutError{Kind: kind, message: message, cause: cause}
}

func (e *CheckoutError) Error() string {
	if e.cause != nil {
		return string(e.Kind) + ": " + e.message + ": " + e.cause.Error()
	}
	return string(e.Kind) + ": " + e.message
}

// Message is safe to return to the client.
func (e *CheckoutError) Message() string {
	return e.message
}

func (e *CheckoutError) Unwrap() error {
	return e.cause
}

func AsCheckoutError(err error) (*CheckoutError, bool) {
	var ce *CheckoutError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

func IsKind(err error, kind CheckoutErrorKind) bool {
	ce, ok := AsCheckoutError(err)
	return ok && ce.Kind == kind
}
