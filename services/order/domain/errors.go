package domain

import "errors"

// Sentinel errors for the order domain. Use errors.Is() to check these.
// pkg/errhttp maps them to HTTP status codes at the boundary.
var (
	// ErrOrderNotFound indicates no order exists with the given id.
	ErrOrderNotFound = errors.New("order not found")

	// ErrProductNotFound indicates a draft line references a product the
	// catalog does not know.
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock indicates the catalog has less stock on hand than
	// a draft line requests.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidCredential indicates the bearer credential could not be
	// resolved to a customer (malformed, expired, unknown or inactive).
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrInvalidTransition indicates the requested status change is not an
	// edge of the order lifecycle.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrPaymentNotApproved indicates an order cannot enter preparation
	// because its payment is not approved yet.
	ErrPaymentNotApproved = errors.New("payment not approved")

	// ErrEmptyOrder indicates a draft order with no line items.
	ErrEmptyOrder = errors.New("order must have at least one item")
)
