// Package gateways declares the outbound collaborator contracts the order
// context depends on. The domain layer owns these interfaces; infrastructure
// provides the HTTP-backed implementations and tests provide in-memory ones.
package gateways

import (
	"context"

	"github.com/ghuser/orderdesk/services/order/domain/models"
)

// Product is the catalog's view of a sellable product.
type Product struct {
	ID    string
	Name  string
	Price float64
	Stock int
}

// ProductCatalog resolves product identity, price and stock, and reserves
// stock on the catalog side. Reservation is a remote side effect with no
// local compensation: a reservation made for an earlier line of a failed
// multi-line order is not released.
type ProductCatalog interface {
	GetProduct(ctx context.Context, productID string) (*Product, error)
	ReserveStock(ctx context.Context, productID string, qty int) error
}

// PaymentGateway initiates payments and reports their current state.
type PaymentGateway interface {
	// CreatePayment registers a payment for the order and returns the
	// scannable payment reference plus the initial payment state.
	CreatePayment(ctx context.Context, orderID int64, amount float64) (string, models.PaymentStatus, error)

	// GetStatus returns the current payment state for the order.
	GetStatus(ctx context.Context, orderID int64) (models.PaymentStatus, error)
}

// CustomerVerifier resolves an opaque bearer credential to a customer id.
type CustomerVerifier interface {
	// Verify returns the customer id for the credential, or
	// ErrInvalidCredential when it cannot be resolved.
	Verify(ctx context.Context, credential string) (int64, error)
}
