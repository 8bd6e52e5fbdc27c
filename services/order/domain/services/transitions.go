// Package services contains stateless domain services for the order bounded
// context. They enforce business rules that operate purely on domain types.
package services

import (
	"fmt"

	domain "github.com/ghuser/orderdesk/services/order/domain"
	"github.com/ghuser/orderdesk/services/order/domain/models"
)

// allowedTransitions is the complete order lifecycle. A requested transition
// succeeds only if it is an edge of this table; Completed is terminal and
// Canceled only self-transitions (a no-op guard, not a real edge).
var allowedTransitions = map[models.OrderStatus]map[models.OrderStatus]struct{}{
	models.StatusReceived:   {models.StatusInProgress: {}},
	models.StatusInProgress: {models.StatusReady: {}},
	models.StatusReady:      {models.StatusCompleted: {}},
	models.StatusCanceled:   {models.StatusCanceled: {}},
}

// ValidateTransition returns ErrInvalidTransition (naming both statuses)
// unless requested is an allowed next status for current.
func ValidateTransition(current, requested models.OrderStatus) error {
	if _, ok := allowedTransitions[current][requested]; !ok {
		return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, current, requested)
	}
	return nil
}

// RequiresPaymentCheck reports whether the transition is gated on payment
// state. Only entering preparation from Received consults the payment
// provider; every other edge is validated purely against the table.
func RequiresPaymentCheck(current, requested models.OrderStatus) bool {
	return current == models.StatusReceived && requested == models.StatusInProgress
}
