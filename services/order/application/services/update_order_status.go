package services

import (
	"context"
	"fmt"

	pkgcache "github.com/ghuser/orderdesk/pkg/cache"
	domain "github.com/ghuser/orderdesk/services/order/domain"
	"github.com/ghuser/orderdesk/services/order/domain/gateways"
	"github.com/ghuser/orderdesk/services/order/domain/models"
	"github.com/ghuser/orderdesk/services/order/domain/repositories"
	domainsvcs "github.com/ghuser/orderdesk/services/order/domain/services"
)

// UpdateOrderStatusService validates and applies order lifecycle transitions.
//
// Entering preparation (Received to InProgress) is gated on payment state: a
// declined payment cancels the order instead, and anything short of Paid
// rejects the request without mutating the order. All other transitions are
// validated purely against the lifecycle table. The repository update runs
// only after validation succeeds, so a rejected request never writes.
type UpdateOrderStatusService struct {
	repo     repositories.OrderRepository
	payments gateways.PaymentGateway
	cache    *pkgcache.OrderCache
}

// NewUpdateOrderStatusService returns an UpdateOrderStatusService wired with
// the repository, payment gateway and an optional order cache (nil disables
// cache invalidation).
func NewUpdateOrderStatusService(repo repositories.OrderRepository, payments gateways.PaymentGateway, orderCache *pkgcache.OrderCache) *UpdateOrderStatusService {
	return &UpdateOrderStatusService{repo: repo, payments: payments, cache: orderCache}
}

// Execute moves the order to newStatus and returns the updated order.
func (s *UpdateOrderStatusService) Execute(ctx context.Context, orderID int64, newStatus models.OrderStatus) (*models.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", orderID, err)
	}

	if domainsvcs.RequiresPaymentCheck(order.Status, newStatus) {
		payment, err := s.payments.GetStatus(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("get payment status for order %d: %w", orderID, err)
		}
		switch {
		case payment.Declined():
			// The provider declined the payment: cancel the order instead of
			// starting preparation. This outcome is imposed here, not
			// requested, so it bypasses the transition table.
			return s.apply(ctx, order, models.StatusCanceled)
		case payment != models.PaymentPaid:
			return nil, fmt.Errorf("%w: payment is %s", domain.ErrPaymentNotApproved, payment)
		}
	}

	if err := domainsvcs.ValidateTransition(order.Status, newStatus); err != nil {
		return nil, err
	}
	return s.apply(ctx, order, newStatus)
}

func (s *UpdateOrderStatusService) apply(ctx context.Context, order *models.Order, status models.OrderStatus) (*models.Order, error) {
	order.Status = status
	updated, err := s.repo.Update(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("update order %d: %w", order.ID, err)
	}
	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), order.ID)
	}
	return updated, nil
}
