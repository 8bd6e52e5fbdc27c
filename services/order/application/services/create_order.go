package services

import (
	"context"
	"fmt"

	domain "github.com/ghuser/orderdesk/services/order/domain"
	"github.com/ghuser/orderdesk/services/order/domain/gateways"
	"github.com/ghuser/orderdesk/services/order/domain/models"
	"github.com/ghuser/orderdesk/services/order/domain/repositories"
)

// CreateOrderService orchestrates order creation: optional credential
// resolution, per-line stock check and reservation, price resolution,
// persistence, and payment initiation, strictly in that order.
//
// The flow is synchronous and non-compensating: a stock reservation made for
// an earlier line is not released when a later line fails, and nothing rolls
// back a persisted order when payment initiation fails. Failures surface to
// the caller as domain errors.
type CreateOrderService struct {
	repo     repositories.OrderRepository
	catalog  gateways.ProductCatalog
	payments gateways.PaymentGateway
	customer gateways.CustomerVerifier
}

// NewCreateOrderService returns a CreateOrderService wired with its collaborators.
func NewCreateOrderService(
	repo repositories.OrderRepository,
	catalog gateways.ProductCatalog,
	payments gateways.PaymentGateway,
	customer gateways.CustomerVerifier,
) *CreateOrderService {
	return &CreateOrderService{repo: repo, catalog: catalog, payments: payments, customer: customer}
}

// Execute creates an order from a draft (lines carrying product id and
// quantity only) and returns the persisted order plus the payment reference
// the customer scans to pay.
//
// credential is an optional bearer token; when present it is resolved to a
// customer id before any catalog call, and resolution failure aborts the
// whole flow. Lines are processed in input order and the first line with
// insufficient stock aborts processing of the remaining lines.
func (s *CreateOrderService) Execute(ctx context.Context, order *models.Order, credential string) (*models.Order, string, error) {
	if len(order.Items) == 0 {
		return nil, "", domain.ErrEmptyOrder
	}

	if credential != "" {
		clientID, err := s.customer.Verify(ctx, credential)
		if err != nil {
			return nil, "", fmt.Errorf("verify credential: %w", err)
		}
		order.ClientID = &clientID
	}

	var total float64
	for i := range order.Items {
		item := &order.Items[i]

		prod, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, "", fmt.Errorf("get product %s: %w", item.ProductID, err)
		}
		if prod.Stock < item.Quantity {
			return nil, "", fmt.Errorf("%w: '%s' (available %d)", domain.ErrInsufficientStock, prod.Name, prod.Stock)
		}

		if err := s.catalog.ReserveStock(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, "", fmt.Errorf("reserve stock for %s: %w", item.ProductID, err)
		}

		item.Name = prod.Name
		item.Price = prod.Price * float64(item.Quantity)
		total += item.Price
	}

	order.Amount = total
	order.Status = models.StatusReceived
	order.Active = true

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, "", fmt.Errorf("create order: %w", err)
	}

	reference, _, err := s.payments.CreatePayment(ctx, created.ID, created.Amount)
	if err != nil {
		return nil, "", fmt.Errorf("create payment for order %d: %w", created.ID, err)
	}

	return created, reference, nil
}
