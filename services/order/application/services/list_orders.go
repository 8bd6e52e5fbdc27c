package services

import (
	"context"
	"errors"
	"fmt"

	pkgcache "github.com/ghuser/orderdesk/pkg/cache"
	domain "github.com/ghuser/orderdesk/services/order/domain"
	"github.com/ghuser/orderdesk/services/order/domain/models"
	"github.com/ghuser/orderdesk/services/order/domain/repositories"
)

// ListOrdersService is the read side of the order context: plain listings,
// the priority-sorted kitchen queue, and point lookups. Point lookups are
// served from Redis cache when available.
type ListOrdersService struct {
	repo  repositories.OrderRepository
	cache *pkgcache.OrderCache
}

// NewListOrdersService returns a ListOrdersService backed by the repository
// and an optional order cache (nil disables caching).
func NewListOrdersService(repo repositories.OrderRepository, orderCache *pkgcache.OrderCache) *ListOrdersService {
	return &ListOrdersService{repo: repo, cache: orderCache}
}

// List returns all orders, optionally filtered by status. When prioritized is
// set and no status filter is given, the kitchen queue ordering is used
// instead: active, not-yet-completed orders sorted Ready first.
func (s *ListOrdersService) List(ctx context.Context, status *models.OrderStatus, prioritized bool) ([]*models.Order, error) {
	if prioritized && status == nil {
		orders, err := s.repo.FindActiveSorted(ctx)
		if err != nil {
			return nil, fmt.Errorf("list active orders: %w", err)
		}
		return orders, nil
	}
	orders, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// GetByID returns the order with the given id, or nil when it does not exist.
// Absence is not an error at this layer; the handler decides the 404.
//
// Lookups use a read-through cache pattern:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *ListOrdersService) GetByID(ctx context.Context, orderID int64) (*models.Order, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, orderID); err == nil {
			return cached, nil
		}
		// A miss (redis.Nil) and a cache failure both fall through to
		// Postgres rather than failing the lookup.
	}

	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %d: %w", orderID, err)
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.Set(context.Background(), order)
		}()
	}

	return order, nil
}

// ListByClient returns all orders placed by the given customer.
func (s *ListOrdersService) ListByClient(ctx context.Context, clientID int64) ([]*models.Order, error) {
	orders, err := s.repo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("list orders for client %d: %w", clientID, err)
	}
	return orders, nil
}
