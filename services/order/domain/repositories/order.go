package repositories

import (
	"context"

	"github.com/ghuser/orderdesk/services/order/domain/models"
)

// OrderRepository is the persistence interface for the Order aggregate.
// The domain layer owns this interface; infrastructure implements it.
type OrderRepository interface {
	// Create persists a new order with its items, assigns the id and
	// timestamps, and returns the stored aggregate.
	Create(ctx context.Context, order *models.Order) (*models.Order, error)

	// GetByID returns the order with the given id, or ErrOrderNotFound.
	GetByID(ctx context.Context, id int64) (*models.Order, error)

	// FindAll returns all orders, optionally filtered by status.
	FindAll(ctx context.Context, status *models.OrderStatus) ([]*models.Order, error)

	// FindByClient returns all orders placed by the given customer.
	FindByClient(ctx context.Context, clientID int64) ([]*models.Order, error)

	// FindActiveSorted returns active, not-yet-completed orders in kitchen
	// queue order: Ready before InProgress before Received, ascending id
	// within equal priority.
	FindActiveSorted(ctx context.Context) ([]*models.Order, error)

	// Update replaces the order's status, amount and items (items are
	// deleted and reinserted wholesale). Returns ErrOrderNotFound when no
	// row matches the order's id.
	Update(ctx context.Context, order *models.Order) (*models.Order, error)

	// Delete hard-deletes an order and cascades to its items. Deleting a
	// non-existent id is a no-op.
	Delete(ctx context.Context, id int64) error
}
