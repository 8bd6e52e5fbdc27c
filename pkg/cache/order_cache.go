package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/orderdesk/services/order/domain/models"
)

const (
	// OrderCacheTTL is the time-to-live for cached orders. Active orders
	// change status within minutes, so entries are short-lived.
	OrderCacheTTL = 5 * time.Minute

	orderCacheKeyPrefix = "order"
)

// OrderCache provides read/write operations for order cache entries.
// Orders are stored as JSON blobs (the aggregate includes a variable-length
// item list, so a flat hash does not fit). Key format: "order:{orderID}".
type OrderCache struct {
	client *RedisClient
}

// NewOrderCache creates a new OrderCache backed by the given RedisClient.
func NewOrderCache(r *RedisClient) *OrderCache {
	return &OrderCache{client: r}
}

// cachedOrder is the serialized form of a cached order. Kept separate from
// the domain model so cache layout changes never leak into the aggregate.
type cachedOrder struct {
	ID        int64        `json:"id"`
	ClientID  *int64       `json:"client_id,omitempty"`
	Status    string       `json:"status"`
	Amount    float64      `json:"amount"`
	Active    bool         `json:"active"`
	Items     []cachedItem `json:"items"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type cachedItem struct {
	ID        int64   `json:"id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Get retrieves a cached order by id.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *OrderCache) Get(ctx context.Context, orderID int64) (*models.Order, error) {
	raw, err := c.client.Client().Get(ctx, c.key(orderID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, redis.Nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var co cachedOrder
	if err := json.Unmarshal(raw, &co); err != nil {
		return nil, fmt.Errorf("cache unmarshal order: %w", err)
	}

	order := &models.Order{
		ID:        co.ID,
		ClientID:  co.ClientID,
		Status:    models.OrderStatus(co.Status),
		Amount:    co.Amount,
		Active:    co.Active,
		Items:     make([]models.OrderItem, len(co.Items)),
		CreatedAt: co.CreatedAt,
		UpdatedAt: co.UpdatedAt,
	}
	for i, it := range co.Items {
		order.Items[i] = models.OrderItem{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		}
	}
	return order, nil
}

// Set writes a cached order with a 5-minute TTL.
func (c *OrderCache) Set(ctx context.Context, order *models.Order) error {
	co := cachedOrder{
		ID:        order.ID,
		ClientID:  order.ClientID,
		Status:    order.Status.String(),
		Amount:    order.Amount,
		Active:    order.Active,
		Items:     make([]cachedItem, len(order.Items)),
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
	for i, it := range order.Items {
		co.Items[i] = cachedItem{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		}
	}

	raw, err := json.Marshal(co)
	if err != nil {
		return fmt.Errorf("cache marshal order: %w", err)
	}
	if err := c.client.Client().Set(ctx, c.key(order.ID), raw, OrderCacheTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached order.
func (c *OrderCache) Delete(ctx context.Context, orderID int64) error {
	if err := c.client.Client().Del(ctx, c.key(orderID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "order:{orderID}"
func (c *OrderCache) key(orderID int64) string {
	return fmt.Sprintf("%s:%d", orderCacheKeyPrefix, orderID)
}
