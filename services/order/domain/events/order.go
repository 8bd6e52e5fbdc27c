package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics for the order context.
const (
	// TopicOrderCreated is published when a new order is persisted.
	TopicOrderCreated = "order.created"

	// TopicOrderStatusChanged is published when an order changes status.
	TopicOrderStatusChanged = "order.status_changed"
)

// OrderCreatedEvent is published after a new order is persisted, within the
// same transaction (outbox). Consumers subscribe via
// EventBus.Subscribe(ctx, events.TopicOrderCreated).
type OrderCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	OrderID    int64     `json:"order_id"`
	ClientID   *int64    `json:"client_id,omitempty"`
	Status     string    `json:"status"`
	Amount     float64   `json:"amount"`
	ItemCount  int       `json:"item_count"`
	OccurredAt time.Time `json:"occurred_at"`
}

// OrderStatusChangedEvent is published after an order's status is updated,
// within the same transaction (outbox).
type OrderStatusChangedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	OrderID    int64     `json:"order_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	OccurredAt time.Time `json:"occurred_at"`
}
