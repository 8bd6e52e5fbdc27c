package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/orderdesk/pkg/database"
	"github.com/ghuser/orderdesk/pkg/events"
	domain "github.com/ghuser/orderdesk/services/order/domain"
	domainevents "github.com/ghuser/orderdesk/services/order/domain/events"
	"github.com/ghuser/orderdesk/services/order/domain/models"
)

// OrderRepository implements repositories.OrderRepository against PostgreSQL.
type OrderRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewOrderRepository returns an OrderRepository backed by the given connection
// pool and event bus. The bus is used to publish order events transactionally
// (outbox); pass nil to disable publishing.
func NewOrderRepository(db *database.Database, bus *events.EventBus) *OrderRepository {
	return &OrderRepository{db: db, bus: bus}
}

// Create persists a new order with its items in one transaction, assigns the
// id and timestamps, and publishes an OrderCreatedEvent within the same
// transaction.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	created := *order
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			INSERT INTO orders (client_id, status, amount, active)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, updated_at`,
			nullableID(order.ClientID), order.Status.String(), order.Amount, order.Active,
		)
		if err := row.Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		created.Items = make([]models.OrderItem, len(order.Items))
		copy(created.Items, order.Items)
		for i := range created.Items {
			if err := insertItem(ctx, tx, created.ID, &created.Items[i]); err != nil {
				return err
			}
		}

		if r.bus != nil {
			if err := r.publishCreated(tx, &created); err != nil {
				return fmt.Errorf("publish order created: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetByID retrieves an order with its items. Returns ErrOrderNotFound when no
// row matches.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT id, client_id, status, amount, active, created_at, updated_at
		FROM orders WHERE id = $1`, id)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("query order: %w", err)
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// FindAll retrieves all orders, optionally filtered by status.
func (r *OrderRepository) FindAll(ctx context.Context, status *models.OrderStatus) ([]*models.Order, error) {
	query := `
		SELECT id, client_id, status, amount, active, created_at, updated_at
		FROM orders`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, status.String())
	}
	query += ` ORDER BY id`
	return r.queryOrders(ctx, query, args...)
}

// FindByClient retrieves all orders placed by the given customer.
func (r *OrderRepository) FindByClient(ctx context.Context, clientID int64) ([]*models.Order, error) {
	return r.queryOrders(ctx, `
		SELECT id, client_id, status, amount, active, created_at, updated_at
		FROM orders WHERE client_id = $1 ORDER BY id`, clientID)
}

// FindActiveSorted retrieves the kitchen queue: active orders that are not
// Completed, sorted so the most actionable come first (Ready, then
// InProgress, then Received, then anything else), ascending id as tie-break.
func (r *OrderRepository) FindActiveSorted(ctx context.Context) ([]*models.Order, error) {
	return r.queryOrders(ctx, `
		SELECT id, client_id, status, amount, active, created_at, updated_at
		FROM orders
		WHERE status <> $1 AND active
		ORDER BY CASE status
			WHEN $2 THEN 1
			WHEN $3 THEN 2
			WHEN $4 THEN 3
			ELSE 9999
		END, id ASC`,
		models.StatusCompleted.String(),
		models.StatusReady.String(),
		models.StatusInProgress.String(),
		models.StatusReceived.String(),
	)
}

// Update replaces the order's status, amount and items in one transaction.
// Zero-valued status/amount keep the stored values. Items are deleted and
// reinserted wholesale. An OrderStatusChangedEvent is published within the
// transaction when the status actually changed. Returns ErrOrderNotFound when
// no row matches the order's id.
func (r *OrderRepository) Update(ctx context.Context, order *models.Order) (*models.Order, error) {
	updated := *order
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		var prevStatus string
		err := tx.QueryRowContext(ctx,
			`SELECT status FROM orders WHERE id = $1 FOR UPDATE`, order.ID,
		).Scan(&prevStatus)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrOrderNotFound
		}
		if err != nil {
			return fmt.Errorf("lock order: %w", err)
		}

		newStatus := order.Status.String()
		if newStatus == "" {
			newStatus = prevStatus
		}

		row := tx.QueryRowContext(ctx, `
			UPDATE orders
			SET status = $2,
			    amount = CASE WHEN $3::double precision = 0 THEN amount ELSE $3 END,
			    updated_at = now()
			WHERE id = $1
			RETURNING client_id, status, amount, active, created_at, updated_at`,
			order.ID, newStatus, order.Amount,
		)
		var clientID sql.NullInt64
		var status string
		if err := row.Scan(&clientID, &status, &updated.Amount, &updated.Active,
			&updated.CreatedAt, &updated.UpdatedAt); err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		updated.ClientID = fromNullableID(clientID)
		updated.Status = models.OrderStatus(status)

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
			return fmt.Errorf("delete order items: %w", err)
		}
		updated.Items = make([]models.OrderItem, len(order.Items))
		copy(updated.Items, order.Items)
		for i := range updated.Items {
			if err := insertItem(ctx, tx, order.ID, &updated.Items[i]); err != nil {
				return err
			}
		}

		if r.bus != nil && prevStatus != newStatus {
			if err := r.publishStatusChanged(tx, &updated, prevStatus); err != nil {
				return fmt.Errorf("publish status changed: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete hard-deletes an order; order_items go with it via ON DELETE CASCADE.
// Deleting a non-existent id is a no-op.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.DB().ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

func (r *OrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]*models.Order, error) {
	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	for _, order := range orders {
		if err := r.loadItems(ctx, order); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, order *models.Order) error {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, product_id, product_name, quantity, price
		FROM order_items WHERE order_id = $1 ORDER BY id`, order.ID)
	if err != nil {
		return fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	order.Items = order.Items[:0]
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Name, &it.Quantity, &it.Price); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		order.Items = append(order.Items, it)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate order items: %w", err)
	}
	return nil
}

func insertItem(ctx context.Context, tx *sql.Tx, orderID int64, item *models.OrderItem) error {
	err := tx.QueryRowContext(ctx, `
		INSERT INTO order_items (order_id, product_id, product_name, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		orderID, item.ProductID, item.Name, item.Quantity, item.Price,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

func (r *OrderRepository) publishCreated(tx *sql.Tx, order *models.Order) error {
	event := domainevents.OrderCreatedEvent{
		EventID:    uuid.New(),
		Version:    1,
		OrderID:    order.ID,
		ClientID:   order.ClientID,
		Status:     order.Status.String(),
		Amount:     order.Amount,
		ItemCount:  len(order.Items),
		OccurredAt: order.CreatedAt,
	}
	return r.publish(tx, domainevents.TopicOrderCreated, event.EventID, event)
}

func (r *OrderRepository) publishStatusChanged(tx *sql.Tx, order *models.Order, prevStatus string) error {
	event := domainevents.OrderStatusChangedEvent{
		EventID:    uuid.New(),
		Version:    1,
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   order.Status.String(),
		OccurredAt: order.UpdatedAt,
	}
	return r.publish(tx, domainevents.TopicOrderStatusChanged, event.EventID, event)
}

func (r *OrderRepository) publish(tx *sql.Tx, topic string, eventID uuid.UUID, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", eventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (*models.Order, error) {
	var order models.Order
	var clientID sql.NullInt64
	var status string
	if err := s.Scan(&order.ID, &clientID, &status, &order.Amount, &order.Active,
		&order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, err
	}
	order.ClientID = fromNullableID(clientID)
	order.Status = models.OrderStatus(status)
	return &order, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func fromNullableID(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	id := n.Int64
	return &id
}
