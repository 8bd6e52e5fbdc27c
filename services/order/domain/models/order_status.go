package models

import "fmt"

// OrderStatus is the lifecycle state of an Order. The constant values are the
// display labels persisted and transmitted on the wire; external clients match
// on these literals, so they must never be renamed.
type OrderStatus string

const (
	StatusReceived   OrderStatus = "Recebido"
	StatusInProgress OrderStatus = "Em Preparação"
	StatusReady      OrderStatus = "Pronto"
	StatusCompleted  OrderStatus = "Finalizado"
	StatusCanceled   OrderStatus = "Cancelado"
)

// unknownStatusPriority sorts statuses outside the kitchen queue last.
const unknownStatusPriority = 9999

// ParseOrderStatus maps a wire label to an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusReceived, StatusInProgress, StatusReady, StatusCompleted, StatusCanceled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// String returns the display label.
func (s OrderStatus) String() string {
	return string(s)
}

// QueuePriority returns the sort key for the active-orders view: orders
// closest to hand-off come first (Ready before InProgress before Received).
func (s OrderStatus) QueuePriority() int {
	switch s {
	case StatusReady:
		return 1
	case StatusInProgress:
		return 2
	case StatusReceived:
		return 3
	default:
		return unknownStatusPriority
	}
}
