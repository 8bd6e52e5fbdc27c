package models

import "time"

// Order is the aggregate root for this bounded context.
//
// ID is assigned by the repository on creation (zero before persistence).
// ClientID is nil for anonymous orders and set only when a bearer credential
// was resolved at creation time. Amount is computed once at creation as the
// sum of the items' line totals. Status is mutated only through the
// status-transition service. Active is a visibility flag: inactive orders are
// excluded from the kitchen queue regardless of status.
type Order struct {
	ID        int64
	ClientID  *int64
	Status    OrderStatus
	Amount    float64
	Items     []OrderItem
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDraftOrder builds an unpersisted Order from draft lines (product id and
// quantity only). Status and Active take their creation defaults; id, item
// names, prices and the amount are filled in by the create-order flow.
func NewDraftOrder(items []OrderItem) *Order {
	return &Order{
		Status: StatusReceived,
		Items:  items,
		Active: true,
	}
}

// TotalAmount sums the items' line totals.
func (o *Order) TotalAmount() float64 {
	var total float64
	for _, it := range o.Items {
		total += it.Price
	}
	return total
}
