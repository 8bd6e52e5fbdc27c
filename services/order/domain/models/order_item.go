package models

// OrderItem is a line on an Order. It has no lifecycle of its own: items are
// created with their order and replaced wholesale when the order is updated.
//
// Price is the line total (unit price × quantity), not the unit price. Name
// and Price stay zero on a draft line and are resolved from the product
// catalog during order creation; an item is never persisted unresolved.
type OrderItem struct {
	ID        int64
	ProductID string
	Name      string
	Quantity  int
	Price     float64
}
