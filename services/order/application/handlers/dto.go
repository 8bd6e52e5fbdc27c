package handlers

import (
	"time"

	"github.com/ghuser/orderdesk/services/order/domain/models"
)

// OrderItemResponse is a line item as returned by the API.
type OrderItemResponse struct {
	ProductID string  `json:"product_id" example:"P1"`
	Name      string  `json:"name"       example:"Cheeseburger"`
	Quantity  int     `json:"quantity"   example:"2"`
	Price     float64 `json:"price"      example:"24.0"` // line total, not unit price
} // @name OrderItemResponse

// OrderResponse is an order as returned by the API. Status carries the
// display label (e.g. "Recebido").
type OrderResponse struct {
	ID        int64               `json:"id"         example:"42"`
	ClientID  *int64              `json:"client_id,omitempty" example:"7"`
	Status    string              `json:"status"     example:"Recebido"`
	Amount    float64             `json:"amount"     example:"24.0"`
	Items     []OrderItemResponse `json:"items"`
	CreatedAt time.Time           `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt time.Time           `json:"updated_at" example:"2024-01-15T10:30:00Z"`
} // @name OrderResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"order not found"`
} // @name ErrorResponse

func toOrderResponse(o *models.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		}
	}
	return OrderResponse{
		ID:        o.ID,
		ClientID:  o.ClientID,
		Status:    o.Status.String(),
		Amount:    o.Amount,
		Items:     items,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func toOrderResponses(orders []*models.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	return out
}
