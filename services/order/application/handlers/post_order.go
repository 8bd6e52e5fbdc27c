package handlers

import (
	"net/http"

	"github.com/ghuser/orderdesk/pkg/auth"
	"github.com/ghuser/orderdesk/pkg/errhttp"
	"github.com/ghuser/orderdesk/pkg/httpx"
	pkgvalidator "github.com/ghuser/orderdesk/pkg/validator"
	appsvcs "github.com/ghuser/orderdesk/services/order/application/services"
	"github.com/ghuser/orderdesk/services/order/domain/models"
)

// CreateOrderItemRequest is a draft line: product and quantity only; name and
// price are resolved from the catalog during creation.
type CreateOrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required,max=50" example:"P1"`
	Quantity  int    `json:"quantity"   validate:"required,gte=1"  example:"2"`
} // @name CreateOrderItemRequest

// CreateOrderRequest is the request body for POST /orders.
type CreateOrderRequest struct {
	Items []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
} // @name CreateOrderRequest

// CreateOrderResponse is returned on successful order creation: the persisted
// order plus the payment reference the customer scans to pay.
type CreateOrderResponse struct {
	OrderResponse
	QRCode string `json:"qr_code" example:"00020126580014br.gov.bcb.pix..."`
} // @name CreateOrderResponse

// PostOrderHandler handles POST /orders requests.
type PostOrderHandler struct {
	svc *appsvcs.Services
}

// NewPostOrderHandler returns a PostOrderHandler backed by the given services.
func NewPostOrderHandler(svc *appsvcs.Services) *PostOrderHandler {
	return &PostOrderHandler{svc: svc}
}

// Execute creates a new order.
//
//	@Summary		Create order
//	@Description	Creates an order from draft lines, reserving stock and initiating payment
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateOrderRequest	true	"Draft order"
//	@Param			Authorization	header	string	false	"Optional bearer credential identifying the customer"
//	@Success		201		{object}	CreateOrderResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/orders [post]
func (h *PostOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateOrderRequest](w, r)
	if !ok {
		return
	}

	items := make([]models.OrderItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = models.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity}
	}

	order, qrCode, err := h.svc.Create.Execute(r.Context(), models.NewDraftOrder(items), auth.BearerToken(r))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, CreateOrderResponse{
		OrderResponse: toOrderResponse(order),
		QRCode:        qrCode,
	})
}
