package handlers

import (
	"net/http"

	"github.com/ghuser/orderdesk/pkg/errhttp"
	"github.com/ghuser/orderdesk/pkg/httpx"
	appsvcs "github.com/ghuser/orderdesk/services/order/application/services"
)

// GetActiveOrdersHandler handles GET /orders/active requests.
type GetActiveOrdersHandler struct {
	svc *appsvcs.Services
}

// NewGetActiveOrdersHandler returns a GetActiveOrdersHandler backed by the given services.
func NewGetActiveOrdersHandler(svc *appsvcs.Services) *GetActiveOrdersHandler {
	return &GetActiveOrdersHandler{svc: svc}
}

// Execute lists the kitchen queue: active, not-yet-completed orders sorted by
// actionability (Ready, then InProgress, then Received).
//
//	@Summary		List active orders
//	@Description	Priority-sorted view of orders still moving through the kitchen
//	@Tags			orders
//	@Produce		json
//	@Success		200	{array}		OrderResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/orders/active [get]
func (h *GetActiveOrdersHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.List.List(r.Context(), nil, true)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toOrderResponses(orders))
}
