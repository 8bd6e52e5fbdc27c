package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/orderdesk/pkg/errhttp"
	"github.com/ghuser/orderdesk/pkg/httpx"
	appsvcs "github.com/ghuser/orderdesk/services/order/application/services"
)

// GetOrdersByClientHandler handles GET /orders/client/{clientID} requests.
type GetOrdersByClientHandler struct {
	svc *appsvcs.Services
}

// NewGetOrdersByClientHandler returns a GetOrdersByClientHandler backed by the given services.
func NewGetOrdersByClientHandler(svc *appsvcs.Services) *GetOrdersByClientHandler {
	return &GetOrdersByClientHandler{svc: svc}
}

// Execute lists all orders placed by a customer.
//
//	@Summary		List orders by client
//	@Description	Lists all orders placed by the given customer id
//	@Tags			orders
//	@Produce		json
//	@Param			clientID	path		int	true	"Client id"
//	@Success		200			{array}		OrderResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/orders/client/{clientID} [get]
func (h *GetOrdersByClientHandler) Execute(w http.ResponseWriter, r *http.Request) {
	clientID, err := strconv.ParseInt(chi.URLParam(r, "clientID"), 10, 64)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid client id")
		return
	}

	orders, err := h.svc.List.ListByClient(r.Context(), clientID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toOrderResponses(orders))
}
