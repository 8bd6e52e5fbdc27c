package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/orderdesk/pkg/errhttp"
	"github.com/ghuser/orderdesk/pkg/httpx"
	appsvcs "github.com/ghuser/orderdesk/services/order/application/services"
)

// GetOrderByIDHandler handles GET /orders/{orderID} requests.
type GetOrderByIDHandler struct {
	svc *appsvcs.Services
}

// NewGetOrderByIDHandler returns a GetOrderByIDHandler backed by the given services.
func NewGetOrderByIDHandler(svc *appsvcs.Services) *GetOrderByIDHandler {
	return &GetOrderByIDHandler{svc: svc}
}

// Execute fetches a single order by id.
//
//	@Summary		Get order
//	@Description	Fetches an order by id
//	@Tags			orders
//	@Produce		json
//	@Param			orderID	path		int	true	"Order id"
//	@Success		200		{object}	OrderResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/orders/{orderID} [get]
func (h *GetOrderByIDHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.svc.List.GetByID(r.Context(), orderID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if order == nil {
		httpx.JSONError(w, http.StatusNotFound, "order not found")
		return
	}
	httpx.JSON(w, http.StatusOK, toOrderResponse(order))
}
