package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/orderdesk/pkg/errhttp"
	"github.com/ghuser/orderdesk/pkg/httpx"
	appsvcs "github.com/ghuser/orderdesk/services/order/application/services"
	"github.com/ghuser/orderdesk/services/order/domain/models"
)

// PatchOrderStatusHandler handles PATCH /orders/{orderID}/status requests.
type PatchOrderStatusHandler struct {
	svc *appsvcs.Services
}

// NewPatchOrderStatusHandler returns a PatchOrderStatusHandler backed by the given services.
func NewPatchOrderStatusHandler(svc *appsvcs.Services) *PatchOrderStatusHandler {
	return &PatchOrderStatusHandler{svc: svc}
}

// Execute moves an order to a new lifecycle status.
//
//	@Summary		Update order status
//	@Description	Applies a lifecycle transition; entering preparation requires an approved payment
//	@Tags			orders
//	@Produce		json
//	@Param			orderID	path		int		true	"Order id"
//	@Param			status	query		string	true	"Requested status label (e.g. Em Preparação)"
//	@Success		200		{object}	OrderResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/orders/{orderID}/status [patch]
func (h *PatchOrderStatusHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	status, err := models.ParseOrderStatus(r.URL.Query().Get("status"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.svc.Update.Execute(r.Context(), orderID, status)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toOrderResponse(order))
}
