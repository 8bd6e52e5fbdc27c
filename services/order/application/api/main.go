package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/orderdesk/pkg/app"
	"github.com/ghuser/orderdesk/services/order/application/handlers"
	appsvcs "github.com/ghuser/orderdesk/services/order/application/services"
)

// OrderRoutes registers order endpoints on the provided chi router.
func OrderRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", handlers.NewPostOrderHandler(svcs).Execute)
			r.Get("/", handlers.NewGetOrdersHandler(svcs).Execute)
			r.Get("/active", handlers.NewGetActiveOrdersHandler(svcs).Execute)
			r.Get("/client/{clientID}", handlers.NewGetOrdersByClientHandler(svcs).Execute)
			r.Get("/{orderID}", handlers.NewGetOrderByIDHandler(svcs).Execute)
			r.Patch("/{orderID}/status", handlers.NewPatchOrderStatusHandler(svcs).Execute)
		})
	})
}
