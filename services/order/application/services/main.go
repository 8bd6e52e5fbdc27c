package services

import (
	"github.com/ghuser/orderdesk/pkg/app"
	"github.com/ghuser/orderdesk/pkg/cache"
	httpgw "github.com/ghuser/orderdesk/services/order/infrastructure/gateways"
	"github.com/ghuser/orderdesk/services/order/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Create *CreateOrderService
	Update *UpdateOrderStatusService
	List   *ListOrdersService
}

// New wires all order application services with infrastructure from the
// Application container: the Postgres repository (publishing outbox events
// through the event bus), the Redis order cache, and the HTTP collaborator
// gateways configured from app.Cfg.
func New(a *app.Application) *Services {
	repo := postgres.NewOrderRepository(a.Db, a.EventBus)
	orderCache := cache.NewOrderCache(a.Redis)

	client := httpgw.NewClient(a.Cfg.GatewayTimeout)
	catalog := httpgw.NewCatalogGateway(a.Cfg.CatalogURL, client)
	payments := httpgw.NewPaymentGateway(a.Cfg.PaymentServiceURL, client)
	customer := httpgw.NewCustomerGateway(a.Cfg.CustomerServiceURL, client)

	return &Services{
		Create: NewCreateOrderService(repo, catalog, payments, customer),
		Update: NewUpdateOrderStatusService(repo, payments, orderCache),
		List:   NewListOrdersService(repo, orderCache),
	}
}
