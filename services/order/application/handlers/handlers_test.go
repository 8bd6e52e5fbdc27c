package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/orderdesk/services/order/application/handlers"
	appsvcs "github.com/ghuser/orderdesk/services/order/application/services"
	domain "github.com/ghuser/orderdesk/services/order/domain"
	"github.com/ghuser/orderdesk/services/order/domain/gateways"
	"github.com/ghuser/orderdesk/services/order/domain/models"
)

// newTestRouter mounts the order routes on a chi router with the given
// service container, mirroring api.OrderRoutes.
func newTestRouter(svcs *appsvcs.Services) http.Handler {
	r := chi.NewRouter()
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", handlers.NewPostOrderHandler(svcs).Execute)
		r.Get("/", handlers.NewGetOrdersHandler(svcs).Execute)
		r.Get("/active", handlers.NewGetActiveOrdersHandler(svcs).Execute)
		r.Get("/client/{clientID}", handlers.NewGetOrdersByClientHandler(svcs).Execute)
		r.Get("/{orderID}", handlers.NewGetOrderByIDHandler(svcs).Execute)
		r.Patch("/{orderID}/status", handlers.NewPatchOrderStatusHandler(svcs).Execute)
	})
	return r
}

type fixture struct {
	repo     *memRepo
	catalog  *fakeCatalog
	payments *fakePayments
	customer *fakeCustomer
	router   http.Handler
}

func newFixture() *fixture {
	f := &fixture{
		repo:     newMemRepo(),
		catalog:  newFakeCatalog(),
		payments: &fakePayments{reference: "qr-data"},
		customer: &fakeCustomer{clientID: 7},
	}
	svcs := &appsvcs.Services{
		Create: appsvcs.NewCreateOrderService(f.repo, f.catalog, f.payments, f.customer),
		Update: appsvcs.NewUpdateOrderStatusService(f.repo, f.payments, nil),
		List:   appsvcs.NewListOrdersService(f.repo, nil),
	}
	f.router = newTestRouter(svcs)
	return f
}

type memRepo struct {
	mu     sync.Mutex
	nextID int64
	orders map[int64]*models.Order
}

func newMemRepo() *memRepo {
	return &memRepo{orders: make(map[int64]*models.Order)}
}

func (r *memRepo) seed(o models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = &o
	if o.ID > r.nextID {
		r.nextID = o.ID
	}
}

func (r *memRepo) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *order
	stored.ID = r.nextID
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.orders[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *memRepo) GetByID(_ context.Context, id int64) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	out := *o
	return &out, nil
}

func (r *memRepo) FindAll(_ context.Context, status *models.OrderStatus) ([]*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Order{}
	for _, o := range r.orders {
		if status != nil && o.Status != *status {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) FindByClient(_ context.Context, clientID int64) ([]*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Order{}
	for _, o := range r.orders {
		if o.ClientID != nil && *o.ClientID == clientID {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) FindActiveSorted(_ context.Context) ([]*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Order{}
	for _, o := range r.orders {
		if !o.Active || o.Status == models.StatusCompleted {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := out[i].Status.QueuePriority(), out[j].Status.QueuePriority()
		if pi != pj {
			return pi < pj
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memRepo) Update(_ context.Context, order *models.Order) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return nil, domain.ErrOrderNotFound
	}
	stored := *order
	stored.UpdatedAt = time.Now()
	r.orders[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *memRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id)
	return nil
}

type fakeCatalog struct {
	products map[string]gateways.Product
	reserved map[string]int
}

func newFakeCatalog(products ...gateways.Product) *fakeCatalog {
	c := &fakeCatalog{
		products: make(map[string]gateways.Product),
		reserved: make(map[string]int),
	}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *fakeCatalog) add(p gateways.Product) { c.products[p.ID] = p }

func (c *fakeCatalog) GetProduct(_ context.Context, productID string) (*gateways.Product, error) {
	p, ok := c.products[productID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}
	out := p
	return &out, nil
}

func (c *fakeCatalog) ReserveStock(_ context.Context, productID string, qty int) error {
	p := c.products[productID]
	p.Stock -= qty
	c.products[productID] = p
	c.reserved[productID] += qty
	return nil
}

type fakePayments struct {
	reference string
	status    models.PaymentStatus
}

func (p *fakePayments) CreatePayment(_ context.Context, orderID int64, amount float64) (string, models.PaymentStatus, error) {
	return p.reference, models.PaymentPending, nil
}

func (p *fakePayments) GetStatus(_ context.Context, orderID int64) (models.PaymentStatus, error) {
	return p.status, nil
}

type fakeCustomer struct {
	clientID       int64
	err            error
	lastCredential string
}

func (c *fakeCustomer) Verify(_ context.Context, credential string) (int64, error) {
	c.lastCredential = credential
	if c.err != nil {
		return 0, c.err
	}
	return c.clientID, nil
}
