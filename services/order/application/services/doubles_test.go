package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domain "github.com/ghuser/orderdesk/services/order/domain"
	"github.com/ghuser/orderdesk/services/order/domain/gateways"
	"github.com/ghuser/orderdesk/services/order/domain/models"
)

// memRepo is an in-memory OrderRepository for service tests.
type memRepo struct {
	mu     sync.Mutex
	nextID int64
	orders map[int64]*models.Order

	createErr error
	updateErr error
}

func newMemRepo() *memRepo {
	return &memRepo{orders: make(map[int64]*models.Order)}
}

func (r *memRepo) seed(o models.Order) *models.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = &o
	if o.ID > r.nextID {
		r.nextID = o.ID
	}
	return &o
}

func (r *memRepo) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
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
	var out []*models.Order
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
	var out []*models.Order
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
	var out []*models.Order
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
	if r.updateErr != nil {
		return nil, r.updateErr
	}
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

// fakeCatalog is an in-memory ProductCatalog that records reservations.
type fakeCatalog struct {
	products map[string]gateways.Product
	reserved map[string]int

	reserveErr error
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

func (c *fakeCatalog) GetProduct(_ context.Context, productID string) (*gateways.Product, error) {
	p, ok := c.products[productID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}
	out := p
	return &out, nil
}

func (c *fakeCatalog) ReserveStock(_ context.Context, productID string, qty int) error {
	if c.reserveErr != nil {
		return c.reserveErr
	}
	p := c.products[productID]
	p.Stock -= qty
	c.products[productID] = p
	c.reserved[productID] += qty
	return nil
}

// fakePayments is an in-memory PaymentGateway.
type fakePayments struct {
	reference string
	createErr error

	status    models.PaymentStatus
	statusErr error

	createCalls int
	statusCalls int
	lastOrderID int64
	lastAmount  float64
}

func (p *fakePayments) CreatePayment(_ context.Context, orderID int64, amount float64) (string, models.PaymentStatus, error) {
	p.createCalls++
	p.lastOrderID = orderID
	p.lastAmount = amount
	if p.createErr != nil {
		return "", "", p.createErr
	}
	return p.reference, models.PaymentPending, nil
}

func (p *fakePayments) GetStatus(_ context.Context, orderID int64) (models.PaymentStatus, error) {
	p.statusCalls++
	p.lastOrderID = orderID
	if p.statusErr != nil {
		return "", p.statusErr
	}
	return p.status, nil
}

// fakeCustomer is an in-memory CustomerVerifier.
type fakeCustomer struct {
	clientID int64
	err      error

	lastCredential string
}

func (c *fakeCustomer) Verify(_ context.Context, credential string) (int64, error) {
	c.lastCredential = credential
	if c.err != nil {
		return 0, c.err
	}
	return c.clientID, nil
}

func ptrStatus(s models.OrderStatus) *models.OrderStatus { return &s }

func ptrInt64(v int64) *int64 { return &v }
