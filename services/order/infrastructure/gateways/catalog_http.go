package gateways

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	domain "github.com/ghuser/orderdesk/services/order/domain"
	"github.com/ghuser/orderdesk/services/order/domain/gateways"
)

// CatalogGateway implements gateways.ProductCatalog against the catalog
// service's REST API.
type CatalogGateway struct {
	baseURL string
	client  *http.Client
}

// NewCatalogGateway returns a CatalogGateway for the given base URL.
func NewCatalogGateway(baseURL string, client *http.Client) *CatalogGateway {
	return &CatalogGateway{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type productResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// GetProduct fetches a product's name, price and stock on hand.
// Returns ErrProductNotFound when the catalog answers 404.
func (g *CatalogGateway) GetProduct(ctx context.Context, productID string) (*gateways.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/products/%s", g.baseURL, productID), nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog: %w", errUpstream, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	case resp.StatusCode != http.StatusOK:
		return nil, unexpectedStatus("catalog", resp.StatusCode)
	}

	var pr productResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("%w: decode catalog response: %w", errUpstream, err)
	}
	return &gateways.Product{
		ID:    pr.ID,
		Name:  pr.Name,
		Price: pr.Price,
		Stock: pr.Stock,
	}, nil
}

// ReserveStock reserves qty units of the product on the catalog side.
// Returns ErrInsufficientStock when the catalog answers 409.
func (g *CatalogGateway) ReserveStock(ctx context.Context, productID string, qty int) error {
	body, err := json.Marshal(map[string]int{"qty": qty})
	if err != nil {
		return fmt.Errorf("marshal reserve request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/products/%s/reserve", g.baseURL, productID), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build reserve request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: catalog: %w", errUpstream, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, productID)
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return unexpectedStatus("catalog", resp.StatusCode)
	}
	return nil
}
