package gateways

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	domain "github.com/ghuser/orderdesk/services/order/domain"
)

// CustomerGateway implements gateways.CustomerVerifier against the customer
// service's REST API.
type CustomerGateway struct {
	baseURL string
	client  *http.Client
}

// NewCustomerGateway returns a CustomerGateway for the given base URL.
func NewCustomerGateway(baseURL string, client *http.Client) *CustomerGateway {
	return &CustomerGateway{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	ID int64 `json:"id"`
}

// Verify resolves the bearer credential to a customer id.
// A 400/401 answer means the credential itself is bad (malformed or expired);
// any other non-200 answer means the customer is unknown or inactive. Both
// resolve to ErrInvalidCredential with distinct messages.
func (g *CustomerGateway) Verify(ctx context.Context, credential string) (int64, error) {
	body, err := json.Marshal(verifyRequest{Token: credential})
	if err != nil {
		return 0, fmt.Errorf("marshal verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/api/auth", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: customer: %w", errUpstream, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusOK:
		var vr verifyResponse
		if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
			return 0, fmt.Errorf("%w: decode verify response: %w", errUpstream, err)
		}
		return vr.ID, nil
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized:
		return 0, fmt.Errorf("%w: token rejected", domain.ErrInvalidCredential)
	default:
		return 0, fmt.Errorf("%w: customer not found or inactive", domain.ErrInvalidCredential)
	}
}
