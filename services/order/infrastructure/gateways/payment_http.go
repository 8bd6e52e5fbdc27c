package gateways

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ghuser/orderdesk/services/order/domain/models"
)

// PaymentGateway implements gateways.PaymentGateway against the payment
// service's REST API.
type PaymentGateway struct {
	baseURL string
	client  *http.Client
}

// NewPaymentGateway returns a PaymentGateway for the given base URL.
func NewPaymentGateway(baseURL string, client *http.Client) *PaymentGateway {
	return &PaymentGateway{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type createPaymentRequest struct {
	OrderID int64   `json:"order_id"`
	Amount  float64 `json:"amount"`
}

type createPaymentResponse struct {
	QRData string `json:"qr_data"`
}

type paymentStatusResponse struct {
	Status string `json:"status"`
}

// CreatePayment registers a payment for the order and returns the scannable
// payment reference. The initial state is always Pending; the provider flips
// it asynchronously once the customer pays.
func (g *PaymentGateway) CreatePayment(ctx context.Context, orderID int64, amount float64) (string, models.PaymentStatus, error) {
	body, err := json.Marshal(createPaymentRequest{OrderID: orderID, Amount: amount})
	if err != nil {
		return "", "", fmt.Errorf("marshal payment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/api/payment", bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("build payment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("%w: payment: %w", errUpstream, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", "", unexpectedStatus("payment", resp.StatusCode)
	}

	var cr createPaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", "", fmt.Errorf("%w: decode payment response: %w", errUpstream, err)
	}
	return cr.QRData, models.PaymentPending, nil
}

// GetStatus returns the current payment state for the order.
func (g *PaymentGateway) GetStatus(ctx context.Context, orderID int64) (models.PaymentStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/payment/%d", g.baseURL, orderID), nil)
	if err != nil {
		return "", fmt.Errorf("build payment status request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: payment: %w", errUpstream, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", unexpectedStatus("payment", resp.StatusCode)
	}

	var sr paymentStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("%w: decode payment status: %w", errUpstream, err)
	}
	status, err := models.ParsePaymentStatus(sr.Status)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errUpstream, err)
	}
	return status, nil
}
