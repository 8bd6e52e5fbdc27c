package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/orderdesk/services/order/domain/models"
)

func decodeOrders(t *testing.T, w *httptest.ResponseRecorder) []struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
} {
	t.Helper()
	var out []struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response: %v: %s", err, w.Body.String())
	}
	return out
}

func TestGetOrders_All(t *testing.T) {
	f := newFixture()
	f.repo.seed(models.Order{ID: 1, Status: models.StatusReceived, Active: true})
	f.repo.seed(models.Order{ID: 2, Status: models.StatusReady, Active: true})

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := decodeOrders(t, w); len(got) != 2 {
		t.Errorf("expected 2 orders, got %d", len(got))
	}
}

func TestGetOrders_StatusFilter(t *testing.T) {
	f := newFixture()
	f.repo.seed(models.Order{ID: 1, Status: models.StatusReceived, Active: true})
	f.repo.seed(models.Order{ID: 2, Status: models.StatusReady, Active: true})

	req := httptest.NewRequest(http.MethodGet, "/orders?status=Pronto", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	got := decodeOrders(t, w)
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("expected only order 2, got %+v", got)
	}
}

func TestGetOrders_UnknownStatusLabel(t *testing.T) {
	f := newFixture()

	req := httptest.NewRequest(http.MethodGet, "/orders?status=Shipped", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetActiveOrders_QueueOrder(t *testing.T) {
	f := newFixture()
	f.repo.seed(models.Order{ID: 1, Status: models.StatusReceived, Active: true})
	f.repo.seed(models.Order{ID: 2, Status: models.StatusReady, Active: true})
	f.repo.seed(models.Order{ID: 3, Status: models.StatusInProgress, Active: true})
	f.repo.seed(models.Order{ID: 4, Status: models.StatusCompleted, Active: true})

	req := httptest.NewRequest(http.MethodGet, "/orders/active", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	got := decodeOrders(t, w)
	wantIDs := []int64{2, 3, 1}
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d orders, got %d", len(wantIDs), len(got))
	}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Errorf("position %d: expected order %d, got %d", i, want, got[i].ID)
		}
	}
}

func TestGetOrderByID(t *testing.T) {
	f := newFixture()
	f.repo.seed(models.Order{ID: 7, Status: models.StatusReceived, Amount: 12.5, Active: true})

	req := httptest.NewRequest(http.MethodGet, "/orders/7", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		ID     int64   `json:"id"`
		Amount float64 `json:"amount"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp) //nolint:errcheck
	if resp.ID != 7 || resp.Amount != 12.5 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestGetOrderByID_NotFound(t *testing.T) {
	f := newFixture()

	req := httptest.NewRequest(http.MethodGet, "/orders/404", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetOrderByID_BadID(t *testing.T) {
	f := newFixture()

	req := httptest.NewRequest(http.MethodGet, "/orders/not-a-number", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetOrdersByClient(t *testing.T) {
	f := newFixture()
	clientID := int64(7)
	f.repo.seed(models.Order{ID: 1, ClientID: &clientID, Status: models.StatusReceived, Active: true})
	f.repo.seed(models.Order{ID: 2, Status: models.StatusReceived, Active: true})

	req := httptest.NewRequest(http.MethodGet, "/orders/client/7", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	got := decodeOrders(t, w)
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("expected only order 1, got %+v", got)
	}
}
