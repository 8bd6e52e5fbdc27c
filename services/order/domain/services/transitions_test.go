package services

import (
	"errors"
	"strings"
	"testing"

	domain "github.com/ghuser/orderdesk/services/order/domain"
	"github.com/ghuser/orderdesk/services/order/domain/models"
)

func TestValidateTransition(t *testing.T) {
	all := []models.OrderStatus{
		models.StatusReceived,
		models.StatusInProgress,
		models.StatusReady,
		models.StatusCompleted,
		models.StatusCanceled,
	}

	allowed := map[[2]models.OrderStatus]bool{
		{models.StatusReceived, models.StatusInProgress}: true,
		{models.StatusInProgress, models.StatusReady}:    true,
		{models.StatusReady, models.StatusCompleted}:     true,
		{models.StatusCanceled, models.StatusCanceled}:   true,
	}

	for _, current := range all {
		for _, requested := range all {
			name := current.String() + " to " + requested.String()
			t.Run(name, func(t *testing.T) {
				err := ValidateTransition(current, requested)
				if allowed[[2]models.OrderStatus{current, requested}] {
					if err != nil {
						t.Fatalf("expected transition to be allowed, got %v", err)
					}
					return
				}
				if !errors.Is(err, domain.ErrInvalidTransition) {
					t.Fatalf("expected ErrInvalidTransition, got %v", err)
				}
			})
		}
	}
}

func TestValidateTransition_errorNamesBothStatuses(t *testing.T) {
	err := ValidateTransition(models.StatusReceived, models.StatusCompleted)
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, models.StatusReceived.String()) {
		t.Errorf("error message missing current status: %q", msg)
	}
	if !strings.Contains(msg, models.StatusCompleted.String()) {
		t.Errorf("error message missing requested status: %q", msg)
	}
}

func TestRequiresPaymentCheck(t *testing.T) {
	tests := []struct {
		name      string
		current   models.OrderStatus
		requested models.OrderStatus
		want      bool
	}{
		{"entering preparation", models.StatusReceived, models.StatusInProgress, true},
		{"preparation to ready", models.StatusInProgress, models.StatusReady, false},
		{"ready to completed", models.StatusReady, models.StatusCompleted, false},
		{"canceled self", models.StatusCanceled, models.StatusCanceled, false},
		{"received to completed", models.StatusReceived, models.StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RequiresPaymentCheck(tt.current, tt.requested); got != tt.want {
				t.Errorf("RequiresPaymentCheck(%v, %v) = %v, want %v", tt.current, tt.requested, got, tt.want)
			}
		})
	}
}
