package models

import "fmt"

// PaymentStatus is the payment provider's state for an order, as reported by
// the payment service.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentFailed   PaymentStatus = "Failed"
	PaymentCanceled PaymentStatus = "Canceled"
)

// ParsePaymentStatus maps a payment service wire value to a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentCanceled:
		return PaymentStatus(s), nil
	}
	return "", fmt.Errorf("unknown payment status %q", s)
}

// Declined reports whether the payment can no longer succeed. An order whose
// payment is declined is moved to Canceled instead of entering preparation.
func (s PaymentStatus) Declined() bool {
	return s == PaymentFailed || s == PaymentCanceled
}
