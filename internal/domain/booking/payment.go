package booking

import (
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return PaymentStatus(s), nil
	}
	return "", httperr.Validation("invalid_payment_status", "Unknown payment status: "+s)
}

func ValidateRefund(p *models.Payment, amount float64) error {
	if amount < 0 || amount > p.Amount {
		return httperr.Validation("invalid_refund_amount", "Refund amount must be between 0 and the paid amount.")
	}
	return nil
}
