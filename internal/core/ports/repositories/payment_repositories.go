package repositories

import (
	"context"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
)

type PaymentReader interface {
	// ListPaymentsByCase returns payments oldest first.
	ListPaymentsByCase(ctx context.Context, caseID string) ([]domain.Payment, error)
}

type PaymentWriter interface {
	SavePayment(ctx context.Context, payment domain.Payment) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
