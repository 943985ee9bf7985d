package services

import (
	"context"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
)

type PaymentReaderSvc interface {
	ListPayments(ctx context.Context, caseID string, actor domain.Actor) ([]domain.Payment, error)

	// GetVariance compares the settled amount of a case with its requested
	// amount and the adjustments recorded so far.
	GetVariance(ctx context.Context, caseID string, actor domain.Actor) (*domain.Variance, error)
}

type PaymentWriterSvc interface {
	// RecordAdjustment records a refund or additional payment on a PAID or CLOSED case.
	RecordAdjustment(ctx context.Context, caseID string, req dto.CreateAdjustmentRequest, actor domain.Actor) (*domain.Payment, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
