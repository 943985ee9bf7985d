package mapping

import (
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	"github.com/chonlathan-cloud/ProjectPRT/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:   d.PaymentID,
		CaseID:      d.CaseID,
		Type:        string(d.Type),
		Amount:      d.Amount,
		PaidBy:      d.PaidBy,
		PaidAt:      d.PaidAt,
		ReferenceNo: d.ReferenceNo,
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to a slice of domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = domain.Payment{
			PaymentID:   m.PaymentID,
			CaseID:      m.CaseID,
			Type:        domain.PaymentType(m.Type),
			Amount:      m.Amount,
			PaidBy:      m.PaidBy,
			PaidAt:      m.PaidAt,
			ReferenceNo: m.ReferenceNo,
		}
	}
	return ds
}
