package dto

import (
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAdjustmentRequest records a refund or additional payment after settlement.
type CreateAdjustmentRequest struct {
	Type        domain.PaymentType `json:"type" binding:"required,oneof=REFUND ADDITIONAL"`
	Amount      decimal.Decimal    `json:"amount" binding:"required,money"`
	ReferenceNo *string            `json:"referenceNo"`
}
