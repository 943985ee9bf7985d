package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType classifies money movement on a case.
type PaymentType string

const (
	PaymentDisburse   PaymentType = "DISBURSE"
	PaymentRefund     PaymentType = "REFUND"
	PaymentAdditional PaymentType = "ADDITIONAL"
)

func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentDisburse, PaymentRefund, PaymentAdditional:
		return true
	}
	return false
}

// IsAdjustment reports whether the payment settles a variance after disbursement.
func (t PaymentType) IsAdjustment() bool {
	return t == PaymentRefund || t == PaymentAdditional
}

// Payment records a disbursement, refund or additional payment.
type Payment struct {
	PaymentID   string          `json:"paymentId"`
	CaseID      string          `json:"caseId"`
	Type        PaymentType     `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	PaidBy      string          `json:"paidBy"`
	PaidAt      time.Time       `json:"paidAt"`
	ReferenceNo *string         `json:"referenceNo,omitempty"`
}

// Variance compares what was requested with what was actually spent.
type Variance struct {
	CaseID          string           `json:"caseId"`
	RequestedAmount decimal.Decimal  `json:"requestedAmount"`
	SettledAmount   *decimal.Decimal `json:"settledAmount,omitempty"`
	// Difference is settled minus requested. Negative means money is owed back.
	Difference     decimal.Decimal `json:"difference"`
	ExpectedType   *PaymentType    `json:"expectedType,omitempty"`
	AdjustedAmount decimal.Decimal `json:"adjustedAmount"`
	Outstanding    decimal.Decimal `json:"outstanding"`
	Adjustments    []Payment       `json:"adjustments"`
}

// ComputeVariance derives the settlement position of a case from its
// settled amount and recorded adjustments.
func ComputeVariance(c Case, payments []Payment) Variance {
	v := Variance{
		CaseID:          c.CaseID,
		RequestedAmount: c.RequestedAmount,
		SettledAmount:   c.SettledAmount,
		Difference:      decimal.Zero,
		AdjustedAmount:  decimal.Zero,
		Outstanding:     decimal.Zero,
		Adjustments:     []Payment{},
	}
	for _, p := range payments {
		if p.Type.IsAdjustment() {
			v.Adjustments = append(v.Adjustments, p)
		}
	}
	if c.SettledAmount == nil {
		return v
	}

	v.Difference = c.SettledAmount.Sub(c.RequestedAmount)
	var expected PaymentType
	switch v.Difference.Sign() {
	case -1:
		expected = PaymentRefund
	case 1:
		expected = PaymentAdditional
	default:
		return v
	}
	v.ExpectedType = &expected
	for _, p := range v.Adjustments {
		if p.Type == expected {
			v.AdjustedAmount = v.AdjustedAmount.Add(p.Amount)
		}
	}
	v.Outstanding = v.Difference.Abs().Sub(v.AdjustedAmount)
	return v
}
