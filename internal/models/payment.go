package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a row of the payments table.
type Payment struct {
	PaymentID   string          `db:"payment_id"`
	CaseID      string          `db:"case_id"`
	Type        string          `db:"type"`
	Amount      decimal.Decimal `db:"amount"`
	PaidBy      string          `db:"paid_by"`
	PaidAt      time.Time       `db:"paid_at"`
	ReferenceNo *string         `db:"reference_no"`
}
