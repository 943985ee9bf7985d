package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Case is a row of the cases table. Nullable columns are pointers.
type Case struct {
	CaseID            string              `db:"case_id"`
	CaseNo            string              `db:"case_no"`
	CategoryID        string              `db:"category_id"`
	AccountCode       string              `db:"account_code"`
	RequesterID       string              `db:"requester_id"`
	DepartmentID      *string             `db:"department_id"`
	CostCenterID      *string             `db:"cost_center_id"`
	FundingType       string              `db:"funding_type"`
	RequestedAmount   decimal.Decimal     `db:"requested_amount"`
	Purpose           string              `db:"purpose"`
	DepositAccountID  *string             `db:"deposit_account_id"`
	IsReceiptUploaded bool                `db:"is_receipt_uploaded"`
	SettledAmount     decimal.NullDecimal `db:"settled_amount"`
	Status            string              `db:"status"`
	RejectReason      *string             `db:"reject_reason"`
	RejectedAt        *time.Time          `db:"rejected_at"`
	AuditFields
}
