package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CaseStatus is the lifecycle position of a case.
type CaseStatus string

const (
	CaseStatusDraft     CaseStatus = "DRAFT"
	CaseStatusSubmitted CaseStatus = "SUBMITTED"
	CaseStatusApproved  CaseStatus = "APPROVED"
	CaseStatusPaid      CaseStatus = "PAID"
	CaseStatusClosed    CaseStatus = "CLOSED"
	CaseStatusRejected  CaseStatus = "REJECTED"
	CaseStatusCancelled CaseStatus = "CANCELLED"
)

// IsValid checks if the status is one of the defined constants.
func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseStatusDraft, CaseStatusSubmitted, CaseStatusApproved, CaseStatusPaid,
		CaseStatusClosed, CaseStatusRejected, CaseStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s CaseStatus) IsTerminal() bool {
	switch s {
	case CaseStatusClosed, CaseStatusRejected, CaseStatusCancelled:
		return true
	}
	return false
}

// FundingType is the budget source of a case.
type FundingType string

const (
	FundingOperating FundingType = "OPERATING"
	FundingGovBudget FundingType = "GOV_BUDGET"
)

func (f FundingType) IsValid() bool {
	return f == FundingOperating || f == FundingGovBudget
}

// Case is a single requester-initiated spending or revenue event.
// CategoryID and AccountCode are frozen at creation.
type Case struct {
	CaseID            string           `json:"caseId"`
	CaseNo            string           `json:"caseNo"`
	CategoryID        string           `json:"categoryId"`
	AccountCode       string           `json:"accountCode"`
	RequesterID       string           `json:"requesterId"`
	DepartmentID      *string          `json:"departmentId,omitempty"`
	CostCenterID      *string          `json:"costCenterId,omitempty"`
	FundingType       FundingType      `json:"fundingType"`
	RequestedAmount   decimal.Decimal  `json:"requestedAmount"`
	Purpose           string           `json:"purpose"`
	DepositAccountID  *string          `json:"depositAccountId,omitempty"`
	IsReceiptUploaded bool             `json:"isReceiptUploaded"`
	SettledAmount     *decimal.Decimal `json:"settledAmount,omitempty"`
	Status            CaseStatus       `json:"status"`
	RejectReason      *string          `json:"rejectReason,omitempty"`
	RejectedAt        *time.Time       `json:"rejectedAt,omitempty"`
	AuditFields
}

// IsVisibleTo applies the read guard: privileged roles see every case,
// everyone else only their own.
func (c Case) IsVisibleTo(actor Actor) bool {
	return Authorize(actor, ActionViewCase, &c) == nil
}

// CaseCursor marks the last row of a page ordered by created_at desc, id desc.
type CaseCursor struct {
	CreatedAt time.Time
	CaseID    string
}

// CaseFilter narrows case listings.
type CaseFilter struct {
	Status      *CaseStatus
	RequesterID string // empty means all requesters
	Before      *CaseCursor
	Limit       int
}
