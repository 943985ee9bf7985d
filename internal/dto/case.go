package dto

import (
	"time"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCaseRequest defines the data needed to open a new case.
type CreateCaseRequest struct {
	CategoryID       string             `json:"categoryId" binding:"required"`
	RequestedAmount  decimal.Decimal    `json:"requestedAmount" binding:"required,money"`
	Purpose          string             `json:"purpose" binding:"required"`
	DepartmentID     *string            `json:"departmentId"`
	CostCenterID     *string            `json:"costCenterId"`
	FundingType      domain.FundingType `json:"fundingType" binding:"omitempty,oneof=OPERATING GOV_BUDGET"`
	DepositAccountID *string            `json:"depositAccountId"` // required for REVENUE and ASSET categories
}

// RejectCaseRequest carries the reason shown to the requester.
type RejectCaseRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// PayCaseRequest optionally records the disbursement that was made.
type PayCaseRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty,money"`
	ReferenceNo *string          `json:"referenceNo"`
}

// UploadReceiptRequest optionally records the amount actually spent.
type UploadReceiptRequest struct {
	SettledAmount *decimal.Decimal `json:"settledAmount"`
}

// ListCasesParams defines query parameters for listing cases.
type ListCasesParams struct {
	Status    string `form:"status" binding:"omitempty,oneof=DRAFT SUBMITTED APPROVED PAID CLOSED REJECTED CANCELLED"`
	Limit     int    `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// CaseResponse defines the data returned for a case.
type CaseResponse struct {
	CaseID            string             `json:"caseId"`
	CaseNo            string             `json:"caseNo"`
	CategoryID        string             `json:"categoryId"`
	AccountCode       string             `json:"accountCode"`
	RequesterID       string             `json:"requesterId"`
	DepartmentID      *string            `json:"departmentId,omitempty"`
	CostCenterID      *string            `json:"costCenterId,omitempty"`
	FundingType       domain.FundingType `json:"fundingType"`
	RequestedAmount   decimal.Decimal    `json:"requestedAmount"`
	Purpose           string             `json:"purpose"`
	DepositAccountID  *string            `json:"depositAccountId,omitempty"`
	IsReceiptUploaded bool               `json:"isReceiptUploaded"`
	SettledAmount     *decimal.Decimal   `json:"settledAmount,omitempty"`
	Status            domain.CaseStatus  `json:"status"`
	RejectReason      *string            `json:"rejectReason,omitempty"`
	RejectedAt        *time.Time         `json:"rejectedAt,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
	CreatedBy         string             `json:"createdBy"`
	LastUpdatedAt     time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy     string             `json:"lastUpdatedBy"`
}

// ApproveCaseResponse returns the approved case with the voucher it produced.
type ApproveCaseResponse struct {
	Case     CaseResponse     `json:"case"`
	Document DocumentResponse `json:"document"`
}

// ListCasesResponse wraps a page of cases.
type ListCasesResponse struct {
	Cases     []CaseResponse `json:"cases"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToCaseResponse converts a domain.Case to CaseResponse DTO
func ToCaseResponse(c *domain.Case) CaseResponse {
	return CaseResponse{
		CaseID:            c.CaseID,
		CaseNo:            c.CaseNo,
		CategoryID:        c.CategoryID,
		AccountCode:       c.AccountCode,
		RequesterID:       c.RequesterID,
		DepartmentID:      c.DepartmentID,
		CostCenterID:      c.CostCenterID,
		FundingType:       c.FundingType,
		RequestedAmount:   c.RequestedAmount,
		Purpose:           c.Purpose,
		DepositAccountID:  c.DepositAccountID,
		IsReceiptUploaded: c.IsReceiptUploaded,
		SettledAmount:     c.SettledAmount,
		Status:            c.Status,
		RejectReason:      c.RejectReason,
		RejectedAt:        c.RejectedAt,
		CreatedAt:         c.CreatedAt,
		CreatedBy:         c.CreatedBy,
		LastUpdatedAt:     c.LastUpdatedAt,
		LastUpdatedBy:     c.LastUpdatedBy,
	}
}

// ToListCaseResponse converts a slice of domain.Case to a slice of CaseResponse DTOs
func ToListCaseResponse(cases []domain.Case) []CaseResponse {
	res := make([]CaseResponse, len(cases))
	for i := range cases {
		res[i] = ToCaseResponse(&cases[i])
	}
	return res
}
