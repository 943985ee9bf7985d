package mapping

import (
	"github.com/shopspring/decimal"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	"github.com/chonlathan-cloud/ProjectPRT/internal/models"
)

// ToModelCase converts a domain Case to a model Case
func ToModelCase(d domain.Case) models.Case {
	m := models.Case{
		CaseID:            d.CaseID,
		CaseNo:            d.CaseNo,
		CategoryID:        d.CategoryID,
		AccountCode:       d.AccountCode,
		RequesterID:       d.RequesterID,
		DepartmentID:      d.DepartmentID,
		CostCenterID:      d.CostCenterID,
		FundingType:       string(d.FundingType),
		RequestedAmount:   d.RequestedAmount,
		Purpose:           d.Purpose,
		DepositAccountID:  d.DepositAccountID,
		IsReceiptUploaded: d.IsReceiptUploaded,
		Status:            string(d.Status),
		RejectReason:      d.RejectReason,
		RejectedAt:        d.RejectedAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
	if d.SettledAmount != nil {
		m.SettledAmount = decimal.NewNullDecimal(*d.SettledAmount)
	}
	return m
}

// ToDomainCase converts a model Case to a domain Case
func ToDomainCase(m models.Case) domain.Case {
	d := domain.Case{
		CaseID:            m.CaseID,
		CaseNo:            m.CaseNo,
		CategoryID:        m.CategoryID,
		AccountCode:       m.AccountCode,
		RequesterID:       m.RequesterID,
		DepartmentID:      m.DepartmentID,
		CostCenterID:      m.CostCenterID,
		FundingType:       domain.FundingType(m.FundingType),
		RequestedAmount:   m.RequestedAmount,
		Purpose:           m.Purpose,
		DepositAccountID:  m.DepositAccountID,
		IsReceiptUploaded: m.IsReceiptUploaded,
		Status:            domain.CaseStatus(m.Status),
		RejectReason:      m.RejectReason,
		RejectedAt:        m.RejectedAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
	if m.SettledAmount.Valid {
		settled := m.SettledAmount.Decimal
		d.SettledAmount = &settled
	}
	return d
}

// ToDomainCaseSlice converts a slice of model Cases to a slice of domain Cases
func ToDomainCaseSlice(ms []models.Case) []domain.Case {
	ds := make([]domain.Case, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCase(m)
	}
	return ds
}
