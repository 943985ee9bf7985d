package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType is the voucher kind, also used as the number prefix.
type DocumentType string

const (
	DocumentPV DocumentType = "PV" // payment voucher
	DocumentRV DocumentType = "RV" // receive voucher
	DocumentJV DocumentType = "JV" // journal voucher
)

func (t DocumentType) IsValid() bool {
	return t == DocumentPV || t == DocumentRV || t == DocumentJV
}

// VoucherTypeFor maps a category type to the single-case voucher it produces.
func VoucherTypeFor(categoryType CategoryType) (DocumentType, error) {
	switch categoryType {
	case CategoryExpense:
		return DocumentPV, nil
	case CategoryRevenue, CategoryAsset:
		return DocumentRV, nil
	}
	return "", fmt.Errorf("no voucher type for category type %q", categoryType)
}

// PeriodKey returns the YYMM numbering period of t in UTC.
func PeriodKey(t time.Time) string {
	return t.UTC().Format("0601")
}

// FormatDocumentNumber renders {TYPE}-{YYMM}-{NNNN}. Numbers past 9999 grow wider.
func FormatDocumentNumber(prefix DocumentType, periodKey string, n int64) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, periodKey, n)
}

// Document is an immutable voucher. JV documents aggregate cases through
// line items; PV and RV documents belong to exactly one case.
type Document struct {
	DocumentID  string          `json:"documentId"`
	CaseID      string          `json:"caseId"`
	DocType     DocumentType    `json:"docType"`
	DocNo       string          `json:"docNo"`
	Amount      decimal.Decimal `json:"amount"`
	ArtifactURI string          `json:"artifactUri"`
	Description string          `json:"description,omitempty"`
	CreatedBy   string          `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// JVLineItem attributes part of a JV to one referenced case.
type JVLineItem struct {
	LineItemID   string          `json:"lineItemId"`
	JVDocumentID string          `json:"jvDocumentId"`
	RefCaseID    string          `json:"refCaseId"`
	Amount       decimal.Decimal `json:"amount"`
}

// SumLineItems totals line item amounts.
func SumLineItems(items []JVLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}

// VoucherData is what a renderer needs to produce a voucher artifact.
type VoucherData struct {
	Document    Document
	Case        Case
	Category    Category
	LineItems   []JVLineItem
	CompanyName string
}
