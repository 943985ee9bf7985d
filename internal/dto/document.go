package dto

import (
	"time"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultJVDescription is used when a JV request carries no description.
const DefaultJVDescription = "Adjustment / Closing Entry"

// CreateJVRequest merges the main case and the linked cases into one JV.
type CreateJVRequest struct {
	MainCaseID    string   `json:"mainCaseId" binding:"required"`
	LinkedCaseIDs []string `json:"linkedCaseIds"`
	Description   string   `json:"description" binding:"max=500"`
}

// DocumentResponse defines the data returned for a voucher.
type DocumentResponse struct {
	DocumentID  string              `json:"documentId"`
	CaseID      string              `json:"caseId"`
	DocType     domain.DocumentType `json:"docType"`
	DocNo       string              `json:"docNo"`
	Amount      decimal.Decimal     `json:"amount"`
	ArtifactURI string              `json:"artifactUri"`
	Description string              `json:"description,omitempty"`
	CreatedBy   string              `json:"createdBy"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// JVLineItemResponse is one case attributed to a JV.
type JVLineItemResponse struct {
	LineItemID string          `json:"lineItemId"`
	RefCaseID  string          `json:"refCaseId"`
	Amount     decimal.Decimal `json:"amount"`
}

// DocumentDetailResponse is a voucher with its line items (JV only).
type DocumentDetailResponse struct {
	DocumentResponse
	LineItems []JVLineItemResponse `json:"lineItems,omitempty"`
}

// ToDocumentResponse converts a domain.Document to DocumentResponse DTO
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:  d.DocumentID,
		CaseID:      d.CaseID,
		DocType:     d.DocType,
		DocNo:       d.DocNo,
		Amount:      d.Amount,
		ArtifactURI: d.ArtifactURI,
		Description: d.Description,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
	}
}

// ToListDocumentResponse converts a slice of domain.Document to a slice of DocumentResponse DTOs
func ToListDocumentResponse(docs []domain.Document) []DocumentResponse {
	res := make([]DocumentResponse, len(docs))
	for i := range docs {
		res[i] = ToDocumentResponse(&docs[i])
	}
	return res
}

// ToDocumentDetailResponse attaches line items to a document response.
func ToDocumentDetailResponse(d *domain.Document, items []domain.JVLineItem) DocumentDetailResponse {
	res := DocumentDetailResponse{DocumentResponse: ToDocumentResponse(d)}
	if len(items) > 0 {
		res.LineItems = make([]JVLineItemResponse, len(items))
		for i, item := range items {
			res.LineItems[i] = JVLineItemResponse{
				LineItemID: item.LineItemID,
				RefCaseID:  item.RefCaseID,
				Amount:     item.Amount,
			}
		}
	}
	return res
}
