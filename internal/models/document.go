package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document is a row of the documents table.
type Document struct {
	DocumentID  string          `db:"document_id"`
	CaseID      string          `db:"case_id"`
	DocType     string          `db:"doc_type"`
	DocNo       string          `db:"doc_no"`
	Amount      decimal.Decimal `db:"amount"`
	ArtifactURI string          `db:"artifact_uri"`
	Description string          `db:"description"`
	CreatedBy   string          `db:"created_by"`
	CreatedAt   time.Time       `db:"created_at"`
}

// JVLineItem is a row of the jv_line_items table.
type JVLineItem struct {
	LineItemID   string          `db:"line_item_id"`
	JVDocumentID string          `db:"jv_document_id"`
	RefCaseID    string          `db:"ref_case_id"`
	Amount       decimal.Decimal `db:"amount"`
}
