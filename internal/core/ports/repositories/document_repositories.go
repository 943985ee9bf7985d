package repositories

import (
	"context"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
)

// DocumentReader defines read operations for voucher data
type DocumentReader interface {
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// ExistsDocumentForCase reports whether the case already owns a document of docType.
	ExistsDocumentForCase(ctx context.Context, caseID string, docType domain.DocumentType) (bool, error)

	// ListDocumentsByCase returns the documents owned by a case, oldest first.
	ListDocumentsByCase(ctx context.Context, caseID string) ([]domain.Document, error)

	// ListJVLineItems returns the line items of a JV document.
	ListJVLineItems(ctx context.Context, jvDocumentID string) ([]domain.JVLineItem, error)
}

// DocumentWriter defines write operations for voucher data. Documents are
// immutable once saved.
type DocumentWriter interface {
	SaveDocument(ctx context.Context, document domain.Document) error
	SaveJVLineItems(ctx context.Context, items []domain.JVLineItem) error
}

// DocumentRepositoryFacade combines all document-related repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
