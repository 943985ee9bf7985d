package services

import (
	"context"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
)

// JournalVoucherSvc aggregates cases into journal vouchers.
type JournalVoucherSvc interface {
	// CreateJV sums the requested amounts of the main and linked cases into
	// one JV document, writes one line item per case and closes every case.
	// Either all of it commits or none of it does.
	CreateJV(ctx context.Context, req dto.CreateJVRequest, actor domain.Actor) (*domain.Document, []domain.JVLineItem, error)
}

// DocumentReaderSvc defines read operations for vouchers. Access follows the
// visibility of the owning case.
type DocumentReaderSvc interface {
	GetDocumentByID(ctx context.Context, documentID string, actor domain.Actor) (*domain.Document, []domain.JVLineItem, error)
	ListCaseDocuments(ctx context.Context, caseID string, actor domain.Actor) ([]domain.Document, error)

	// GetArtifactURL returns a signed download URL for the rendered voucher.
	GetArtifactURL(ctx context.Context, documentID string, actor domain.Actor) (*domain.SignedURL, error)
}

// DocumentSvcFacade combines all document-related service interfaces
type DocumentSvcFacade interface {
	DocumentReaderSvc
}
