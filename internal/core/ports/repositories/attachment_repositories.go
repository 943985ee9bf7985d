package repositories

import (
	"context"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
)

type AttachmentReader interface {
	FindAttachmentByID(ctx context.Context, attachmentID string) (*domain.Attachment, error)

	// FindLatestAttachment returns the most recently uploaded attachment of
	// type for a case.
	FindLatestAttachment(ctx context.Context, caseID string, attachmentType domain.AttachmentType) (*domain.Attachment, error)
}

type AttachmentWriter interface {
	SaveAttachment(ctx context.Context, attachment domain.Attachment) error
}

// AttachmentRepositoryFacade combines all attachment-related repository interfaces
type AttachmentRepositoryFacade interface {
	AttachmentReader
	AttachmentWriter
}
