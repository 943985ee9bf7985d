package services

import (
	"context"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
)

// AttachmentSvcFacade issues signed URLs for case attachments.
type AttachmentSvcFacade interface {
	// CreateUploadURL records the attachment and returns a signed PUT URL.
	CreateUploadURL(ctx context.Context, caseID string, req dto.UploadURLRequest, actor domain.Actor) (*domain.Attachment, *domain.SignedURL, error)

	// CreateDownloadURL returns a signed GET URL for an attachment chosen by
	// id, or the latest of a type when no id is given.
	CreateDownloadURL(ctx context.Context, caseID string, params dto.DownloadURLParams, actor domain.Actor) (*domain.Attachment, *domain.SignedURL, error)
}
