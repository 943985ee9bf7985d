package services

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portsrepo "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/repositories"
	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
)

type attachmentService struct {
	BaseService
	uow       portsrepo.UnitOfWork
	store     portssvc.ObjectStore
	audit     *AuditRecorder
	signedTTL time.Duration
}

// NewAttachmentService creates a new AttachmentService.
func NewAttachmentService(uow portsrepo.UnitOfWork, store portssvc.ObjectStore, audit *AuditRecorder, signedTTL time.Duration, options ...ServiceOption) portssvc.AttachmentSvcFacade {
	return &attachmentService{
		BaseService: newBaseService(options...),
		uow:         uow,
		store:       store,
		audit:       audit,
		signedTTL:   signedTTL,
	}
}

var _ portssvc.AttachmentSvcFacade = (*attachmentService)(nil)

// CreateUploadURL records the attachment and signs a PUT URL for it. The
// URL is signed inside the unit of work, so a signing failure leaves no row.
func (s *attachmentService) CreateUploadURL(ctx context.Context, caseID string, req dto.UploadURLRequest, actor domain.Actor) (*domain.Attachment, *domain.SignedURL, error) {
	if !req.Type.IsValid() {
		return nil, nil, apperrors.NewValidationError(fmt.Sprintf("unknown attachment type %s", req.Type))
	}
	filename := path.Base(strings.ReplaceAll(strings.TrimSpace(req.Filename), "\\", "/"))
	if filename == "" || filename == "." || filename == "/" {
		return nil, nil, apperrors.NewValidationError("filename is required")
	}
	contentType := strings.TrimSpace(req.ContentType)
	if contentType == "" {
		return nil, nil, apperrors.NewValidationError("contentType is required")
	}

	var (
		attachment domain.Attachment
		signed     *domain.SignedURL
	)
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		c, err := repos.Cases.FindCaseByID(ctx, caseID)
		if err != nil {
			return err
		}
		if err := s.requireVisible(c, actor); err != nil {
			return err
		}
		if err := s.Authorize(ctx, actor, domain.ActionUploadAttachment, c); err != nil {
			return err
		}

		attachmentID := uuid.NewString()
		objectName := fmt.Sprintf("cases/%s/attachments/%s/%s", c.CaseID, attachmentID, filename)
		attachment = domain.Attachment{
			AttachmentID: attachmentID,
			CaseID:       c.CaseID,
			Type:         req.Type,
			ObjectURI:    s.store.ObjectURI(objectName),
			Filename:     filename,
			ContentType:  contentType,
			UploadedBy:   actor.UserID,
			UploadedAt:   s.Now(),
		}
		if err := repos.Attachments.SaveAttachment(ctx, attachment); err != nil {
			return err
		}
		if err := s.audit.Record(ctx, repos.Audit, domain.EntityAttachment, attachmentID, domain.AuditUploadURLCreated, actor, map[string]any{
			"caseId":   c.CaseID,
			"type":     string(attachment.Type),
			"filename": filename,
		}); err != nil {
			return err
		}

		signed, err = s.store.SignedURL(ctx, attachment.ObjectURI, http.MethodPut, contentType, s.signedTTL)
		if err != nil {
			return apperrors.NewInternalError("failed to sign upload URL", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &attachment, signed, nil
}

// CreateDownloadURL signs a GET URL for the attachment named by id, or the
// latest attachment of the requested type.
func (s *attachmentService) CreateDownloadURL(ctx context.Context, caseID string, params dto.DownloadURLParams, actor domain.Actor) (*domain.Attachment, *domain.SignedURL, error) {
	if params.AttachmentID == "" && params.Type == "" {
		return nil, nil, apperrors.NewValidationError("attachmentId or type is required")
	}

	var (
		attachment *domain.Attachment
		signed     *domain.SignedURL
	)
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		c, err := repos.Cases.FindCaseByID(ctx, caseID)
		if err != nil {
			return err
		}
		if err := s.requireVisible(c, actor); err != nil {
			return err
		}

		if params.AttachmentID != "" {
			attachment, err = repos.Attachments.FindAttachmentByID(ctx, params.AttachmentID)
			if err != nil {
				return err
			}
			if attachment.CaseID != c.CaseID {
				return apperrors.NewNotFoundError("attachment not found for this case")
			}
		} else {
			t := domain.AttachmentType(params.Type)
			if !t.IsValid() {
				return apperrors.NewValidationError(fmt.Sprintf("unknown attachment type %s", params.Type))
			}
			attachment, err = repos.Attachments.FindLatestAttachment(ctx, c.CaseID, t)
			if err != nil {
				return err
			}
		}

		if err := s.audit.Record(ctx, repos.Audit, domain.EntityAttachment, attachment.AttachmentID, domain.AuditDownloadURLCreated, actor, map[string]any{
			"caseId": c.CaseID,
		}); err != nil {
			return err
		}

		signed, err = s.store.SignedURL(ctx, attachment.ObjectURI, http.MethodGet, "", s.signedTTL)
		if err != nil {
			return apperrors.NewInternalError("failed to sign download URL", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return attachment, signed, nil
}
