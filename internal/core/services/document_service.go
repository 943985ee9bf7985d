package services

import (
	"context"
	"net/http"
	"time"

	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portsrepo "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/repositories"
	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
)

type documentService struct {
	BaseService
	uow       portsrepo.UnitOfWork
	store     portssvc.ObjectStore
	signedTTL time.Duration
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(uow portsrepo.UnitOfWork, store portssvc.ObjectStore, signedTTL time.Duration, options ...ServiceOption) portssvc.DocumentSvcFacade {
	return &documentService{
		BaseService: newBaseService(options...),
		uow:         uow,
		store:       store,
		signedTTL:   signedTTL,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// findVisibleDocument loads a document and the case that owns it.
func (s *documentService) findVisibleDocument(ctx context.Context, repos portsrepo.Repositories, documentID string, actor domain.Actor) (*domain.Document, error) {
	doc, err := repos.Documents.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	c, err := repos.Cases.FindCaseByID(ctx, doc.CaseID)
	if err != nil {
		return nil, err
	}
	if err := s.requireVisible(c, actor); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) GetDocumentByID(ctx context.Context, documentID string, actor domain.Actor) (*domain.Document, []domain.JVLineItem, error) {
	var (
		doc   *domain.Document
		items []domain.JVLineItem
	)
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		doc, err = s.findVisibleDocument(ctx, repos, documentID, actor)
		if err != nil {
			return err
		}
		if doc.DocType == domain.DocumentJV {
			items, err = repos.Documents.ListJVLineItems(ctx, doc.DocumentID)
		}
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return doc, items, nil
}

func (s *documentService) ListCaseDocuments(ctx context.Context, caseID string, actor domain.Actor) ([]domain.Document, error) {
	var docs []domain.Document
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		c, err := repos.Cases.FindCaseByID(ctx, caseID)
		if err != nil {
			return err
		}
		if err := s.requireVisible(c, actor); err != nil {
			return err
		}
		docs, err = repos.Documents.ListDocumentsByCase(ctx, caseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// GetArtifactURL signs a download link to the rendered voucher. The link is
// issued even if rendering has not finished yet.
func (s *documentService) GetArtifactURL(ctx context.Context, documentID string, actor domain.Actor) (*domain.SignedURL, error) {
	var doc *domain.Document
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		doc, err = s.findVisibleDocument(ctx, repos, documentID, actor)
		return err
	})
	if err != nil {
		return nil, err
	}
	if doc.ArtifactURI == "" || s.store == nil {
		return nil, apperrors.NewNotFoundError("document has no artifact")
	}

	signed, err := s.store.SignedURL(ctx, doc.ArtifactURI, http.MethodGet, "", s.signedTTL)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign artifact URL")
		return nil, apperrors.NewInternalError("failed to sign artifact URL", err)
	}
	return signed, nil
}
