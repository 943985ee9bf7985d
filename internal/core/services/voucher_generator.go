package services

import (
	"context"
	"fmt"
	"time"

	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portsrepo "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/repositories"
	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VoucherGenerator creates numbered voucher documents. It never waits for
// rendering; the artifact URI is known before the artifact exists.
type VoucherGenerator struct {
	allocator *SequenceAllocator
	publisher portssvc.VoucherPublisher
	now       func() time.Time
}

func NewVoucherGenerator(allocator *SequenceAllocator, publisher portssvc.VoucherPublisher, now func() time.Time) *VoucherGenerator {
	if now == nil {
		now = time.Now
	}
	return &VoucherGenerator{allocator: allocator, publisher: publisher, now: now}
}

// GenerateForCase creates the PV (expense) or RV (revenue, asset) of an
// approved case. A case owns at most one voucher of each type.
func (g *VoucherGenerator) GenerateForCase(ctx context.Context, repos portsrepo.Repositories, c domain.Case, category domain.Category, actor domain.Actor) (*domain.Document, error) {
	docType, err := domain.VoucherTypeFor(category.Type)
	if err != nil {
		return nil, apperrors.NewInvalidStateError("", err.Error())
	}

	exists, err := repos.Documents.ExistsDocumentForCase(ctx, c.CaseID, docType)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError(apperrors.CodeVoucherExists,
			fmt.Sprintf("case %s already has a %s document", c.CaseID, docType))
	}

	return g.create(ctx, repos, docType, c.CaseID, c.RequestedAmount, "", actor)
}

// GenerateJV creates a JV document on the main case for the given total.
func (g *VoucherGenerator) GenerateJV(ctx context.Context, repos portsrepo.Repositories, mainCaseID string, total decimal.Decimal, description string, actor domain.Actor) (*domain.Document, error) {
	return g.create(ctx, repos, domain.DocumentJV, mainCaseID, total, description, actor)
}

func (g *VoucherGenerator) create(ctx context.Context, repos portsrepo.Repositories, docType domain.DocumentType, caseID string, amount decimal.Decimal, description string, actor domain.Actor) (*domain.Document, error) {
	docNo, err := g.allocator.Allocate(ctx, repos.Counters, docType)
	if err != nil {
		return nil, err
	}

	doc := domain.Document{
		DocumentID:  uuid.NewString(),
		CaseID:      caseID,
		DocType:     docType,
		DocNo:       docNo,
		Amount:      amount,
		Description: description,
		CreatedBy:   actor.UserID,
		CreatedAt:   g.now().UTC(),
	}
	if g.publisher != nil {
		doc.ArtifactURI = g.publisher.ArtifactURI(doc)
	}

	if err := repos.Documents.SaveDocument(ctx, doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// publish hands a committed voucher to the renderer.
func (g *VoucherGenerator) publish(ctx context.Context, data domain.VoucherData) {
	if g.publisher == nil {
		return
	}
	g.publisher.Publish(ctx, data)
}
