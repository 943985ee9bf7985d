package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portsrepo "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/repositories"
	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
)

// journalVoucherService merges approved or paid cases into one JV.
type journalVoucherService struct {
	BaseService
	uow         portsrepo.UnitOfWork
	vouchers    *VoucherGenerator
	audit       *AuditRecorder
	companyName string
}

// NewJournalVoucherService creates a new JournalVoucherSvc.
func NewJournalVoucherService(uow portsrepo.UnitOfWork, vouchers *VoucherGenerator, audit *AuditRecorder, companyName string, options ...ServiceOption) portssvc.JournalVoucherSvc {
	return &journalVoucherService{
		BaseService: newBaseService(options...),
		uow:         uow,
		vouchers:    vouchers,
		audit:       audit,
		companyName: companyName,
	}
}

var _ portssvc.JournalVoucherSvc = (*journalVoucherService)(nil)

// CreateJV sums the requested amounts of the main and linked cases into a
// JV on the main case and closes every case. Nothing is written unless all
// of it succeeds.
func (s *journalVoucherService) CreateJV(ctx context.Context, req dto.CreateJVRequest, actor domain.Actor) (*domain.Document, []domain.JVLineItem, error) {
	if err := s.Authorize(ctx, actor, domain.ActionCreateJV, nil); err != nil {
		return nil, nil, err
	}
	mainCaseID := strings.TrimSpace(req.MainCaseID)
	if mainCaseID == "" {
		return nil, nil, apperrors.NewValidationError("mainCaseId is required")
	}
	caseIDs := uniqueCaseIDs(mainCaseID, req.LinkedCaseIDs)
	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = dto.DefaultJVDescription
	}

	var (
		doc          *domain.Document
		items        []domain.JVLineItem
		mainCase     domain.Case
		mainCategory domain.Category
	)
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		locked, err := repos.Cases.FindCasesByIDsForUpdate(ctx, caseIDs)
		if err != nil {
			return err
		}

		var missing []string
		for _, id := range caseIDs {
			if _, ok := locked[id]; !ok {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			return apperrors.NewNotFoundError(fmt.Sprintf("cases not found: %s", strings.Join(missing, ", "))).
				WithDetails(map[string]any{"missingCaseIds": missing})
		}

		total := decimal.Zero
		var invalid []map[string]any
		for _, id := range caseIDs {
			c := locked[id]
			if _, err := domain.NextStatus(c.Status, domain.EventCloseByJV, ""); err != nil {
				invalid = append(invalid, map[string]any{"caseId": id, "status": string(c.Status)})
				continue
			}
			total = total.Add(c.RequestedAmount)
		}
		if len(invalid) > 0 {
			return apperrors.NewValidationError("every case in a JV must be APPROVED or PAID").
				WithDetails(map[string]any{"invalidCases": invalid})
		}

		mainCase = locked[mainCaseID]
		category, err := repos.Categories.FindCategoryByID(ctx, mainCase.CategoryID)
		if err != nil {
			return err
		}
		mainCategory = *category

		doc, err = s.vouchers.GenerateJV(ctx, repos, mainCaseID, total, description, actor)
		if err != nil {
			return err
		}

		items = make([]domain.JVLineItem, 0, len(caseIDs))
		for _, id := range caseIDs {
			items = append(items, domain.JVLineItem{
				LineItemID:   uuid.NewString(),
				JVDocumentID: doc.DocumentID,
				RefCaseID:    id,
				Amount:       locked[id].RequestedAmount,
			})
		}
		if err := repos.Documents.SaveJVLineItems(ctx, items); err != nil {
			return err
		}

		now := s.Now()
		for _, id := range caseIDs {
			c := locked[id]
			from := c.Status
			c.Status = domain.CaseStatusClosed
			c.LastUpdatedAt = now
			c.LastUpdatedBy = actor.UserID
			if err := repos.Cases.UpdateCaseState(ctx, c); err != nil {
				return err
			}
			if err := s.audit.Record(ctx, repos.Audit, domain.EntityCase, id, domain.AuditCloseByJV, actor, map[string]any{
				"from":       string(from),
				"to":         string(c.Status),
				"documentId": doc.DocumentID,
				"docNo":      doc.DocNo,
			}); err != nil {
				return err
			}
			if id == mainCaseID {
				mainCase = c
			}
		}

		return s.audit.Record(ctx, repos.Audit, domain.EntityDocument, doc.DocumentID, domain.AuditCreateJV, actor, map[string]any{
			"docNo":   doc.DocNo,
			"amount":  doc.Amount.StringFixed(domain.MoneyScale),
			"caseIds": caseIDs,
		})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create journal voucher", slog.String("main_case_id", mainCaseID))
		return nil, nil, err
	}

	s.LogInfo(ctx, "Journal voucher created",
		slog.String("document_id", doc.DocumentID),
		slog.String("doc_no", doc.DocNo),
		slog.Int("case_count", len(items)))

	s.vouchers.publish(ctx, domain.VoucherData{
		Document:    *doc,
		Case:        mainCase,
		Category:    mainCategory,
		LineItems:   items,
		CompanyName: s.companyName,
	})
	return doc, items, nil
}

// uniqueCaseIDs returns the main case followed by the linked cases, without
// duplicates or blanks.
func uniqueCaseIDs(mainCaseID string, linked []string) []string {
	seen := map[string]bool{mainCaseID: true}
	ids := []string{mainCaseID}
	for _, id := range linked {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
