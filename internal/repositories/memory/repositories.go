package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portsrepo "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/repositories"
)

type categoryRepository struct{ s *Store }

var _ portsrepo.CategoryRepositoryFacade = (*categoryRepository)(nil)

func (r *categoryRepository) FindCategoryByID(_ context.Context, categoryID string) (*domain.Category, error) {
	c, ok := r.s.data.categories[categoryID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("category %s not found", categoryID))
	}
	return &c, nil
}

func (r *categoryRepository) FindConflictingCategory(_ context.Context, name, accountCode, excludeID string) (*domain.Category, error) {
	for _, c := range r.s.data.categories {
		if c.CategoryID == excludeID {
			continue
		}
		if c.Name == name || c.AccountCode == accountCode {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (r *categoryRepository) ListCategories(_ context.Context, filter domain.CategoryFilter) ([]domain.Category, error) {
	out := []domain.Category{}
	for _, c := range r.s.data.categories {
		if filter.Type != nil && c.Type != *filter.Type {
			continue
		}
		if filter.ActiveOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *categoryRepository) SaveCategory(_ context.Context, category domain.Category) error {
	if _, ok := r.s.data.categories[category.CategoryID]; ok {
		return apperrors.NewConflictError(apperrors.CodeDuplicate, fmt.Sprintf("category %s already exists", category.CategoryID))
	}
	r.s.data.categories[category.CategoryID] = category
	return nil
}

func (r *categoryRepository) UpdateCategory(_ context.Context, category domain.Category) error {
	if _, ok := r.s.data.categories[category.CategoryID]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("category %s not found", category.CategoryID))
	}
	r.s.data.categories[category.CategoryID] = category
	return nil
}

type caseRepository struct{ s *Store }

var _ portsrepo.CaseRepositoryFacade = (*caseRepository)(nil)

func (r *caseRepository) FindCaseByID(_ context.Context, caseID string) (*domain.Case, error) {
	c, ok := r.s.data.cases[caseID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("case %s not found", caseID))
	}
	return &c, nil
}

// FindCaseByIDForUpdate needs no row lock; the unit of work is exclusive.
func (r *caseRepository) FindCaseByIDForUpdate(ctx context.Context, caseID string) (*domain.Case, error) {
	return r.FindCaseByID(ctx, caseID)
}

func (r *caseRepository) FindCasesByIDsForUpdate(_ context.Context, caseIDs []string) (map[string]domain.Case, error) {
	out := make(map[string]domain.Case, len(caseIDs))
	for _, id := range caseIDs {
		if c, ok := r.s.data.cases[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (r *caseRepository) ListCases(_ context.Context, filter domain.CaseFilter) ([]domain.Case, error) {
	out := []domain.Case{}
	for _, c := range r.s.data.cases {
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if filter.RequesterID != "" && c.RequesterID != filter.RequesterID {
			continue
		}
		if filter.Before != nil && !caseBefore(c, *filter.Before) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return caseBefore(out[j], domain.CaseCursor{CreatedAt: out[i].CreatedAt, CaseID: out[i].CaseID})
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// caseBefore reports whether c sorts after the cursor in (created_at desc, id desc) order.
func caseBefore(c domain.Case, cursor domain.CaseCursor) bool {
	if c.CreatedAt.Equal(cursor.CreatedAt) {
		return c.CaseID < cursor.CaseID
	}
	return c.CreatedAt.Before(cursor.CreatedAt)
}

func (r *caseRepository) SaveCase(_ context.Context, c domain.Case) error {
	if _, ok := r.s.data.cases[c.CaseID]; ok {
		return apperrors.NewConflictError(apperrors.CodeDuplicate, fmt.Sprintf("case %s already exists", c.CaseID))
	}
	for _, existing := range r.s.data.cases {
		if existing.CaseNo == c.CaseNo {
			return apperrors.NewConflictError(apperrors.CodeDuplicate, fmt.Sprintf("case number %s already exists", c.CaseNo))
		}
	}
	r.s.data.cases[c.CaseID] = c
	return nil
}

func (r *caseRepository) UpdateCaseState(_ context.Context, c domain.Case) error {
	existing, ok := r.s.data.cases[c.CaseID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("case %s not found", c.CaseID))
	}
	existing.Status = c.Status
	existing.IsReceiptUploaded = c.IsReceiptUploaded
	existing.SettledAmount = c.SettledAmount
	existing.RejectReason = c.RejectReason
	existing.RejectedAt = c.RejectedAt
	existing.LastUpdatedAt = c.LastUpdatedAt
	existing.LastUpdatedBy = c.LastUpdatedBy
	r.s.data.cases[c.CaseID] = existing
	return nil
}

type documentRepository struct{ s *Store }

var _ portsrepo.DocumentRepositoryFacade = (*documentRepository)(nil)

func (r *documentRepository) FindDocumentByID(_ context.Context, documentID string) (*domain.Document, error) {
	d, ok := r.s.data.documents[documentID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("document %s not found", documentID))
	}
	return &d, nil
}

func (r *documentRepository) ExistsDocumentForCase(_ context.Context, caseID string, docType domain.DocumentType) (bool, error) {
	for _, d := range r.s.data.documents {
		if d.CaseID == caseID && d.DocType == docType {
			return true, nil
		}
	}
	return false, nil
}

func (r *documentRepository) ListDocumentsByCase(_ context.Context, caseID string) ([]domain.Document, error) {
	out := []domain.Document{}
	for _, d := range r.s.data.documents {
		if d.CaseID == caseID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].DocNo < out[j].DocNo
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *documentRepository) ListJVLineItems(_ context.Context, jvDocumentID string) ([]domain.JVLineItem, error) {
	out := []domain.JVLineItem{}
	for _, item := range r.s.data.lineItems {
		if item.JVDocumentID == jvDocumentID {
			out = append(out, item)
		}
	}
	return out, nil
}

// SaveDocument enforces the same uniqueness rules as the database: document
// numbers are unique and a case owns at most one PV and one RV.
func (r *documentRepository) SaveDocument(_ context.Context, document domain.Document) error {
	for _, d := range r.s.data.documents {
		if d.DocNo == document.DocNo {
			return apperrors.NewConflictError(apperrors.CodeDuplicate, fmt.Sprintf("document number %s already exists", document.DocNo))
		}
		if document.DocType != domain.DocumentJV && d.CaseID == document.CaseID && d.DocType == document.DocType {
			return apperrors.NewConflictError(apperrors.CodeVoucherExists,
				fmt.Sprintf("case %s already has a %s document", document.CaseID, document.DocType))
		}
	}
	r.s.data.documents[document.DocumentID] = document
	return nil
}

func (r *documentRepository) SaveJVLineItems(_ context.Context, items []domain.JVLineItem) error {
	for _, item := range items {
		if _, ok := r.s.data.documents[item.JVDocumentID]; !ok {
			return apperrors.NewNotFoundError(fmt.Sprintf("document %s not found", item.JVDocumentID))
		}
	}
	r.s.data.lineItems = append(r.s.data.lineItems, items...)
	return nil
}

type counterRepository struct{ s *Store }

var _ portsrepo.CounterRepository = (*counterRepository)(nil)

func (r *counterRepository) NextNumber(_ context.Context, prefix domain.DocumentType, periodKey string) (int64, error) {
	key := counterKey{prefix: prefix, period: periodKey}
	r.s.data.counters[key]++
	return r.s.data.counters[key], nil
}

type paymentRepository struct{ s *Store }

var _ portsrepo.PaymentRepositoryFacade = (*paymentRepository)(nil)

func (r *paymentRepository) ListPaymentsByCase(_ context.Context, caseID string) ([]domain.Payment, error) {
	out := []domain.Payment{}
	for _, p := range r.s.data.payments {
		if p.CaseID == caseID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *paymentRepository) SavePayment(_ context.Context, payment domain.Payment) error {
	r.s.data.payments = append(r.s.data.payments, payment)
	return nil
}

type attachmentRepository struct{ s *Store }

var _ portsrepo.AttachmentRepositoryFacade = (*attachmentRepository)(nil)

func (r *attachmentRepository) FindAttachmentByID(_ context.Context, attachmentID string) (*domain.Attachment, error) {
	for _, a := range r.s.data.attachments {
		if a.AttachmentID == attachmentID {
			found := a
			return &found, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("attachment %s not found", attachmentID))
}

func (r *attachmentRepository) FindLatestAttachment(_ context.Context, caseID string, attachmentType domain.AttachmentType) (*domain.Attachment, error) {
	var latest *domain.Attachment
	for i := range r.s.data.attachments {
		a := r.s.data.attachments[i]
		if a.CaseID != caseID || a.Type != attachmentType {
			continue
		}
		if latest == nil || !a.UploadedAt.Before(latest.UploadedAt) {
			latest = &a
		}
	}
	if latest == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no %s attachment for case %s", attachmentType, caseID))
	}
	return latest, nil
}

func (r *attachmentRepository) SaveAttachment(_ context.Context, attachment domain.Attachment) error {
	r.s.data.attachments = append(r.s.data.attachments, attachment)
	return nil
}

type auditRepository struct{ s *Store }

var _ portsrepo.AuditRepositoryFacade = (*auditRepository)(nil)

func (r *auditRepository) AppendAuditLog(_ context.Context, entry domain.AuditLog) error {
	r.s.data.audit = append(r.s.data.audit, entry)
	return nil
}

// ListAuditLogs returns entries newest first.
func (r *auditRepository) ListAuditLogs(_ context.Context, entityType, entityID string, limit int) ([]domain.AuditLog, error) {
	out := []domain.AuditLog{}
	for i := len(r.s.data.audit) - 1; i >= 0; i-- {
		entry := r.s.data.audit[i]
		if entry.EntityType != entityType || entry.EntityID != entityID {
			continue
		}
		out = append(out, entry)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
