package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portsrepo "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/repositories"
	"github.com/chonlathan-cloud/ProjectPRT/internal/models"
	"github.com/chonlathan-cloud/ProjectPRT/internal/utils/mapping"
)

const documentColumns = `document_id, case_id, doc_type, doc_no, amount,
	artifact_uri, description, created_by, created_at`

type PgxDocumentRepository struct {
	q querier
}

func newPgxDocumentRepository(q querier) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{q: q}
}

// Ensure PgxDocumentRepository implements portsrepo.DocumentRepositoryFacade
var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

func (r *PgxDocumentRepository) queryDocuments(ctx context.Context, query string, args ...any) ([]models.Document, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Document])
}

// FindDocumentByID retrieves a voucher by its ID.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	if !validID(documentID) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("document %s not found", documentID))
	}
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1`
	ms, err := r.queryDocuments(ctx, query, documentID)
	if err != nil {
		return nil, mapError(err, "failed to query document")
	}
	if len(ms) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("document %s not found", documentID))
	}
	d := mapping.ToDomainDocument(ms[0])
	return &d, nil
}

// ExistsDocumentForCase reports whether the case already owns a document of docType.
func (r *PgxDocumentRepository) ExistsDocumentForCase(ctx context.Context, caseID string, docType domain.DocumentType) (bool, error) {
	if !validID(caseID) {
		return false, nil
	}
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM documents WHERE case_id = $1 AND doc_type = $2)`
	if err := r.q.QueryRow(ctx, query, caseID, string(docType)).Scan(&exists); err != nil {
		return false, mapError(err, "failed to check for existing document")
	}
	return exists, nil
}

// ListDocumentsByCase returns the documents owned by a case, oldest first.
func (r *PgxDocumentRepository) ListDocumentsByCase(ctx context.Context, caseID string) ([]domain.Document, error) {
	if !validID(caseID) {
		return []domain.Document{}, nil
	}
	query := `SELECT ` + documentColumns + ` FROM documents
		WHERE case_id = $1
		ORDER BY created_at, doc_no`
	ms, err := r.queryDocuments(ctx, query, caseID)
	if err != nil {
		return nil, mapError(err, "failed to list documents")
	}
	return mapping.ToDomainDocumentSlice(ms), nil
}

// ListJVLineItems returns the line items of a JV document.
func (r *PgxDocumentRepository) ListJVLineItems(ctx context.Context, jvDocumentID string) ([]domain.JVLineItem, error) {
	if !validID(jvDocumentID) {
		return []domain.JVLineItem{}, nil
	}
	query := `
		SELECT li.line_item_id, li.jv_document_id, li.ref_case_id, li.amount
		FROM jv_line_items li
		JOIN cases c ON c.case_id = li.ref_case_id
		WHERE li.jv_document_id = $1
		ORDER BY c.created_at, li.ref_case_id`
	rows, err := r.q.Query(ctx, query, jvDocumentID)
	if err != nil {
		return nil, mapError(err, "failed to list line items")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JVLineItem])
	if err != nil {
		return nil, mapError(err, "failed to scan line items")
	}
	return mapping.ToDomainJVLineItemSlice(ms), nil
}

// SaveDocument inserts a voucher. The unique indexes reject a second PV or
// RV for the same case and duplicate document numbers.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, document domain.Document) error {
	m := mapping.ToModelDocument(document)
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		m.DocumentID, m.CaseID, m.DocType, m.DocNo, m.Amount,
		m.ArtifactURI, m.Description, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return mapError(err, fmt.Sprintf("document number %s already exists", m.DocNo))
	}
	return nil
}

// SaveJVLineItems inserts all line items in one batch round trip.
func (r *PgxDocumentRepository) SaveJVLineItems(ctx context.Context, items []domain.JVLineItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, item := range items {
		m := mapping.ToModelJVLineItem(item)
		batch.Queue(`
			INSERT INTO jv_line_items (line_item_id, jv_document_id, ref_case_id, amount)
			VALUES ($1, $2, $3, $4)`,
			m.LineItemID, m.JVDocumentID, m.RefCaseID, m.Amount)
	}
	if err := r.q.SendBatch(ctx, batch).Close(); err != nil {
		return mapError(err, "failed to save line items")
	}
	return nil
}
