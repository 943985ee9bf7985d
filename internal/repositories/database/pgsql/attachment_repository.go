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

const attachmentColumns = `attachment_id, case_id, type, object_uri, filename,
	content_type, uploaded_by, uploaded_at`

type PgxAttachmentRepository struct {
	q querier
}

func newPgxAttachmentRepository(q querier) portsrepo.AttachmentRepositoryFacade {
	return &PgxAttachmentRepository{q: q}
}

// Ensure PgxAttachmentRepository implements portsrepo.AttachmentRepositoryFacade
var _ portsrepo.AttachmentRepositoryFacade = (*PgxAttachmentRepository)(nil)

func (r *PgxAttachmentRepository) findOne(ctx context.Context, notFound string, query string, args ...any) (*domain.Attachment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "failed to query attachment")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Attachment])
	if err != nil {
		return nil, mapError(err, "failed to scan attachment")
	}
	if len(ms) == 0 {
		return nil, apperrors.NewNotFoundError(notFound)
	}
	a := mapping.ToDomainAttachment(ms[0])
	return &a, nil
}

// FindAttachmentByID retrieves an attachment by its ID.
func (r *PgxAttachmentRepository) FindAttachmentByID(ctx context.Context, attachmentID string) (*domain.Attachment, error) {
	notFound := fmt.Sprintf("attachment %s not found", attachmentID)
	if !validID(attachmentID) {
		return nil, apperrors.NewNotFoundError(notFound)
	}
	return r.findOne(ctx, notFound,
		`SELECT `+attachmentColumns+` FROM attachments WHERE attachment_id = $1`, attachmentID)
}

// FindLatestAttachment returns the newest attachment of a type for a case.
func (r *PgxAttachmentRepository) FindLatestAttachment(ctx context.Context, caseID string, attachmentType domain.AttachmentType) (*domain.Attachment, error) {
	notFound := fmt.Sprintf("no %s attachment for case %s", attachmentType, caseID)
	if !validID(caseID) {
		return nil, apperrors.NewNotFoundError(notFound)
	}
	return r.findOne(ctx, notFound, `
		SELECT `+attachmentColumns+` FROM attachments
		WHERE case_id = $1 AND type = $2
		ORDER BY uploaded_at DESC, attachment_id DESC
		LIMIT 1`, caseID, string(attachmentType))
}

// SaveAttachment inserts attachment metadata.
func (r *PgxAttachmentRepository) SaveAttachment(ctx context.Context, attachment domain.Attachment) error {
	m := mapping.ToModelAttachment(attachment)
	query := `
		INSERT INTO attachments (` + attachmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.AttachmentID, m.CaseID, m.Type, m.ObjectURI, m.Filename,
		m.ContentType, m.UploadedBy, m.UploadedAt,
	)
	if err != nil {
		return mapError(err, "failed to save attachment")
	}
	return nil
}
