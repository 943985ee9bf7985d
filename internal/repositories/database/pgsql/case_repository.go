package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portsrepo "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/repositories"
	"github.com/chonlathan-cloud/ProjectPRT/internal/models"
	"github.com/chonlathan-cloud/ProjectPRT/internal/utils/mapping"
)

const caseColumns = `case_id, case_no, category_id, account_code, requester_id,
	department_id, cost_center_id, funding_type, requested_amount, purpose,
	deposit_account_id, is_receipt_uploaded, settled_amount, status,
	reject_reason, rejected_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxCaseRepository struct {
	q querier
}

func newPgxCaseRepository(q querier) portsrepo.CaseRepositoryFacade {
	return &PgxCaseRepository{q: q}
}

// Ensure PgxCaseRepository implements portsrepo.CaseRepositoryFacade
var _ portsrepo.CaseRepositoryFacade = (*PgxCaseRepository)(nil)

func (r *PgxCaseRepository) queryCases(ctx context.Context, query string, args ...any) ([]models.Case, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Case])
}

func (r *PgxCaseRepository) findOne(ctx context.Context, caseID, suffix string) (*domain.Case, error) {
	if !validID(caseID) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("case %s not found", caseID))
	}
	query := `SELECT ` + caseColumns + ` FROM cases WHERE case_id = $1` + suffix
	ms, err := r.queryCases(ctx, query, caseID)
	if err != nil {
		return nil, mapError(err, "failed to query case")
	}
	if len(ms) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("case %s not found", caseID))
	}
	c := mapping.ToDomainCase(ms[0])
	return &c, nil
}

// FindCaseByID retrieves a case without locking it.
func (r *PgxCaseRepository) FindCaseByID(ctx context.Context, caseID string) (*domain.Case, error) {
	return r.findOne(ctx, caseID, "")
}

// FindCaseByIDForUpdate retrieves a case and holds its row lock until the
// transaction ends.
func (r *PgxCaseRepository) FindCaseByIDForUpdate(ctx context.Context, caseID string) (*domain.Case, error) {
	return r.findOne(ctx, caseID, " FOR UPDATE")
}

// FindCasesByIDsForUpdate locks the given cases in ascending id order.
func (r *PgxCaseRepository) FindCasesByIDsForUpdate(ctx context.Context, caseIDs []string) (map[string]domain.Case, error) {
	ids := make([]uuid.UUID, 0, len(caseIDs))
	for _, raw := range caseIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	out := make(map[string]domain.Case, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query := `SELECT ` + caseColumns + ` FROM cases
		WHERE case_id = ANY($1)
		ORDER BY case_id
		FOR UPDATE`
	ms, err := r.queryCases(ctx, query, ids)
	if err != nil {
		return nil, mapError(err, "failed to lock cases")
	}
	for _, m := range ms {
		c := mapping.ToDomainCase(m)
		out[c.CaseID] = c
	}
	return out, nil
}

// ListCases retrieves cases ordered by (created_at, case_id) descending.
func (r *PgxCaseRepository) ListCases(ctx context.Context, filter domain.CaseFilter) ([]domain.Case, error) {
	var conditions []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != nil {
		conditions = append(conditions, "status = "+next(string(*filter.Status)))
	}
	if filter.RequesterID != "" {
		conditions = append(conditions, "requester_id = "+next(filter.RequesterID))
	}
	if filter.Before != nil {
		if !validID(filter.Before.CaseID) {
			return nil, apperrors.NewValidationError("invalid nextToken")
		}
		createdAt := next(filter.Before.CreatedAt)
		caseID := next(filter.Before.CaseID)
		conditions = append(conditions, fmt.Sprintf("(created_at, case_id) < (%s, %s::uuid)", createdAt, caseID))
	}

	query := `SELECT ` + caseColumns + ` FROM cases`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, case_id DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + next(filter.Limit)
	}

	ms, err := r.queryCases(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "failed to list cases")
	}
	return mapping.ToDomainCaseSlice(ms), nil
}

// SaveCase inserts a new case.
func (r *PgxCaseRepository) SaveCase(ctx context.Context, c domain.Case) error {
	m := mapping.ToModelCase(c)
	query := `
		INSERT INTO cases (` + caseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		m.CaseID, m.CaseNo, m.CategoryID, m.AccountCode, m.RequesterID,
		m.DepartmentID, m.CostCenterID, m.FundingType, m.RequestedAmount, m.Purpose,
		m.DepositAccountID, m.IsReceiptUploaded, m.SettledAmount, m.Status,
		m.RejectReason, m.RejectedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, fmt.Sprintf("failed to save case %s", m.CaseNo))
	}
	return nil
}

// UpdateCaseState persists the workflow columns of a case.
func (r *PgxCaseRepository) UpdateCaseState(ctx context.Context, c domain.Case) error {
	m := mapping.ToModelCase(c)
	query := `
		UPDATE cases
		SET status = $2, is_receipt_uploaded = $3, settled_amount = $4,
			reject_reason = $5, rejected_at = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE case_id = $1`
	tag, err := r.q.Exec(ctx, query,
		m.CaseID, m.Status, m.IsReceiptUploaded, m.SettledAmount,
		m.RejectReason, m.RejectedAt, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to update case")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("case %s not found", m.CaseID))
	}
	return nil
}

