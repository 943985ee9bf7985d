package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portsrepo "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/repositories"
	"github.com/chonlathan-cloud/ProjectPRT/internal/models"
	"github.com/chonlathan-cloud/ProjectPRT/internal/utils/mapping"
)

type PgxAuditRepository struct {
	q querier
}

func newPgxAuditRepository(q querier) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{q: q}
}

// Ensure PgxAuditRepository implements portsrepo.AuditRepositoryFacade
var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// AppendAuditLog inserts an audit entry. Details are stored as JSONB.
func (r *PgxAuditRepository) AppendAuditLog(ctx context.Context, entry domain.AuditLog) error {
	m := mapping.ToModelAuditLog(entry)
	if m.Details == nil {
		m.Details = map[string]any{}
	}
	query := `
		INSERT INTO audit_logs (audit_id, entity_type, entity_id, action, performed_by, performed_at, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		m.AuditID, m.EntityType, m.EntityID, m.Action, m.PerformedBy, m.PerformedAt, m.Details,
	)
	if err != nil {
		return mapError(err, "failed to append audit log")
	}
	return nil
}

// ListAuditLogs returns entries for an entity, newest first.
func (r *PgxAuditRepository) ListAuditLogs(ctx context.Context, entityType, entityID string, limit int) ([]domain.AuditLog, error) {
	query := `
		SELECT audit_id, entity_type, entity_id, action, performed_by, performed_at, details
		FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY performed_at DESC, seq DESC`
	args := []any{entityType, entityID}
	if limit > 0 {
		query += " LIMIT $3"
		args = append(args, limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "failed to list audit logs")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AuditLog])
	if err != nil {
		return nil, mapError(err, "failed to scan audit logs")
	}
	return mapping.ToDomainAuditLogSlice(ms), nil
}
