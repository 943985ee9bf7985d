package services

import (
	"context"
	"time"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portsrepo "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/repositories"
	"github.com/google/uuid"
)

// AuditRecorder appends audit entries in the same unit of work as the
// change they describe.
type AuditRecorder struct {
	now func() time.Time
}

func NewAuditRecorder(now func() time.Time) *AuditRecorder {
	if now == nil {
		now = time.Now
	}
	return &AuditRecorder{now: now}
}

// Record writes one entry. A failure aborts the surrounding unit of work.
func (r *AuditRecorder) Record(ctx context.Context, audit portsrepo.AuditWriter, entityType, entityID, action string, actor domain.Actor, details map[string]any) error {
	return audit.AppendAuditLog(ctx, domain.AuditLog{
		AuditID:     uuid.NewString(),
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		PerformedBy: actor.UserID,
		PerformedAt: r.now().UTC(),
		Details:     details,
	})
}
