package services

import (
	"context"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
)

// AuditTrailSvc exposes the audit log for review. Nothing in the workflow reads it.
type AuditTrailSvc interface {
	ListAuditTrail(ctx context.Context, entityType, entityID string, limit int, actor domain.Actor) ([]domain.AuditLog, error)
}
