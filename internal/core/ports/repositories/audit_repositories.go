package repositories

import (
	"context"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
)

// AuditWriter appends audit entries. There is no update or delete.
type AuditWriter interface {
	AppendAuditLog(ctx context.Context, entry domain.AuditLog) error
}

// AuditReader serves the advisory audit trail listing only.
type AuditReader interface {
	ListAuditLogs(ctx context.Context, entityType, entityID string, limit int) ([]domain.AuditLog, error)
}

// AuditRepositoryFacade combines all audit-related repository interfaces
type AuditRepositoryFacade interface {
	AuditReader
	AuditWriter
}
