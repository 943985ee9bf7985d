package mapping

import (
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	"github.com/chonlathan-cloud/ProjectPRT/internal/models"
)

// ToModelAuditLog converts a domain AuditLog to a model AuditLog
func ToModelAuditLog(d domain.AuditLog) models.AuditLog {
	return models.AuditLog{
		AuditID:     d.AuditID,
		EntityType:  d.EntityType,
		EntityID:    d.EntityID,
		Action:      d.Action,
		PerformedBy: d.PerformedBy,
		PerformedAt: d.PerformedAt,
		Details:     d.Details,
	}
}

// ToDomainAuditLogSlice converts a slice of model AuditLogs to domain AuditLogs
func ToDomainAuditLogSlice(ms []models.AuditLog) []domain.AuditLog {
	ds := make([]domain.AuditLog, len(ms))
	for i, m := range ms {
		ds[i] = domain.AuditLog{
			AuditID:     m.AuditID,
			EntityType:  m.EntityType,
			EntityID:    m.EntityID,
			Action:      m.Action,
			PerformedBy: m.PerformedBy,
			PerformedAt: m.PerformedAt,
			Details:     m.Details,
		}
	}
	return ds
}
