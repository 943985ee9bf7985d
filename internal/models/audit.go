package models

import "time"

// AuditLog is a row of the audit_logs table. Details is stored as JSONB.
type AuditLog struct {
	AuditID     string         `db:"audit_id"`
	EntityType  string         `db:"entity_type"`
	EntityID    string         `db:"entity_id"`
	Action      string         `db:"action"`
	PerformedBy string         `db:"performed_by"`
	PerformedAt time.Time      `db:"performed_at"`
	Details     map[string]any `db:"details"`
}
