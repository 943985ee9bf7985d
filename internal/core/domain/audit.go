package domain

import "time"

// Audited entity types.
const (
	EntityCategory   = "category"
	EntityCase       = "case"
	EntityDocument   = "document"
	EntityAttachment = "attachment"
	EntityPayment    = "payment"
)

// Audit actions.
const (
	AuditCreate             = "create"
	AuditUpdate             = "update"
	AuditDeactivate         = "deactivate"
	AuditSubmit             = "submit"
	AuditApprove            = "approve"
	AuditReject             = "reject"
	AuditPay                = "pay"
	AuditUploadReceipt      = "upload_receipt"
	AuditClose              = "close"
	AuditCloseByJV          = "close_by_jv"
	AuditCancel             = "cancel"
	AuditCreateJV           = "create_jv"
	AuditAdjustment         = "adjustment"
	AuditUploadURLCreated   = "attachment_upload_url_created"
	AuditDownloadURLCreated = "attachment_download"
)

// AuditLog is an append-only record of a state changing action. Workflow
// logic never reads it back.
type AuditLog struct {
	AuditID     string         `json:"auditId"`
	EntityType  string         `json:"entityType"`
	EntityID    string         `json:"entityId"`
	Action      string         `json:"action"`
	PerformedBy string         `json:"performedBy"`
	PerformedAt time.Time      `json:"performedAt"`
	Details     map[string]any `json:"details,omitempty"`
}
