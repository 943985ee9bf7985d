package dto

// ErrorBody is the machine readable part of an error response.
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the envelope returned for every failed request.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data"`
	Error   ErrorBody `json:"error"`
}

// MeResponse echoes the resolved identity of the caller.
type MeResponse struct {
	UserID string   `json:"userId"`
	Roles  []string `json:"roles"`
}

// SuccessResponse is the envelope returned for every successful request.
type SuccessResponse struct {
	Success bool       `json:"success"`
	Data    any        `json:"data"`
	Error   *ErrorBody `json:"error"`
}

// ListAuditParams selects the audit trail of one entity.
type ListAuditParams struct {
	EntityType string `form:"entityType" binding:"required"`
	EntityID   string `form:"entityId" binding:"required"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=500"`
}
