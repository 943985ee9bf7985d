package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
)

type auditHandler struct {
	auditService portssvc.AuditTrailSvc
}

func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditTrailSvc) {
	h := &auditHandler{auditService: auditService}
	rg.GET("/audit-logs", h.listAuditTrail)
}

// listAuditTrail godoc
// @Summary Audit trail of an entity
// @Description Newest first. Limited to privileged roles.
// @Tags audit
// @Produce json
// @Param entityType query string true "case, category, document, attachment or payment"
// @Param entityId query string true "Entity ID"
// @Param limit query int false "Maximum entries (default 100, max 500)"
// @Success 200 {object} dto.SuccessResponse{data=[]domain.AuditLog}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /audit-logs [get]
func (h *auditHandler) listAuditTrail(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var params dto.ListAuditParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	entries, err := h.auditService.ListAuditTrail(c.Request.Context(), params.EntityType, params.EntityID, params.Limit, actor)
	if err != nil {
		respondError(c, err, "list audit trail")
		return
	}
	respondOK(c, http.StatusOK, entries)
}
