package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
	"github.com/chonlathan-cloud/ProjectPRT/internal/middleware"
)

// caseHandler handles HTTP requests that read or move cases.
type caseHandler struct {
	caseService     portssvc.CaseSvcFacade
	documentService portssvc.DocumentSvcFacade
}

// newCaseHandler creates a new caseHandler.
func newCaseHandler(cs portssvc.CaseSvcFacade, ds portssvc.DocumentSvcFacade) *caseHandler {
	return &caseHandler{caseService: cs, documentService: ds}
}

// registerCaseRoutes registers the case routes and returns the per-case
// group so that sub-resources can attach to it.
func registerCaseRoutes(rg *gin.RouterGroup, caseService portssvc.CaseSvcFacade, documentService portssvc.DocumentSvcFacade) *gin.RouterGroup {
	h := newCaseHandler(caseService, documentService)

	cases := rg.Group("/cases")
	{
		cases.GET("", h.listCases)
		cases.POST("", h.createCase)
	}

	caseRoutes := cases.Group("/:caseID")
	{
		caseRoutes.GET("", h.getCase)
		caseRoutes.GET("/documents", h.listCaseDocuments)
		caseRoutes.POST("/submit", h.submitCase)
		caseRoutes.POST("/approve", h.approveCase)
		caseRoutes.POST("/reject", h.rejectCase)
		caseRoutes.POST("/pay", h.payCase)
		caseRoutes.POST("/receipt", h.uploadReceipt)
		caseRoutes.POST("/close", h.closeCase)
		caseRoutes.POST("/cancel", h.cancelCase)
	}
	return caseRoutes
}

// listCases godoc
// @Summary List cases
// @Description Lists cases newest first. Requesters only see their own cases.
// @Tags cases
// @Produce json
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.SuccessResponse{data=dto.ListCasesResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /cases [get]
func (h *caseHandler) listCases(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var params dto.ListCasesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	resp, err := h.caseService.ListCases(c.Request.Context(), params, actor)
	if err != nil {
		respondError(c, err, "list cases")
		return
	}
	respondOK(c, http.StatusOK, resp)
}

// createCase godoc
// @Summary Open a case
// @Description Opens a DRAFT case for the caller
// @Tags cases
// @Accept json
// @Produce json
// @Param case body dto.CreateCaseRequest true "Case details"
// @Success 201 {object} dto.SuccessResponse{data=dto.CaseResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Failure 409 {object} dto.ErrorResponse "Category inactive"
// @Security BearerAuth
// @Router /cases [post]
func (h *caseHandler) createCase(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.caseService.CreateCase(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "create case")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Case created",
		slog.String("case_id", created.CaseID), slog.String("case_no", created.CaseNo))
	respondOK(c, http.StatusCreated, dto.ToCaseResponse(created))
}

// getCase godoc
// @Summary Get a case
// @Tags cases
// @Produce json
// @Param caseID path string true "Case ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.CaseResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /cases/{caseID} [get]
func (h *caseHandler) getCase(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	found, err := h.caseService.GetCaseByID(c.Request.Context(), c.Param("caseID"), actor)
	if err != nil {
		respondError(c, err, "get case")
		return
	}
	respondOK(c, http.StatusOK, dto.ToCaseResponse(found))
}

// listCaseDocuments godoc
// @Summary List the vouchers of a case
// @Tags cases
// @Produce json
// @Param caseID path string true "Case ID"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.DocumentResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /cases/{caseID}/documents [get]
func (h *caseHandler) listCaseDocuments(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	docs, err := h.documentService.ListCaseDocuments(c.Request.Context(), c.Param("caseID"), actor)
	if err != nil {
		respondError(c, err, "list case documents")
		return
	}
	respondOK(c, http.StatusOK, dto.ToListDocumentResponse(docs))
}

// caseTransition adapts a body-less workflow operation to a handler.
func (h *caseHandler) caseTransition(action string, op func(c *gin.Context, caseID string, actor domain.Actor) (*domain.Case, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			return
		}
		updated, err := op(c, c.Param("caseID"), actor)
		if err != nil {
			respondError(c, err, action)
			return
		}
		respondOK(c, http.StatusOK, dto.ToCaseResponse(updated))
	}
}

// submitCase godoc
// @Summary Submit a case
// @Description Moves a DRAFT case to SUBMITTED. Only the requester may submit.
// @Tags cases
// @Produce json
// @Param caseID path string true "Case ID"
// @Param Idempotency-Key header string false "Client chosen request key"
// @Success 200 {object} dto.SuccessResponse{data=dto.CaseResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Security BearerAuth
// @Router /cases/{caseID}/submit [post]
func (h *caseHandler) submitCase(c *gin.Context) {
	h.caseTransition("submit case", func(c *gin.Context, caseID string, actor domain.Actor) (*domain.Case, error) {
		return h.caseService.SubmitCase(c.Request.Context(), caseID, actor)
	})(c)
}

// approveCase godoc
// @Summary Approve a case
// @Description Generates the case's PV or RV. Expense cases become APPROVED, revenue and asset cases CLOSED.
// @Tags cases
// @Produce json
// @Param caseID path string true "Case ID"
// @Param Idempotency-Key header string false "Client chosen request key"
// @Success 200 {object} dto.SuccessResponse{data=dto.ApproveCaseResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Invalid transition, voucher exists or lock timeout"
// @Security BearerAuth
// @Router /cases/{caseID}/approve [post]
func (h *caseHandler) approveCase(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	updated, doc, err := h.caseService.ApproveCase(c.Request.Context(), c.Param("caseID"), actor)
	if err != nil {
		respondError(c, err, "approve case")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Case approved",
		slog.String("case_id", updated.CaseID), slog.String("doc_no", doc.DocNo))
	respondOK(c, http.StatusOK, dto.ApproveCaseResponse{
		Case:     dto.ToCaseResponse(updated),
		Document: dto.ToDocumentResponse(doc),
	})
}

// rejectCase godoc
// @Summary Reject a case
// @Tags cases
// @Accept json
// @Produce json
// @Param caseID path string true "Case ID"
// @Param body body dto.RejectCaseRequest true "Rejection reason"
// @Success 200 {object} dto.SuccessResponse{data=dto.CaseResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /cases/{caseID}/reject [post]
func (h *caseHandler) rejectCase(c *gin.Context) {
	var req dto.RejectCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	h.caseTransition("reject case", func(c *gin.Context, caseID string, actor domain.Actor) (*domain.Case, error) {
		return h.caseService.RejectCase(c.Request.Context(), caseID, req, actor)
	})(c)
}

// payCase godoc
// @Summary Mark a case as paid
// @Tags cases
// @Accept json
// @Produce json
// @Param caseID path string true "Case ID"
// @Param body body dto.PayCaseRequest false "Disbursement details"
// @Success 200 {object} dto.SuccessResponse{data=dto.CaseResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /cases/{caseID}/pay [post]
func (h *caseHandler) payCase(c *gin.Context) {
	var req dto.PayCaseRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	h.caseTransition("pay case", func(c *gin.Context, caseID string, actor domain.Actor) (*domain.Case, error) {
		return h.caseService.PayCase(c.Request.Context(), caseID, req, actor)
	})(c)
}

// uploadReceipt godoc
// @Summary Record the receipt of a paid case
// @Tags cases
// @Accept json
// @Produce json
// @Param caseID path string true "Case ID"
// @Param body body dto.UploadReceiptRequest false "Settled amount"
// @Success 200 {object} dto.SuccessResponse{data=dto.CaseResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /cases/{caseID}/receipt [post]
func (h *caseHandler) uploadReceipt(c *gin.Context) {
	var req dto.UploadReceiptRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	h.caseTransition("record receipt", func(c *gin.Context, caseID string, actor domain.Actor) (*domain.Case, error) {
		return h.caseService.UploadReceipt(c.Request.Context(), caseID, req, actor)
	})(c)
}

// closeCase godoc
// @Summary Close a paid case
// @Description Requires an uploaded receipt.
// @Tags cases
// @Produce json
// @Param caseID path string true "Case ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.CaseResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Invalid transition or receipt required"
// @Security BearerAuth
// @Router /cases/{caseID}/close [post]
func (h *caseHandler) closeCase(c *gin.Context) {
	h.caseTransition("close case", func(c *gin.Context, caseID string, actor domain.Actor) (*domain.Case, error) {
		return h.caseService.CloseCase(c.Request.Context(), caseID, actor)
	})(c)
}

// cancelCase godoc
// @Summary Cancel a case
// @Tags cases
// @Produce json
// @Param caseID path string true "Case ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.CaseResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /cases/{caseID}/cancel [post]
func (h *caseHandler) cancelCase(c *gin.Context) {
	h.caseTransition("cancel case", func(c *gin.Context, caseID string, actor domain.Actor) (*domain.Case, error) {
		return h.caseService.CancelCase(c.Request.Context(), caseID, actor)
	})(c)
}

// bindOptionalJSON binds a JSON body when one was sent.
func bindOptionalJSON(c *gin.Context, obj any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(obj); err != nil {
		respondBindError(c, err)
		return false
	}
	return true
}
