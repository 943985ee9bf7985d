package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
	"github.com/chonlathan-cloud/ProjectPRT/internal/middleware"
)

// documentHandler serves vouchers and creates journal vouchers.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
	jvService       portssvc.JournalVoucherSvc
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade, jv portssvc.JournalVoucherSvc) *documentHandler {
	return &documentHandler{documentService: ds, jvService: jv}
}

// registerDocumentRoutes registers voucher routes.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade, jvService portssvc.JournalVoucherSvc) {
	h := newDocumentHandler(documentService, jvService)

	documents := rg.Group("/documents")
	{
		documents.POST("/jv", h.createJV)
		documents.GET("/:documentID", h.getDocument)
		documents.GET("/:documentID/artifact-url", h.getArtifactURL)
	}
}

// createJV godoc
// @Summary Create a journal voucher
// @Description Sums the main and linked cases into one JV and closes every case, atomically
// @Tags documents
// @Accept json
// @Produce json
// @Param body body dto.CreateJVRequest true "Cases to aggregate"
// @Param Idempotency-Key header string false "Client chosen request key"
// @Success 201 {object} dto.SuccessResponse{data=dto.DocumentDetailResponse}
// @Failure 400 {object} dto.ErrorResponse "A case is not in a JV-closable status"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "A case does not exist"
// @Failure 409 {object} dto.ErrorResponse "Lock timeout"
// @Security BearerAuth
// @Router /documents/jv [post]
func (h *documentHandler) createJV(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateJVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	doc, items, err := h.jvService.CreateJV(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "create journal voucher")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Journal voucher created",
		slog.String("document_id", doc.DocumentID), slog.String("doc_no", doc.DocNo), slog.Int("cases", len(items)))
	respondOK(c, http.StatusCreated, dto.ToDocumentDetailResponse(doc, items))
}

// getDocument godoc
// @Summary Get a voucher
// @Description Returns a voucher, with line items for JVs
// @Tags documents
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.DocumentDetailResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /documents/{documentID} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	doc, items, err := h.documentService.GetDocumentByID(c.Request.Context(), c.Param("documentID"), actor)
	if err != nil {
		respondError(c, err, "get document")
		return
	}
	respondOK(c, http.StatusOK, dto.ToDocumentDetailResponse(doc, items))
}

// getArtifactURL godoc
// @Summary Download URL of a rendered voucher
// @Tags documents
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.SuccessResponse{data=domain.SignedURL}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /documents/{documentID}/artifact-url [get]
func (h *documentHandler) getArtifactURL(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	signed, err := h.documentService.GetArtifactURL(c.Request.Context(), c.Param("documentID"), actor)
	if err != nil {
		respondError(c, err, "create artifact url")
		return
	}
	respondOK(c, http.StatusOK, signed)
}
