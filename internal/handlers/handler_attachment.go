package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
)

// attachmentHandler issues signed URLs for case attachments.
type attachmentHandler struct {
	attachmentService portssvc.AttachmentSvcFacade
}

func newAttachmentHandler(as portssvc.AttachmentSvcFacade) *attachmentHandler {
	return &attachmentHandler{attachmentService: as}
}

func registerAttachmentRoutes(caseRoutes *gin.RouterGroup, attachmentService portssvc.AttachmentSvcFacade) {
	h := newAttachmentHandler(attachmentService)

	attachments := caseRoutes.Group("/attachments")
	{
		attachments.POST("/upload-url", h.createUploadURL)
		attachments.GET("/download-url", h.createDownloadURL)
	}
}

// createUploadURL godoc
// @Summary Request an upload URL
// @Description Records the attachment and returns a signed PUT URL. Only the requester may upload.
// @Tags attachments
// @Accept json
// @Produce json
// @Param caseID path string true "Case ID"
// @Param body body dto.UploadURLRequest true "Attachment metadata"
// @Success 201 {object} dto.SuccessResponse{data=dto.SignedURLResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /cases/{caseID}/attachments/upload-url [post]
func (h *attachmentHandler) createUploadURL(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	attachment, signed, err := h.attachmentService.CreateUploadURL(c.Request.Context(), c.Param("caseID"), req, actor)
	if err != nil {
		respondError(c, err, "create upload url")
		return
	}
	respondOK(c, http.StatusCreated, dto.SignedURLResponse{Attachment: attachment, SignedURL: *signed})
}

// createDownloadURL godoc
// @Summary Request a download URL
// @Description Returns a signed GET URL for an attachment by id, or for the latest attachment of a type
// @Tags attachments
// @Produce json
// @Param caseID path string true "Case ID"
// @Param attachmentId query string false "Attachment ID"
// @Param type query string false "QUOTE, RECEIPT or OTHER"
// @Success 200 {object} dto.SuccessResponse{data=dto.SignedURLResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /cases/{caseID}/attachments/download-url [get]
func (h *attachmentHandler) createDownloadURL(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var params dto.DownloadURLParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	attachment, signed, err := h.attachmentService.CreateDownloadURL(c.Request.Context(), c.Param("caseID"), params, actor)
	if err != nil {
		respondError(c, err, "create download url")
		return
	}
	respondOK(c, http.StatusOK, dto.SignedURLResponse{Attachment: attachment, SignedURL: *signed})
}
