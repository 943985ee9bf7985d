package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
)

// paymentHandler handles settlement reads and adjustments of a case.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers payment routes under a case group.
func registerPaymentRoutes(caseRoutes *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	caseRoutes.GET("/payments", h.listPayments)
	caseRoutes.GET("/variance", h.getVariance)
	caseRoutes.POST("/adjustments", h.recordAdjustment)
}

// listPayments godoc
// @Summary List the payments of a case
// @Tags payments
// @Produce json
// @Param caseID path string true "Case ID"
// @Success 200 {object} dto.SuccessResponse{data=[]domain.Payment}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /cases/{caseID}/payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	payments, err := h.paymentService.ListPayments(c.Request.Context(), c.Param("caseID"), actor)
	if err != nil {
		respondError(c, err, "list payments")
		return
	}
	respondOK(c, http.StatusOK, payments)
}

// getVariance godoc
// @Summary Settlement variance of a case
// @Description Compares the settled amount with the requested amount and the adjustments recorded so far
// @Tags payments
// @Produce json
// @Param caseID path string true "Case ID"
// @Success 200 {object} dto.SuccessResponse{data=domain.Variance}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /cases/{caseID}/variance [get]
func (h *paymentHandler) getVariance(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	variance, err := h.paymentService.GetVariance(c.Request.Context(), c.Param("caseID"), actor)
	if err != nil {
		respondError(c, err, "compute variance")
		return
	}
	respondOK(c, http.StatusOK, variance)
}

// recordAdjustment godoc
// @Summary Record a refund or additional payment
// @Tags payments
// @Accept json
// @Produce json
// @Param caseID path string true "Case ID"
// @Param body body dto.CreateAdjustmentRequest true "Adjustment"
// @Param Idempotency-Key header string false "Client chosen request key"
// @Success 201 {object} dto.SuccessResponse{data=domain.Payment}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /cases/{caseID}/adjustments [post]
func (h *paymentHandler) recordAdjustment(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	payment, err := h.paymentService.RecordAdjustment(c.Request.Context(), c.Param("caseID"), req, actor)
	if err != nil {
		respondError(c, err, "record adjustment")
		return
	}
	respondOK(c, http.StatusCreated, payment)
}
