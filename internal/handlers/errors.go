package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
	"github.com/chonlathan-cloud/ProjectPRT/internal/middleware"
)

// statusForError maps an error kind onto an HTTP status.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope. Internal failures are logged with
// their cause and reported to the client with a generic message.
func respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusForError(err)

	body := dto.ErrorBody{Code: apperrors.CodeOf(err), Message: err.Error()}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		body.Message = appErr.Message
		body.Details = appErr.Details
	}

	if status == http.StatusInternalServerError {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		body.Code = apperrors.CodeInternal
		body.Message = "Failed to " + action
		body.Details = nil
	} else {
		logger.Warn("Request rejected", slog.String("action", action),
			slog.Int("status", status), slog.String("code", body.Code), slog.String("error", err.Error()))
	}
	c.JSON(status, dto.ErrorResponse{Success: false, Error: body})
}

// respondBindError reports malformed input.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Success: false,
		Error:   dto.ErrorBody{Code: apperrors.CodeValidation, Message: "Invalid request format: " + err.Error()},
	})
}

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, dto.SuccessResponse{Success: true, Data: data})
}
