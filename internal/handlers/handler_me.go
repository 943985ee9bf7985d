package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
)

// getMe godoc
// @Summary Identity of the caller
// @Tags identity
// @Produce json
// @Success 200 {object} dto.SuccessResponse{data=dto.MeResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func getMe(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	roles := make([]string, len(actor.Roles))
	for i, r := range actor.Roles {
		roles[i] = string(r)
	}
	respondOK(c, http.StatusOK, dto.MeResponse{UserID: actor.UserID, Roles: roles})
}
