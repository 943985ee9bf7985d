package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware creates a Gin middleware handler that resolves the bearer
// token through the identity provider and stores the actor in the context.
func AuthMiddleware(identity portssvc.IdentityProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			abortUnauthorized(c, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			logger.Warn("Authorization header format invalid")
			abortUnauthorized(c, "Authorization header format must be Bearer {token}")
			return
		}

		actor, err := identity.ResolveToken(c.Request.Context(), parts[1])
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) && errors.Is(err, apperrors.ErrUnauthorized) {
				msg = appErr.Message
			}
			abortUnauthorized(c, msg)
			return
		}

		enrichedLogger := logger.With(slog.String("user_id", actor.UserID))
		ctx := WithActor(c.Request.Context(), actor)
		ctx = WithLogger(ctx, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(actorKey), actor)
		c.Set(string(loggerKey), enrichedLogger)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Success: false,
		Error:   dto.ErrorBody{Code: apperrors.CodeUnauthorized, Message: msg},
	})
}
