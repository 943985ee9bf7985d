package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"

	"github.com/chonlathan-cloud/ProjectPRT/cmd/docs"
	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
	"github.com/chonlathan-cloud/ProjectPRT/internal/middleware"
	"github.com/chonlathan-cloud/ProjectPRT/internal/platform/config"
)

// RouterDeps are the cross-cutting collaborators of the HTTP layer. Limiter
// and Redis are optional; a nil value disables the matching middleware.
type RouterDeps struct {
	Identity portssvc.IdentityProvider
	Limiter  *limiter.Limiter
	Redis    redis.Cmdable
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouterDeps,
) {
	registerValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services, deps)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouterDeps,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(deps.Identity))
	if deps.Limiter != nil {
		v1.Use(middleware.RateLimit(deps.Limiter))
	}
	if deps.Redis != nil {
		// Only mutating requests carrying an Idempotency-Key are affected.
		v1.Use(middleware.IdempotencyMiddleware(deps.Redis, cfg.IdempotencyTTL))
	}

	v1.GET("/me", getMe)
	registerCategoryRoutes(v1, services.Category)
	caseRoutes := registerCaseRoutes(v1, services.Case, services.Document)
	registerPaymentRoutes(caseRoutes, services.Payment)
	registerAttachmentRoutes(caseRoutes, services.Attachment)
	registerDocumentRoutes(v1, services.Document, services.JournalVoucher)
	registerAuditRoutes(v1, services.Audit)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
