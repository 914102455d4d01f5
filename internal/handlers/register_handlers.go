package handlers

import (
	"github.com/SscSPs/user_accounts_backend/cmd/docs"
	portssvc "github.com/SscSPs/user_accounts_backend/internal/core/ports/services"
	"github.com/SscSPs/user_accounts_backend/internal/middleware"
	"github.com/SscSPs/user_accounts_backend/internal/platform/config"
	"github.com/SscSPs/user_accounts_backend/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthog *utils.PosthogClientWrapper,
) {
	r.GET("/health", getHealth)

	setupAPIV1Routes(r, cfg, services, posthog)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1/users group. Session and profile routes share it;
// the protected subgroup requires a valid access token.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthog *utils.PosthogClientWrapper,
) {
	users := r.Group("/api/v1/users")
	protected := users.Group("",
		middleware.AuthMiddleware(services.Token),
		middleware.PosthogMiddleware(posthog),
	)

	registerAuthRoutes(users, protected, cfg, services.Auth, posthog)
	registerUserRoutes(protected, cfg, services.User)
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
