package handlers

import (
	"net/http"

	"github.com/SscSPs/coop_savings_app/cmd/docs"
	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	portssvc "github.com/SscSPs/coop_savings_app/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_app/internal/middleware"
	"github.com/SscSPs/coop_savings_app/internal/platform/config"
	"github.com/SscSPs/coop_savings_app/internal/platform/metrics"
	"github.com/SscSPs/coop_savings_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	m *metrics.Metrics,
	posthogClient *utils.PosthogClientWrapper,
	rateLimiter *limiter.Limiter,
) {
	registerHomeRoutes(r)

	if m != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, posthogClient, rateLimiter)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
	rateLimiter *limiter.Limiter,
) {
	chain := []gin.HandlerFunc{
		middleware.APIKeyAuth(cfg.ServiceAPIKeyHashes),
		middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
	}
	if rateLimiter != nil {
		chain = append(chain, middleware.RateLimit(rateLimiter))
	}
	chain = append(chain, middleware.PosthogMiddleware(posthogClient))
	if cfg.RequestTimeout > 0 {
		chain = append(chain, middleware.RequestTimeout(cfg.RequestTimeout))
	}

	v1 := r.Group("/api/v1", chain...)
	staff := v1.Group("", middleware.RequireRole(domain.RoleStaff))

	RegisterMemberRoutes(staff, service.Member, service.Account, cfg.CooperativeID)
	RegisterLedgerRoutes(staff, service.Ledger, service.Account, service.Receipts, service.Reconciliation)
	RegisterWithdrawalRequestRoutes(v1, staff, service.Withdrawal)
	RegisterDistributionRoutes(staff, service.Distribution, cfg.CooperativeID)
	RegisterNotificationRoutes(staff, service.Notifier)
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

// NoRoute answers unknown paths with the JSON error shape used by every handler.
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
}
