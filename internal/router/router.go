package router

import (
	"github.com/gin-gonic/gin"

	"clausesync/internal/domain"
	"clausesync/internal/handler"
	"clausesync/internal/middleware"
	"clausesync/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	reviewH *handler.ReviewHandler,
	healthH *handler.HealthHandler,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Review routes
	reviews := protected.Group("/reviews")
	reviews.POST("", reviewH.Submit)
	reviews.GET("", reviewH.List)
	reviews.GET("/:id", reviewH.GetByID)
	reviews.GET("/:id/contract", reviewH.DownloadContract)
	reviews.GET("/:id/export", reviewH.Export)
	reviews.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), reviewH.Delete)

	return r
}
