package handlers

import (
	"aquafeed/internal/logger"
	"aquafeed/internal/metrics"
	"aquafeed/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services, metrics and logging.
type Handler struct {
	services *service.Service
	metrics  *metrics.Metrics
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies. m and log may be nil.
func NewHandler(services *service.Service, m *metrics.Metrics, log *logger.Logger) *Handler {
	return &Handler{services: services, metrics: m, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.metrics.Middleware())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Dashboard stream over WebSocket, same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerDashboardRoutes(api)
		h.registerAlertRoutes(api)
		api.POST("/feed", h.feed)
		api.GET("/logs", h.getLogs)
	}
}

func (h *Handler) registerDashboardRoutes(api *gin.RouterGroup) {
	dash := api.Group("/dashboard")
	{
		dash.GET("", h.getDashboard)
		dash.GET("/readings", h.getReadings)
		dash.GET("/feedings", h.getFeedings)
	}
}

func (h *Handler) registerAlertRoutes(api *gin.RouterGroup) {
	alerts := api.Group("/alerts")
	{
		alerts.GET("", h.listAlerts)
		alerts.POST("/:id/dismiss", h.dismissAlert)
	}
}
