package routes

import (
	"github.com/ctgmao2/planwise/internal/api/handlers"
	"github.com/ctgmao2/planwise/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// DashboardRoutes handles the setup of dashboard routes
type DashboardRoutes struct {
	handler   *handlers.DashboardHandler
	jwtSecret string
}

// NewDashboardRoutes creates a new DashboardRoutes instance
func NewDashboardRoutes(handler *handlers.DashboardHandler, jwtSecret string) *DashboardRoutes {
	return &DashboardRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all dashboard routes
func (dr *DashboardRoutes) RegisterRoutes(router *gin.Engine) {
	metrics := middleware.NewMetricsMiddleware()

	dashboard := router.Group("/api/dashboard")
	dashboard.Use(middleware.NewAuthMiddleware(dr.jwtSecret))
	dashboard.Use(metrics.CollectMetrics())

	dashboard.GET("/stats", dr.handler.GetStats)
	dashboard.GET("/due-soon", dr.handler.GetDueSoon)
}
