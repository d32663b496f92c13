package routes

import (
	"github.com/ctgmao2/planwise/internal/api/handlers"
	"github.com/ctgmao2/planwise/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// ActivityRoutes handles the setup of activity-feed routes
type ActivityRoutes struct {
	handler   *handlers.ActivityHandler
	jwtSecret string
}

// NewActivityRoutes creates a new ActivityRoutes instance
func NewActivityRoutes(handler *handlers.ActivityHandler, jwtSecret string) *ActivityRoutes {
	return &ActivityRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all activity-related routes
func (ar *ActivityRoutes) RegisterRoutes(router *gin.Engine) {
	metrics := middleware.NewMetricsMiddleware()

	activities := router.Group("/api/activities")
	activities.Use(middleware.NewAuthMiddleware(ar.jwtSecret))
	activities.Use(metrics.CollectMetrics())

	activities.GET("", ar.handler.ListByUser)
	activities.GET("/recent", ar.handler.GetRecent)
}
