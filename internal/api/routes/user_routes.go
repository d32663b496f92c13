package routes

import (
	"github.com/ctgmao2/planwise/internal/api/dto"
	"github.com/ctgmao2/planwise/internal/api/handlers"
	"github.com/ctgmao2/planwise/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// UserRoutes handles the setup of user-related routes
type UserRoutes struct {
	handler   *handlers.UserHandler
	jwtSecret string
}

// NewUserRoutes creates a new UserRoutes instance
func NewUserRoutes(handler *handlers.UserHandler, jwtSecret string) *UserRoutes {
	return &UserRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all user-related routes
func (ur *UserRoutes) RegisterRoutes(router *gin.Engine, validation *middleware.ValidationMiddleware) {
	metrics := middleware.NewMetricsMiddleware()

	users := router.Group("/api/users")
	users.Use(metrics.CollectMetrics())

	// Registration stays open so a fresh deployment can create its first account.
	users.POST("", validation.ValidateRequest(&dto.CreateUserRequest{}), ur.handler.CreateUser)

	protected := users.Group("")
	protected.Use(middleware.NewAuthMiddleware(ur.jwtSecret))

	protected.GET("", ur.handler.ListUsers)
	protected.GET("/:id", ur.handler.GetUser)
	// Updates are partial; PATCH is the primary verb, PUT kept as an alias.
	protected.PATCH("/:id", validation.ValidateRequest(&dto.UpdateUserRequest{}), ur.handler.UpdateUser)
	protected.PUT("/:id", validation.ValidateRequest(&dto.UpdateUserRequest{}), ur.handler.UpdateUser)
	protected.DELETE("/:id", ur.handler.DeleteUser)
}
