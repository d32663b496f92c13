package routes

import (
	"github.com/ctgmao2/planwise/internal/api/dto"
	"github.com/ctgmao2/planwise/internal/api/handlers"
	"github.com/ctgmao2/planwise/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// AuthRoutes handles the setup of auth-related routes
type AuthRoutes struct {
	handler *handlers.AuthHandler
}

// NewAuthRoutes creates a new AuthRoutes instance
func NewAuthRoutes(handler *handlers.AuthHandler) *AuthRoutes {
	return &AuthRoutes{handler: handler}
}

// RegisterRoutes registers all auth-related routes
func (ar *AuthRoutes) RegisterRoutes(router *gin.Engine, validation *middleware.ValidationMiddleware) {
	authGroup := router.Group("/api/auth")

	authGroup.POST("/login", validation.ValidateRequest(&dto.LoginRequest{}), ar.handler.Login)
}
