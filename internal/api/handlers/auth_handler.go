package handlers

import (
	"errors"
	"net/http"

	"github.com/ctgmao2/planwise/internal/api/dto"
	"github.com/ctgmao2/planwise/internal/domain/user"
	"github.com/ctgmao2/planwise/pkg/config"
	"github.com/ctgmao2/planwise/pkg/security/auth"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles login requests
type AuthHandler struct {
	users user.Service
	cfg   *config.Config
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(users user.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, cfg: cfg}
}

// Login verifies credentials and issues a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if model, exists := c.Get("validated_model"); exists {
		if ptr, ok := model.(*dto.LoginRequest); ok {
			req = *ptr
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := auth.GenerateToken(u.ID, u.Username, u.Role,
		h.cfg.Auth.JWTSecret, h.cfg.Auth.JWTIssuer, h.cfg.Auth.JWTExpiryHours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.LoginResponse{
		Token: token,
		User:  *UserToResponse(u),
	}})
}
