package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	identityapp "github.com/laundrypos/backend/internal/application/identity"
	"github.com/laundrypos/backend/internal/interfaces/http/dto"
	"github.com/laundrypos/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication API endpoints
type AuthHandler struct {
	BaseHandler
	authService  *identityapp.AuthService
	loginLimiter gin.HandlerFunc
}

// NewAuthHandler creates a new AuthHandler. loginLimiter, when non-nil,
// is applied to the login endpoint.
func NewAuthHandler(authService *identityapp.AuthService, loginLimiter gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		loginLimiter: loginLimiter,
	}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		if h.loginLimiter != nil {
			auth.POST("/login", h.loginLimiter, h.Login)
		} else {
			auth.POST("/login", h.Login)
		}
		auth.POST("/password", h.ChangePassword)
		auth.GET("/me", h.Me)
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ChangePassword handles POST /auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Me handles GET /auth/me and returns the caller's claims
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	h.Success(c, gin.H{
		"user_id":   claims.UserID,
		"tenant_id": claims.TenantID,
		"username":  claims.Username,
		"role":      claims.Role,
	})
}
