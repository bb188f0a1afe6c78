package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	identityapp "github.com/laundrypos/backend/internal/application/identity"
	"github.com/laundrypos/backend/internal/domain/identity"
	"github.com/laundrypos/backend/internal/interfaces/http/dto"
	"github.com/laundrypos/backend/internal/interfaces/http/middleware"
)

// StaffHandler lets shop owners manage their staff accounts
type StaffHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

func NewStaffHandler(userService *identityapp.UserService) *StaffHandler {
	return &StaffHandler{userService: userService}
}

// RegisterRoutes registers staff management routes, owner-only
func (h *StaffHandler) RegisterRoutes(rg *gin.RouterGroup) {
	staff := rg.Group("/staff", middleware.RequireRole(string(identity.RoleOwner)))
	{
		staff.POST("", h.Create)
		staff.GET("", h.List)
		staff.POST("/:id/disable", h.Disable)
		staff.POST("/:id/enable", h.Enable)
	}
}

// Create handles POST /staff
func (h *StaffHandler) Create(c *gin.Context) {
	tenantID, _, ok := h.requireTenant(c)
	if !ok {
		return
	}

	var req identityapp.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
		return
	}

	resp, err := h.userService.CreateStaff(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /staff
func (h *StaffHandler) List(c *gin.Context) {
	tenantID, _, ok := h.requireTenant(c)
	if !ok {
		return
	}

	users, err := h.userService.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, users)
}

// Disable handles POST /staff/:id/disable
func (h *StaffHandler) Disable(c *gin.Context) {
	tenantID, _, ok := h.requireTenant(c)
	if !ok {
		return
	}
	userID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.userService.Disable(c.Request.Context(), tenantID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Enable handles POST /staff/:id/enable
func (h *StaffHandler) Enable(c *gin.Context) {
	tenantID, _, ok := h.requireTenant(c)
	if !ok {
		return
	}
	userID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.userService.Enable(c.Request.Context(), tenantID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
