package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	identityapp "github.com/laundrypos/backend/internal/application/identity"
	"github.com/laundrypos/backend/internal/domain/identity"
	"github.com/laundrypos/backend/internal/interfaces/http/dto"
	"github.com/laundrypos/backend/internal/interfaces/http/middleware"
)

// TenantHandler handles platform administration of shop tenants
type TenantHandler struct {
	BaseHandler
	tenantService *identityapp.TenantService
}

func NewTenantHandler(tenantService *identityapp.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// RegisterRoutes registers tenant administration routes. All of them
// require the platform admin role.
func (h *TenantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin/tenants", middleware.RequireRole(string(identity.RoleAdmin)))
	{
		admin.POST("", h.Register)
		admin.GET("", h.List)
		admin.GET("/:id", h.GetByID)
		admin.POST("/:id/suspend", h.Suspend)
		admin.POST("/:id/grace", h.StartGrace)
		admin.POST("/:id/reinstate", h.Reinstate)
	}
}

// Register handles POST /admin/tenants
func (h *TenantHandler) Register(c *gin.Context) {
	var req identityapp.RegisterShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
		return
	}

	resp, err := h.tenantService.RegisterShop(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /admin/tenants
func (h *TenantHandler) List(c *gin.Context) {
	var filter identityapp.TenantListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
		return
	}

	tenants, total, err := h.tenantService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, tenants, total, page, pageSize)
}

// GetByID handles GET /admin/tenants/:id
func (h *TenantHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.tenantService.GetByID(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Suspend handles POST /admin/tenants/:id/suspend
func (h *TenantHandler) Suspend(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	tenantID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req identityapp.SuspendTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
		return
	}

	resp, err := h.tenantService.Suspend(c.Request.Context(), actorID, tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// StartGrace handles POST /admin/tenants/:id/grace
func (h *TenantHandler) StartGrace(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	tenantID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req identityapp.StartGraceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
		return
	}

	resp, err := h.tenantService.StartGrace(c.Request.Context(), actorID, tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reinstate handles POST /admin/tenants/:id/reinstate
func (h *TenantHandler) Reinstate(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	tenantID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.tenantService.Reinstate(c.Request.Context(), actorID, tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
