package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	auditapp "github.com/laundrypos/backend/internal/application/audit"
	"github.com/laundrypos/backend/internal/domain/identity"
	"github.com/laundrypos/backend/internal/interfaces/http/dto"
	"github.com/laundrypos/backend/internal/interfaces/http/middleware"
)

// AuditHandler exposes the shop audit trail, read only
type AuditHandler struct {
	BaseHandler
	auditService *auditapp.Service
}

func NewAuditHandler(auditService *auditapp.Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// RegisterRoutes registers audit routes for owners and platform admins
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	audit := rg.Group("/audit", middleware.RequireRole(string(identity.RoleOwner), string(identity.RoleAdmin)))
	{
		audit.GET("", h.List)
	}
}

// List handles GET /audit
func (h *AuditHandler) List(c *gin.Context) {
	tenantID, _, ok := h.requireTenant(c)
	if !ok {
		return
	}

	var filter auditapp.EntryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.auditService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
