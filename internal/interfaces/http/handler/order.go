package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	laundryapp "github.com/laundrypos/backend/internal/application/laundry"
	"github.com/laundrypos/backend/internal/interfaces/http/dto"
)

// OrderHandler handles order lifecycle API endpoints
type OrderHandler struct {
	BaseHandler
	orderService   *laundryapp.OrderService
	collectLimiter gin.HandlerFunc
}

// NewOrderHandler creates a new OrderHandler. collectLimiter, when
// non-nil, is applied to the collect endpoint on top of the global
// limiter.
func NewOrderHandler(orderService *laundryapp.OrderService, collectLimiter gin.HandlerFunc) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		collectLimiter: collectLimiter,
	}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.GetByID)
		orders.GET("/:id/payments", h.ListPayments)
		orders.POST("/:id/payments", h.RecordPayment)
		orders.POST("/:id/ready", h.MarkReady)
		if h.collectLimiter != nil {
			orders.POST("/:id/collect", h.collectLimiter, h.Collect)
		} else {
			orders.POST("/:id/collect", h.Collect)
		}
	}
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	tenantID, userID, ok := h.requireTenant(c)
	if !ok {
		return
	}

	var req laundryapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
		return
	}

	resp, err := h.orderService.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	// A replayed idempotency key returns the original order, not a new one.
	if resp.AlreadyApplied {
		h.Success(c, resp)
		return
	}
	h.Created(c, resp)
}

// GetByID handles GET /orders/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	tenantID, _, ok := h.requireTenant(c)
	if !ok {
		return
	}
	orderID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.orderService.GetByID(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	tenantID, _, ok := h.requireTenant(c)
	if !ok {
		return
	}

	var filter laundryapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
		return
	}

	page, err := h.orderService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// RecordPayment handles POST /orders/:id/payments
func (h *OrderHandler) RecordPayment(c *gin.Context) {
	tenantID, userID, ok := h.requireTenant(c)
	if !ok {
		return
	}
	orderID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req laundryapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
		return
	}

	resp, err := h.orderService.RecordPayment(c.Request.Context(), tenantID, userID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if resp.AlreadyApplied {
		h.Success(c, resp)
		return
	}
	h.Created(c, resp)
}

// ListPayments handles GET /orders/:id/payments
func (h *OrderHandler) ListPayments(c *gin.Context) {
	tenantID, _, ok := h.requireTenant(c)
	if !ok {
		return
	}
	orderID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	payments, err := h.orderService.ListPayments(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// MarkReady handles POST /orders/:id/ready
func (h *OrderHandler) MarkReady(c *gin.Context) {
	tenantID, userID, ok := h.requireTenant(c)
	if !ok {
		return
	}
	orderID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.orderService.MarkReady(c.Request.Context(), tenantID, userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Collect handles POST /orders/:id/collect
func (h *OrderHandler) Collect(c *gin.Context) {
	tenantID, userID, ok := h.requireTenant(c)
	if !ok {
		return
	}
	orderID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req laundryapp.CollectOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
		return
	}

	resp, err := h.orderService.Collect(c.Request.Context(), tenantID, userID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
