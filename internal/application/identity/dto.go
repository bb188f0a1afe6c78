package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/laundrypos/backend/internal/domain/identity"
	"github.com/laundrypos/backend/internal/infrastructure/auth"
)

// LoginInput represents a login request
type LoginInput struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginResult contains the issued token and the authenticated user
type LoginResult struct {
	Token *auth.Token  `json:"token"`
	User  UserResponse `json:"user"`
}

// RegisterShopRequest creates a shop together with its owner account
type RegisterShopRequest struct {
	Code          string `json:"code" binding:"required,min=2,max=20"`
	Name          string `json:"name" binding:"required,min=1,max=200"`
	ContactPhone  string `json:"contact_phone"`
	ContactEmail  string `json:"contact_email" binding:"omitempty,email"`
	OwnerUsername string `json:"owner_username" binding:"required,min=3,max=50"`
	OwnerPassword string `json:"owner_password" binding:"required,min=8,max=72"`
	OwnerName     string `json:"owner_name"`
}

// RegisterShopResponse returns the created shop and owner
type RegisterShopResponse struct {
	Tenant TenantResponse `json:"tenant"`
	Owner  UserResponse   `json:"owner"`
}

// SuspendTenantRequest suspends a shop
type SuspendTenantRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// StartGraceRequest moves a shop into its grace window. When Until is nil
// the configured default grace duration applies.
type StartGraceRequest struct {
	Until *time.Time `json:"until"`
}

// CreateStaffRequest creates a staff account in the caller's shop
type CreateStaffRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	DisplayName string `json:"display_name" binding:"max=100"`
}

// ChangePasswordRequest changes the caller's own password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// TenantListFilter represents filter options for the admin tenant list
type TenantListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=ACTIVE GRACE SUSPENDED"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// UserResponse is the API shape of a user
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    *uuid.UUID `json:"tenant_id,omitempty"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TenantResponse is the API shape of a shop
type TenantResponse struct {
	ID            uuid.UUID  `json:"id"`
	Code          string     `json:"code"`
	Name          string     `json:"name"`
	ContactPhone  string     `json:"contact_phone,omitempty"`
	ContactEmail  string     `json:"contact_email,omitempty"`
	Status        string     `json:"status"`
	GraceEndsAt   *time.Time `json:"grace_ends_at,omitempty"`
	SuspendedAt   *time.Time `json:"suspended_at,omitempty"`
	SuspendReason string     `json:"suspend_reason,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ToUserResponse converts a domain user to its API shape
func ToUserResponse(u *identity.User) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
	if u.TenantID != uuid.Nil {
		tenantID := u.TenantID
		resp.TenantID = &tenantID
	}
	return resp
}

// ToTenantResponse converts a domain tenant to its API shape
func ToTenantResponse(t *identity.Tenant) TenantResponse {
	return TenantResponse{
		ID:            t.ID,
		Code:          t.Code,
		Name:          t.Name,
		ContactPhone:  t.ContactPhone,
		ContactEmail:  t.ContactEmail,
		Status:        string(t.Status),
		GraceEndsAt:   t.GraceEndsAt,
		SuspendedAt:   t.SuspendedAt,
		SuspendReason: t.SuspendReason,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
