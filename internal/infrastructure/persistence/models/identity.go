package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/laundrypos/backend/internal/domain/identity"
	"github.com/laundrypos/backend/internal/domain/shared"
)

// TenantModel is the persistence model for the Tenant aggregate root.
type TenantModel struct {
	AggregateModel
	Code          string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string                `gorm:"type:varchar(200);not null"`
	ContactPhone  string                `gorm:"type:varchar(50)"`
	ContactEmail  string                `gorm:"type:varchar(200)"`
	Status        identity.TenantStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	GraceEndsAt   *time.Time
	SuspendedAt   *time.Time
	SuspendReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant entity.
func (m *TenantModel) ToDomain() *identity.Tenant {
	return &identity.Tenant{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Code:          m.Code,
		Name:          m.Name,
		ContactPhone:  m.ContactPhone,
		ContactEmail:  m.ContactEmail,
		Status:        m.Status,
		GraceEndsAt:   m.GraceEndsAt,
		SuspendedAt:   m.SuspendedAt,
		SuspendReason: m.SuspendReason,
	}
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant entity.
func TenantModelFromDomain(t *identity.Tenant) *TenantModel {
	m := &TenantModel{
		Code:          t.Code,
		Name:          t.Name,
		ContactPhone:  t.ContactPhone,
		ContactEmail:  t.ContactEmail,
		Status:        t.Status,
		GraceEndsAt:   t.GraceEndsAt,
		SuspendedAt:   t.SuspendedAt,
		SuspendReason: t.SuspendReason,
	}
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	return m
}

// UserModel is the persistence model for the User aggregate root.
type UserModel struct {
	AggregateModel
	TenantID     uuid.UUID           `gorm:"type:uuid;index"`
	Username     string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	PasswordHash string              `gorm:"type:varchar(100);not null"`
	DisplayName  string              `gorm:"type:varchar(100)"`
	Role         identity.UserRole   `gorm:"type:varchar(20);not null"`
	Status       identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		TenantID:     m.TenantID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		DisplayName:  m.DisplayName,
		Role:         m.Role,
		Status:       m.Status,
		LastLoginAt:  m.LastLoginAt,
	}
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		TenantID:     u.TenantID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		DisplayName:  u.DisplayName,
		Role:         u.Role,
		Status:       u.Status,
		LastLoginAt:  u.LastLoginAt,
	}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	return m
}
