package identity

import (
	"strings"
	"time"

	"github.com/laundrypos/backend/internal/domain/laundry"
	"github.com/laundrypos/backend/internal/domain/shared"
)

// TenantStatus represents the subscription standing of a shop
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "ACTIVE"
	TenantStatusGrace     TenantStatus = "GRACE"     // Payment overdue, writes blocked, reads allowed
	TenantStatusSuspended TenantStatus = "SUSPENDED" // Writes blocked, reads allowed
)

// IsValid checks if the status is a known TenantStatus
func (s TenantStatus) IsValid() bool {
	switch s {
	case TenantStatusActive, TenantStatusGrace, TenantStatusSuspended:
		return true
	}
	return false
}

// Tenant represents one laundry shop in the multi-tenant system.
// It is the aggregate root for subscription standing.
type Tenant struct {
	shared.BaseAggregateRoot
	Code          string
	Name          string
	ContactPhone  string
	ContactEmail  string
	Status        TenantStatus
	GraceEndsAt   *time.Time
	SuspendedAt   *time.Time
	SuspendReason string
}

// NewTenant creates a new shop in active standing
func NewTenant(code, name string) (*Tenant, error) {
	if err := validateTenantCode(code); err != nil {
		return nil, err
	}
	if err := validateTenantName(name); err != nil {
		return nil, err
	}

	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            TenantStatusActive,
	}, nil
}

// EnterGrace moves the shop into the grace window that precedes suspension.
// Writes are already blocked during grace; the distinct status lets clients
// tell the owner why.
func (t *Tenant) EnterGrace(until time.Time) error {
	if t.Status == TenantStatusSuspended {
		return shared.NewDomainError("INVALID_STATE", "Suspended shop cannot enter grace")
	}
	t.Status = TenantStatusGrace
	t.GraceEndsAt = &until
	t.UpdatedAt = time.Now()
	return nil
}

// Suspend blocks the shop's mutating operations. Reads stay available so
// the owner can still see their data.
func (t *Tenant) Suspend(reason string) {
	now := time.Now()
	t.Status = TenantStatusSuspended
	t.SuspendedAt = &now
	t.SuspendReason = reason
	t.GraceEndsAt = nil
	t.UpdatedAt = now
}

// Reinstate returns the shop to active standing
func (t *Tenant) Reinstate() {
	t.Status = TenantStatusActive
	t.SuspendedAt = nil
	t.SuspendReason = ""
	t.GraceEndsAt = nil
	t.UpdatedAt = time.Now()
}

// SubscriptionState maps the shop standing onto the gate vocabulary.
// An expired grace window counts as suspended even before the billing
// job has flipped the status.
func (t *Tenant) SubscriptionState(now time.Time) laundry.SubscriptionState {
	switch t.Status {
	case TenantStatusActive:
		return laundry.SubscriptionActive
	case TenantStatusGrace:
		if t.GraceEndsAt != nil && now.After(*t.GraceEndsAt) {
			return laundry.SubscriptionSuspended
		}
		return laundry.SubscriptionGrace
	default:
		return laundry.SubscriptionSuspended
	}
}

// IsSuspended returns true if mutating operations are blocked
func (t *Tenant) IsSuspended(now time.Time) bool {
	return t.SubscriptionState(now) == laundry.SubscriptionSuspended
}

func validateTenantCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Shop code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Shop code cannot exceed 50 characters")
	}
	return nil
}

func validateTenantName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Shop name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Shop name cannot exceed 200 characters")
	}
	return nil
}
