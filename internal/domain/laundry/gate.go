package laundry

import (
	"context"

	"github.com/google/uuid"
)

// SubscriptionState is the billing standing of a shop as seen by the gate
type SubscriptionState string

const (
	SubscriptionActive    SubscriptionState = "ACTIVE"
	SubscriptionGrace     SubscriptionState = "GRACE"
	SubscriptionSuspended SubscriptionState = "SUSPENDED"
)

// SubscriptionGate answers whether a shop may perform mutating operations.
// Only ACTIVE allows writes; GRACE and SUSPENDED block them while reads
// stay available. When the standing cannot be determined the gate must
// fail closed and return ErrGateUnavailable rather than a state.
type SubscriptionGate interface {
	Check(ctx context.Context, tenantID uuid.UUID) (SubscriptionState, error)
}

// RequireWritable maps a gate state to the error a mutating operation
// must return, or nil when writes are allowed.
func (s SubscriptionState) RequireWritable() error {
	switch s {
	case SubscriptionActive:
		return nil
	case SubscriptionGrace:
		return ErrTenantInGrace
	case SubscriptionSuspended:
		return ErrTenantSuspended
	default:
		return ErrGateUnavailable
	}
}
