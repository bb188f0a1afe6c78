package laundry

import "github.com/laundrypos/backend/internal/domain/shared"

// Domain errors for the order lifecycle and payment ledger
var (
	ErrOrderNotFound      = shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	ErrInvalidTransition  = shared.NewDomainError("INVALID_TRANSITION", "Order cannot transition to the requested status")
	ErrOrderCollected     = shared.NewDomainError("ORDER_COLLECTED", "Order has already been collected")
	ErrExceedsBalance     = shared.NewDomainError("EXCEEDS_BALANCE", "Payment amount exceeds outstanding balance")
	ErrOutstandingBalance = shared.NewDomainError("OUTSTANDING_BALANCE", "Order has an outstanding balance")
	ErrNotReady           = shared.NewDomainError("NOT_READY", "Order is not ready for collection")
	ErrInvalidSecret      = shared.NewDomainError("INVALID_SECRET", "Pickup secret does not match")
	ErrTenantSuspended    = shared.NewDomainError("TENANT_SUSPENDED", "Shop subscription is suspended")
	ErrTenantInGrace      = shared.NewDomainError("TENANT_IN_GRACE", "Shop subscription is in its grace period; only reads are allowed")
	ErrGateUnavailable    = shared.NewDomainError("GATE_UNAVAILABLE", "Subscription status could not be determined")
)
