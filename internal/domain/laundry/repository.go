package laundry

import (
	"context"

	"github.com/google/uuid"
	"github.com/laundrypos/backend/internal/domain/shared"
)

// OrderRepository defines persistence for the order aggregate.
//
// The ledger mutations (ApplyPayment, MarkReady, Collect) are conditional
// writes: the precondition is evaluated inside the UPDATE itself so that
// two concurrent requests can never both succeed against a stale read.
// When the conditional write matches no row the implementation re-reads
// the order and returns the domain error describing why it failed, or
// ErrOrderNotFound if the order does not exist for the tenant.
type OrderRepository interface {
	// Create persists a new order with its item snapshots and, when
	// initialPayment is non-nil, the opening payment in the same
	// transaction. A duplicate (tenant, idempotency key) pair returns
	// shared.ErrAlreadyExists.
	Create(ctx context.Context, order *Order, initialPayment *Payment) error

	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)
	FindByIdempotencyKey(ctx context.Context, tenantID uuid.UUID, key string) (*Order, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Order, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ApplyPayment atomically adds payment.Amount to the order ledger and
	// inserts the payment row. The write succeeds only while the order is
	// not collected and the new amount paid would not exceed the total.
	ApplyPayment(ctx context.Context, payment *Payment) (*Order, error)

	// MarkReady atomically transitions a CREATED or PROCESSING order to
	// READY and stores the pickup secret hash.
	MarkReady(ctx context.Context, tenantID, orderID uuid.UUID, secretHash string) (*Order, error)

	// Collect atomically transitions a READY, fully paid order to
	// COLLECTED, clearing the pickup secret hash and recording who
	// collected it.
	Collect(ctx context.Context, tenantID, orderID, collectedBy uuid.UUID) (*Order, error)
}

// PaymentRepository defines read access to the append-only payment ledger.
// Writes happen only through OrderRepository so the order totals and the
// ledger rows always move in one transaction.
type PaymentRepository interface {
	FindByOrderForTenant(ctx context.Context, tenantID, orderID uuid.UUID) ([]Payment, error)
	FindByIdempotencyKey(ctx context.Context, tenantID uuid.UUID, key string) (*Payment, error)
}
