package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/laundrypos/backend/internal/domain/shared"
)

// Outcome records whether the audited operation succeeded
type Outcome string

const (
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomeDenied  Outcome = "DENIED"
)

// Action names for auditable operations
const (
	ActionOrderCreated    = "order.created"
	ActionPaymentRecorded = "order.payment_recorded"
	ActionOrderReady      = "order.ready"
	ActionOrderCollected  = "order.collected"
	ActionCollectDenied   = "order.collect_denied"
	ActionTenantSuspended = "tenant.suspended"
	ActionTenantGrace     = "tenant.grace_started"
	ActionTenantRestored  = "tenant.restored"
)

// Entry is one operational audit record. Entries are append-only; failing
// to write one never aborts the operation being audited.
type Entry struct {
	shared.BaseEntity
	TenantID   uuid.UUID
	ActorID    uuid.UUID
	Action     string
	EntityType string
	EntityID   uuid.UUID
	Outcome    Outcome
	Detail     string
}

// NewEntry creates an audit entry for an operation on an entity
func NewEntry(tenantID, actorID uuid.UUID, action, entityType string, entityID uuid.UUID, outcome Outcome, detail string) *Entry {
	return &Entry{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Outcome:    outcome,
		Detail:     detail,
	}
}

// Recorder accepts audit entries. Implementations must swallow their own
// failures; callers treat Record as fire-and-forget.
type Recorder interface {
	Record(ctx context.Context, entry *Entry)
}

// Repository defines persistence for audit entries
type Repository interface {
	Save(ctx context.Context, entry *Entry) error
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Entry, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}
