package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/laundrypos/backend/internal/domain/identity"
	"github.com/laundrypos/backend/internal/domain/laundry"
	"github.com/laundrypos/backend/internal/domain/shared"
	"github.com/laundrypos/backend/internal/infrastructure/cache"
)

// CachedSubscriptionGate derives a shop's subscription standing from its
// tenant record and keeps recent verdicts in a short-lived cache. It fails
// closed: when neither the cache nor the tenant store can answer, mutating
// operations are refused with ErrGateUnavailable.
type CachedSubscriptionGate struct {
	tenantRepo identity.TenantRepository
	cache      cache.SubscriptionCache
	logger     *zap.Logger
	now        func() time.Time
}

// NewCachedSubscriptionGate creates a gate backed by the tenant repository
// and the given verdict cache.
func NewCachedSubscriptionGate(tenantRepo identity.TenantRepository, c cache.SubscriptionCache, logger *zap.Logger) *CachedSubscriptionGate {
	return &CachedSubscriptionGate{
		tenantRepo: tenantRepo,
		cache:      c,
		logger:     logger.Named("subscription_gate"),
		now:        time.Now,
	}
}

// Check returns the shop's current standing. Cache errors are tolerated as
// long as the tenant store answers; a store failure fails the check.
func (g *CachedSubscriptionGate) Check(ctx context.Context, tenantID uuid.UUID) (laundry.SubscriptionState, error) {
	if state, found, err := g.cache.Get(ctx, tenantID); err == nil && found {
		return state, nil
	} else if err != nil {
		g.logger.Warn("subscription cache read failed, falling through to store",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
	}

	tenant, err := g.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// An unknown tenant has no standing; refuse the write.
			return "", laundry.ErrGateUnavailable
		}
		g.logger.Error("tenant lookup failed, gate failing closed",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
		return "", laundry.ErrGateUnavailable
	}

	state := tenant.SubscriptionState(g.now())
	if err := g.cache.Set(ctx, tenantID, state); err != nil {
		g.logger.Warn("subscription cache write failed",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
	}
	return state, nil
}

// Invalidate drops the cached verdict so the next check sees the stored
// tenant record. Called after suspension state changes.
func (g *CachedSubscriptionGate) Invalidate(ctx context.Context, tenantID uuid.UUID) {
	if err := g.cache.Invalidate(ctx, tenantID); err != nil {
		g.logger.Warn("subscription cache invalidation failed",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
	}
}

var _ laundry.SubscriptionGate = (*CachedSubscriptionGate)(nil)
