package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laundrypos/backend/internal/domain/laundry"
)

func TestMemorySubscriptionCache_SetGet(t *testing.T) {
	c := NewMemorySubscriptionCache(time.Minute)
	ctx := context.Background()
	tenantID := uuid.New()

	state, found, err := c.Get(ctx, tenantID)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, state)

	require.NoError(t, c.Set(ctx, tenantID, laundry.SubscriptionActive))

	state, found, err = c.Get(ctx, tenantID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, laundry.SubscriptionActive, state)
}

func TestMemorySubscriptionCache_Expiry(t *testing.T) {
	c := NewMemorySubscriptionCache(time.Minute)
	ctx := context.Background()
	tenantID := uuid.New()

	base := time.Now()
	c.now = func() time.Time { return base }
	require.NoError(t, c.Set(ctx, tenantID, laundry.SubscriptionGrace))

	c.now = func() time.Time { return base.Add(30 * time.Second) }
	_, found, err := c.Get(ctx, tenantID)
	require.NoError(t, err)
	assert.True(t, found)

	c.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, found, err = c.Get(ctx, tenantID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemorySubscriptionCache_Invalidate(t *testing.T) {
	c := NewMemorySubscriptionCache(time.Minute)
	ctx := context.Background()
	tenantID := uuid.New()

	require.NoError(t, c.Set(ctx, tenantID, laundry.SubscriptionSuspended))
	require.NoError(t, c.Invalidate(ctx, tenantID))

	_, found, err := c.Get(ctx, tenantID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryAttemptLimiter_BlocksAfterLimit(t *testing.T) {
	l := NewMemoryAttemptLimiter(3, time.Minute)
	ctx := context.Background()
	tenantID := uuid.New()
	orderID := uuid.New()

	for i := 0; i < 3; i++ {
		ok, err := l.Allowed(ctx, tenantID, orderID)
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d should be allowed", i+1)
		require.NoError(t, l.RecordFailure(ctx, tenantID, orderID))
	}

	ok, err := l.Allowed(ctx, tenantID, orderID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryAttemptLimiter_IsolatedPerOrder(t *testing.T) {
	l := NewMemoryAttemptLimiter(1, time.Minute)
	ctx := context.Background()
	tenantID := uuid.New()
	blocked := uuid.New()
	other := uuid.New()

	require.NoError(t, l.RecordFailure(ctx, tenantID, blocked))

	ok, err := l.Allowed(ctx, tenantID, blocked)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = l.Allowed(ctx, tenantID, other)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryAttemptLimiter_WindowExpires(t *testing.T) {
	l := NewMemoryAttemptLimiter(1, time.Minute)
	ctx := context.Background()
	tenantID := uuid.New()
	orderID := uuid.New()

	base := time.Now()
	l.now = func() time.Time { return base }
	require.NoError(t, l.RecordFailure(ctx, tenantID, orderID))

	ok, err := l.Allowed(ctx, tenantID, orderID)
	require.NoError(t, err)
	assert.False(t, ok)

	l.now = func() time.Time { return base.Add(2 * time.Minute) }
	ok, err = l.Allowed(ctx, tenantID, orderID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryAttemptLimiter_Reset(t *testing.T) {
	l := NewMemoryAttemptLimiter(1, time.Minute)
	ctx := context.Background()
	tenantID := uuid.New()
	orderID := uuid.New()

	require.NoError(t, l.RecordFailure(ctx, tenantID, orderID))
	require.NoError(t, l.Reset(ctx, tenantID, orderID))

	ok, err := l.Allowed(ctx, tenantID, orderID)
	require.NoError(t, err)
	assert.True(t, ok)
}
