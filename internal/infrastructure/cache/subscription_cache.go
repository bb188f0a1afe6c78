package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/laundrypos/backend/internal/domain/laundry"
	"github.com/laundrypos/backend/internal/infrastructure/config"
)

// ErrCacheUnavailable is returned when the backing store cannot be reached.
var ErrCacheUnavailable = errors.New("subscription cache unavailable")

// SubscriptionCache holds recent subscription gate verdicts so that hot
// order operations do not hit the tenant store on every request.
type SubscriptionCache interface {
	// Get returns the cached state for a tenant. The second return value
	// reports whether a fresh entry was found.
	Get(ctx context.Context, tenantID uuid.UUID) (laundry.SubscriptionState, bool, error)

	// Set stores the state for a tenant for the configured TTL.
	Set(ctx context.Context, tenantID uuid.UUID, state laundry.SubscriptionState) error

	// Invalidate drops the cached entry so the next check re-reads the
	// tenant record. Called when a tenant is suspended or reinstated.
	Invalidate(ctx context.Context, tenantID uuid.UUID) error
}

// RedisSubscriptionCache stores gate verdicts in Redis with a TTL.
type RedisSubscriptionCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisSubscriptionCache connects to Redis using the given configuration
// and verifies the connection with a ping.
func NewRedisSubscriptionCache(cfg *config.Config) (*RedisSubscriptionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisSubscriptionCacheWithClient(client, "subscription:", cfg.Subscription.CacheTTL), nil
}

// NewRedisSubscriptionCacheWithClient creates a cache around an existing
// client. Useful for tests.
func NewRedisSubscriptionCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisSubscriptionCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisSubscriptionCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (c *RedisSubscriptionCache) key(tenantID uuid.UUID) string {
	return c.keyPrefix + tenantID.String()
}

func (c *RedisSubscriptionCache) Get(ctx context.Context, tenantID uuid.UUID) (laundry.SubscriptionState, bool, error) {
	val, err := c.client.Get(ctx, c.key(tenantID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}

	state := laundry.SubscriptionState(val)
	switch state {
	case laundry.SubscriptionActive, laundry.SubscriptionGrace, laundry.SubscriptionSuspended:
		return state, true, nil
	default:
		// Unknown value, treat as a miss so the caller re-reads the source.
		return "", false, nil
	}
}

func (c *RedisSubscriptionCache) Set(ctx context.Context, tenantID uuid.UUID, state laundry.SubscriptionState) error {
	if err := c.client.Set(ctx, c.key(tenantID), string(state), c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return nil
}

func (c *RedisSubscriptionCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(tenantID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (c *RedisSubscriptionCache) Close() error {
	return c.client.Close()
}

var _ SubscriptionCache = (*RedisSubscriptionCache)(nil)
