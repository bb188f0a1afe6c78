package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/laundrypos/backend/internal/infrastructure/config"
)

// AttemptLimiter counts failed pickup-secret attempts per order and blocks
// further attempts once the limit is reached within the window.
type AttemptLimiter interface {
	// Allowed reports whether another attempt may be made for the order.
	Allowed(ctx context.Context, tenantID, orderID uuid.UUID) (bool, error)

	// RecordFailure registers a failed attempt. The first failure in a
	// window starts the window.
	RecordFailure(ctx context.Context, tenantID, orderID uuid.UUID) error

	// Reset clears the counter, called after a successful collection.
	Reset(ctx context.Context, tenantID, orderID uuid.UUID) error
}

// RedisAttemptLimiter tracks failed attempts in Redis so the limit holds
// across server instances.
type RedisAttemptLimiter struct {
	client     *redis.Client
	keyPrefix  string
	maxRetries int
	window     time.Duration
}

// NewRedisAttemptLimiter connects to Redis and verifies the connection.
func NewRedisAttemptLimiter(cfg *config.Config) (*RedisAttemptLimiter, error) {
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

	return NewRedisAttemptLimiterWithClient(client, "collect_attempts:", cfg.Subscription.CollectRetries, cfg.Subscription.CollectWindow), nil
}

// NewRedisAttemptLimiterWithClient creates a limiter around an existing
// client. Useful for tests.
func NewRedisAttemptLimiterWithClient(client *redis.Client, keyPrefix string, maxRetries int, window time.Duration) *RedisAttemptLimiter {
	if maxRetries <= 0 {
		maxRetries = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &RedisAttemptLimiter{
		client:     client,
		keyPrefix:  keyPrefix,
		maxRetries: maxRetries,
		window:     window,
	}
}

func (l *RedisAttemptLimiter) key(tenantID, orderID uuid.UUID) string {
	return l.keyPrefix + tenantID.String() + ":" + orderID.String()
}

func (l *RedisAttemptLimiter) Allowed(ctx context.Context, tenantID, orderID uuid.UUID) (bool, error) {
	count, err := l.client.Get(ctx, l.key(tenantID, orderID)).Int()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return count < l.maxRetries, nil
}

func (l *RedisAttemptLimiter) RecordFailure(ctx context.Context, tenantID, orderID uuid.UUID) error {
	key := l.key(tenantID, orderID)

	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return nil
}

func (l *RedisAttemptLimiter) Reset(ctx context.Context, tenantID, orderID uuid.UUID) error {
	if err := l.client.Del(ctx, l.key(tenantID, orderID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return nil
}

var _ AttemptLimiter = (*RedisAttemptLimiter)(nil)

// MemoryAttemptLimiter is an in-process AttemptLimiter for single-instance
// deployments and tests.
type MemoryAttemptLimiter struct {
	mu         sync.Mutex
	counters   map[string]*attemptWindow
	maxRetries int
	window     time.Duration
	now        func() time.Time
}

type attemptWindow struct {
	count     int
	expiresAt time.Time
}

// NewMemoryAttemptLimiter creates an in-memory limiter.
func NewMemoryAttemptLimiter(maxRetries int, window time.Duration) *MemoryAttemptLimiter {
	if maxRetries <= 0 {
		maxRetries = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &MemoryAttemptLimiter{
		counters:   make(map[string]*attemptWindow),
		maxRetries: maxRetries,
		window:     window,
		now:        time.Now,
	}
}

func (l *MemoryAttemptLimiter) key(tenantID, orderID uuid.UUID) string {
	return tenantID.String() + ":" + orderID.String()
}

func (l *MemoryAttemptLimiter) Allowed(_ context.Context, tenantID, orderID uuid.UUID) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.counters[l.key(tenantID, orderID)]
	if !ok {
		return true, nil
	}
	if l.now().After(w.expiresAt) {
		delete(l.counters, l.key(tenantID, orderID))
		return true, nil
	}
	return w.count < l.maxRetries, nil
}

func (l *MemoryAttemptLimiter) RecordFailure(_ context.Context, tenantID, orderID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := l.key(tenantID, orderID)
	w, ok := l.counters[key]
	if !ok || l.now().After(w.expiresAt) {
		l.counters[key] = &attemptWindow{count: 1, expiresAt: l.now().Add(l.window)}
		return nil
	}
	w.count++
	return nil
}

func (l *MemoryAttemptLimiter) Reset(_ context.Context, tenantID, orderID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.counters, l.key(tenantID, orderID))
	return nil
}

var _ AttemptLimiter = (*MemoryAttemptLimiter)(nil)
