package cache

import (
	"go.uber.org/zap"

	"github.com/laundrypos/backend/internal/infrastructure/config"
)

// Factory builds cache-backed components from configuration, optionally
// falling back to in-memory implementations when Redis is unreachable.
type Factory struct {
	cfg              *config.Config
	logger           *zap.Logger
	inMemoryFallback bool
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithLogger sets the logger used for fallback warnings.
func WithLogger(l *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = l
	}
}

// WithInMemoryFallback makes the factory return in-memory implementations
// instead of failing when Redis cannot be reached. Only appropriate for
// single-instance deployments.
func WithInMemoryFallback() FactoryOption {
	return func(f *Factory) {
		f.inMemoryFallback = true
	}
}

// NewFactory creates a cache factory.
func NewFactory(cfg *config.Config, opts ...FactoryOption) *Factory {
	f := &Factory{
		cfg:    cfg,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateSubscriptionCache returns a Redis-backed cache, or an in-memory one
// when fallback is enabled and Redis is unavailable.
func (f *Factory) CreateSubscriptionCache() (SubscriptionCache, error) {
	c, err := NewRedisSubscriptionCache(f.cfg)
	if err != nil {
		if !f.inMemoryFallback {
			return nil, err
		}
		f.logger.Warn("redis unavailable, using in-memory subscription cache",
			zap.String("addr", f.cfg.Redis.Addr()),
			zap.Error(err),
		)
		return NewMemorySubscriptionCache(f.cfg.Subscription.CacheTTL), nil
	}
	return c, nil
}

// CreateAttemptLimiter returns a Redis-backed limiter, or an in-memory one
// when fallback is enabled and Redis is unavailable.
func (f *Factory) CreateAttemptLimiter() (AttemptLimiter, error) {
	l, err := NewRedisAttemptLimiter(f.cfg)
	if err != nil {
		if !f.inMemoryFallback {
			return nil, err
		}
		f.logger.Warn("redis unavailable, using in-memory attempt limiter",
			zap.String("addr", f.cfg.Redis.Addr()),
			zap.Error(err),
		)
		return NewMemoryAttemptLimiter(f.cfg.Subscription.CollectRetries, f.cfg.Subscription.CollectWindow), nil
	}
	return l, nil
}
