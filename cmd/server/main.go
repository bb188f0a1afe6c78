package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	auditapp "github.com/laundrypos/backend/internal/application/audit"
	identityapp "github.com/laundrypos/backend/internal/application/identity"
	laundryapp "github.com/laundrypos/backend/internal/application/laundry"
	partnerapp "github.com/laundrypos/backend/internal/application/partner"
	"github.com/laundrypos/backend/internal/infrastructure/auth"
	"github.com/laundrypos/backend/internal/infrastructure/cache"
	"github.com/laundrypos/backend/internal/infrastructure/config"
	"github.com/laundrypos/backend/internal/infrastructure/event"
	"github.com/laundrypos/backend/internal/infrastructure/logger"
	"github.com/laundrypos/backend/internal/infrastructure/persistence"
	"github.com/laundrypos/backend/internal/interfaces/http/handler"
	"github.com/laundrypos/backend/internal/interfaces/http/middleware"
	"github.com/laundrypos/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting laundry backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis-backed subscription cache and pickup attempt limiter. In
	// development they fall back to in-memory implementations when Redis
	// is unreachable; production requires Redis so the limits hold across
	// instances.
	cacheOpts := []cache.FactoryOption{cache.WithLogger(log)}
	if cfg.App.Env != "production" {
		cacheOpts = append(cacheOpts, cache.WithInMemoryFallback())
	}
	cacheFactory := cache.NewFactory(cfg, cacheOpts...)

	subscriptionCache, err := cacheFactory.CreateSubscriptionCache()
	if err != nil {
		log.Fatal("Failed to create subscription cache", zap.Error(err))
	}
	attemptLimiter, err := cacheFactory.CreateAttemptLimiter()
	if err != nil {
		log.Fatal("Failed to create attempt limiter", zap.Error(err))
	}

	// Repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)

	auditor := persistence.NewLoggedAuditRecorder(auditRepo, log)
	subscriptionGate := identityapp.NewCachedSubscriptionGate(tenantRepo, subscriptionCache, log)

	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewActivityLogger(log))

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	tenantService := identityapp.NewTenantService(tenantRepo, userRepo, auditor, subscriptionGate, cfg.Subscription.DefaultGrace, log)
	userService := identityapp.NewUserService(userRepo, log)
	customerService := partnerapp.NewCustomerService(customerRepo, log)
	orderService := laundryapp.NewOrderService(orderRepo, paymentRepo, customerRepo, subscriptionGate, attemptLimiter, auditor, eventBus, log)
	auditService := auditapp.NewService(auditRepo)

	// Per-IP limiter for login and a stricter per-tenant limiter for the
	// collect endpoint, where each request burns a pickup secret attempt.
	var loginLimiter gin.HandlerFunc
	if cfg.HTTP.AuthRateLimitEnabled {
		loginLimiter = middleware.RateLimitPerIP(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
	}
	collectLimiter := middleware.RateLimit(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService, loginLimiter)
	tenantHandler := handler.NewTenantHandler(tenantService)
	staffHandler := handler.NewStaffHandler(userService)
	customerHandler := handler.NewCustomerHandler(customerService)
	orderHandler := handler.NewOrderHandler(orderService, collectLimiter)
	auditHandler := handler.NewAuditHandler(auditService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack in order: request ID, panic recovery, request
	// logging, then the global rate limit.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoints (outside API versioning)
	engine.GET("/health", healthHandler(db))
	engine.GET("/ready", healthHandler(db))

	// API routes behind JWT authentication
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/login",
		},
		Logger: log,
	}))
	r.Register(authHandler).
		Register(tenantHandler).
		Register(staffHandler).
		Register(customerHandler).
		Register(orderHandler).
		Register(auditHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal and shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports liveness and database reachability
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
