package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	cartapp "github.com/peeves/backend/internal/application/cart"
	catalogapp "github.com/peeves/backend/internal/application/catalog"
	checkoutapp "github.com/peeves/backend/internal/application/checkout"
	identityapp "github.com/peeves/backend/internal/application/identity"
	orderingapp "github.com/peeves/backend/internal/application/ordering"
	reportapp "github.com/peeves/backend/internal/application/report"
	"github.com/peeves/backend/internal/infrastructure/auth"
	"github.com/peeves/backend/internal/infrastructure/cache"
	"github.com/peeves/backend/internal/infrastructure/config"
	"github.com/peeves/backend/internal/infrastructure/event"
	"github.com/peeves/backend/internal/infrastructure/logger"
	"github.com/peeves/backend/internal/infrastructure/persistence"
	"github.com/peeves/backend/internal/infrastructure/storage"
	"github.com/peeves/backend/internal/infrastructure/telemetry"
	"github.com/peeves/backend/internal/interfaces/http/handler"
	"github.com/peeves/backend/internal/interfaces/http/middleware"
	"github.com/peeves/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

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

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Telemetry providers are no-ops unless enabled in config
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		if err := meterProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer func() {
		if err := loggerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()
	log = loggerProvider.BridgeLogger(log)

	profiler, err := telemetry.NewProfiler(cfg.Profiler, log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, cfg.Telemetry, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected")

	// Redis backs the server-side cart and the token blacklist
	redisClient, err := cache.NewRedisClient(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()
	cartStore := cache.NewRedisCartStore(redisClient, cfg.Cart.TTL)
	blacklist := auth.NewRedisTokenBlacklist(redisClient)
	log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Object storage is optional; without credentials the image endpoints
	// report storage as unconfigured
	var imageService *catalogapp.ProductImageService
	objectStorage, err := storage.NewS3ObjectStorage(&cfg.Storage,
		storage.WithLogger(log),
		storage.WithPresignExpiry(cfg.Storage.PresignExpiry),
	)
	if err != nil {
		log.Warn("Object storage disabled", zap.Error(err))
	} else {
		if err := objectStorage.EnsureBucket(ctx); err != nil {
			log.Warn("Failed to ensure storage bucket", zap.Error(err))
		}
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	productService := catalogapp.NewProductService(productRepo, log)
	if objectStorage != nil {
		imageService = catalogapp.NewProductImageService(productRepo, objectStorage, log)
	}
	cartService := cartapp.NewCartService(cartStore, productRepo, log)
	checkoutService := checkoutapp.NewCheckoutService(cartStore, orderRepo, log)
	orderService := orderingapp.NewOrderService(orderRepo, log)
	revenueService := reportapp.NewRevenueService(orderRepo, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	accountService := identityapp.NewAccountService(userRepo, log)

	// Event bus wiring
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(ctx); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()
	eventBus.Subscribe(event.NewAuditLogHandler(log))
	productService.SetEventPublisher(eventBus)
	checkoutService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)
	accountService.SetEventPublisher(eventBus)

	// Business metrics (no-op instruments when telemetry is disabled)
	metrics, err := telemetry.NewStorefrontMetrics(meterProvider.Meter("storefront"))
	if err != nil {
		log.Fatal("Failed to create metrics instruments", zap.Error(err))
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	if tracerProvider.IsEnabled() {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Liveness probe outside API versioning
	engine.GET("/health", healthHandler(db, func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	}))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler()).
		Register(handler.NewAuthHandler(authService)).
		Register(handler.NewAccountHandler(accountService)).
		Register(handler.NewProductHandler(productService, imageService)).
		Register(handler.NewCartHandler(cartService)).
		Register(handler.NewCheckoutHandler(checkoutService, metrics)).
		Register(handler.NewOrderHandler(orderService, metrics)).
		Register(handler.NewRevenueHandler(revenueService))
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
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports liveness of the database and redis
func healthHandler(db *persistence.Database, redisPing func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		dbStatus := "ok"
		redisStatus := "ok"

		if err := db.Ping(); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "error"
		}
		if err := redisPing(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			redisStatus = "error"
		}

		body := gin.H{
			"status":   "healthy",
			"time":     time.Now().UTC().Format(time.RFC3339),
			"database": dbStatus,
			"redis":    redisStatus,
		}
		if status != http.StatusOK {
			body["status"] = "unhealthy"
		}
		c.JSON(status, body)
	}
}
