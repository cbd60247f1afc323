package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/khata/internal/adapter/http"
	"github.com/iho/khata/internal/adapter/http/handler"
	"github.com/iho/khata/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/khata/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/khata/internal/adapter/repository/redis"
	"github.com/iho/khata/internal/infrastructure/config"
	"github.com/iho/khata/internal/infrastructure/logger"
	"github.com/iho/khata/internal/infrastructure/metrics"
	"github.com/iho/khata/internal/infrastructure/postgres"
	"github.com/iho/khata/internal/infrastructure/redis"
	"github.com/iho/khata/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("server failed")
	}

	appLogger.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, l zerolog.Logger) error {
	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, l); err != nil {
			return err
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	l.Info().Msg("connected to postgres")

	// Connect to Redis
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, redis.Config{URL: cfg.RedisURL})
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()
		l.Info().Msg("connected to redis")
	} else {
		l.Warn().Msg("REDIS_URL is empty, Idempotency-Key replay disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	rl := newRateLimiter(cfg)
	if rl != nil {
		go rl.RunCleanup(ctx, 10*time.Minute, time.Hour)
	}

	router := newRouter(cfg, l, registry, pool, redisClient, rl)

	server := newServer(cfg, router)

	errCh := make(chan error, 1)
	go func() {
		l.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	l.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	return nil
}

func newRouter(cfg *config.Config, l zerolog.Logger, registry *prometheus.Registry, pool *pgxpool.Pool, redisClient *goredis.Client, rl *middleware.RateLimiter) http.Handler {
	m := metrics.NewWithRegisterer(registry)
	clock := usecase.SystemClock{}

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	customerRepo := postgresRepo.NewCustomerRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	reminderRepo := postgresRepo.NewReminderRepository(pool)
	retrier := postgresRepo.NewRetrier(l)
	idGen := postgresRepo.NewULIDGenerator(clock)

	// Initialize use cases
	customerUC := usecase.NewCustomerUseCase(customerRepo, idGen, clock, m)
	transactionUC := usecase.NewTransactionUseCase(txManager, customerRepo, transactionRepo, retrier, idGen, clock, m, l)
	reminderUC := usecase.NewReminderUseCase(reminderRepo, idGen, clock, m)
	summaryUC := usecase.NewSummaryUseCase(customerRepo, transactionRepo, clock, m)
	ledgerUC := usecase.NewLedgerUseCase(txManager, customerRepo, transactionRepo, clock, m)

	routerCfg := httpAdapter.RouterConfig{
		CustomerHandler:    handler.NewCustomerHandler(customerUC),
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		ReminderHandler:    handler.NewReminderHandler(reminderUC),
		SummaryHandler:     handler.NewSummaryHandler(summaryUC),
		LedgerHandler:      handler.NewLedgerHandler(ledgerUC),
		IdempotencyTTL:     cfg.IdempotencyTTL,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		HTTPMetrics:        middleware.NewHTTPMetrics(registry),
		RateLimiter:        rl,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:             l,
	}

	if redisClient != nil {
		routerCfg.IdempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		routerCfg.HealthHandler = handler.NewHealthHandler(pool, handler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}))
	} else {
		routerCfg.HealthHandler = handler.NewHealthHandler(pool, nil)
	}

	return httpAdapter.NewRouter(routerCfg)
}

// newRateLimiter returns nil when rate limiting is disabled.
func newRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	if cfg.RateLimitRPS <= 0 {
		return nil
	}
	return middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
}

func newServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           h,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}
}
