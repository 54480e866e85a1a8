package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/okhan/bookledger/internal/adapter/http"
	"github.com/okhan/bookledger/internal/adapter/http/handler"
	"github.com/okhan/bookledger/internal/adapter/http/middleware"
	postgresRepo "github.com/okhan/bookledger/internal/adapter/repository/postgres"
	redisRepo "github.com/okhan/bookledger/internal/adapter/repository/redis"
	"github.com/okhan/bookledger/internal/infrastructure/config"
	"github.com/okhan/bookledger/internal/infrastructure/logger"
	"github.com/okhan/bookledger/internal/infrastructure/metrics"
	"github.com/okhan/bookledger/internal/infrastructure/postgres"
	"github.com/okhan/bookledger/internal/infrastructure/redis"
	"github.com/okhan/bookledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Run migrations before opening the pool
	if cfg.MigrationsPath != "" {
		if err := postgres.RunMigrations(log.Logger, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis. The service degrades to uncached, non-idempotent
	// operation when Redis is down.
	var (
		cache            usecase.Cache
		idempotencyStore usecase.IdempotencyStore
	)

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without cache and idempotency")
		redisClient = nil
	} else {
		defer redisClient.Close()
		cache = redisRepo.NewCache(redisClient)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		log.Info().Msg("connected to redis")
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	m.DBConnections.Set(float64(cfg.DatabaseMaxConns))

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	partyRepo := postgresRepo.NewPartyRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log.Logger)

	// Initialize use cases
	partyUC := usecase.NewPartyUseCase(partyRepo, cache)
	ledgerUC := usecase.NewLedgerUseCase(txManager, partyRepo, txnRepo, idGen, retrier, cache)
	txnUC := usecase.NewTransactionUseCase(txnRepo)
	reconUC := usecase.NewReconciliationUseCase(partyRepo, txnRepo, ledgerRepo)

	// Initialize handlers
	partyHandler := handler.NewPartyHandler(partyUC, m)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC, m)
	txnHandler := handler.NewTransactionHandler(txnUC)
	reconHandler := handler.NewReconciliationHandler(reconUC, m)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		PartyHandler:          partyHandler,
		LedgerHandler:         ledgerHandler,
		TransactionHandler:    txnHandler,
		ReconciliationHandler: reconHandler,
		HealthHandler:         healthHandler,
		IdempotencyStore:      idempotencyStore,
		RateLimiter:           middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
