package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okhan/bookledger/internal/adapter/http/handler"
	"github.com/okhan/bookledger/internal/adapter/http/middleware"
	"github.com/okhan/bookledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	PartyHandler          *handler.PartyHandler
	LedgerHandler         *handler.LedgerHandler
	TransactionHandler    *handler.TransactionHandler
	ReconciliationHandler *handler.ReconciliationHandler
	HealthHandler         *handler.HealthHandler
	IdempotencyStore      usecase.IdempotencyStore
	RateLimiter           *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Parties
		r.Route("/parties", func(r chi.Router) {
			r.Post("/", cfg.PartyHandler.Create)
			r.Get("/", cfg.PartyHandler.List)
			r.Get("/{id}", cfg.PartyHandler.Get)
			r.Put("/{id}", cfg.PartyHandler.Update)
			r.Delete("/{id}", cfg.PartyHandler.Delete)
			r.Get("/{id}/transactions", cfg.TransactionHandler.ListByParty)
			r.Get("/{id}/reconciliation", cfg.ReconciliationHandler.ReconcileParty)
		})

		// Ledger operations
		r.Route("/ledger", func(r chi.Router) {
			r.Post("/settle-up", cfg.LedgerHandler.SettleUp)
			r.Post("/transfers", cfg.LedgerHandler.Transfer)
			r.Get("/transfers/{id}", cfg.TransactionHandler.GetTransfer)
			r.Get("/consistency", cfg.ReconciliationHandler.CheckConsistency)
		})
	})

	return r
}
