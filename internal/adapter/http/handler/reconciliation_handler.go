package handler

import (
	"context"
	"net/http"

	"github.com/okhan/bookledger/internal/adapter/http/dto"
	"github.com/okhan/bookledger/internal/infrastructure/metrics"
	"github.com/okhan/bookledger/internal/usecase"
)

// ReconciliationService defines the behavior needed by ReconciliationHandler.
type ReconciliationService interface {
	ReconcileParty(ctx context.Context, partyID int64) (*usecase.ReconciliationResult, error)
	CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error)
}

// ReconciliationHandler handles ledger consistency HTTP requests.
type ReconciliationHandler struct {
	reconUC ReconciliationService
	metrics *metrics.Metrics
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconUC ReconciliationService, m *metrics.Metrics) *ReconciliationHandler {
	return &ReconciliationHandler{reconUC: reconUC, metrics: m}
}

// ReconcileParty recomputes one party's balance from its transaction log.
func (h *ReconciliationHandler) ReconcileParty(w http.ResponseWriter, r *http.Request) {
	id, err := parsePartyID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid party ID", err.Error())
		return
	}

	result, err := h.reconUC.ReconcileParty(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reconcile party", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromResult(result))
}

// CheckConsistency verifies every stored balance against the ledger.
func (h *ReconciliationHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconUC.CheckConsistency(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to check consistency", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.ReconciliationRuns.Inc()
		h.metrics.ReconciliationDrift.Set(float64(len(report.Drift)))
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromReport(report))
}
