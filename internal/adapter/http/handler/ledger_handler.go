package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okhan/bookledger/internal/adapter/http/dto"
	"github.com/okhan/bookledger/internal/infrastructure/metrics"
	"github.com/okhan/bookledger/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	SettleUp(ctx context.Context, input usecase.SettleUpInput) (*usecase.SettleUpResult, error)
	Transfer(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error)
}

// LedgerHandler handles settle-up and transfer HTTP requests.
type LedgerHandler struct {
	ledgerUC LedgerService
	metrics  *metrics.Metrics
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService, m *metrics.Metrics) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC, metrics: m}
}

// SettleUp records a payment between the shop and a party.
func (h *LedgerHandler) SettleUp(w http.ResponseWriter, r *http.Request) {
	var req dto.SettleUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.ledgerUC.SettleUp(r.Context(), req.ToUseCaseInput())
	if err != nil {
		if h.metrics != nil {
			h.metrics.LedgerErrors.WithLabelValues("settle_up").Inc()
		}
		writeError(w, mapDomainError(err), "failed to settle up", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.SettleUps.WithLabelValues(req.Role, string(result.Transaction.Type)).Inc()
		amount, _ := req.Amount.Float64()
		h.metrics.SettleUpAmount.Observe(amount)
	}

	writeJSON(w, http.StatusOK, dto.SettleUpFromResult(result))
}

// Transfer moves balance from one party to another of the same role.
func (h *LedgerHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.ledgerUC.Transfer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		if h.metrics != nil {
			h.metrics.LedgerErrors.WithLabelValues("transfer").Inc()
		}
		writeError(w, mapDomainError(err), "failed to transfer balance", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.TransfersCreated.Inc()
		amount, _ := req.Amount.Float64()
		h.metrics.TransferAmount.Observe(amount)
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromResult(result))
}
