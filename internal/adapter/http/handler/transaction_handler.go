package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okhan/bookledger/internal/adapter/http/dto"
	"github.com/okhan/bookledger/internal/domain"
	"github.com/okhan/bookledger/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	ListByParty(ctx context.Context, input usecase.ListByPartyInput) ([]*domain.Transaction, error)
	GetTransfer(ctx context.Context, transferID string) ([]*domain.Transaction, error)
}

// TransactionHandler handles transaction log HTTP requests.
type TransactionHandler struct {
	txnUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(txnUC TransactionService) *TransactionHandler {
	return &TransactionHandler{txnUC: txnUC}
}

// ListByParty lists a party's ledger entries, newest first.
func (h *TransactionHandler) ListByParty(w http.ResponseWriter, r *http.Request) {
	id, err := parsePartyID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid party ID", err.Error())
		return
	}

	txns, err := h.txnUC.ListByParty(r.Context(), usecase.ListByPartyInput{
		PartyID: id,
		Limit:   parseIntQuery(r, "limit", 50),
		Offset:  parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(txns),
		Count:        int64(len(txns)),
	})
}

// GetTransfer returns both legs of a balance transfer.
func (h *TransactionHandler) GetTransfer(w http.ResponseWriter, r *http.Request) {
	transferID := chi.URLParam(r, "id")
	if transferID == "" {
		writeError(w, http.StatusBadRequest, "missing transfer ID", "")
		return
	}

	txns, err := h.txnUC.GetTransfer(r.Context(), transferID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transfer", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(txns),
		Count:        int64(len(txns)),
	})
}
