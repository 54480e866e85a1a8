package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okhan/bookledger/internal/adapter/http/dto"
	"github.com/okhan/bookledger/internal/domain"
	"github.com/okhan/bookledger/internal/infrastructure/metrics"
	"github.com/okhan/bookledger/internal/usecase"
)

// PartyService defines the behavior needed by PartyHandler.
type PartyService interface {
	CreateParty(ctx context.Context, input usecase.CreatePartyInput) (*domain.Party, error)
	GetParty(ctx context.Context, id int64) (*domain.Party, error)
	UpdateParty(ctx context.Context, input usecase.UpdatePartyInput) (*domain.Party, error)
	DeleteParty(ctx context.Context, id int64) error
	ListParties(ctx context.Context, filter usecase.PartyFilter) ([]*domain.Party, error)
}

// PartyHandler handles party-related HTTP requests.
type PartyHandler struct {
	partyUC PartyService
	metrics *metrics.Metrics
}

// NewPartyHandler creates a new PartyHandler.
func NewPartyHandler(partyUC PartyService, m *metrics.Metrics) *PartyHandler {
	return &PartyHandler{partyUC: partyUC, metrics: m}
}

// Create registers a new customer or supplier.
func (h *PartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	party, err := h.partyUC.CreateParty(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create party", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.PartiesCreated.WithLabelValues(string(party.Role)).Inc()
	}

	writeJSON(w, http.StatusCreated, dto.PartyFromDomain(party))
}

// Get retrieves a party by ID.
func (h *PartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parsePartyID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid party ID", err.Error())
		return
	}

	party, err := h.partyUC.GetParty(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get party", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PartyFromDomain(party))
}

// Update changes a party's contact details.
func (h *PartyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parsePartyID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid party ID", err.Error())
		return
	}

	var req dto.UpdatePartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	party, err := h.partyUC.UpdateParty(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update party", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PartyFromDomain(party))
}

// Delete removes a party. Its ledger entries are retained.
func (h *PartyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parsePartyID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid party ID", err.Error())
		return
	}

	if err := h.partyUC.DeleteParty(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete party", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.PartiesDeleted.Inc()
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists parties, optionally filtered by role and search text.
func (h *PartyHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := usecase.PartyFilter{
		Role:     domain.Role(q.Get("role")),
		SearchBy: q.Get("search_by"),
		Search:   q.Get("search"),
		SortBy:   q.Get("sort_by"),
		Desc:     q.Get("order") == "desc",
		Limit:    parseIntQuery(r, "limit", 50),
		Offset:   parseIntQuery(r, "offset", 0),
	}

	parties, err := h.partyUC.ListParties(r.Context(), filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list parties", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListPartiesResponse{
		Parties: dto.PartiesFromDomain(parties),
		Count:   int64(len(parties)),
	})
}
