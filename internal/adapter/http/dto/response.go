package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/okhan/bookledger/internal/domain"
	"github.com/okhan/bookledger/internal/usecase"
)

// PartyResponse represents a party in API responses. Remaining and advance
// are derived views of the signed balance.
type PartyResponse struct {
	ID        int64           `json:"id"`
	Role      string          `json:"role"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone,omitempty"`
	CNIC      string          `json:"cnic,omitempty"`
	Email     string          `json:"email,omitempty"`
	Address   string          `json:"address,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	Remaining decimal.Decimal `json:"remaining"`
	Advance   decimal.Decimal `json:"advance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PartyFromDomain converts a domain party to a response.
func PartyFromDomain(p *domain.Party) *PartyResponse {
	return &PartyResponse{
		ID:        p.ID,
		Role:      string(p.Role),
		Name:      p.Name,
		Phone:     p.Phone,
		CNIC:      p.CNIC,
		Email:     p.Email,
		Address:   p.Address,
		Balance:   p.Balance,
		Remaining: p.Remaining(),
		Advance:   p.Advance(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// PartiesFromDomain converts domain parties to responses.
func PartiesFromDomain(parties []*domain.Party) []*PartyResponse {
	result := make([]*PartyResponse, len(parties))
	for i, p := range parties {
		result[i] = PartyFromDomain(p)
	}
	return result
}

// ListPartiesResponse wraps a page of parties. Count is the number of
// parties on this page, not the table total.
type ListPartiesResponse struct {
	Parties []*PartyResponse `json:"parties"`
	Count   int64            `json:"count"`
}

// TransactionResponse represents a ledger entry in API responses.
type TransactionResponse struct {
	ID         string          `json:"id"`
	PartyID    int64           `json:"party_id"`
	TransferID *string         `json:"transfer_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Type       string          `json:"type"`
	CreatedAt  time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:         t.ID,
		PartyID:    t.PartyID,
		TransferID: t.TransferID,
		Amount:     t.Amount,
		Type:       string(t.Type),
		CreatedAt:  t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse wraps a page of ledger entries. Count is the
// number of entries on this page, not the log total.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Count        int64                  `json:"count"`
}

// SettleUpResponse represents the outcome of a settle-up operation.
type SettleUpResponse struct {
	NewBalance  decimal.Decimal      `json:"new_balance"`
	Transaction *TransactionResponse `json:"transaction"`
}

// SettleUpFromResult converts a use case result to a response.
func SettleUpFromResult(res *usecase.SettleUpResult) *SettleUpResponse {
	return &SettleUpResponse{
		NewBalance:  res.NewBalance,
		Transaction: TransactionFromDomain(res.Transaction),
	}
}

// TransferResponse represents the outcome of a balance transfer.
type TransferResponse struct {
	TransferID      string          `json:"transfer_id"`
	SourceBalance   decimal.Decimal `json:"source_balance"`
	ReceiverBalance decimal.Decimal `json:"receiver_balance"`
}

// TransferFromResult converts a use case result to a response.
func TransferFromResult(res *usecase.TransferResult) *TransferResponse {
	return &TransferResponse{
		TransferID:      res.TransferID,
		SourceBalance:   res.SourceBalance,
		ReceiverBalance: res.ReceiverBalance,
	}
}

// ReconciliationResponse represents a per-party reconciliation outcome.
type ReconciliationResponse struct {
	PartyID    int64           `json:"party_id"`
	Stored     decimal.Decimal `json:"stored"`
	Computed   decimal.Decimal `json:"computed"`
	Difference decimal.Decimal `json:"difference"`
	Reconciled bool            `json:"reconciled"`
	CheckedAt  time.Time       `json:"checked_at"`
}

// ReconciliationFromResult converts a use case result to a response.
func ReconciliationFromResult(res *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		PartyID:    res.PartyID,
		Stored:     res.Stored,
		Computed:   res.Computed,
		Difference: res.Difference,
		Reconciled: res.Reconciled,
		CheckedAt:  res.CheckedAt,
	}
}

// BalanceDriftResponse represents one drifting party in a consistency report.
type BalanceDriftResponse struct {
	PartyID  int64           `json:"party_id"`
	Stored   decimal.Decimal `json:"stored"`
	Computed decimal.Decimal `json:"computed"`
}

// ConsistencyResponse represents a ledger-wide consistency report.
type ConsistencyResponse struct {
	Consistent bool                    `json:"consistent"`
	Drift      []*BalanceDriftResponse `json:"drift"`
	CheckedAt  time.Time               `json:"checked_at"`
}

// ConsistencyFromReport converts a use case report to a response.
func ConsistencyFromReport(report *usecase.ConsistencyReport) *ConsistencyResponse {
	drift := make([]*BalanceDriftResponse, len(report.Drift))
	for i, d := range report.Drift {
		drift[i] = &BalanceDriftResponse{
			PartyID:  d.PartyID,
			Stored:   d.Stored,
			Computed: d.Computed,
		}
	}

	return &ConsistencyResponse{
		Consistent: report.Consistent,
		Drift:      drift,
		CheckedAt:  report.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
