package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okhan/bookledger/internal/domain"
)

// ReconciliationUseCase checks that stored balances agree with the signed
// sum of the transaction log. Parties are created with a zero balance and
// mutated only through the ledger engine, so the two must always match.
type ReconciliationUseCase struct {
	partyRepo  PartyRepository
	txnRepo    TransactionRepository
	ledgerRepo LedgerRepository
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(
	partyRepo PartyRepository,
	txnRepo TransactionRepository,
	ledgerRepo LedgerRepository,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		partyRepo:  partyRepo,
		txnRepo:    txnRepo,
		ledgerRepo: ledgerRepo,
	}
}

// ReconciliationResult compares a stored balance with its recomputed value.
type ReconciliationResult struct {
	PartyID    int64
	Stored     decimal.Decimal
	Computed   decimal.Decimal
	Difference decimal.Decimal
	Reconciled bool
	CheckedAt  time.Time
}

// ReconcileParty recomputes a party's balance from its transaction log and
// compares it with the stored value.
func (uc *ReconciliationUseCase) ReconcileParty(ctx context.Context, partyID int64) (*ReconciliationResult, error) {
	party, err := uc.partyRepo.GetByID(ctx, partyID)
	if err != nil {
		return nil, err
	}

	computed, err := uc.txnRepo.SumByParty(ctx, partyID, party.Role)
	if err != nil {
		return nil, err
	}

	diff := party.Balance.Sub(computed)

	return &ReconciliationResult{
		PartyID:    partyID,
		Stored:     party.Balance,
		Computed:   computed,
		Difference: diff,
		Reconciled: diff.IsZero(),
		CheckedAt:  time.Now().UTC(),
	}, nil
}

// ConsistencyReport summarizes a ledger-wide check.
type ConsistencyReport struct {
	Consistent bool
	Drift      []*domain.BalanceDrift
	CheckedAt  time.Time
}

// CheckConsistency verifies every stored balance against its log in one
// database pass.
func (uc *ReconciliationUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	drift, err := uc.ledgerRepo.FindBalanceDrift(ctx)
	if err != nil {
		return nil, err
	}

	return &ConsistencyReport{
		Consistent: len(drift) == 0,
		Drift:      drift,
		CheckedAt:  time.Now().UTC(),
	}, nil
}
