package usecase

import (
	"context"

	"github.com/okhan/bookledger/internal/domain"
)

// TransactionUseCase serves the read side of the ledger: per-party entry
// listings and transfer leg lookups.
type TransactionUseCase struct {
	txnRepo TransactionRepository
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(txnRepo TransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{txnRepo: txnRepo}
}

// ListByPartyInput represents input for listing a party's ledger entries.
type ListByPartyInput struct {
	PartyID int64
	Limit   int
	Offset  int
}

// ListByParty lists ledger entries for a party, newest first.
func (uc *TransactionUseCase) ListByParty(ctx context.Context, input ListByPartyInput) ([]*domain.Transaction, error) {
	input.Limit, input.Offset = domain.ValidatePagination(input.Limit, input.Offset)

	return uc.txnRepo.ListByParty(ctx, input.PartyID, input.Limit, input.Offset)
}

// GetTransfer returns the two legs recorded for a transfer.
func (uc *TransactionUseCase) GetTransfer(ctx context.Context, transferID string) ([]*domain.Transaction, error) {
	legs, err := uc.txnRepo.GetByTransfer(ctx, transferID)
	if err != nil {
		return nil, err
	}

	if len(legs) == 0 {
		return nil, domain.ErrTransferNotFound
	}

	return legs, nil
}
