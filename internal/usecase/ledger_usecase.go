package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okhan/bookledger/internal/domain"
)

// LedgerUseCase owns every balance mutation: settle-up payments and balance
// transfers between parties of the same role. Each operation reads, validates
// and writes inside one database transaction, so either the balance update
// and its log entries all persist, or none do.
type LedgerUseCase struct {
	txManager TransactionManager
	partyRepo PartyRepository
	txnRepo   TransactionRepository
	idGen     IDGenerator
	retrier   Retrier
	cache     Cache
}

// NewLedgerUseCase creates a new LedgerUseCase. The retrier and cache are
// optional; pass nil to run operations once and skip cache invalidation.
func NewLedgerUseCase(
	txManager TransactionManager,
	partyRepo PartyRepository,
	txnRepo TransactionRepository,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager: txManager,
		partyRepo: partyRepo,
		txnRepo:   txnRepo,
		idGen:     idGen,
		retrier:   retrier,
		cache:     cache,
	}
}

// SettleUpInput represents one payment between the shop and a party.
type SettleUpInput struct {
	PartyID   int64
	Role      domain.Role
	Direction domain.Direction
	Amount    decimal.Decimal
}

// SettleUpResult carries the balance after the payment and the ledger entry
// that recorded it.
type SettleUpResult struct {
	NewBalance  decimal.Decimal
	Transaction *domain.Transaction
}

// SettleUp records a payment between the shop and a party, adjusting the
// party's balance and appending one ledger entry. The amount is not bounded
// by the current balance: overpaying drives the party into advance.
func (uc *LedgerUseCase) SettleUp(ctx context.Context, input SettleUpInput) (*SettleUpResult, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if !input.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	if input.Direction.Role() != input.Role {
		return nil, domain.ErrInvalidDirection
	}

	var result *SettleUpResult

	err := uc.retry(ctx, func() error {
		res, err := uc.settleUpTx(ctx, input)
		if err != nil {
			return err
		}

		result = res

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateParty(ctx, input.PartyID)

	return result, nil
}

func (uc *LedgerUseCase) settleUpTx(ctx context.Context, input SettleUpInput) (*SettleUpResult, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	party, err := uc.partyRepo.GetByIDForUpdate(ctx, tx, input.PartyID)
	if err != nil {
		return nil, err
	}

	// A wrong-role id behaves like a missing row, matching the separate
	// customer and supplier tables of the source system.
	if party.Role != input.Role {
		return nil, domain.ErrPartyNotFound
	}

	newBalance, txType, err := party.SettleUp(input.Direction, input.Amount)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	err = uc.partyRepo.UpdateBalance(ctx, tx, party.ID, newBalance, now)
	if err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		ID:        uc.idGen.Generate(),
		PartyID:   party.ID,
		Amount:    input.Amount,
		Type:      txType,
		CreatedAt: now,
	}

	err = uc.txnRepo.Create(ctx, tx, txn)
	if err != nil {
		return nil, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, err
	}

	return &SettleUpResult{NewBalance: newBalance, Transaction: txn}, nil
}

// TransferInput moves an outstanding amount from one party to another of
// the same role.
type TransferInput struct {
	SourcePartyID   int64
	ReceiverPartyID int64
	Role            domain.Role
	Amount          decimal.Decimal
}

// TransferResult carries the balances of both parties after the transfer.
type TransferResult struct {
	TransferID      string
	SourceBalance   decimal.Decimal
	ReceiverBalance decimal.Decimal
}

// Transfer moves amount from the source party's balance to the receiver's.
// Both parties are locked and validated, and both legs are logged, inside one
// transaction. The amount must not exceed the source's outstanding debt, or
// its advance magnitude when the balance is negative.
func (uc *LedgerUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if !input.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	if input.SourcePartyID == input.ReceiverPartyID {
		return nil, domain.ErrSameParty
	}

	var result *TransferResult

	err := uc.retry(ctx, func() error {
		res, err := uc.transferTx(ctx, input)
		if err != nil {
			return err
		}

		result = res

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateParty(ctx, input.SourcePartyID)
	uc.invalidateParty(ctx, input.ReceiverPartyID)

	return result, nil
}

func (uc *LedgerUseCase) transferTx(ctx context.Context, input TransferInput) (*TransferResult, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock both rows in id order to avoid deadlocks between crossing
	// transfers.
	ids := []int64{input.SourcePartyID, input.ReceiverPartyID}
	if ids[0] > ids[1] {
		ids[0], ids[1] = ids[1], ids[0]
	}

	parties, err := uc.partyRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	var source, receiver *domain.Party

	for _, p := range parties {
		switch p.ID {
		case input.SourcePartyID:
			source = p
		case input.ReceiverPartyID:
			receiver = p
		}
	}

	if source == nil || source.Role != input.Role {
		return nil, domain.ErrPartyNotFound
	}

	if receiver == nil || receiver.Role != input.Role {
		return nil, domain.ErrPartyNotFound
	}

	err = source.ValidateTransferOut(input.Amount)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sourceBalance := source.Balance.Sub(input.Amount)
	receiverBalance := receiver.Balance.Add(input.Amount)
	transferID := uc.idGen.Generate()

	err = uc.partyRepo.UpdateBalance(ctx, tx, source.ID, sourceBalance, now)
	if err != nil {
		return nil, err
	}

	err = uc.txnRepo.Create(ctx, tx, &domain.Transaction{
		ID:         uc.idGen.Generate(),
		PartyID:    source.ID,
		TransferID: &transferID,
		Amount:     input.Amount,
		Type:       domain.TypeTransferOut,
		CreatedAt:  now,
	})
	if err != nil {
		return nil, err
	}

	err = uc.partyRepo.UpdateBalance(ctx, tx, receiver.ID, receiverBalance, now)
	if err != nil {
		return nil, err
	}

	err = uc.txnRepo.Create(ctx, tx, &domain.Transaction{
		ID:         uc.idGen.Generate(),
		PartyID:    receiver.ID,
		TransferID: &transferID,
		Amount:     input.Amount,
		Type:       domain.TypeTransferIn,
		CreatedAt:  now,
	})
	if err != nil {
		return nil, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, err
	}

	return &TransferResult{
		TransferID:      transferID,
		SourceBalance:   sourceBalance,
		ReceiverBalance: receiverBalance,
	}, nil
}

func (uc *LedgerUseCase) retry(ctx context.Context, operation func() error) error {
	if uc.retrier == nil {
		return operation()
	}

	return uc.retrier.Retry(ctx, operation)
}

func (uc *LedgerUseCase) invalidateParty(ctx context.Context, id int64) {
	if uc.cache == nil {
		return
	}

	// Best effort: a stale cached snapshot expires on its own TTL.
	_ = uc.cache.Delete(ctx, PartyCacheKey(id))
}

// PartyCacheKey is the cache key for a party snapshot.
func PartyCacheKey(id int64) string {
	return fmt.Sprintf("party:%d", id)
}
