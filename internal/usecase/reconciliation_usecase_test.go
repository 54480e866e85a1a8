package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okhan/bookledger/internal/domain"
	"github.com/okhan/bookledger/internal/usecase"
	"github.com/okhan/bookledger/internal/usecase/mocks"
)

func TestReconcilePartyMatches(t *testing.T) {
	partyRepo := mocks.NewMockPartyRepository()
	partyRepo.Seed(&domain.Party{ID: 1, Role: domain.RoleCustomer, Balance: decimal.NewFromInt(70)})

	txnRepo := mocks.NewMockTransactionRepository()
	_ = txnRepo.Create(context.Background(), nil, &domain.Transaction{
		ID: "t1", PartyID: 1, Amount: decimal.NewFromInt(100), Type: domain.TypePaymentDone,
	})
	_ = txnRepo.Create(context.Background(), nil, &domain.Transaction{
		ID: "t2", PartyID: 1, Amount: decimal.NewFromInt(30), Type: domain.TypePaymentReceived,
	})

	uc := usecase.NewReconciliationUseCase(partyRepo, txnRepo, mocks.NewMockLedgerRepository())

	result, err := uc.ReconcileParty(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, result.Reconciled)
	assert.True(t, result.Stored.Equal(decimal.NewFromInt(70)))
	assert.True(t, result.Computed.Equal(decimal.NewFromInt(70)))
	assert.True(t, result.Difference.IsZero())
}

// A supplier's payment_received entry raises the balance, the mirror image
// of the customer mapping. A healthy supplier ledger must reconcile.
func TestReconcileSupplierMatches(t *testing.T) {
	partyRepo := mocks.NewMockPartyRepository()
	partyRepo.Seed(&domain.Party{ID: 1, Role: domain.RoleSupplier, Balance: decimal.NewFromInt(100)})

	txnRepo := mocks.NewMockTransactionRepository()
	_ = txnRepo.Create(context.Background(), nil, &domain.Transaction{
		ID: "t1", PartyID: 1, Amount: decimal.NewFromInt(100), Type: domain.TypePaymentReceived,
	})

	uc := usecase.NewReconciliationUseCase(partyRepo, txnRepo, mocks.NewMockLedgerRepository())

	result, err := uc.ReconcileParty(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, result.Reconciled)
	assert.True(t, result.Computed.Equal(decimal.NewFromInt(100)))
}

// Shop pays the supplier 30 out of a 100 credit: balance 70, and the
// payment_done entry must count as -30 for a supplier.
func TestReconcileSupplierAfterShopPayment(t *testing.T) {
	partyRepo := mocks.NewMockPartyRepository()
	partyRepo.Seed(&domain.Party{ID: 1, Role: domain.RoleSupplier, Balance: decimal.NewFromInt(70)})

	txnRepo := mocks.NewMockTransactionRepository()
	_ = txnRepo.Create(context.Background(), nil, &domain.Transaction{
		ID: "t1", PartyID: 1, Amount: decimal.NewFromInt(100), Type: domain.TypePaymentReceived,
	})
	_ = txnRepo.Create(context.Background(), nil, &domain.Transaction{
		ID: "t2", PartyID: 1, Amount: decimal.NewFromInt(30), Type: domain.TypePaymentDone,
	})

	uc := usecase.NewReconciliationUseCase(partyRepo, txnRepo, mocks.NewMockLedgerRepository())

	result, err := uc.ReconcileParty(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, result.Reconciled)
	assert.True(t, result.Computed.Equal(decimal.NewFromInt(70)))
	assert.True(t, result.Difference.IsZero())
}

func TestReconcilePartyDetectsDrift(t *testing.T) {
	partyRepo := mocks.NewMockPartyRepository()
	partyRepo.Seed(&domain.Party{ID: 1, Role: domain.RoleCustomer, Balance: decimal.NewFromInt(100)})

	txnRepo := mocks.NewMockTransactionRepository()
	_ = txnRepo.Create(context.Background(), nil, &domain.Transaction{
		ID: "t1", PartyID: 1, Amount: decimal.NewFromInt(60), Type: domain.TypePaymentDone,
	})

	uc := usecase.NewReconciliationUseCase(partyRepo, txnRepo, mocks.NewMockLedgerRepository())

	result, err := uc.ReconcileParty(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, result.Reconciled)
	assert.True(t, result.Difference.Equal(decimal.NewFromInt(40)))
}

func TestReconcilePartyUnknown(t *testing.T) {
	uc := usecase.NewReconciliationUseCase(
		mocks.NewMockPartyRepository(),
		mocks.NewMockTransactionRepository(),
		mocks.NewMockLedgerRepository(),
	)

	_, err := uc.ReconcileParty(context.Background(), 42)
	require.ErrorIs(t, err, domain.ErrPartyNotFound)
}

func TestCheckConsistency(t *testing.T) {
	ledgerRepo := mocks.NewMockLedgerRepository()
	uc := usecase.NewReconciliationUseCase(
		mocks.NewMockPartyRepository(),
		mocks.NewMockTransactionRepository(),
		ledgerRepo,
	)

	report, err := uc.CheckConsistency(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Consistent)
	assert.Empty(t, report.Drift)

	ledgerRepo.FindBalanceDriftFunc = func(ctx context.Context) ([]*domain.BalanceDrift, error) {
		return []*domain.BalanceDrift{
			{PartyID: 3, Stored: decimal.NewFromInt(10), Computed: decimal.NewFromInt(25)},
		}, nil
	}

	report, err = uc.CheckConsistency(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Consistent)
	assert.Len(t, report.Drift, 1)

	ledgerRepo.FindBalanceDriftFunc = func(ctx context.Context) ([]*domain.BalanceDrift, error) {
		return nil, errors.New("query failed")
	}

	_, err = uc.CheckConsistency(context.Background())
	require.Error(t, err)
}
