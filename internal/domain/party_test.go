package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/okhan/bookledger/internal/domain"
)

func TestPartySettleUp(t *testing.T) {
	tests := []struct {
		name        string
		role        domain.Role
		balance     int64
		direction   domain.Direction
		amount      int64
		wantBalance int64
		wantType    domain.TransactionType
		wantErr     error
	}{
		{
			name:        "customer paid shop reduces debt",
			role:        domain.RoleCustomer,
			balance:     150,
			direction:   domain.DirectionCustomerPaidShop,
			amount:      100,
			wantBalance: 50,
			wantType:    domain.TypePaymentReceived,
		},
		{
			name:        "shop paid customer from advance",
			role:        domain.RoleCustomer,
			balance:     -20,
			direction:   domain.DirectionShopPaidCustomer,
			amount:      100,
			wantBalance: 80,
			wantType:    domain.TypePaymentDone,
		},
		{
			name:        "shop paid supplier reduces what shop owes",
			role:        domain.RoleSupplier,
			balance:     200,
			direction:   domain.DirectionShopPaidSupplier,
			amount:      75,
			wantBalance: 125,
			wantType:    domain.TypePaymentDone,
		},
		{
			name:        "supplier paid shop increases what shop owes",
			role:        domain.RoleSupplier,
			balance:     0,
			direction:   domain.DirectionSupplierPaidShop,
			amount:      40,
			wantBalance: 40,
			wantType:    domain.TypePaymentReceived,
		},
		{
			name:        "overpaying drives customer into advance",
			role:        domain.RoleCustomer,
			balance:     30,
			direction:   domain.DirectionCustomerPaidShop,
			amount:      100,
			wantBalance: -70,
			wantType:    domain.TypePaymentReceived,
		},
		{
			name:      "negative amount rejected",
			role:      domain.RoleCustomer,
			balance:   100,
			direction: domain.DirectionCustomerPaidShop,
			amount:    -5,
			wantErr:   domain.ErrInvalidAmount,
		},
		{
			name:      "zero amount rejected",
			role:      domain.RoleCustomer,
			balance:   100,
			direction: domain.DirectionCustomerPaidShop,
			amount:    0,
			wantErr:   domain.ErrInvalidAmount,
		},
		{
			name:      "customer direction rejected for supplier",
			role:      domain.RoleSupplier,
			balance:   100,
			direction: domain.DirectionCustomerPaidShop,
			amount:    10,
			wantErr:   domain.ErrInvalidDirection,
		},
		{
			name:      "supplier direction rejected for customer",
			role:      domain.RoleCustomer,
			balance:   100,
			direction: domain.DirectionShopPaidSupplier,
			amount:    10,
			wantErr:   domain.ErrInvalidDirection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &domain.Party{Role: tt.role, Balance: decimal.NewFromInt(tt.balance)}

			newBalance, txType, err := p.SettleUp(tt.direction, decimal.NewFromInt(tt.amount))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.True(t, newBalance.Equal(decimal.NewFromInt(tt.wantBalance)),
				"expected balance %d, got %s", tt.wantBalance, newBalance)
			require.Equal(t, tt.wantType, txType)

			// SettleUp only computes; the stored balance is untouched.
			require.True(t, p.Balance.Equal(decimal.NewFromInt(tt.balance)))
		})
	}
}

func TestPartyValidateTransferOut(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		amount  int64
		wantErr error
	}{
		{name: "within outstanding debt", balance: 50, amount: 30},
		{name: "exactly the outstanding debt", balance: 50, amount: 50},
		{name: "exceeds outstanding debt", balance: 50, amount: 999, wantErr: domain.ErrInsufficientBalance},
		{name: "within advance magnitude", balance: -80, amount: 80},
		{name: "exceeds advance magnitude", balance: -80, amount: 81, wantErr: domain.ErrInsufficientBalance},
		{name: "zero balance rejects any amount", balance: 0, amount: 1, wantErr: domain.ErrInsufficientBalance},
		{name: "non-positive amount", balance: 50, amount: 0, wantErr: domain.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &domain.Party{Role: domain.RoleCustomer, Balance: decimal.NewFromInt(tt.balance)}

			err := p.ValidateTransferOut(decimal.NewFromInt(tt.amount))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestPartyRemainingAdvance(t *testing.T) {
	owes := &domain.Party{Balance: decimal.NewFromInt(120)}
	require.True(t, owes.Remaining().Equal(decimal.NewFromInt(120)))
	require.True(t, owes.Advance().IsZero())

	ahead := &domain.Party{Balance: decimal.NewFromInt(-45)}
	require.True(t, ahead.Remaining().IsZero())
	require.True(t, ahead.Advance().Equal(decimal.NewFromInt(45)))

	settled := &domain.Party{Balance: decimal.Zero}
	require.True(t, settled.Remaining().IsZero())
	require.True(t, settled.Advance().IsZero())
}

func TestDirectionRole(t *testing.T) {
	require.Equal(t, domain.RoleCustomer, domain.DirectionCustomerPaidShop.Role())
	require.Equal(t, domain.RoleCustomer, domain.DirectionShopPaidCustomer.Role())
	require.Equal(t, domain.RoleSupplier, domain.DirectionShopPaidSupplier.Role())
	require.Equal(t, domain.RoleSupplier, domain.DirectionSupplierPaidShop.Role())
	require.Equal(t, domain.Role(""), domain.Direction("bogus").Role())
}
