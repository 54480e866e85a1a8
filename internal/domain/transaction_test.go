package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/okhan/bookledger/internal/domain"
)

func TestTransactionTypeBalanceDelta(t *testing.T) {
	amount := decimal.NewFromInt(100)

	tests := []struct {
		txType domain.TransactionType
		role   domain.Role
		want   int64
	}{
		{domain.TypePaymentReceived, domain.RoleCustomer, -100},
		{domain.TypePaymentDone, domain.RoleCustomer, 100},
		{domain.TypePaymentReceived, domain.RoleSupplier, 100},
		{domain.TypePaymentDone, domain.RoleSupplier, -100},
		{domain.TypeTransferOut, domain.RoleCustomer, -100},
		{domain.TypeTransferIn, domain.RoleCustomer, 100},
		{domain.TypeTransferOut, domain.RoleSupplier, -100},
		{domain.TypeTransferIn, domain.RoleSupplier, 100},
		{domain.TransactionType("unknown"), domain.RoleCustomer, 0},
	}

	for _, tt := range tests {
		got := tt.txType.BalanceDelta(tt.role, amount)
		if !got.Equal(decimal.NewFromInt(tt.want)) {
			t.Errorf("%s/%s: expected delta %d, got %s", tt.txType, tt.role, tt.want, got)
		}
	}
}

// Each settle-up's log entry must contribute exactly the balance change the
// settle-up applied, for both roles.
func TestBalanceDeltaMatchesSettleUp(t *testing.T) {
	amount := decimal.NewFromInt(100)

	directions := []struct {
		role domain.Role
		dir  domain.Direction
	}{
		{domain.RoleCustomer, domain.DirectionCustomerPaidShop},
		{domain.RoleCustomer, domain.DirectionShopPaidCustomer},
		{domain.RoleSupplier, domain.DirectionShopPaidSupplier},
		{domain.RoleSupplier, domain.DirectionSupplierPaidShop},
	}

	for _, tt := range directions {
		party := &domain.Party{Role: tt.role, Balance: decimal.Zero}

		newBalance, txType, err := party.SettleUp(tt.dir, amount)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.dir, err)
		}

		delta := txType.BalanceDelta(tt.role, amount)
		if !delta.Equal(newBalance) {
			t.Errorf("%s: settle-up moved balance to %s but %s contributes %s",
				tt.dir, newBalance, txType, delta)
		}
	}
}
