package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType encodes the direction of a ledger entry. Amounts are
// always positive; the type carries the sign.
type TransactionType string

const (
	// TypePaymentReceived records money flowing from the party to the shop.
	TypePaymentReceived TransactionType = "payment_received"
	// TypePaymentDone records money flowing from the shop to the party.
	TypePaymentDone TransactionType = "payment_done"
	// TypeTransferOut is the source leg of a balance transfer.
	TypeTransferOut TransactionType = "transfer_out"
	// TypeTransferIn is the receiver leg of a balance transfer.
	TypeTransferIn TransactionType = "transfer_in"
)

// BalanceDelta is the signed contribution of an entry of this type to the
// party's balance. The payment types carry opposite signs per role: a
// customer paying the shop reduces what they owe, a supplier paying the shop
// raises what the shop may draw on. Transfer legs are role-independent.
func (t TransactionType) BalanceDelta(role Role, amount decimal.Decimal) decimal.Decimal {
	switch t {
	case TypeTransferOut:
		return amount.Neg()
	case TypeTransferIn:
		return amount
	case TypePaymentReceived:
		if role == RoleSupplier {
			return amount
		}

		return amount.Neg()
	case TypePaymentDone:
		if role == RoleSupplier {
			return amount.Neg()
		}

		return amount
	}

	return decimal.Zero
}

// Transaction is one immutable ledger entry. Entries are append-only and
// never updated or deleted, even when the party row is removed.
type Transaction struct {
	ID         string
	PartyID    int64
	TransferID *string
	Amount     decimal.Decimal
	Type       TransactionType
	CreatedAt  time.Time
}

// BalanceDrift is one party whose stored balance disagrees with the signed
// sum of its transaction log.
type BalanceDrift struct {
	PartyID  int64
	Stored   decimal.Decimal
	Computed decimal.Decimal
}
