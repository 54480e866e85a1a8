package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role identifies which side of the counter a party sits on.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSupplier Role = "supplier"
)

// Valid reports whether the role is a known value.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleSupplier
}

// Direction is one leg of a settle-up payment. Each direction is bound to a
// role; pairing a direction with the other role is rejected.
type Direction string

const (
	DirectionCustomerPaidShop Direction = "customer_paid_shop"
	DirectionShopPaidCustomer Direction = "shop_paid_customer"
	DirectionShopPaidSupplier Direction = "shop_paid_supplier"
	DirectionSupplierPaidShop Direction = "supplier_paid_shop"
)

// Role returns the party role a direction applies to.
func (d Direction) Role() Role {
	switch d {
	case DirectionCustomerPaidShop, DirectionShopPaidCustomer:
		return RoleCustomer
	case DirectionShopPaidSupplier, DirectionSupplierPaidShop:
		return RoleSupplier
	}

	return ""
}

// Party is a customer or supplier holding a single signed running balance.
//
// Sign convention: balance > 0 means the party owes the shop (customer role)
// or the shop owes the party (supplier role). The derived Remaining/Advance
// values are never stored.
type Party struct {
	ID        int64
	Role      Role
	Name      string
	Phone     string
	CNIC      string
	Email     string
	Address   string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Remaining is the outstanding amount the party still owes.
func (p *Party) Remaining() decimal.Decimal {
	if p.Balance.IsPositive() {
		return p.Balance
	}

	return decimal.Zero
}

// Advance is the amount paid ahead of any outstanding balance.
func (p *Party) Advance() decimal.Decimal {
	if p.Balance.IsNegative() {
		return p.Balance.Neg()
	}

	return decimal.Zero
}

// SettleUp computes the balance after a settle-up payment in the given
// direction, and the transaction type that records it. The amount is not
// bounded by the current balance: driving a party into advance is a
// legitimate state.
func (p *Party) SettleUp(d Direction, amount decimal.Decimal) (decimal.Decimal, TransactionType, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, "", ErrInvalidAmount
	}

	if d.Role() != p.Role {
		return decimal.Zero, "", ErrInvalidDirection
	}

	switch d {
	case DirectionCustomerPaidShop:
		return p.Balance.Sub(amount), TypePaymentReceived, nil
	case DirectionShopPaidCustomer:
		return p.Balance.Add(amount), TypePaymentDone, nil
	case DirectionShopPaidSupplier:
		return p.Balance.Sub(amount), TypePaymentDone, nil
	case DirectionSupplierPaidShop:
		return p.Balance.Add(amount), TypePaymentReceived, nil
	}

	return decimal.Zero, "", ErrInvalidDirection
}

// ValidateTransferOut checks that a transfer does not exceed the party's
// outstanding debt, or its advance magnitude when the balance is negative.
func (p *Party) ValidateTransferOut(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	magnitude := p.Balance
	if magnitude.IsNegative() {
		magnitude = magnitude.Neg()
	}

	if amount.GreaterThan(magnitude) {
		return ErrInsufficientBalance
	}

	return nil
}
