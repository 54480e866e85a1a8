package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidPartyName = errors.New("invalid party name")
	ErrInvalidPhone     = errors.New("invalid phone number")
	ErrInvalidCNIC      = errors.New("invalid cnic")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrAmountTooLarge   = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxPartyNameLength = 255
	MinPartyNameLength = 1
	MaxPhoneLength     = 20
	MaxSettleAmount    = "1000000000" // 1 billion
)

var (
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 -]{4,}$`)
	// National identity card format used by the source system: 12345-1234567-1.
	cnicRegex  = regexp.MustCompile(`^[0-9]{5}-[0-9]{7}-[0-9]$`)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ValidatePartyName validates a party name.
func ValidatePartyName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinPartyNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidPartyName)
	}

	if len(name) > MaxPartyNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidPartyName, MaxPartyNameLength)
	}

	return nil
}

// ValidatePhone validates a phone number. Empty is allowed; the source
// system treats contact fields as optional.
func ValidatePhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil
	}

	if len(phone) > MaxPhoneLength || !phoneRegex.MatchString(phone) {
		return ErrInvalidPhone
	}

	return nil
}

// ValidateCNIC validates a customer identity card number. Empty is allowed.
func ValidateCNIC(cnic string) error {
	cnic = strings.TrimSpace(cnic)
	if cnic == "" {
		return nil
	}

	if !cnicRegex.MatchString(cnic) {
		return ErrInvalidCNIC
	}

	return nil
}

// ValidateEmail validates a supplier email address. Empty is allowed.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil
	}

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidateAmount validates a settle-up or transfer amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxSettleAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxSettleAmount)
	}

	return nil
}

// ValidatePagination clamps pagination parameters to sane bounds.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
