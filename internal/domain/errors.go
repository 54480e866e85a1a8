package domain

import "errors"

var (
	// Party errors
	ErrPartyNotFound = errors.New("party not found")

	// Ledger errors
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidRole         = errors.New("role must be customer or supplier")
	ErrInvalidDirection    = errors.New("direction does not match party role")
	ErrInsufficientBalance = errors.New("transfer exceeds source party's outstanding balance")
	ErrSameParty           = errors.New("cannot transfer to the same party")
	ErrTransferNotFound    = errors.New("transfer not found")
)
