package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okhan/bookledger/internal/domain"
)

// PartyFilter narrows and orders party listings. SearchBy and SortBy accept
// the column names the repository whitelists; anything else falls back to
// defaults.
type PartyFilter struct {
	Role     domain.Role
	SearchBy string
	Search   string
	SortBy   string
	Desc     bool
	Limit    int
	Offset   int
}

// PartyRepository defines data access for parties.
type PartyRepository interface {
	Create(ctx context.Context, party *domain.Party) error
	GetByID(ctx context.Context, id int64) (*domain.Party, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id int64) (*domain.Party, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []int64) ([]*domain.Party, error)
	UpdateBalance(ctx context.Context, tx Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error
	UpdateContact(ctx context.Context, party *domain.Party) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter PartyFilter) ([]*domain.Party, error)
}

// TransactionRepository defines data access for ledger entries.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	ListByParty(ctx context.Context, partyID int64, limit, offset int) ([]*domain.Transaction, error)
	GetByTransfer(ctx context.Context, transferID string) ([]*domain.Transaction, error)
	SumByParty(ctx context.Context, partyID int64, role domain.Role) (decimal.Decimal, error)
}

// LedgerRepository defines ledger-wide data access.
type LedgerRepository interface {
	FindBalanceDrift(ctx context.Context) ([]*domain.BalanceDrift, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs for ledger entries and transfers.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation when the storage layer reports a transient
// failure such as a deadlock or serialization conflict.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
