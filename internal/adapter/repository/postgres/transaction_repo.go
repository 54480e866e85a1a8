package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/okhan/bookledger/internal/domain"
	"github.com/okhan/bookledger/internal/usecase"
)

const transactionColumns = `id, party_id, transfer_id, amount, type, created_at`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create appends a ledger entry within the given transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	var transferID pgtype.Text
	if txn.TransferID != nil {
		transferID = pgtype.Text{String: *txn.TransferID, Valid: true}
	}

	_, err := pgxTx.Exec(ctx,
		`INSERT INTO transactions (id, party_id, transfer_id, amount, type, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		txn.ID,
		txn.PartyID,
		transferID,
		decimalToNumeric(txn.Amount),
		string(txn.Type),
		timeToPgTimestamptz(txn.CreatedAt),
	)

	return err
}

// ListByParty lists a party's ledger entries, newest first.
func (r *TransactionRepository) ListByParty(ctx context.Context, partyID int64, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE party_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		partyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetByTransfer returns both legs of a transfer in creation order.
func (r *TransactionRepository) GetByTransfer(ctx context.Context, transferID string) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE transfer_id = $1
		 ORDER BY created_at, id`,
		transferID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// SumByParty computes the signed sum of a party's ledger entries. The sign
// of the payment types depends on the party's role; transfer legs do not.
func (r *TransactionRepository) SumByParty(ctx context.Context, partyID int64, role domain.Role) (decimal.Decimal, error) {
	var sum pgtype.Numeric

	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(
		    CASE WHEN type = 'transfer_in' THEN amount
		         WHEN type = 'transfer_out' THEN -amount
		         WHEN type = 'payment_done' THEN CASE WHEN $2 = 'supplier' THEN -amount ELSE amount END
		         ELSE CASE WHEN $2 = 'supplier' THEN amount ELSE -amount END
		    END
		 ), 0)
		 FROM transactions WHERE party_id = $1`,
		partyID, string(role)).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn        domain.Transaction
		transferID pgtype.Text
		txnType    string
		amount     pgtype.Numeric
		createdAt  pgtype.Timestamptz
	)

	err := row.Scan(&txn.ID, &txn.PartyID, &transferID, &amount, &txnType, &createdAt)
	if err != nil {
		return nil, err
	}

	if transferID.Valid {
		txn.TransferID = &transferID.String
	}

	txn.Amount = numericToDecimal(amount)
	txn.Type = domain.TransactionType(txnType)
	txn.CreatedAt = createdAt.Time

	return &txn, nil
}

func scanTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	txns := make([]*domain.Transaction, 0)

	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}

		txns = append(txns, txn)
	}

	return txns, rows.Err()
}
