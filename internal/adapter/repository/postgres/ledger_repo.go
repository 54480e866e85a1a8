package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okhan/bookledger/internal/domain"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// FindBalanceDrift returns every party whose stored balance disagrees with
// the signed sum of its ledger entries. The payment types invert their sign
// for suppliers, so the signed amount is derived per row before aggregating.
func (r *LedgerRepository) FindBalanceDrift(ctx context.Context) ([]*domain.BalanceDrift, error) {
	rows, err := r.pool.Query(ctx,
		`WITH signed AS (
		     SELECT p.id, p.balance,
		            CASE WHEN t.type = 'transfer_in' THEN t.amount
		                 WHEN t.type = 'transfer_out' THEN -t.amount
		                 WHEN t.type = 'payment_done' THEN
		                     CASE WHEN p.role = 'supplier' THEN -t.amount ELSE t.amount END
		                 WHEN t.type = 'payment_received' THEN
		                     CASE WHEN p.role = 'supplier' THEN t.amount ELSE -t.amount END
		            END AS delta
		     FROM parties p
		     LEFT JOIN transactions t ON t.party_id = p.id
		 )
		 SELECT id, balance, COALESCE(SUM(delta), 0) AS computed
		 FROM signed
		 GROUP BY id, balance
		 HAVING balance <> COALESCE(SUM(delta), 0)
		 ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drift := make([]*domain.BalanceDrift, 0)

	for rows.Next() {
		var (
			partyID          int64
			stored, computed pgtype.Numeric
		)

		if err := rows.Scan(&partyID, &stored, &computed); err != nil {
			return nil, err
		}

		drift = append(drift, &domain.BalanceDrift{
			PartyID:  partyID,
			Stored:   numericToDecimal(stored),
			Computed: numericToDecimal(computed),
		})
	}

	return drift, rows.Err()
}
