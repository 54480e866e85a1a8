package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/okhan/bookledger/internal/domain"
	"github.com/okhan/bookledger/internal/usecase"
)

const partyColumns = `id, role, name, phone, cnic, email, address, balance, created_at, updated_at`

// Columns callers may search or sort parties by. Anything outside the
// whitelist falls back to the default so the filter never reaches the query
// text directly.
var (
	partySearchColumns = map[string]string{
		"name":    "name",
		"phone":   "phone",
		"cnic":    "cnic",
		"address": "address",
	}
	partySortColumns = map[string]string{
		"id":         "id",
		"name":       "name",
		"balance":    "balance",
		"created_at": "created_at",
	}
)

// PartyRepository implements usecase.PartyRepository.
type PartyRepository struct {
	pool *pgxpool.Pool
}

// NewPartyRepository creates a new PartyRepository.
func NewPartyRepository(pool *pgxpool.Pool) *PartyRepository {
	return &PartyRepository{pool: pool}
}

// Create inserts a new party and assigns its generated ID and timestamps.
func (r *PartyRepository) Create(ctx context.Context, party *domain.Party) error {
	now := time.Now().UTC()

	row := r.pool.QueryRow(ctx,
		`INSERT INTO parties (role, name, phone, cnic, email, address, balance, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		 RETURNING id`,
		string(party.Role),
		party.Name,
		textOrNull(party.Phone),
		textOrNull(party.CNIC),
		textOrNull(party.Email),
		textOrNull(party.Address),
		decimalToNumeric(party.Balance),
		timeToPgTimestamptz(now),
	)

	if err := row.Scan(&party.ID); err != nil {
		return err
	}

	party.CreatedAt = now
	party.UpdatedAt = now

	return nil
}

// GetByID retrieves a party by ID.
func (r *PartyRepository) GetByID(ctx context.Context, id int64) (*domain.Party, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+partyColumns+` FROM parties WHERE id = $1`, id)

	return scanParty(row)
}

// GetByIDForUpdate retrieves a party by ID with a FOR UPDATE lock.
func (r *PartyRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Party, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx,
		`SELECT `+partyColumns+` FROM parties WHERE id = $1 FOR UPDATE`, id)

	return scanParty(row)
}

// GetByIDsForUpdate retrieves multiple parties with FOR UPDATE locks. Rows
// come back ordered by ID so callers lock in a consistent order.
func (r *PartyRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Party, error) {
	pgxTx := tx.(*Tx).PgxTx()

	rows, err := pgxTx.Query(ctx,
		`SELECT `+partyColumns+` FROM parties WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanParties(rows)
}

// UpdateBalance updates the running balance of a party.
func (r *PartyRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx,
		`UPDATE parties SET balance = $2, updated_at = $3 WHERE id = $1`,
		id, decimalToNumeric(balance), timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPartyNotFound
	}

	return nil
}

// UpdateContact updates the contact fields of a party. The balance is only
// ever touched by ledger operations.
func (r *PartyRepository) UpdateContact(ctx context.Context, party *domain.Party) error {
	now := time.Now().UTC()

	tag, err := r.pool.Exec(ctx,
		`UPDATE parties SET name = $2, phone = $3, cnic = $4, email = $5, address = $6, updated_at = $7
		 WHERE id = $1`,
		party.ID,
		party.Name,
		textOrNull(party.Phone),
		textOrNull(party.CNIC),
		textOrNull(party.Email),
		textOrNull(party.Address),
		timeToPgTimestamptz(now),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPartyNotFound
	}

	party.UpdatedAt = now

	return nil
}

// Delete removes a party. Its ledger entries are kept.
func (r *PartyRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM parties WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPartyNotFound
	}

	return nil
}

// List lists parties matching the filter.
func (r *PartyRepository) List(ctx context.Context, filter usecase.PartyFilter) ([]*domain.Party, error) {
	var (
		sb   strings.Builder
		args []any
	)

	sb.WriteString(`SELECT ` + partyColumns + ` FROM parties`)

	var where []string

	if filter.Role != "" {
		args = append(args, string(filter.Role))
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}

	if filter.Search != "" {
		col, ok := partySearchColumns[filter.SearchBy]
		if !ok {
			col = "name"
		}

		args = append(args, filter.Search)
		where = append(where, fmt.Sprintf("%s ILIKE '%%' || $%d || '%%'", col, len(args)))
	}

	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}

	sortCol, ok := partySortColumns[filter.SortBy]
	if !ok {
		sortCol = "id"
	}

	sb.WriteString(" ORDER BY " + sortCol)
	if filter.Desc {
		sb.WriteString(" DESC")
	}

	args = append(args, filter.Limit)
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	args = append(args, filter.Offset)
	sb.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanParties(rows)
}

func scanParty(row pgx.Row) (*domain.Party, error) {
	var (
		party                       domain.Party
		role                        string
		phone, cnic, email, address pgtype.Text
		balance                     pgtype.Numeric
		createdAt, updatedAt        pgtype.Timestamptz
	)

	err := row.Scan(&party.ID, &role, &party.Name, &phone, &cnic, &email, &address,
		&balance, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPartyNotFound
		}

		return nil, err
	}

	party.Role = domain.Role(role)
	party.Phone = phone.String
	party.CNIC = cnic.String
	party.Email = email.String
	party.Address = address.String
	party.Balance = numericToDecimal(balance)
	party.CreatedAt = createdAt.Time
	party.UpdatedAt = updatedAt.Time

	return &party, nil
}

func scanParties(rows pgx.Rows) ([]*domain.Party, error) {
	parties := make([]*domain.Party, 0)

	for rows.Next() {
		party, err := scanParty(rows)
		if err != nil {
			return nil, err
		}

		parties = append(parties, party)
	}

	return parties, rows.Err()
}
