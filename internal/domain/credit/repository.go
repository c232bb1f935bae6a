package credit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

// Repository stores balances and ledger entries. Entries are never updated
// or deleted.
type Repository interface {
	// LockBalance reads the balance and locks the user row until tx ends.
	LockBalance(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) (int, error)
	SetBalance(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, balance int) error
	Insert(ctx context.Context, tx *sqlx.Tx, entry *Entry) error

	GetBalance(ctx context.Context, userID uuid.UUID) (int, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page Pagination) ([]Entry, int, error)
	SumByUser(ctx context.Context, userID uuid.UUID) (int, error)
	Totals(ctx context.Context) (*Totals, error)
}

// CreditRepository provides credit ledger and balance operations on Postgres.
type CreditRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *CreditRepository {
	return &CreditRepository{db: db}
}

func (r *CreditRepository) LockBalance(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) (int, error) {
	var balance int
	err := tx.QueryRowContext(ctx, `SELECT credits FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("%w: lock user row: %v", ErrInternal, err)
	}
	return balance, nil
}

func (r *CreditRepository) SetBalance(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, balance int) error {
	res, err := tx.ExecContext(ctx, `UPDATE users SET credits = $2, updated_at = NOW() WHERE id = $1`, userID, balance)
	if err != nil {
		return fmt.Errorf("%w: update user balance: %v", ErrInternal, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", ErrInternal, err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *CreditRepository) Insert(ctx context.Context, tx *sqlx.Tx, entry *Entry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	err := tx.QueryRowxContext(ctx, `
		INSERT INTO credits (id, user_id, type, quantity, reason, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, entry.ID, entry.UserID, entry.Type, entry.Quantity, entry.Reason, entry.CreatedBy).Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: insert entry: %v", ErrInternal, err)
	}
	return nil
}

func (r *CreditRepository) GetBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var balance int
	err := r.db.GetContext(ctx, &balance, `SELECT credits FROM users WHERE id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("%w: get balance: %v", ErrInternal, err)
	}
	return balance, nil
}

func (r *CreditRepository) ListByUser(ctx context.Context, userID uuid.UUID, page Pagination) ([]Entry, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	page = page.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM credits WHERE user_id = $1`, userID); err != nil {
		return nil, 0, fmt.Errorf("%w: count entries: %v", ErrInternal, err)
	}

	entries := make([]Entry, 0)
	err := r.db.SelectContext(ctx, &entries, `
		SELECT id, user_id, type, quantity, reason, created_by, created_at
		FROM credits
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list entries: %v", ErrInternal, err)
	}
	return entries, total, nil
}

func (r *CreditRepository) SumByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var sum int
	err := r.db.GetContext(ctx, &sum, `SELECT COALESCE(SUM(quantity), 0) FROM credits WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: sum entries: %v", ErrInternal, err)
	}
	return sum, nil
}

func (r *CreditRepository) Totals(ctx context.Context) (*Totals, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var t Totals
	err := r.db.GetContext(ctx, &t, `
		SELECT
			COALESCE(SUM(quantity) FILTER (WHERE type = 'purchase'), 0) AS sold,
			COALESCE(ABS(SUM(quantity) FILTER (WHERE type = 'usage')), 0) AS used
		FROM credits
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: credit totals: %v", ErrInternal, err)
	}
	return &t, nil
}
