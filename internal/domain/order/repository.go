package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

type Repository interface {
	Insert(ctx context.Context, tx *sqlx.Tx, o *Order) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Order, int, error)
	List(ctx context.Context, limit, offset int) ([]AdminOrder, int, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

const orderColumns = `o.id, o.user_id, o.searched_address, o.options, o.total_cost, o.status, o.created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, tx *sqlx.Tx, o *Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	err := tx.QueryRowxContext(ctx, `
		INSERT INTO orders (id, user_id, searched_address, options, total_cost, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, o.ID, o.UserID, o.SearchedAddress, o.Options, o.TotalCost, o.Status).Scan(&o.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: insert order: %v", ErrInternal, err)
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Order, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID); err != nil {
		return nil, 0, fmt.Errorf("%w: count orders: %v", ErrInternal, err)
	}

	orders := make([]Order, 0)
	err := r.db.SelectContext(ctx, &orders, `
		SELECT `+orderColumns+`
		FROM orders o
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list orders: %v", ErrInternal, err)
	}
	return orders, total, nil
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]AdminOrder, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM orders`); err != nil {
		return nil, 0, fmt.Errorf("%w: count orders: %v", ErrInternal, err)
	}

	orders := make([]AdminOrder, 0)
	err := r.db.SelectContext(ctx, &orders, `
		SELECT `+orderColumns+`, u.email AS user_email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list all orders: %v", ErrInternal, err)
	}
	return orders, total, nil
}

func (r *repository) CountSince(ctx context.Context, since time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM orders WHERE created_at >= $1`, since); err != nil {
		return 0, fmt.Errorf("%w: count orders since: %v", ErrInternal, err)
	}
	return count, nil
}
