package creditpack

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

type Repository interface {
	ListActive(ctx context.Context) ([]Pack, error)
	ListAll(ctx context.Context) ([]Pack, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Pack, error)
	Create(ctx context.Context, p *Pack) error
	Update(ctx context.Context, p *Pack) error
}

const packColumns = `id, name, credits, bonus_credits, price_rappen, is_popular, is_active, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListActive(ctx context.Context) ([]Pack, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	packs := make([]Pack, 0)
	err := r.db.SelectContext(ctx, &packs,
		`SELECT `+packColumns+` FROM credit_packs WHERE is_active = TRUE ORDER BY price_rappen ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: list active packs: %v", ErrInternal, err)
	}
	return packs, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Pack, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	packs := make([]Pack, 0)
	if err := r.db.SelectContext(ctx, &packs, `SELECT `+packColumns+` FROM credit_packs ORDER BY price_rappen ASC`); err != nil {
		return nil, fmt.Errorf("%w: list packs: %v", ErrInternal, err)
	}
	return packs, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Pack, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var p Pack
	if err := r.db.GetContext(ctx, &p, `SELECT `+packColumns+` FROM credit_packs WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPackNotFound
		}
		return nil, fmt.Errorf("%w: get pack: %v", ErrInternal, err)
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Pack) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO credit_packs (id, name, credits, bonus_credits, price_rappen, is_popular, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, p.ID, p.Name, p.Credits, p.BonusCredits, p.PriceRappen, p.IsPopular, p.IsActive).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: create pack: %v", ErrInternal, err)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, p *Pack) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRowxContext(ctx, `
		UPDATE credit_packs
		SET name = $2, credits = $3, bonus_credits = $4, price_rappen = $5, is_popular = $6, is_active = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, p.ID, p.Name, p.Credits, p.BonusCredits, p.PriceRappen, p.IsPopular, p.IsActive).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPackNotFound
		}
		return fmt.Errorf("%w: update pack: %v", ErrInternal, err)
	}
	return nil
}
