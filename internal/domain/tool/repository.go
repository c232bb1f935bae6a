package tool

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const queryTimeout = 3 * time.Second

type Repository interface {
	ListActive(ctx context.Context) ([]Tool, error)
	ListAll(ctx context.Context) ([]Tool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Tool, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Tool, error)
	Create(ctx context.Context, t *Tool) error
	Update(ctx context.Context, t *Tool) error
}

const toolColumns = `id, name, description, credit_cost, is_free, is_active, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListActive(ctx context.Context) ([]Tool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tools := make([]Tool, 0)
	err := r.db.SelectContext(ctx, &tools,
		`SELECT `+toolColumns+` FROM tools WHERE is_active = TRUE ORDER BY credit_cost ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: list active tools: %v", ErrInternal, err)
	}
	return tools, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Tool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tools := make([]Tool, 0)
	if err := r.db.SelectContext(ctx, &tools, `SELECT `+toolColumns+` FROM tools ORDER BY name ASC`); err != nil {
		return nil, fmt.Errorf("%w: list tools: %v", ErrInternal, err)
	}
	return tools, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Tool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var t Tool
	if err := r.db.GetContext(ctx, &t, `SELECT `+toolColumns+` FROM tools WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrToolNotFound
		}
		return nil, fmt.Errorf("%w: get tool: %v", ErrInternal, err)
	}
	return &t, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Tool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tools := make([]Tool, 0, len(ids))
	if len(ids) == 0 {
		return tools, nil
	}
	err := r.db.SelectContext(ctx, &tools,
		`SELECT `+toolColumns+` FROM tools WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("%w: get tools: %v", ErrInternal, err)
	}
	return tools, nil
}

func (r *repository) Create(ctx context.Context, t *Tool) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO tools (id, name, description, credit_cost, is_free, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, t.ID, t.Name, t.Description, t.CreditCost, t.IsFree, t.IsActive).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: create tool: %v", ErrInternal, err)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, t *Tool) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRowxContext(ctx, `
		UPDATE tools
		SET name = $2, description = $3, credit_cost = $4, is_free = $5, is_active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, t.ID, t.Name, t.Description, t.CreditCost, t.IsFree, t.IsActive).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrToolNotFound
		}
		return fmt.Errorf("%w: update tool: %v", ErrInternal, err)
	}
	return nil
}
