package translation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/urbavisu/urbavisu-api/internal/pkg/database"
)

const queryTimeout = 3 * time.Second

type Repository interface {
	List(ctx context.Context) ([]Translation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Translation, error)
	// ExistsKey reports whether another translation already uses key.
	ExistsKey(ctx context.Context, key string, except uuid.UUID) (bool, error)
	Create(ctx context.Context, t *Translation) error
	Update(ctx context.Context, t *Translation) error
}

const translationColumns = `id, key, fr, de, it, en, category, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Translation, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	items := make([]Translation, 0)
	if err := r.db.SelectContext(ctx, &items, `SELECT `+translationColumns+` FROM translations ORDER BY key ASC`); err != nil {
		return nil, fmt.Errorf("%w: list translations: %v", ErrInternal, err)
	}
	return items, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Translation, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var t Translation
	if err := r.db.GetContext(ctx, &t, `SELECT `+translationColumns+` FROM translations WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTranslationNotFound
		}
		return nil, fmt.Errorf("%w: get translation: %v", ErrInternal, err)
	}
	return &t, nil
}

func (r *repository) ExistsKey(ctx context.Context, key string, except uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM translations WHERE key = $1 AND id <> $2)`, key, except)
	if err != nil {
		return false, fmt.Errorf("%w: check key: %v", ErrInternal, err)
	}
	return exists, nil
}

func (r *repository) Create(ctx context.Context, t *Translation) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO translations (id, key, fr, de, it, en, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, t.ID, t.Key, t.FR, t.DE, t.IT, t.EN, t.Category).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("%w: create translation: %v", ErrInternal, err)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, t *Translation) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRowxContext(ctx, `
		UPDATE translations
		SET key = $2, fr = $3, de = $4, it = $5, en = $6, category = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, t.ID, t.Key, t.FR, t.DE, t.IT, t.EN, t.Category).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTranslationNotFound
		}
		if database.IsUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("%w: update translation: %v", ErrInternal, err)
	}
	return nil
}
