package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/urbavisu/urbavisu-api/internal/pkg/database"
)

const queryTimeout = 3 * time.Second

// Repository defines user data access interface.
// Credits are only written by the credit ledger, never by Update.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	List(ctx context.Context, filter ListFilter) ([]*User, int, error)
	Count(ctx context.Context, status *Status) (int, error)

	// GetForUpdate reads the user row and locks it until tx ends.
	GetForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*User, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, user *User) error
}

const userColumns = `id, email, password_hash, first_name, last_name, company, address, phone,
	role, status, credits, validated, welcome_bonus_granted, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new user repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, company, address, phone,
		                   role, status, credits, validated, welcome_bonus_granted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Company,
		user.Address, user.Phone, user.Role, user.Status, user.Credits, user.Validated,
		user.WelcomeBonusGranted,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("%w: create user: %v", ErrInternal, err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var u User
	err := r.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: get user: %v", ErrInternal, err)
	}
	return &u, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var u User
	err := r.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: get user by email: %v", ErrInternal, err)
	}
	return &u, nil
}

const updateQuery = `
	UPDATE users
	SET first_name = $2, last_name = $3, company = $4, address = $5, phone = $6,
	    role = $7, status = $8, validated = $9, welcome_bonus_granted = $10, updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at`

func updateArgs(u *User) []interface{} {
	return []interface{}{
		u.ID, u.FirstName, u.LastName, u.Company, u.Address, u.Phone,
		u.Role, u.Status, u.Validated, u.WelcomeBonusGranted,
	}
}

func (r *repository) Update(ctx context.Context, user *User) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRowxContext(ctx, updateQuery, updateArgs(user)...).Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: update user: %v", ErrInternal, err)
	}
	return nil
}

func (r *repository) UpdateTx(ctx context.Context, tx *sqlx.Tx, user *User) error {
	err := tx.QueryRowxContext(ctx, updateQuery, updateArgs(user)...).Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: update user: %v", ErrInternal, err)
	}
	return nil
}

func (r *repository) GetForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*User, error) {
	var u User
	err := tx.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: lock user: %v", ErrInternal, err)
	}
	return &u, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*User, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	where := []string{"1=1"}
	args := make([]interface{}, 0, 5)
	idx := 1

	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", idx))
		args = append(args, *filter.Status)
		idx++
	}
	if filter.Role != nil {
		where = append(where, fmt.Sprintf("role = $%d", idx))
		args = append(args, *filter.Role)
		idx++
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		where = append(where, fmt.Sprintf(
			"(email ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d OR company ILIKE $%d)",
			idx, idx, idx, idx))
		args = append(args, "%"+s+"%")
		idx++
	}
	clause := strings.Join(where, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users WHERE `+clause, args...); err != nil {
		return nil, 0, fmt.Errorf("%w: count users: %v", ErrInternal, err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		userColumns, clause, idx, idx+1)
	args = append(args, limit, filter.Offset)

	users := make([]*User, 0)
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("%w: list users: %v", ErrInternal, err)
	}
	return users, total, nil
}

func (r *repository) Count(ctx context.Context, status *Status) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var (
		count int
		err   error
	)
	if status == nil {
		err = r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`)
	} else {
		err = r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE status = $1`, *status)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: count users: %v", ErrInternal, err)
	}
	return count, nil
}
