package credit

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/urbavisu/urbavisu-api/internal/pkg/database"
	"github.com/urbavisu/urbavisu-api/internal/pkg/logger"
	"github.com/urbavisu/urbavisu-api/internal/pkg/metrics"
)

// Service is the balance-mutation primitive and the ledger read side.
type Service interface {
	// Apply changes a balance and appends the matching entry in one transaction.
	Apply(ctx context.Context, m Mutation) (*Result, error)

	// ApplyTx does the same inside a caller-owned transaction. The caller must
	// pass the result to Observe once the transaction commits.
	ApplyTx(ctx context.Context, tx *sqlx.Tx, m Mutation) (*Result, error)

	// BalanceForUpdate locks the user's balance for the rest of tx.
	BalanceForUpdate(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) (int, error)

	GetBalance(ctx context.Context, userID uuid.UUID) (int, error)
	History(ctx context.Context, userID uuid.UUID, page Pagination) ([]Entry, int, error)
	Totals(ctx context.Context) (*Totals, error)
	Reconcile(ctx context.Context, userID uuid.UUID) (*Reconciliation, error)
}

type service struct {
	repo Repository
	tx   database.Transactor
}

// NewService creates a new credit service
func NewService(repo Repository, tx database.Transactor) Service {
	return &service{repo: repo, tx: tx}
}

func (s *service) Apply(ctx context.Context, m Mutation) (*Result, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}

	var res *Result
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		r, err := s.ApplyTx(ctx, tx, m)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	Observe(ctx, res)
	return res, nil
}

func (s *service) ApplyTx(ctx context.Context, tx *sqlx.Tx, m Mutation) (*Result, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}

	balance, err := s.repo.LockBalance(ctx, tx, m.UserID)
	if err != nil {
		return nil, s.storeErr(ctx, "credit.lock_balance", m.UserID, err)
	}

	next := balance + m.Delta
	if err := s.repo.SetBalance(ctx, tx, m.UserID, next); err != nil {
		return nil, s.storeErr(ctx, "credit.set_balance", m.UserID, err)
	}

	entry := &Entry{
		UserID:   m.UserID,
		Type:     m.Type,
		Quantity: m.Delta,
		Reason:   m.Reason,
	}
	if m.ActorID != nil {
		entry.CreatedBy = uuid.NullUUID{UUID: *m.ActorID, Valid: true}
	}
	if err := s.repo.Insert(ctx, tx, entry); err != nil {
		return nil, s.storeErr(ctx, "credit.insert_entry", m.UserID, err)
	}

	return &Result{Entry: *entry, Balance: next}, nil
}

func (s *service) BalanceForUpdate(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) (int, error) {
	balance, err := s.repo.LockBalance(ctx, tx, userID)
	if err != nil {
		return 0, s.storeErr(ctx, "credit.lock_balance", userID, err)
	}
	return balance, nil
}

func (s *service) GetBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.GetBalance(ctx, userID)
}

func (s *service) History(ctx context.Context, userID uuid.UUID, page Pagination) ([]Entry, int, error) {
	return s.repo.ListByUser(ctx, userID, page.Normalize())
}

func (s *service) Totals(ctx context.Context) (*Totals, error) {
	return s.repo.Totals(ctx)
}

func (s *service) Reconcile(ctx context.Context, userID uuid.UUID) (*Reconciliation, error) {
	balance, err := s.repo.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	sum, err := s.repo.SumByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	rec := &Reconciliation{
		UserID:     userID,
		Balance:    balance,
		LedgerSum:  sum,
		Consistent: balance == sum,
	}
	if !rec.Consistent {
		logger.FromContext(ctx).Warn().
			Str("user_id", userID.String()).
			Int("balance", balance).
			Int("ledger_sum", sum).
			Msg("credit balance does not match ledger")
	}
	return rec, nil
}

func (s *service) storeErr(ctx context.Context, op string, userID uuid.UUID, err error) error {
	if errors.Is(err, ErrInternal) {
		logger.FromContext(ctx).Error().
			Err(err).
			Str("operation", op).
			Str("user_id", userID.String()).
			Msg("credit store failure")
	}
	return err
}

// Observe logs and counts a committed ledger mutation.
func Observe(ctx context.Context, res *Result) {
	if res == nil {
		return
	}
	metrics.CreditApplied(string(res.Entry.Type), res.Entry.Quantity)
	logger.FromContext(ctx).Info().
		Str("user_id", res.Entry.UserID.String()).
		Str("type", string(res.Entry.Type)).
		Int("delta", res.Entry.Quantity).
		Int("balance", res.Balance).
		Msg("credits applied")
}
