package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/urbavisu/urbavisu-api/internal/domain/credit"
	"github.com/urbavisu/urbavisu-api/internal/domain/tool"
	"github.com/urbavisu/urbavisu-api/internal/pkg/database"
	"github.com/urbavisu/urbavisu-api/internal/pkg/logger"
	"github.com/urbavisu/urbavisu-api/internal/pkg/metrics"
)

// ToolCatalog resolves ordered tool ids to active tools.
type ToolCatalog interface {
	Resolve(ctx context.Context, ids []uuid.UUID) ([]tool.Tool, error)
}

// SearchSessions tells whether a user searched an address recently.
type SearchSessions interface {
	WasSearched(ctx context.Context, userID uuid.UUID, address string) (bool, error)
}

type Service struct {
	repo     Repository
	tools    ToolCatalog
	searches SearchSessions
	credits  credit.Service
	tx       database.Transactor
}

func NewService(repo Repository, tools ToolCatalog, searches SearchSessions, credits credit.Service, tx database.Transactor) *Service {
	return &Service{repo: repo, tools: tools, searches: searches, credits: credits, tx: tx}
}

// Place settles an order: the balance check, the order row and the usage
// entry commit together or not at all.
func (s *Service) Place(ctx context.Context, userID uuid.UUID, in PlaceInput) (*Placement, error) {
	placement, err := s.place(ctx, userID, in)
	switch {
	case err == nil:
		metrics.OrderSettled(metrics.OrderCompleted)
	case errors.Is(err, ErrInsufficientCredits):
		metrics.OrderSettled(metrics.OrderInsufficient)
	case errors.Is(err, ErrEmptyAddress), errors.Is(err, ErrNoOptions),
		errors.Is(err, ErrAddressNotSearched), errors.Is(err, ErrUnknownTool):
		metrics.OrderSettled(metrics.OrderRejected)
	default:
		metrics.OrderSettled(metrics.OrderFailed)
	}
	return placement, err
}

func (s *Service) place(ctx context.Context, userID uuid.UUID, in PlaceInput) (*Placement, error) {
	address := strings.TrimSpace(in.Address)
	if address == "" {
		return nil, ErrEmptyAddress
	}
	ids := tool.Dedupe(in.ToolIDs)
	if len(ids) == 0 {
		return nil, ErrNoOptions
	}

	searched, err := s.searches.WasSearched(ctx, userID, address)
	if err != nil {
		return nil, err
	}
	if !searched {
		return nil, ErrAddressNotSearched
	}

	tools, err := s.tools.Resolve(ctx, ids)
	if err != nil {
		return nil, err
	}
	total := tool.TotalCost(tools)

	o := &Order{
		UserID:          userID,
		SearchedAddress: address,
		Options:         ToolIDs(ids),
		TotalCost:       total,
		Status:          StatusCompleted,
	}

	var (
		charged *credit.Result
		balance int
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.credits.BalanceForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}
		if total > current {
			return ErrInsufficientCredits
		}

		if err := s.repo.Insert(ctx, tx, o); err != nil {
			return err
		}

		balance = current
		if total == 0 {
			return nil
		}
		charged, err = s.credits.ApplyTx(ctx, tx, credit.Mutation{
			UserID: userID,
			Delta:  -total,
			Type:   credit.TypeUsage,
			Reason: OrderReason(address),
		})
		if err != nil {
			return err
		}
		balance = charged.Balance
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			logger.FromContext(ctx).Error().
				Err(err).
				Str("user_id", userID.String()).
				Msg("order not settled")
		}
		return nil, err
	}

	credit.Observe(ctx, charged)
	logger.FromContext(ctx).Info().
		Str("user_id", userID.String()).
		Str("order_id", o.ID.String()).
		Int("total_cost", total).
		Msg("order placed")

	return &Placement{Order: *o, Balance: balance}, nil
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Order, int, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]AdminOrder, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) CountSince(ctx context.Context, since time.Time) (int, error) {
	return s.repo.CountSince(ctx, since)
}
