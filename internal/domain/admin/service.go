package admin

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/urbavisu/urbavisu-api/internal/domain/auth"
	"github.com/urbavisu/urbavisu-api/internal/domain/credit"
	"github.com/urbavisu/urbavisu-api/internal/domain/user"
	"github.com/urbavisu/urbavisu-api/internal/pkg/database"
	"github.com/urbavisu/urbavisu-api/internal/pkg/logger"
)

// Identity opens accounts on behalf of an administrator.
type Identity interface {
	AdminCreateUser(ctx context.Context, acc auth.NewAccount) (*user.User, error)
}

// Service handles back-office account management.
type Service struct {
	users        user.Repository
	credits      credit.Service
	identity     Identity
	routes       RouteRepository
	tx           database.Transactor
	welcomeBonus int
}

// NewService creates admin service. welcomeBonus is the number of credits
// granted when a pending account is approved.
func NewService(
	users user.Repository,
	credits credit.Service,
	identity Identity,
	routes RouteRepository,
	tx database.Transactor,
	welcomeBonus int,
) *Service {
	return &Service{
		users:        users,
		credits:      credits,
		identity:     identity,
		routes:       routes,
		tx:           tx,
		welcomeBonus: welcomeBonus,
	}
}

// UpdateUser applies an administrator's edits to an account. A changed
// balance is recorded in the ledger as a gift or a usage.
func (s *Service) UpdateUser(ctx context.Context, actor Actor, id uuid.UUID, in UpdateUserInput) (*user.User, error) {
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, user.ErrInvalidRole
		}
		if !CanAssignRole(actor.Role, *in.Role) {
			return nil, ErrCannotAssignRole
		}
	}
	if in.Credits != nil && *in.Credits < 0 {
		return nil, ErrNegativeCredits
	}

	var (
		updated *user.User
		applied []*credit.Result
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		u, err := s.users.GetForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if !CanManage(actor.Role, u.Role) {
			return ErrCannotManageUser
		}

		// Credits is compared with the balance as read, so a welcome bonus paid
		// by the status change below is kept when the balance was left alone.
		before := u.Credits
		in.applyProfile(u)
		if in.Role != nil {
			u.Role = *in.Role
		}

		if in.Status != nil {
			res, err := s.transition(ctx, tx, actor, u, *in.Status)
			if err != nil {
				return err
			}
			applied = append(applied, res)
		}

		if in.Credits != nil && *in.Credits != before {
			if delta := *in.Credits - u.Credits; delta != 0 {
				typ := credit.TypeGift
				if delta < 0 {
					typ = credit.TypeUsage
				}
				res, err := s.credits.ApplyTx(ctx, tx, credit.Mutation{
					UserID:  u.ID,
					Delta:   delta,
					Type:    typ,
					Reason:  ReasonAdminModification,
					ActorID: &actor.ID,
				})
				if err != nil {
					return err
				}
				u.Credits = res.Balance
				applied = append(applied, res)
			}
		}

		if err := s.users.UpdateTx(ctx, tx, u); err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, res := range applied {
		credit.Observe(ctx, res)
	}

	logger.FromContext(ctx).Info().
		Str("admin_id", actor.ID.String()).
		Str("user_id", id.String()).
		Msg("user updated by admin")

	return updated, nil
}

// GrantCredits adds quantity credits to an account as a gift.
func (s *Service) GrantCredits(ctx context.Context, actor Actor, id uuid.UUID, quantity int) (*credit.Result, error) {
	if quantity <= 0 {
		return nil, ErrInvalidAmount
	}

	var res *credit.Result
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		u, err := s.users.GetForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if !CanManage(actor.Role, u.Role) {
			return ErrCannotManageUser
		}

		res, err = s.credits.ApplyTx(ctx, tx, credit.Mutation{
			UserID:  id,
			Delta:   quantity,
			Type:    credit.TypeGift,
			Reason:  ReasonManualAddition,
			ActorID: &actor.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	credit.Observe(ctx, res)
	return res, nil
}

// ChangeStatus moves an account to next. Approving a pending account pays
// the welcome bonus once.
func (s *Service) ChangeStatus(ctx context.Context, actor Actor, id uuid.UUID, next user.Status) (*user.User, error) {
	var (
		updated *user.User
		bonus   *credit.Result
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		u, err := s.users.GetForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if !CanManage(actor.Role, u.Role) {
			return ErrCannotManageUser
		}
		if u.Status == next {
			updated = u
			return nil
		}

		bonus, err = s.transition(ctx, tx, actor, u, next)
		if err != nil {
			return err
		}
		if err := s.users.UpdateTx(ctx, tx, u); err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	credit.Observe(ctx, bonus)
	return updated, nil
}

// transition changes u's status in memory and pays the welcome bonus inside
// tx when due. The caller persists u.
func (s *Service) transition(ctx context.Context, tx *sqlx.Tx, actor Actor, u *user.User, next user.Status) (*credit.Result, error) {
	if !next.Valid() {
		return nil, user.ErrInvalidStatus
	}
	if !u.Status.CanTransitionTo(next) {
		return nil, ErrInvalidStatusTransition
	}
	if u.Status == next {
		return nil, nil
	}

	prev := u.Status
	u.SetStatus(next)

	if prev != user.StatusPending || next != user.StatusApproved {
		return nil, nil
	}
	if u.WelcomeBonusGranted || u.Credits != 0 || s.welcomeBonus <= 0 {
		return nil, nil
	}

	res, err := s.credits.ApplyTx(ctx, tx, credit.Mutation{
		UserID:  u.ID,
		Delta:   s.welcomeBonus,
		Type:    credit.TypeGift,
		Reason:  ReasonWelcomeCredits,
		ActorID: &actor.ID,
	})
	if err != nil {
		return nil, err
	}
	u.Credits = res.Balance
	u.WelcomeBonusGranted = true
	return res, nil
}

// CreateUser opens an account with the given role and status and a zero balance.
func (s *Service) CreateUser(ctx context.Context, actor Actor, in CreateUserInput) (*user.User, error) {
	if !in.Role.Valid() {
		return nil, user.ErrInvalidRole
	}
	if !in.Status.Valid() {
		return nil, user.ErrInvalidStatus
	}
	if !CanAssignRole(actor.Role, in.Role) {
		return nil, ErrCannotAssignRole
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return nil, ErrNameRequired
	}

	u, err := s.identity.AdminCreateUser(ctx, auth.NewAccount{
		Email:    in.Email,
		Password: in.Password,
		Profile:  in.Profile,
		Role:     in.Role,
		Status:   in.Status,
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("admin_id", actor.ID.String()).
		Str("user_id", u.ID.String()).
		Str("role", string(u.Role)).
		Msg("user created by admin")

	return u, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context, filter user.ListFilter) ([]*user.User, int, error) {
	return s.users.List(ctx, filter)
}

// UserCredits returns a user's balance and ledger page.
func (s *Service) UserCredits(ctx context.Context, id uuid.UUID, page credit.Pagination) (*UserCredits, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	entries, total, err := s.credits.History(ctx, id, page)
	if err != nil {
		return nil, err
	}
	return &UserCredits{UserID: id, Balance: u.Credits, Entries: entries, Total: total}, nil
}

// ListRoutes returns the active back-office navigation, or the built-in set
// when none is configured.
func (s *Service) ListRoutes(ctx context.Context) ([]Route, error) {
	routes, err := s.routes.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return DefaultRoutes(), nil
	}
	return routes, nil
}
