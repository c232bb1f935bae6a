package translation

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/urbavisu/urbavisu-api/internal/pkg/logger"
)

type Service struct {
	repo      Repository
	localizer *Localizer
}

// NewService creates the translation service. localizer may be nil.
func NewService(repo Repository, localizer *Localizer) *Service {
	return &Service{repo: repo, localizer: localizer}
}

func (s *Service) List(ctx context.Context) ([]Translation, error) {
	return s.repo.List(ctx)
}

func validate(in Input) error {
	if in.Key == "" {
		return ErrKeyRequired
	}
	if strings.TrimSpace(in.FR) == "" {
		return ErrFrenchRequired
	}
	return nil
}

// Create stores a new translation. The key is checked for uniqueness before
// anything is written.
func (s *Service) Create(ctx context.Context, in Input) (*Translation, error) {
	in = in.normalized()
	if err := validate(in); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsKey(ctx, in.Key, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateKey
	}

	t := &Translation{}
	in.apply(t)
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.reload(ctx)
	return t, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*Translation, error) {
	in = in.normalized()
	if err := validate(in); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Key != t.Key {
		exists, err := s.repo.ExistsKey(ctx, in.Key, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateKey
		}
	}

	in.apply(t)
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.reload(ctx)
	return t, nil
}

func (s *Service) reload(ctx context.Context) {
	if s.localizer == nil {
		return
	}
	if err := s.localizer.Load(ctx); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("translations not reloaded")
	}
}
