package tool

import (
	"context"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListActive(ctx context.Context) ([]Tool, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) ListAll(ctx context.Context) ([]Tool, error) {
	return s.repo.ListAll(ctx)
}

// Resolve loads the tools for an order. Duplicate ids collapse to one tool;
// a missing or inactive id fails the whole set with ErrUnknownTool.
func (s *Service) Resolve(ctx context.Context, ids []uuid.UUID) ([]Tool, error) {
	unique := Dedupe(ids)
	tools, err := s.repo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]Tool, len(tools))
	for _, t := range tools {
		byID[t.ID] = t
	}

	resolved := make([]Tool, 0, len(unique))
	for _, id := range unique {
		t, ok := byID[id]
		if !ok || !t.IsActive {
			return nil, ErrUnknownTool
		}
		resolved = append(resolved, t)
	}
	return resolved, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*Tool, error) {
	t := &Tool{IsActive: true}
	in.apply(t)
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*Tool, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(t)
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Dedupe drops repeated ids, keeping first-seen order.
func Dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
