package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/urbavisu/urbavisu-api/internal/domain/user"
	"github.com/urbavisu/urbavisu-api/internal/pkg/jwt"
	"github.com/urbavisu/urbavisu-api/internal/pkg/logger"
	"github.com/urbavisu/urbavisu-api/internal/pkg/password"
)

// Service handles authentication business logic
type Service struct {
	userRepo    user.Repository
	jwtService  *jwt.Service
	revocations RevocationStore
}

// NewService creates auth service
func NewService(userRepo user.Repository, jwtService *jwt.Service, revocations RevocationStore) *Service {
	return &Service{
		userRepo:    userRepo,
		jwtService:  jwtService,
		revocations: revocations,
	}
}

// SignUp opens a client account awaiting approval and signs it in.
func (s *Service) SignUp(ctx context.Context, req *SignUpRequest) (*SessionResponse, error) {
	req.Email = user.NormalizeEmail(req.Email)

	if err := password.Check(req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err == nil && existing != nil {
		return nil, ErrEmailAlreadyExists
	}
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return nil, err
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         user.RoleClient,
		Credits:      0,
	}
	u.Apply(req.Profile)
	u.SetStatus(user.StatusPending)

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("user_id", u.ID.String()).
		Msg("account created")

	return s.newSession(u)
}

// SignIn authenticates user
func (s *Service) SignIn(ctx context.Context, req *SignInRequest) (*SessionResponse, error) {
	req.Email = user.NormalizeEmail(req.Email)

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.newSession(u)
}

// SignOut revokes the token id until the token would have expired.
func (s *Service) SignOut(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}
	return s.revocations.Revoke(ctx, tokenID, expiresAt)
}

// IsRevoked lets the auth middleware reject signed-out tokens.
func (s *Service) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.revocations.IsRevoked(ctx, tokenID)
}

// Current returns the signed-in user's record
func (s *Service) Current(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile stores the user's own profile edits.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, p user.Profile) (*user.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.Apply(p)
	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// AdminCreateUser opens an account from the back office. Validated follows
// the requested status and the balance always starts at zero.
func (s *Service) AdminCreateUser(ctx context.Context, acc NewAccount) (*user.User, error) {
	acc.Email = user.NormalizeEmail(acc.Email)

	if err := password.Check(acc.Password, acc.Password); err != nil {
		return nil, err
	}

	hash, err := password.Hash(acc.Password)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        acc.Email,
		PasswordHash: hash,
		Role:         acc.Role,
		Credits:      0,
	}
	u.Apply(acc.Profile)
	u.SetStatus(acc.Status)

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) newSession(u *user.User) (*SessionResponse, error) {
	token, err := s.jwtService.GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}

	return &SessionResponse{
		User:        u,
		AccessToken: token.Value,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.jwtService.GetAccessTTL().Seconds()),
		ExpiresAt:   token.ExpiresAt,
	}, nil
}
