package lookup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/urbavisu/urbavisu-api/internal/pkg/logger"
)

type Service struct {
	resolver Resolver
	sessions SessionStore
	ttl      time.Duration
}

func NewService(resolver Resolver, sessions SessionStore, ttl time.Duration) *Service {
	return &Service{resolver: resolver, sessions: sessions, ttl: ttl}
}

func sessionKey(userID uuid.UUID, address string) string {
	sum := sha256.Sum256([]byte(Normalize(address)))
	return fmt.Sprintf("search:%s:%s", userID, hex.EncodeToString(sum[:]))
}

// Search resolves an address and opens a search session that lets the user
// order tools for it until the session expires.
func (s *Service) Search(ctx context.Context, userID uuid.UUID, address string) (*Result, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrEmptyAddress
	}

	res, err := s.resolver.Resolve(ctx, address)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Mark(ctx, sessionKey(userID, address), s.ttl); err != nil {
		logger.FromContext(ctx).Error().
			Err(err).
			Str("user_id", userID.String()).
			Msg("search session not recorded")
		return nil, err
	}
	return res, nil
}

// WasSearched reports whether the user has an open search session for address.
func (s *Service) WasSearched(ctx context.Context, userID uuid.UUID, address string) (bool, error) {
	if strings.TrimSpace(address) == "" {
		return false, nil
	}
	return s.sessions.Exists(ctx, sessionKey(userID, address))
}
