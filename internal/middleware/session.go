package middleware

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/urbavisu/urbavisu-api/internal/domain/user"
	"github.com/urbavisu/urbavisu-api/internal/pkg/i18n"
)

type contextKey string

const sessionKey contextKey = "session"

// Session is the authenticated caller for one request. Handlers pass it to
// services explicitly.
type Session struct {
	UserID    uuid.UUID
	Role      user.Role
	TokenID   string
	ExpiresAt time.Time
	Locale    i18n.Locale
}

// WithSession stores s on ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// GetSession returns the request session or nil when unauthenticated.
func GetSession(ctx context.Context) *Session {
	if s, ok := ctx.Value(sessionKey).(*Session); ok {
		return s
	}
	return nil
}

// GetUserID extracts user ID from context
func GetUserID(ctx context.Context) uuid.UUID {
	if s := GetSession(ctx); s != nil {
		return s.UserID
	}
	return uuid.Nil
}

// GetLocale returns the negotiated locale, French when none was set.
func GetLocale(ctx context.Context) i18n.Locale {
	if s := GetSession(ctx); s != nil && s.Locale != "" {
		return s.Locale
	}
	return i18n.FromContext(ctx)
}
