package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/urbavisu/urbavisu-api/internal/domain/user"
	"github.com/urbavisu/urbavisu-api/internal/pkg/jwt"
	"github.com/urbavisu/urbavisu-api/internal/pkg/logger"
	"github.com/urbavisu/urbavisu-api/internal/pkg/response"
)

// RevocationChecker reports whether a signed-out token id is still presented.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// UserLookup reads the current account record.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// Auth returns middleware that validates the session token
func Auth(jwtService *jwt.Service, revoked RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := jwtService.ValidateAccessToken(parts[1])
			if err != nil {
				if errors.Is(err, jwt.ErrExpiredToken) {
					response.Unauthorized(w, "Token expired")
				} else {
					response.Unauthorized(w, "Invalid token")
				}
				return
			}

			if revoked != nil {
				isRevoked, err := revoked.IsRevoked(r.Context(), claims.ID)
				if err != nil {
					logger.FromContext(r.Context()).Error().Err(err).Msg("revocation check failed")
					response.InternalError(w)
					return
				}
				if isRevoked {
					response.Unauthorized(w, "Session ended")
					return
				}
			}

			session := &Session{
				UserID:  claims.UserID,
				Role:    user.Role(claims.Role),
				TokenID: claims.ID,
				Locale:  GetLocale(r.Context()),
			}
			if claims.ExpiresAt != nil {
				session.ExpiresAt = claims.ExpiresAt.Time
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// RequireAdmin lets through admin and super_admin accounts. The role is read
// from the user record so a demotion takes effect before the token expires.
func RequireAdmin(users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := GetSession(r.Context())
			if session == nil {
				response.Unauthorized(w, "Authentication required")
				return
			}

			u, err := users.GetByID(r.Context(), session.UserID)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					response.Unauthorized(w, "Unknown account")
					return
				}
				logger.FromContext(r.Context()).Error().
					Err(err).
					Str("user_id", session.UserID.String()).
					Msg("role lookup failed")
				response.InternalError(w)
				return
			}

			if !u.Role.IsAdmin() {
				response.Forbidden(w, "Insufficient permissions")
				return
			}

			session.Role = u.Role
			next.ServeHTTP(w, r)
		})
	}
}
