package testutil

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/urbavisu/urbavisu-api/internal/domain/user"
	"github.com/urbavisu/urbavisu-api/internal/middleware"
	"github.com/urbavisu/urbavisu-api/internal/pkg/i18n"
)

// WithChiURLParam adds a chi URL parameter to the request context.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// WithSession signs the request in as userID with role and locale.
func WithSession(r *http.Request, userID uuid.UUID, role user.Role, locale i18n.Locale) *http.Request {
	s := &middleware.Session{UserID: userID, Role: role, TokenID: uuid.NewString(), Locale: locale}
	return r.WithContext(middleware.WithSession(r.Context(), s))
}
