package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbavisu/urbavisu-api/internal/domain/auth"
	"github.com/urbavisu/urbavisu-api/internal/domain/user"
	"github.com/urbavisu/urbavisu-api/internal/pkg/jwt"
	"github.com/urbavisu/urbavisu-api/internal/testutil"
)

func setup(t *testing.T) (*testutil.Store, *auth.Service, *jwt.Service) {
	t.Helper()
	store := testutil.NewStore()
	tokens := jwt.NewService("test-secret", time.Hour)
	return store, auth.NewService(store.Users(), tokens, auth.NewMemoryRevocations()), tokens
}

func signUp(t *testing.T, svc *auth.Service, email string) *auth.SessionResponse {
	t.Helper()
	res, err := svc.SignUp(context.Background(), &auth.SignUpRequest{
		Email:           email,
		Password:        "geneve1",
		ConfirmPassword: "geneve1",
		Profile:         user.Profile{FirstName: "Luca", Company: "Studio Rossi"},
	})
	require.NoError(t, err)
	return res
}

func TestSignUpCreatesPendingClient(t *testing.T) {
	store, svc, tokens := setup(t)

	res := signUp(t, svc, "  Luca@Example.CH")
	assert.Equal(t, "luca@example.ch", res.User.Email)
	assert.Equal(t, user.RoleClient, res.User.Role)
	assert.Equal(t, user.StatusPending, res.User.Status)
	assert.False(t, res.User.Validated)
	assert.Equal(t, 0, res.User.Credits)
	assert.Equal(t, "Studio Rossi", res.User.Company)

	claims, err := tokens.ValidateAccessToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, string(user.RoleClient), claims.Role)

	stored, ok := store.User(res.User.ID)
	require.True(t, ok)
	assert.NotEqual(t, "geneve1", stored.PasswordHash)
}

func TestSignUpValidation(t *testing.T) {
	_, svc, _ := setup(t)
	signUp(t, svc, "taken@example.ch")

	tests := []struct {
		name string
		req  auth.SignUpRequest
		want error
	}{
		{"short password", auth.SignUpRequest{Email: "a@example.ch", Password: "abc", ConfirmPassword: "abc"}, auth.ErrPasswordTooShort},
		{"mismatch", auth.SignUpRequest{Email: "a@example.ch", Password: "abcdef", ConfirmPassword: "abcdeg"}, auth.ErrPasswordMismatch},
		{"duplicate email", auth.SignUpRequest{Email: "TAKEN@example.ch", Password: "abcdef", ConfirmPassword: "abcdef"}, auth.ErrEmailAlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := svc.SignUp(context.Background(), &req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSignIn(t *testing.T) {
	_, svc, _ := setup(t)
	created := signUp(t, svc, "marie@example.ch")

	res, err := svc.SignIn(context.Background(), &auth.SignInRequest{Email: "Marie@example.ch", Password: "geneve1"})
	require.NoError(t, err)
	assert.Equal(t, created.User.ID, res.User.ID)

	_, err = svc.SignIn(context.Background(), &auth.SignInRequest{Email: "marie@example.ch", Password: "wrong!"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.SignIn(context.Background(), &auth.SignInRequest{Email: "nobody@example.ch", Password: "geneve1"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestSignOutRevokesToken(t *testing.T) {
	_, svc, tokens := setup(t)
	res := signUp(t, svc, "paul@example.ch")
	ctx := context.Background()

	claims, err := tokens.ValidateAccessToken(res.AccessToken)
	require.NoError(t, err)

	revoked, err := svc.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, svc.SignOut(ctx, claims.ID, claims.ExpiresAt.Time))

	revoked, err = svc.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestUpdateProfileKeepsCredits(t *testing.T) {
	store, svc, _ := setup(t)
	u := store.AddUser(user.User{Credits: 9})

	updated, err := svc.UpdateProfile(context.Background(), u.ID, user.Profile{
		FirstName: "Sofia",
		Address:   "Via Nassa 5, 6900 Lugano",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sofia", updated.FirstName)

	stored, _ := store.User(u.ID)
	assert.Equal(t, "Via Nassa 5, 6900 Lugano", stored.Address)
	assert.Equal(t, 9, stored.Credits)
}

func TestMemoryRevocationsIgnoreExpiredTokens(t *testing.T) {
	store := auth.NewMemoryRevocations()
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "expired", time.Now().Add(-time.Minute)))
	require.NoError(t, store.Revoke(ctx, "live", time.Now().Add(time.Minute)))

	revoked, _ := store.IsRevoked(ctx, "expired")
	assert.False(t, revoked)
	revoked, _ = store.IsRevoked(ctx, "live")
	assert.True(t, revoked)
}
