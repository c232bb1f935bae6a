package auth

import (
	"time"

	"github.com/urbavisu/urbavisu-api/internal/domain/user"
)

// SignUpRequest for POST /auth/signup
type SignUpRequest struct {
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required,max=128"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	user.Profile
}

// SignInRequest for POST /auth/signin
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// NewAccount describes an account opened by an administrator.
type NewAccount struct {
	Email    string
	Password string
	Profile  user.Profile
	Role     user.Role
	Status   user.Status
}

// SessionResponse returned after sign-in or sign-up
type SessionResponse struct {
	User        *user.User `json:"user"`
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int        `json:"expires_in"` // seconds until the token expires
	ExpiresAt   time.Time  `json:"expires_at"`
}
