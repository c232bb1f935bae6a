package auth

import (
	"errors"

	"github.com/urbavisu/urbavisu-api/internal/domain/user"
	"github.com/urbavisu/urbavisu-api/internal/pkg/password"
)

var (
	ErrEmailAlreadyExists = user.ErrEmailAlreadyExists
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = user.ErrUserNotFound
	ErrPasswordTooShort   = password.ErrTooShort
	ErrPasswordMismatch   = password.ErrMismatch
)
