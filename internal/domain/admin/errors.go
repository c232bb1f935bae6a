package admin

import (
	"errors"

	"github.com/urbavisu/urbavisu-api/internal/domain/credit"
	"github.com/urbavisu/urbavisu-api/internal/domain/user"
)

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrCannotAssignRole        = errors.New("cannot assign a role above your own")
	ErrNegativeCredits         = errors.New("credits cannot be negative")
	ErrCannotManageUser        = errors.New("cannot manage an account at or above your own role")
	ErrNameRequired            = errors.New("first and last name are required")

	ErrInvalidAmount = credit.ErrInvalidAmount
	ErrUserNotFound  = user.ErrUserNotFound
)
