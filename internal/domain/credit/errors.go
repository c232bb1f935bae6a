package credit

import "errors"

var (
	// ErrInsufficientCredits is returned when a charge exceeds the balance
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrInvalidAmount is returned for a zero delta or a non-positive grant
	ErrInvalidAmount = errors.New("invalid amount")

	ErrInvalidType = errors.New("invalid credit type")

	// ErrUserNotFound is returned when user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	ErrInternal = errors.New("internal error")
)
