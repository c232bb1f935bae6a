package order

import (
	"errors"

	"github.com/urbavisu/urbavisu-api/internal/domain/credit"
	"github.com/urbavisu/urbavisu-api/internal/domain/tool"
)

var (
	ErrEmptyAddress       = errors.New("address is required")
	ErrNoOptions          = errors.New("at least one option is required")
	ErrAddressNotSearched = errors.New("address was not searched")
	ErrInternal           = errors.New("internal error")

	ErrUnknownTool         = tool.ErrUnknownTool
	ErrInsufficientCredits = credit.ErrInsufficientCredits
)
