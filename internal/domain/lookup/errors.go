package lookup

import "errors"

var (
	ErrEmptyAddress = errors.New("address is required")
	ErrInternal     = errors.New("internal error")
)
