package tool

import "errors"

var (
	ErrToolNotFound = errors.New("tool not found")
	// ErrUnknownTool is returned when an order names a missing or inactive tool
	ErrUnknownTool = errors.New("unknown or inactive tool")
	ErrInternal    = errors.New("internal error")
)
