package creditpack

import "errors"

var (
	ErrPackNotFound = errors.New("credit pack not found")
	// ErrPaymentFailed is returned when the provider declines; no credits are granted
	ErrPaymentFailed = errors.New("payment failed")
	ErrInternal      = errors.New("internal error")
)
