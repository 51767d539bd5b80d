package services

import "errors"

// Sentinel errors surfaced by the ledger and lifecycle services. Route
// handlers map these to HTTP statuses; nothing below this layer leaks raw
// GORM errors to clients.
var (
	ErrReportNotFound         = errors.New("waste report not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidTransition      = errors.New("invalid report status transition")
	ErrAlreadyCompleted       = errors.New("report already completed")
	ErrInvalidAmount          = errors.New("transaction amount must be a non-negative integer")
	ErrUnknownTransactionType = errors.New("unknown transaction type")
	ErrActorResolutionFailed  = errors.New("could not resolve collector identity")
	ErrInsufficientBalance    = errors.New("insufficient point balance")
	ErrRewardNotFound         = errors.New("reward not found")
)
