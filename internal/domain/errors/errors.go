package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrEmptyTitle         = errors.New("title must not be empty")
	ErrEmptyOrder         = errors.New("order has no items")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrNumberExhausted    = errors.New("order number allocation retries exhausted")
)
