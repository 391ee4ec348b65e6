package orchestrator

import "errors"

var (
	ErrOperatorNotConfigured = errors.New("operator chat is not configured")
	ErrBookingNotFound       = errors.New("booking not found or expired")
)
