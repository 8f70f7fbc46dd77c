package reminder

import "forget-bot/internal/pkg/errs"

var (
	ErrEmptyUserID      = errs.New("user id cannot be empty")
	ErrEmptyMessage     = errs.New("reminder message cannot be empty")
	ErrMessageTooLong   = errs.New("reminder message exceeds maximum length")
	ErrNonPositiveDelay = errs.New("reminder delay must be positive")
	ErrInvalidOrigin    = errs.New("origin requires both a link and a preview")
)
