package mementor

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps one of these, so
// callers can match with errors.Is.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidIndex      = errors.New("invalid index")
	ErrInvalidState      = errors.New("invalid state")
	ErrProtocolViolation = errors.New("rollback protocol violation")
)

// Common state errors.
var (
	ErrNothingToUndo = fmt.Errorf("%w: nothing to undo", ErrInvalidState)
	ErrNothingToRedo = fmt.Errorf("%w: nothing to redo", ErrInvalidState)
	ErrBatchOpen     = fmt.Errorf("%w: a batch is open", ErrInvalidState)
	ErrNoBatch       = fmt.Errorf("%w: no batch is open", ErrInvalidState)
)
