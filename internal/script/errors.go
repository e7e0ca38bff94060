package script

import (
	"errors"
	"fmt"

	"github.com/bethropolis/mementor"
)

var errorKinds = map[string]error{
	"invalid_argument":   mementor.ErrInvalidArgument,
	"invalid_index":      mementor.ErrInvalidIndex,
	"invalid_state":      mementor.ErrInvalidState,
	"protocol_violation": mementor.ErrProtocolViolation,
}

// checkError matches a step's outcome against the error it declares.
func checkError(step Step, err error) error {
	if step.Error == "" {
		return err
	}
	want, ok := errorKinds[step.Error]
	if !ok {
		return fmt.Errorf("unknown error kind %q", step.Error)
	}
	if err == nil {
		return fmt.Errorf("%w: expected %s error, got none", ErrExpectation, step.Error)
	}
	if !errors.Is(err, want) {
		return fmt.Errorf("%w: expected %s error, got %v", ErrExpectation, step.Error, err)
	}
	return nil
}
