package mementor

import (
	"context"
	"fmt"
	"reflect"
)

// Event is a recorded, reversible change.
//
// Rollback reverts the change on the external state it refers to and returns
// the event that would reapply it, or nil when there is nothing to reapply.
// Rollback consumes the event: the manager never reuses an event after
// rolling it back. Only a *Batch may return a *Batch.
type Event interface {
	Rollback(ctx context.Context) (Event, error)
}

// Describer is implemented by events that can describe themselves for
// history listings.
type Describer interface {
	Description() string
}

// Describe returns a human-readable description of e.
func Describe(e Event) string {
	if e == nil {
		return "<none>"
	}
	if d, ok := e.(Describer); ok {
		return d.Description()
	}
	t := reflect.TypeOf(e)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// checkInverse enforces that only batches roll back into batches.
func checkInverse(e, inverse Event) error {
	if _, ok := inverse.(*Batch); !ok {
		return nil
	}
	if _, ok := e.(*Batch); ok {
		return nil
	}
	return fmt.Errorf("%w: %s returned a batch from Rollback", ErrProtocolViolation, Describe(e))
}
