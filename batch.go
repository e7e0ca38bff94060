package mementor

import (
	"context"
	"fmt"
	"slices"
)

// Batch is an ordered stack of events rolled back as a single unit.
// Events are rolled back in the reverse of the order they were pushed.
type Batch struct {
	events []Event
}

// NewBatch creates a batch holding events, the last one on top.
// Nil events are dropped.
func NewBatch(events ...Event) *Batch {
	b := &Batch{events: make([]Event, 0, len(events))}
	for _, e := range events {
		b.Push(e)
	}
	return b
}

// Push adds e on top of the batch. A nil e is ignored.
func (b *Batch) Push(e Event) {
	if e == nil {
		return
	}
	b.events = append(b.events, e)
}

// Pop removes and returns the top event, or nil if the batch is empty.
func (b *Batch) Pop() Event {
	if len(b.events) == 0 {
		return nil
	}
	last := len(b.events) - 1
	e := b.events[last]
	b.events[last] = nil
	b.events = b.events[:last]
	return e
}

// Peek returns the top event without removing it.
func (b *Batch) Peek() Event {
	if len(b.events) == 0 {
		return nil
	}
	return b.events[len(b.events)-1]
}

// Len returns the number of events in the batch.
func (b *Batch) Len() int { return len(b.events) }

// IsEmpty returns true if the batch holds no events.
func (b *Batch) IsEmpty() bool { return len(b.events) == 0 }

// Clear removes all events.
func (b *Batch) Clear() {
	clear(b.events)
	b.events = b.events[:0]
}

// Events returns the events top first, in the order they would be rolled back.
func (b *Batch) Events() []Event {
	out := slices.Clone(b.events)
	slices.Reverse(out)
	return out
}

// Clone returns a shallow copy of the batch.
func (b *Batch) Clone() *Batch {
	return &Batch{events: slices.Clone(b.events)}
}

// resolve collapses the batch to the entry a stack should hold: nothing for
// an empty batch, the event itself for a single event, otherwise the batch.
func (b *Batch) resolve() Event {
	switch len(b.events) {
	case 0:
		return nil
	case 1:
		return b.events[0]
	default:
		return b
	}
}

// Rollback pops and rolls back every event, collecting the inverses into a
// new batch. It returns nil if no event produced an inverse.
// On error the batch is left partially rolled back.
func (b *Batch) Rollback(ctx context.Context) (Event, error) {
	inverse := &Batch{events: make([]Event, 0, len(b.events))}
	for len(b.events) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		child := b.Pop()
		if nested, ok := child.(*Batch); ok {
			child = nested.Clone()
		}
		reverse, err := child.Rollback(ctx)
		if err != nil {
			return nil, fmt.Errorf("rollback %s: %w", Describe(child), err)
		}
		if reverse == nil {
			continue
		}
		if err := checkInverse(child, reverse); err != nil {
			return nil, err
		}
		if rb, ok := reverse.(*Batch); ok {
			reverse = rb.resolve()
			if reverse == nil {
				continue
			}
		}
		inverse.Push(reverse)
	}
	if inverse.IsEmpty() {
		return nil, nil
	}
	return inverse, nil
}

// Description returns a human-readable description.
func (b *Batch) Description() string {
	if len(b.events) == 1 {
		return Describe(b.events[0])
	}
	return fmt.Sprintf("Batch of %d events", len(b.events))
}
