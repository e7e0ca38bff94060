// Package mementor provides undo/redo functionality driven by reversible events.
//
// Consumers mutate their own state and report each change to a Manager as an
// Event. The manager keeps the events on an undo stack and, on Undo, asks the
// top event to roll itself back. Rolling back mutates the consumer state and
// produces the inverse event, which lands on the redo stack.
//
// # Events
//
// Built-in events cover the common cases:
//   - PropertyChange: restores a value through a Property accessor
//   - ElementAddition, ElementRemoval, ElementIndexChange: positional edits on
//     a Collection
//   - Batch: several events undone as one step
//
// Any other type implementing Event works as a custom event.
//
// # Recording
//
//	m := mementor.New()
//	radius := mementor.NewAccessor("Radius", c.Radius, c.SetRadius)
//
//	mementor.SetProperty(m, radius, 10) // capture, set, mark
//	_ = m.Undo(ctx)                     // radius back to its old value
//
// # Batches
//
// Multiple changes can be recorded as a single undo unit:
//
//	err := m.Batch(func() {
//	    mementor.AddElement(m, items, "a")
//	    mementor.AddElement(m, items, "b")
//	})
//
// An empty batch records nothing and a batch of one event records that event
// directly.
//
// # Tracking
//
// ExecuteNoTrack runs a function with recording switched off. The manager
// uses it internally while rolling back so rollback side effects are not
// recorded as new changes.
package mementor
