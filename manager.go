package mementor

import (
	"context"
	"errors"
	"fmt"

	"github.com/bethropolis/mementor/internal/event"
	"github.com/bethropolis/mementor/internal/logger"
)

const logTag = "history"

// ChangeKind identifies the operation that triggered a change notification.
type ChangeKind int

const (
	ChangeMarked     ChangeKind = iota // An event was recorded outside a batch
	ChangeBatchEnded                   // A batch was closed with at least one event
	ChangeUndone                       // An event was undone
	ChangeRedone                       // An event was redone
	ChangeReset                        // History was cleared by Reset
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeMarked:
		return "marked"
	case ChangeBatchEnded:
		return "batch-ended"
	case ChangeUndone:
		return "undone"
	case ChangeRedone:
		return "redone"
	case ChangeReset:
		return "reset"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// Change is delivered to subscribers after every state-affecting operation.
// Event is the recorded, undone or redone event; it is nil for ChangeReset.
type Change struct {
	Kind  ChangeKind
	Event Event
}

// SubscriptionID identifies a change subscriber.
type SubscriptionID = event.SubscriptionID

// Option configures a Manager.
type Option func(*Manager)

// WithTracking sets whether the manager starts with tracking enabled.
func WithTracking(enabled bool) Option {
	return func(m *Manager) { m.tracking = enabled }
}

// Manager records events and undoes/redoes them.
//
// A Manager is not safe for concurrent use; all calls are expected to come
// from one goroutine or be serialized by the caller.
type Manager struct {
	undoStack *Batch
	redoStack *Batch

	// Open batch, nil when not batching
	current *Batch

	tracking bool
	changes  *event.Bus[Change]
}

// New creates a manager with tracking enabled.
func New(opts ...Option) *Manager {
	m := &Manager{
		undoStack: NewBatch(),
		redoStack: NewBatch(),
		tracking:  true,
		changes:   event.NewBus[Change](),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MarkEvent records e. Inside a batch the event is added to the batch;
// otherwise it goes on the undo stack and the redo stack is cleared.
// It does nothing while tracking is disabled.
func (m *Manager) MarkEvent(e Event) error {
	if e == nil {
		return fmt.Errorf("%w: event is nil", ErrInvalidArgument)
	}
	if !m.tracking {
		return nil
	}
	if m.current != nil {
		m.current.Push(e)
		logger.DebugTagf(logTag, "Batched %s (%d in batch)", Describe(e), m.current.Len())
		return nil
	}
	m.push(e)
	logger.DebugTagf(logTag, "Recorded %s. Undo: %d", Describe(e), m.undoStack.Len())
	m.notify(ChangeMarked, e)
	return nil
}

// push adds an entry to the undo stack, invalidating redo history.
func (m *Manager) push(e Event) {
	m.undoStack.Push(e)
	m.redoStack.Clear()
}

// BeginBatch starts collecting events into a single undo unit.
// Batches do not nest. It does nothing while tracking is disabled.
func (m *Manager) BeginBatch() error {
	if !m.tracking {
		return nil
	}
	if m.current != nil {
		return fmt.Errorf("begin batch: %w", ErrBatchOpen)
	}
	m.current = NewBatch()
	logger.DebugTagf(logTag, "Batch started")
	return nil
}

// EndBatch closes the open batch and records it. An empty batch records
// nothing and a batch holding one event records that event on its own.
// The redo stack is cleared either way; subscribers hear only about a
// batch that recorded something.
func (m *Manager) EndBatch() error {
	if m.current == nil {
		if !m.tracking {
			return nil
		}
		return fmt.Errorf("end batch: %w", ErrNoBatch)
	}

	batch := m.current
	m.current = nil

	entry := batch.resolve()
	m.redoStack.Clear()
	if entry == nil {
		logger.DebugTagf(logTag, "Batch ended empty")
		return nil
	}
	m.undoStack.Push(entry)
	logger.DebugTagf(logTag, "Batch ended with %d event(s). Undo: %d", batch.Len(), m.undoStack.Len())
	m.notify(ChangeBatchEnded, entry)
	return nil
}

// InBatch returns true while a batch is open.
func (m *Manager) InBatch() bool {
	return m.current != nil
}

// Undo rolls back the most recent entry and moves its inverse to the redo
// stack. The entry is removed before rollback starts; if rollback fails or
// ctx is canceled midway, the entry is not restored.
func (m *Manager) Undo(ctx context.Context) error {
	if m.current != nil {
		return fmt.Errorf("undo: %w", ErrBatchOpen)
	}
	if m.undoStack.IsEmpty() {
		return ErrNothingToUndo
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e := m.undoStack.Pop()
	logger.DebugTagf(logTag, "Undoing %s", Describe(e))
	if err := m.rollback(ctx, e, m.redoStack); err != nil {
		logger.Errorf("History: undo of %s failed: %v", Describe(e), err)
		return fmt.Errorf("undo %s: %w", Describe(e), err)
	}
	m.notify(ChangeUndone, e)
	return nil
}

// Redo rolls back the most recent undo and moves its inverse to the undo
// stack. Failure semantics match Undo.
func (m *Manager) Redo(ctx context.Context) error {
	if m.current != nil {
		return fmt.Errorf("redo: %w", ErrBatchOpen)
	}
	if m.redoStack.IsEmpty() {
		return ErrNothingToRedo
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e := m.redoStack.Pop()
	logger.DebugTagf(logTag, "Redoing %s", Describe(e))
	if err := m.rollback(ctx, e, m.undoStack); err != nil {
		logger.Errorf("History: redo of %s failed: %v", Describe(e), err)
		return fmt.Errorf("redo %s: %w", Describe(e), err)
	}
	m.notify(ChangeRedone, e)
	return nil
}

// rollback runs e's rollback with tracking off and pushes the inverse onto
// target. Batches are rolled back from a copy so e stays intact for
// subscribers.
func (m *Manager) rollback(ctx context.Context, e Event, target *Batch) error {
	subject := e
	if b, ok := e.(*Batch); ok {
		subject = b.Clone()
	}
	return m.ExecuteNoTrackContext(ctx, func(ctx context.Context) error {
		inverse, err := subject.Rollback(ctx)
		if err != nil {
			return err
		}
		if inverse == nil {
			return nil
		}
		if err := checkInverse(subject, inverse); err != nil {
			return err
		}
		target.Push(inverse)
		return nil
	})
}

// ExecuteNoTrack runs fn with tracking disabled, restoring the previous
// setting afterwards even if fn panics.
func (m *Manager) ExecuteNoTrack(fn func()) {
	prev := m.tracking
	m.tracking = false
	defer func() { m.tracking = prev }()
	fn()
}

// ExecuteNoTrackContext is ExecuteNoTrack for functions that take a context
// and may fail.
func (m *Manager) ExecuteNoTrackContext(ctx context.Context, fn func(ctx context.Context) error) error {
	prev := m.tracking
	m.tracking = false
	defer func() { m.tracking = prev }()
	return fn(ctx)
}

// TrackingEnabled reports whether MarkEvent records events.
func (m *Manager) TrackingEnabled() bool {
	return m.tracking
}

// SetTrackingEnabled switches recording on or off.
func (m *Manager) SetTrackingEnabled(enabled bool) {
	m.tracking = enabled
}

// CanUndo returns true if undo is available.
func (m *Manager) CanUndo() bool { return !m.undoStack.IsEmpty() }

// CanRedo returns true if redo is available.
func (m *Manager) CanRedo() bool { return !m.redoStack.IsEmpty() }

// UndoCount returns the number of entries on the undo stack.
func (m *Manager) UndoCount() int { return m.undoStack.Len() }

// RedoCount returns the number of entries on the redo stack.
func (m *Manager) RedoCount() int { return m.redoStack.Len() }

// The listing methods below hand out copies of batch entries, so rolling one
// back does not drain the history.

// PeekUndo returns the entry the next Undo would roll back, or nil.
func (m *Manager) PeekUndo() Event { return snapshot(m.undoStack.Peek()) }

// PeekRedo returns the entry the next Redo would roll back, or nil.
func (m *Manager) PeekRedo() Event { return snapshot(m.redoStack.Peek()) }

// UndoEvents returns the undo stack, most recent first.
func (m *Manager) UndoEvents() []Event { return snapshots(m.undoStack.Events()) }

// RedoEvents returns the redo stack, most recent first.
func (m *Manager) RedoEvents() []Event { return snapshots(m.redoStack.Events()) }

func snapshot(e Event) Event {
	if b, ok := e.(*Batch); ok {
		return b.Clone()
	}
	return e
}

func snapshots(events []Event) []Event {
	for i, e := range events {
		events[i] = snapshot(e)
	}
	return events
}

// Reset clears all history and any open batch and re-enables tracking.
// Subscribers are notified only if there was history to clear.
func (m *Manager) Reset() {
	count := m.undoStack.Len() + m.redoStack.Len()
	m.undoStack.Clear()
	m.redoStack.Clear()
	m.current = nil
	m.tracking = true
	logger.DebugTagf(logTag, "Reset, dropped %d entries", count)
	if count > 0 {
		m.notify(ChangeReset, nil)
	}
}

// Dispose clears all history and removes every subscriber without
// notifying them.
func (m *Manager) Dispose() {
	m.undoStack.Clear()
	m.redoStack.Clear()
	m.current = nil
	n := m.changes.Clear()
	logger.DebugTagf(logTag, "Disposed, detached %d subscriber(s)", n)
}

// Subscribe registers fn to be called synchronously after every change.
func (m *Manager) Subscribe(fn func(Change)) SubscriptionID {
	return m.changes.Subscribe(fn)
}

// Unsubscribe removes a subscriber. It returns false if id is unknown.
func (m *Manager) Unsubscribe(id SubscriptionID) bool {
	return m.changes.Unsubscribe(id)
}

func (m *Manager) notify(kind ChangeKind, e Event) {
	m.changes.Dispatch(Change{Kind: kind, Event: e})
}

// errClosingBatch joins a batch-close failure onto the error of the work
// that ran inside the batch.
func errClosingBatch(workErr, endErr error) error {
	if endErr == nil {
		return workErr
	}
	return errors.Join(workErr, fmt.Errorf("closing batch: %w", endErr))
}
