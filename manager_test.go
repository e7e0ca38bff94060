package mementor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRadiusScenario(t *testing.T) {
	ctx := context.Background()
	m := New()
	c := &circle{}
	radius := c.radiusProp()

	for i := 1; i <= 10; i++ {
		require.NoError(t, SetProperty(m, radius, i))
	}
	assert.Equal(t, 10, m.UndoCount())

	require.NoError(t, m.Undo(ctx))
	assert.Equal(t, 9, c.radius)
	assert.Equal(t, 9, m.UndoCount())
	assert.Equal(t, 1, m.RedoCount())

	require.NoError(t, m.Redo(ctx))
	assert.Equal(t, 10, c.radius)
	assert.Equal(t, 10, m.UndoCount())
	assert.Equal(t, 0, m.RedoCount())
}

func TestPropertyRoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, n := range []int{1, 2, 5, 25} {
		m := New()
		c := &circle{radius: -1}
		for i := 0; i < n; i++ {
			require.NoError(t, SetProperty(m, c.radiusProp(), i*3))
		}
		final := c.radius

		for m.CanUndo() {
			require.NoError(t, m.Undo(ctx))
		}
		assert.Equal(t, -1, c.radius, "undo %d", n)
		assert.Equal(t, n, m.RedoCount())

		for m.CanRedo() {
			require.NoError(t, m.Redo(ctx))
		}
		assert.Equal(t, final, c.radius, "redo %d", n)
		assert.Equal(t, n, m.UndoCount())
	}
}

func TestMarkEventNil(t *testing.T) {
	m := New()
	err := m.MarkEvent(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 0, m.UndoCount())
}

func TestMarkClearsRedo(t *testing.T) {
	ctx := context.Background()
	m := New()
	c := &circle{}

	require.NoError(t, SetProperty(m, c.radiusProp(), 1))
	require.NoError(t, SetProperty(m, c.radiusProp(), 2))
	require.NoError(t, m.Undo(ctx))
	require.Equal(t, 1, m.RedoCount())

	require.NoError(t, SetProperty(m, c.radiusProp(), 3))
	assert.Equal(t, 0, m.RedoCount())
	assert.False(t, m.CanRedo())
	assert.Equal(t, 2, m.UndoCount())
}

func TestMarkInBatchKeepsRedo(t *testing.T) {
	ctx := context.Background()
	m := New()
	c := &circle{}

	require.NoError(t, SetProperty(m, c.radiusProp(), 1))
	require.NoError(t, m.Undo(ctx))

	require.NoError(t, m.BeginBatch())
	require.NoError(t, SetProperty(m, c.radiusProp(), 5))
	assert.Equal(t, 1, m.RedoCount(), "redo survives until the batch closes")
	require.NoError(t, m.EndBatch())
	assert.Equal(t, 0, m.RedoCount())
}

func TestBatchResolution(t *testing.T) {
	tests := []struct {
		name       string
		marks      int
		wantUndo   int
		wantNotify int
		wantBatch  bool
	}{
		{"empty", 0, 0, 0, false},
		{"single", 1, 1, 1, false},
		{"several", 3, 1, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			rec := &recorder{}
			rec.attach(m)
			c := &circle{}

			require.NoError(t, m.BeginBatch())
			for i := 0; i < tt.marks; i++ {
				require.NoError(t, SetProperty(m, c.radiusProp(), i+1))
			}
			assert.Empty(t, rec.changes, "no notifications while batching")
			require.NoError(t, m.EndBatch())

			assert.Equal(t, tt.wantUndo, m.UndoCount())
			require.Len(t, rec.changes, tt.wantNotify)
			if tt.wantUndo == 0 {
				return
			}
			_, isBatch := m.PeekUndo().(*Batch)
			assert.Equal(t, tt.wantBatch, isBatch)
			assert.Equal(t, ChangeBatchEnded, rec.changes[0].Kind)
			assert.Equal(t, m.PeekUndo(), rec.changes[0].Event)
		})
	}
}

func TestCollectionBatchScenario(t *testing.T) {
	ctx := context.Background()
	m := New()
	items := NewList[string]()

	err := m.Batch(func() {
		require.NoError(t, AddElement(m, items, "A"))
		require.NoError(t, AddElement(m, items, "B"))
		require.NoError(t, MoveElement(m, items, "A", 0))
		require.NoError(t, RemoveElement(m, items, "B"))
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, items.Items())
	assert.Equal(t, 1, m.UndoCount())

	require.NoError(t, m.Undo(ctx))
	assert.Empty(t, items.Items())
	assert.Equal(t, 0, m.UndoCount())
	assert.Equal(t, 1, m.RedoCount())

	require.NoError(t, m.Redo(ctx))
	assert.Equal(t, []string{"A"}, items.Items())
	assert.Equal(t, 1, m.UndoCount())
}

func TestNestedBatchFails(t *testing.T) {
	m := New()

	require.NoError(t, m.BeginBatch())
	assert.ErrorIs(t, m.BeginBatch(), ErrInvalidState)
	require.NoError(t, m.EndBatch())

	err := m.Batch(func() {
		assert.ErrorIs(t, m.Batch(func() {}), ErrInvalidState)
	})
	require.NoError(t, err)
	assert.False(t, m.InBatch())
}

func TestEndBatchWithoutBegin(t *testing.T) {
	m := New()
	err := m.EndBatch()
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, err, ErrNoBatch)
}

func TestUndoRedoGuards(t *testing.T) {
	ctx := context.Background()
	m := New()

	assert.ErrorIs(t, m.Undo(ctx), ErrNothingToUndo)
	assert.ErrorIs(t, m.Redo(ctx), ErrNothingToRedo)

	c := &circle{}
	require.NoError(t, SetProperty(m, c.radiusProp(), 1))
	require.NoError(t, m.BeginBatch())
	assert.ErrorIs(t, m.Undo(ctx), ErrInvalidState)
	assert.ErrorIs(t, m.Redo(ctx), ErrInvalidState)
	require.NoError(t, m.EndBatch())

	assert.Equal(t, 1, m.UndoCount())
	assert.Equal(t, 1, c.radius)
}

func TestUndoNotifiesOriginalEvent(t *testing.T) {
	ctx := context.Background()
	m := New()
	rec := &recorder{}
	rec.attach(m)
	c := &circle{}

	require.NoError(t, SetProperty(m, c.radiusProp(), 4))
	marked := m.PeekUndo()

	require.NoError(t, m.Undo(ctx))
	redoEntry := m.PeekRedo()
	require.NoError(t, m.Redo(ctx))

	require.Len(t, rec.changes, 3)
	assert.Equal(t, ChangeMarked, rec.changes[0].Kind)
	assert.Equal(t, ChangeUndone, rec.changes[1].Kind)
	assert.Same(t, marked, rec.changes[1].Event)
	assert.Equal(t, ChangeRedone, rec.changes[2].Kind)
	assert.Same(t, redoEntry, rec.changes[2].Event)
	assert.NotSame(t, marked, redoEntry)
}

func TestUndoBatchKeepsNotifiedBatchIntact(t *testing.T) {
	ctx := context.Background()
	m := New()
	rec := &recorder{}
	c := &circle{}

	require.NoError(t, m.Batch(func() {
		_ = SetProperty(m, c.radiusProp(), 1)
		_ = SetProperty(m, c.colorProp(), "red")
	}))
	rec.attach(m)

	require.NoError(t, m.Undo(ctx))
	require.Len(t, rec.changes, 1)
	undone, ok := rec.changes[0].Event.(*Batch)
	require.True(t, ok)
	assert.Equal(t, 2, undone.Len())
	assert.Equal(t, 0, c.radius)
	assert.Equal(t, "", c.color)
}

func TestRollbackDoesNotRecord(t *testing.T) {
	ctx := context.Background()
	m := New()
	c := &circle{}
	radius := NewAccessor("Radius",
		func() int { return c.radius },
		func(v int) {
			c.radius = v
			// A consumer that marks on every set must not record during rollback.
			_ = m.MarkEvent(&noInverseEvent{rolledBack: new(int)})
		})

	e, err := NewPropertyChange[int](radius)
	require.NoError(t, err)
	c.radius = 3
	require.NoError(t, m.MarkEvent(e))

	require.NoError(t, m.Undo(ctx))
	assert.Equal(t, 0, c.radius)
	assert.Equal(t, 0, m.UndoCount())
	assert.Equal(t, 1, m.RedoCount())
	assert.True(t, m.TrackingEnabled())
}

func TestProtocolViolation(t *testing.T) {
	ctx := context.Background()
	m := New()
	inner := NewBatch(&noInverseEvent{rolledBack: new(int)}, &noInverseEvent{rolledBack: new(int)})

	require.NoError(t, m.MarkEvent(&batchReturningEvent{batch: inner}))
	err := m.Undo(ctx)
	assert.ErrorIs(t, err, ErrProtocolViolation)
	assert.True(t, m.TrackingEnabled())
}

func TestProtocolViolationInsideBatch(t *testing.T) {
	ctx := context.Background()
	m := New()
	c := &circle{}

	require.NoError(t, m.Batch(func() {
		_ = SetProperty(m, c.radiusProp(), 1)
		_ = m.MarkEvent(&batchReturningEvent{batch: NewBatch()})
	}))
	assert.ErrorIs(t, m.Undo(ctx), ErrProtocolViolation)
}

func TestNoInverseLeavesRedoEmpty(t *testing.T) {
	ctx := context.Background()
	m := New()
	count := 0

	require.NoError(t, m.MarkEvent(&noInverseEvent{rolledBack: &count}))
	require.NoError(t, m.Undo(ctx))

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, m.UndoCount())
	assert.Equal(t, 0, m.RedoCount())
}

func TestUndoCanceled(t *testing.T) {
	m := New()
	e := newBlockingEvent()
	require.NoError(t, m.MarkEvent(e))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.Undo(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, m.UndoCount(), "nothing is popped for an already canceled context")

	ctx, cancel = context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Undo(ctx) }()
	<-e.started
	cancel()
	err = <-done
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, m.UndoCount())
	assert.Equal(t, 0, m.RedoCount())
	assert.True(t, m.TrackingEnabled())
}

func TestExecuteNoTrack(t *testing.T) {
	m := New()
	c := &circle{}

	m.ExecuteNoTrack(func() {
		assert.False(t, m.TrackingEnabled())
		require.NoError(t, SetProperty(m, c.radiusProp(), 7))
	})
	assert.Equal(t, 7, c.radius)
	assert.Equal(t, 0, m.UndoCount())
	assert.True(t, m.TrackingEnabled())
}

func TestExecuteNoTrackNesting(t *testing.T) {
	m := New()
	m.ExecuteNoTrack(func() {
		m.SetTrackingEnabled(true)
		m.ExecuteNoTrack(func() {
			assert.False(t, m.TrackingEnabled())
		})
		assert.True(t, m.TrackingEnabled(), "inner call restores the value it saw")
	})
	assert.True(t, m.TrackingEnabled())

	m.SetTrackingEnabled(false)
	m.ExecuteNoTrack(func() {})
	assert.False(t, m.TrackingEnabled(), "outer value is restored, not forced on")
}

func TestExecuteNoTrackRestoresOnPanic(t *testing.T) {
	m := New()
	assert.Panics(t, func() {
		m.ExecuteNoTrack(func() { panic("boom") })
	})
	assert.True(t, m.TrackingEnabled())
}

func TestExecuteNoTrackContext(t *testing.T) {
	m := New()
	errBoom := errors.New("boom")
	err := m.ExecuteNoTrackContext(context.Background(), func(context.Context) error {
		assert.False(t, m.TrackingEnabled())
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)
	assert.True(t, m.TrackingEnabled())
}

func TestTrackingDisabled(t *testing.T) {
	m := New(WithTracking(false))
	c := &circle{}

	require.NoError(t, m.BeginBatch())
	assert.False(t, m.InBatch())
	require.NoError(t, SetProperty(m, c.radiusProp(), 3))
	require.NoError(t, m.EndBatch())
	assert.Equal(t, 0, m.UndoCount())
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	m := New()
	rec := &recorder{}
	rec.attach(m)

	m.Reset()
	assert.Empty(t, rec.changes, "pristine manager does not notify")

	c := &circle{}
	require.NoError(t, SetProperty(m, c.radiusProp(), 1))
	require.NoError(t, SetProperty(m, c.radiusProp(), 2))
	require.NoError(t, m.Undo(ctx))
	require.NoError(t, m.BeginBatch())
	m.SetTrackingEnabled(false)

	m.Reset()
	assert.Equal(t, 0, m.UndoCount())
	assert.Equal(t, 0, m.RedoCount())
	assert.False(t, m.InBatch())
	assert.True(t, m.TrackingEnabled())
	last := rec.changes[len(rec.changes)-1]
	assert.Equal(t, ChangeReset, last.Kind)
	assert.Nil(t, last.Event)
}

func TestDispose(t *testing.T) {
	ctx := context.Background()
	m := New()
	c := &circle{}
	require.NoError(t, SetProperty(m, c.radiusProp(), 1))
	require.NoError(t, SetProperty(m, c.radiusProp(), 2))
	require.NoError(t, m.Undo(ctx))

	rec := &recorder{}
	rec.attach(m)
	m.Dispose()

	assert.Equal(t, 0, m.UndoCount())
	assert.Equal(t, 0, m.RedoCount())
	assert.Empty(t, rec.changes)

	require.NoError(t, SetProperty(m, c.radiusProp(), 3))
	assert.Empty(t, rec.changes, "subscribers are detached")
}

func TestUnsubscribe(t *testing.T) {
	m := New()
	rec := &recorder{}
	id := rec.attach(m)
	assert.True(t, m.Unsubscribe(id))

	c := &circle{}
	require.NoError(t, SetProperty(m, c.radiusProp(), 1))
	assert.Empty(t, rec.changes)
}

func TestStackListings(t *testing.T) {
	ctx := context.Background()
	m := New()
	c := &circle{}
	require.NoError(t, SetProperty(m, c.radiusProp(), 1))
	require.NoError(t, SetProperty(m, c.colorProp(), "blue"))
	require.NoError(t, m.Undo(ctx))

	undo := m.UndoEvents()
	redo := m.RedoEvents()
	require.Len(t, undo, 1)
	require.Len(t, redo, 1)
	assert.Equal(t, "Restore Radius to 0", Describe(undo[0]))
	assert.Equal(t, "Restore Color to blue", Describe(redo[0]))
}

func TestEmptyBatchClearsRedo(t *testing.T) {
	ctx := context.Background()
	m := New()
	c := &circle{}

	require.NoError(t, SetProperty(m, c.radiusProp(), 1))
	require.NoError(t, m.Undo(ctx))
	require.Equal(t, 1, m.RedoCount())

	rec := &recorder{}
	rec.attach(m)
	require.NoError(t, m.BeginBatch())
	require.NoError(t, m.EndBatch())

	assert.Equal(t, 0, m.RedoCount())
	assert.Equal(t, 0, m.UndoCount())
	assert.Empty(t, rec.changes, "an empty batch is not announced")
}

func TestNilBatchChildren(t *testing.T) {
	ctx := context.Background()
	m := New()
	c := &circle{}

	require.NoError(t, m.MarkEvent(NewBatch(nil, nil)))
	assert.NotPanics(t, func() {
		assert.NoError(t, m.Undo(ctx))
	})
	assert.Equal(t, 0, m.RedoCount())

	inner, err := NewPropertyChange[int](c.radiusProp())
	require.NoError(t, err)
	c.radius = 5
	b := NewBatch(nil, inner)
	b.Push(nil)
	assert.Equal(t, 1, b.Len())
	require.NoError(t, m.MarkEvent(b))
	require.NoError(t, m.Undo(ctx))
	assert.Equal(t, 0, c.radius)
}

func TestListingsDoNotDrainHistory(t *testing.T) {
	ctx := context.Background()
	m := New()
	c := &circle{}

	require.NoError(t, m.Batch(func() {
		_ = SetProperty(m, c.radiusProp(), 1)
		_ = SetProperty(m, c.colorProp(), "red")
	}))

	peeked, ok := m.PeekUndo().(*Batch)
	require.True(t, ok)
	_, err := peeked.Rollback(ctx)
	require.NoError(t, err)

	listed, ok := m.UndoEvents()[0].(*Batch)
	require.True(t, ok)
	assert.Equal(t, 2, listed.Len(), "stack entry untouched by rolling back the copy")

	// Restore the state the copy rolled back, then undo through the manager.
	c.radius, c.color = 1, "red"
	require.NoError(t, m.Undo(ctx))
	assert.Equal(t, 0, c.radius)
	assert.Equal(t, "", c.color)

	redo, ok := m.PeekRedo().(*Batch)
	require.True(t, ok)
	redo.Clear()
	assert.Equal(t, 2, m.RedoEvents()[0].(*Batch).Len())
}
