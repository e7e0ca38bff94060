package mementor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchClosesOnPanic(t *testing.T) {
	m := New()
	c := &circle{}

	assert.PanicsWithValue(t, "boom", func() {
		_ = m.Batch(func() {
			_ = SetProperty(m, c.radiusProp(), 1)
			_ = SetProperty(m, c.radiusProp(), 2)
			panic("boom")
		})
	})
	assert.False(t, m.InBatch())
	assert.Equal(t, 1, m.UndoCount())
	_, ok := m.PeekUndo().(*Batch)
	assert.True(t, ok)
}

func TestBatchErrPropagates(t *testing.T) {
	m := New()
	c := &circle{}
	errBoom := errors.New("boom")

	err := m.BatchErr(func() error {
		_ = SetProperty(m, c.radiusProp(), 1)
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)
	assert.False(t, m.InBatch())
	assert.Equal(t, 1, m.UndoCount())
}

func TestBatchErrEndFailureJoined(t *testing.T) {
	m := New()
	errBoom := errors.New("boom")

	err := m.BatchErr(func() error {
		m.Reset() // closes the batch underneath the scope
		m.SetTrackingEnabled(true)
		require.NoError(t, m.BeginBatch())
		require.NoError(t, m.EndBatch())
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)
	assert.ErrorIs(t, err, ErrNoBatch)
}

func TestRunInBatch(t *testing.T) {
	m := New()
	items := NewList[int]()

	n, err := RunInBatch(m, func() (int, error) {
		for i := 0; i < 3; i++ {
			if err := AddElement(m, items, i); err != nil {
				return 0, err
			}
		}
		return items.Len(), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 1, m.UndoCount())

	require.NoError(t, m.Undo(context.Background()))
	assert.Equal(t, 0, items.Len())
}

func TestBatchContext(t *testing.T) {
	m := New()
	c := &circle{}

	err := m.BatchContext(context.Background(), func(ctx context.Context) error {
		return SetProperty(m, c.radiusProp(), 5)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, m.UndoCount())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err = m.BatchContext(ctx, func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
	assert.False(t, m.InBatch())
}

func TestBatchScopeEndOnce(t *testing.T) {
	m := New()
	scope, err := m.BatchScope()
	require.NoError(t, err)
	assert.True(t, m.InBatch())

	require.NoError(t, scope.End())
	require.NoError(t, scope.End())
	assert.False(t, m.InBatch())
}

func TestBatchScopeTrackingDisabled(t *testing.T) {
	m := New(WithTracking(false))
	err := m.Batch(func() {
		m.SetTrackingEnabled(true)
	})
	require.NoError(t, err, "a batch that never opened is not closed")
	assert.False(t, m.InBatch())
}
