// Package board is a small editable model whose edits are recorded for
// undo/redo: a circle with a radius and a color, and an ordered list of items.
package board

import (
	"context"
	"fmt"

	"github.com/bethropolis/mementor"
	"github.com/bethropolis/mementor/internal/logger"
)

const logTag = "board"

// Circle is the shape being edited.
type Circle struct {
	Radius int
	Color  string
}

// Options configure a new Board.
type Options struct {
	InitialRadius int
	Color         string
	Items         []string
}

// State is a snapshot of the board for display and assertions.
type State struct {
	Radius    int
	Color     string
	Items     []string
	UndoCount int
	RedoCount int
	InBatch   bool
	Tracking  bool
}

// Board owns the edited objects and the history recording their changes.
type Board struct {
	circle  Circle
	items   *mementor.List[string]
	history *mementor.Manager

	radius *mementor.Accessor[int]
	color  *mementor.Accessor[string]

	nextItem int
}

// New creates a board with an empty history.
func New(opts Options) *Board {
	b := &Board{
		circle:  Circle{Radius: opts.InitialRadius, Color: opts.Color},
		items:   mementor.NewList(opts.Items...),
		history: mementor.New(),
	}
	b.radius = mementor.NewAccessor("Radius",
		func() int { return b.circle.Radius },
		func(v int) { b.circle.Radius = v })
	b.color = mementor.NewAccessor("Color",
		func() string { return b.circle.Color },
		func(v string) { b.circle.Color = v })
	return b
}

// History exposes the manager recording the board's edits.
func (b *Board) History() *mementor.Manager { return b.history }

// SetRadius changes the radius and records the change.
func (b *Board) SetRadius(r int) error {
	if r < 0 {
		return fmt.Errorf("radius %d: %w", r, mementor.ErrInvalidArgument)
	}
	logger.DebugTagf(logTag, "Radius %d -> %d", b.circle.Radius, r)
	return mementor.SetProperty(b.history, b.radius, r)
}

// Grow changes the radius by delta, never going below zero.
func (b *Board) Grow(delta int) error {
	r := b.circle.Radius + delta
	if r < 0 {
		r = 0
	}
	if r == b.circle.Radius {
		return nil
	}
	return b.SetRadius(r)
}

// SetRadiusUntracked changes the radius without recording it.
func (b *Board) SetRadiusUntracked(r int) error {
	var err error
	b.history.ExecuteNoTrack(func() {
		err = b.SetRadius(r)
	})
	return err
}

// SetColor changes the color and records the change.
func (b *Board) SetColor(c string) error {
	logger.DebugTagf(logTag, "Color %q -> %q", b.circle.Color, c)
	return mementor.SetProperty(b.history, b.color, c)
}

// AddItem appends an item and records the addition.
func (b *Board) AddItem(name string) error {
	if name == "" {
		return fmt.Errorf("empty item name: %w", mementor.ErrInvalidArgument)
	}
	if b.items.IndexOf(name) >= 0 {
		return fmt.Errorf("item %q already exists: %w", name, mementor.ErrInvalidArgument)
	}
	logger.DebugTagf(logTag, "Add item %q", name)
	return mementor.AddElement(b.history, b.items, name)
}

// NewItem adds an item with a generated name and returns the name.
func (b *Board) NewItem() (string, error) {
	for {
		b.nextItem++
		name := fmt.Sprintf("item-%d", b.nextItem)
		if b.items.IndexOf(name) < 0 {
			return name, b.AddItem(name)
		}
	}
}

// RemoveItem removes an item and records the removal.
func (b *Board) RemoveItem(name string) error {
	logger.DebugTagf(logTag, "Remove item %q", name)
	return mementor.RemoveElement(b.history, b.items, name)
}

// MoveItem moves an item to index and records the move.
func (b *Board) MoveItem(name string, index int) error {
	logger.DebugTagf(logTag, "Move item %q to %d", name, index)
	return mementor.MoveElement(b.history, b.items, name, index)
}

// ItemAt returns the item at index, or "" if out of range.
func (b *Board) ItemAt(index int) string {
	if index < 0 || index >= b.items.Len() {
		return ""
	}
	return b.items.At(index)
}

// ItemCount returns the number of items.
func (b *Board) ItemCount() int { return b.items.Len() }

// ToggleBatch opens a batch, or closes the open one. It reports whether a
// batch is open afterwards.
func (b *Board) ToggleBatch() (bool, error) {
	if b.history.InBatch() {
		return false, b.history.EndBatch()
	}
	if err := b.history.BeginBatch(); err != nil {
		return false, err
	}
	return b.history.InBatch(), nil
}

// Undo reverts the most recent change.
func (b *Board) Undo(ctx context.Context) error { return b.history.Undo(ctx) }

// Redo reapplies the most recently undone change.
func (b *Board) Redo(ctx context.Context) error { return b.history.Redo(ctx) }

// Reset clears the history; the board keeps its current contents.
func (b *Board) Reset() { b.history.Reset() }

// State returns a snapshot of the board.
func (b *Board) State() State {
	return State{
		Radius:    b.circle.Radius,
		Color:     b.circle.Color,
		Items:     b.items.Items(),
		UndoCount: b.history.UndoCount(),
		RedoCount: b.history.RedoCount(),
		InBatch:   b.history.InBatch(),
		Tracking:  b.history.TrackingEnabled(),
	}
}

// HistoryLines lists the history as a timeline: redo entries, furthest
// first, above undo entries, most recent first. The next undo is marked.
func (b *Board) HistoryLines() []string {
	redo := b.history.RedoEvents()
	undo := b.history.UndoEvents()
	lines := make([]string, 0, len(redo)+len(undo))
	for i := len(redo) - 1; i >= 0; i-- {
		lines = append(lines, "  redo: "+mementor.Describe(redo[i]))
	}
	for i, e := range undo {
		marker := "  "
		if i == 0 {
			marker = "> "
		}
		lines = append(lines, marker+"undo: "+mementor.Describe(e))
	}
	return lines
}
