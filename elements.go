package mementor

import (
	"context"
	"fmt"
)

// ElementAdditionEvent records that an element was added to a collection.
// Rolling it back removes the element again.
type ElementAdditionEvent[T any] struct {
	coll Collection[T]
	elem T
}

// NewElementAddition records the addition of elem to coll.
func NewElementAddition[T any](coll Collection[T], elem T) (*ElementAdditionEvent[T], error) {
	if coll == nil {
		return nil, fmt.Errorf("%w: collection is nil", ErrInvalidArgument)
	}
	return &ElementAdditionEvent[T]{coll: coll, elem: elem}, nil
}

// Element returns the added element.
func (e *ElementAdditionEvent[T]) Element() T { return e.elem }

// Rollback removes the element and returns a removal event for its position.
func (e *ElementAdditionEvent[T]) Rollback(ctx context.Context) (Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	index := e.coll.IndexOf(e.elem)
	if index < 0 {
		return nil, fmt.Errorf("%w: %v is not in the collection", ErrInvalidIndex, e.elem)
	}
	e.coll.Remove(e.elem)
	return &ElementRemovalEvent[T]{coll: e.coll, elem: e.elem, index: index}, nil
}

// Description returns a human-readable description.
func (e *ElementAdditionEvent[T]) Description() string {
	return fmt.Sprintf("Add %v", e.elem)
}

// ElementRemovalEvent records that an element was removed from a collection
// at a given index. Rolling it back reinserts the element there.
type ElementRemovalEvent[T any] struct {
	coll  Collection[T]
	elem  T
	index int
}

// NewElementRemoval records the removal of elem using its current index.
// Create it before removing the element.
func NewElementRemoval[T any](coll Collection[T], elem T) (*ElementRemovalEvent[T], error) {
	index, err := currentIndex(coll, elem)
	if err != nil {
		return nil, err
	}
	return &ElementRemovalEvent[T]{coll: coll, elem: elem, index: index}, nil
}

// NewElementRemovalAt records the removal of elem from index.
func NewElementRemovalAt[T any](coll Collection[T], elem T, index int) (*ElementRemovalEvent[T], error) {
	if err := checkIndex(coll, index); err != nil {
		return nil, err
	}
	return &ElementRemovalEvent[T]{coll: coll, elem: elem, index: index}, nil
}

// Element returns the removed element.
func (e *ElementRemovalEvent[T]) Element() T { return e.elem }

// Index returns the position the element is restored to.
func (e *ElementRemovalEvent[T]) Index() int { return e.index }

// Rollback reinserts the element and returns an addition event.
func (e *ElementRemovalEvent[T]) Rollback(ctx context.Context) (Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.index > e.coll.Len() {
		return nil, fmt.Errorf("%w: cannot reinsert %v at %d, collection has %d elements",
			ErrInvalidIndex, e.elem, e.index, e.coll.Len())
	}
	e.coll.Insert(e.index, e.elem)
	return &ElementAdditionEvent[T]{coll: e.coll, elem: e.elem}, nil
}

// Description returns a human-readable description.
func (e *ElementRemovalEvent[T]) Description() string {
	return fmt.Sprintf("Remove %v at %d", e.elem, e.index)
}

// ElementIndexChangeEvent records that an element moved within a collection.
// Rolling it back moves the element back to the recorded index.
type ElementIndexChangeEvent[T any] struct {
	coll  Collection[T]
	elem  T
	index int
}

// NewElementIndexChange records elem's current index. Create it before
// moving the element.
func NewElementIndexChange[T any](coll Collection[T], elem T) (*ElementIndexChangeEvent[T], error) {
	index, err := currentIndex(coll, elem)
	if err != nil {
		return nil, err
	}
	return &ElementIndexChangeEvent[T]{coll: coll, elem: elem, index: index}, nil
}

// NewElementIndexChangeAt records index as the position to restore.
func NewElementIndexChangeAt[T any](coll Collection[T], elem T, index int) (*ElementIndexChangeEvent[T], error) {
	if err := checkIndex(coll, index); err != nil {
		return nil, err
	}
	return &ElementIndexChangeEvent[T]{coll: coll, elem: elem, index: index}, nil
}

// Element returns the moved element.
func (e *ElementIndexChangeEvent[T]) Element() T { return e.elem }

// Index returns the position the element is restored to.
func (e *ElementIndexChangeEvent[T]) Index() int { return e.index }

// Rollback moves the element back and returns an event holding the position
// it was moved from.
func (e *ElementIndexChangeEvent[T]) Rollback(ctx context.Context) (Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	current := e.coll.IndexOf(e.elem)
	if current < 0 {
		return nil, fmt.Errorf("%w: %v is not in the collection", ErrInvalidIndex, e.elem)
	}
	if e.index >= e.coll.Len() {
		return nil, fmt.Errorf("%w: cannot move %v to %d, collection has %d elements",
			ErrInvalidIndex, e.elem, e.index, e.coll.Len())
	}
	e.coll.Remove(e.elem)
	e.coll.Insert(e.index, e.elem)
	return &ElementIndexChangeEvent[T]{coll: e.coll, elem: e.elem, index: current}, nil
}

// Description returns a human-readable description.
func (e *ElementIndexChangeEvent[T]) Description() string {
	return fmt.Sprintf("Move %v to %d", e.elem, e.index)
}

func currentIndex[T any](coll Collection[T], elem T) (int, error) {
	if coll == nil {
		return 0, fmt.Errorf("%w: collection is nil", ErrInvalidArgument)
	}
	index := coll.IndexOf(elem)
	if index < 0 {
		return 0, fmt.Errorf("%w: %v is not in the collection", ErrInvalidIndex, elem)
	}
	return index, nil
}

func checkIndex[T any](coll Collection[T], index int) error {
	if coll == nil {
		return fmt.Errorf("%w: collection is nil", ErrInvalidArgument)
	}
	if index < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	return nil
}
