package mementor

import "fmt"

// PropertyChange records prop's current value on m. Call it before assigning
// a new value.
func PropertyChange[T any](m *Manager, prop Property[T]) error {
	e, err := NewPropertyChange(prop)
	if err != nil {
		return err
	}
	return m.MarkEvent(e)
}

// SetProperty assigns value to prop and records the change on m.
func SetProperty[T any](m *Manager, prop Property[T], value T) error {
	e, err := NewPropertyChange(prop)
	if err != nil {
		return err
	}
	prop.Set(value)
	return m.MarkEvent(e)
}

// ElementAdd records that elem was added to coll. Call it after adding.
func ElementAdd[T any](m *Manager, coll Collection[T], elem T) error {
	e, err := NewElementAddition(coll, elem)
	if err != nil {
		return err
	}
	return m.MarkEvent(e)
}

// AddElement appends elem to coll and records the addition on m.
func AddElement[T any](m *Manager, coll Collection[T], elem T) error {
	e, err := NewElementAddition(coll, elem)
	if err != nil {
		return err
	}
	coll.Append(elem)
	return m.MarkEvent(e)
}

// ElementRemove records that elem is about to be removed from coll.
// Call it before removing so the current index is captured.
func ElementRemove[T any](m *Manager, coll Collection[T], elem T) error {
	e, err := NewElementRemoval(coll, elem)
	if err != nil {
		return err
	}
	return m.MarkEvent(e)
}

// RemoveElement removes elem from coll and records the removal on m.
func RemoveElement[T any](m *Manager, coll Collection[T], elem T) error {
	e, err := NewElementRemoval(coll, elem)
	if err != nil {
		return err
	}
	coll.Remove(elem)
	return m.MarkEvent(e)
}

// ElementIndexChange records elem's current position in coll. Call it before
// moving the element.
func ElementIndexChange[T any](m *Manager, coll Collection[T], elem T) error {
	e, err := NewElementIndexChange(coll, elem)
	if err != nil {
		return err
	}
	return m.MarkEvent(e)
}

// MoveElement moves elem to index within coll and records the move on m.
func MoveElement[T any](m *Manager, coll Collection[T], elem T, index int) error {
	e, err := NewElementIndexChange(coll, elem)
	if err != nil {
		return err
	}
	if index < 0 || index >= coll.Len() {
		return fmt.Errorf("%w: cannot move %v to %d, collection has %d elements",
			ErrInvalidIndex, elem, index, coll.Len())
	}
	coll.Remove(elem)
	coll.Insert(index, elem)
	return m.MarkEvent(e)
}
