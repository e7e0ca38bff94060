package mementor

import (
	"context"
	"fmt"
)

// Property is read/write access to a single value owned by a consumer.
type Property[T any] interface {
	Get() T
	Set(value T)
}

// Named is implemented by properties that carry a display name.
type Named interface {
	Name() string
}

// Accessor is a Property built from a getter and a setter.
type Accessor[T any] struct {
	name string
	get  func() T
	set  func(T)
}

// NewAccessor creates a named property from a getter/setter pair.
func NewAccessor[T any](name string, get func() T, set func(T)) *Accessor[T] {
	return &Accessor[T]{name: name, get: get, set: set}
}

func (a *Accessor[T]) Get() T       { return a.get() }
func (a *Accessor[T]) Set(value T)  { a.set(value) }
func (a *Accessor[T]) Name() string { return a.name }

// PropertyChangeEvent restores a property to the value it held when the
// event was created.
type PropertyChangeEvent[T any] struct {
	prop  Property[T]
	value T
}

// NewPropertyChange records the property's current value as the value to
// restore. Create it before assigning the new value.
func NewPropertyChange[T any](prop Property[T]) (*PropertyChangeEvent[T], error) {
	if prop == nil {
		return nil, fmt.Errorf("%w: property is nil", ErrInvalidArgument)
	}
	return &PropertyChangeEvent[T]{prop: prop, value: prop.Get()}, nil
}

// NewPropertyChangeValue records an explicit value to restore.
func NewPropertyChangeValue[T any](prop Property[T], value T) (*PropertyChangeEvent[T], error) {
	if prop == nil {
		return nil, fmt.Errorf("%w: property is nil", ErrInvalidArgument)
	}
	return &PropertyChangeEvent[T]{prop: prop, value: value}, nil
}

// Property returns the property the event applies to.
func (e *PropertyChangeEvent[T]) Property() Property[T] { return e.prop }

// Value returns the value the event restores.
func (e *PropertyChangeEvent[T]) Value() T { return e.value }

// Rollback captures the current value, restores the recorded one and returns
// an event that restores the captured value.
func (e *PropertyChangeEvent[T]) Rollback(ctx context.Context) (Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	inverse := &PropertyChangeEvent[T]{prop: e.prop, value: e.prop.Get()}
	e.prop.Set(e.value)
	return inverse, nil
}

// Description returns a human-readable description.
func (e *PropertyChangeEvent[T]) Description() string {
	if n, ok := e.prop.(Named); ok && n.Name() != "" {
		return fmt.Sprintf("Restore %s to %v", n.Name(), e.value)
	}
	return fmt.Sprintf("Restore property to %v", e.value)
}
