package mementor

import "slices"

// Collection is an ordered, mutable sequence owned by a consumer.
// IndexOf returns -1 when the element is not present.
type Collection[T any] interface {
	Len() int
	IndexOf(elem T) int
	Insert(index int, elem T)
	Remove(elem T) bool
	Append(elem T)
}

// List is a slice-backed Collection.
type List[T comparable] struct {
	items []T
}

// NewList creates a list holding items in order.
func NewList[T comparable](items ...T) *List[T] {
	return &List[T]{items: slices.Clone(items)}
}

func (l *List[T]) Len() int { return len(l.items) }

func (l *List[T]) IndexOf(elem T) int { return slices.Index(l.items, elem) }

// Insert places elem at index. It panics if index is out of range.
func (l *List[T]) Insert(index int, elem T) {
	l.items = slices.Insert(l.items, index, elem)
}

// Remove deletes the first occurrence of elem.
func (l *List[T]) Remove(elem T) bool {
	i := l.IndexOf(elem)
	if i < 0 {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	return true
}

func (l *List[T]) Append(elem T) { l.items = append(l.items, elem) }

// At returns the element at index i.
func (l *List[T]) At(i int) T { return l.items[i] }

// Items returns a copy of the elements.
func (l *List[T]) Items() []T { return slices.Clone(l.items) }
