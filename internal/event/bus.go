// Package event provides a synchronous publish/subscribe bus.
package event

import (
	"sync"

	"github.com/bethropolis/mementor/internal/logger"
)

// SubscriptionID identifies a handler registered on a Bus.
type SubscriptionID uint64

// Handler receives dispatched values.
type Handler[T any] func(v T)

type subscription[T any] struct {
	id      SubscriptionID
	handler Handler[T]
}

// Bus delivers values to its subscribers in subscription order.
type Bus[T any] struct {
	mu       sync.RWMutex
	nextID   SubscriptionID
	handlers []subscription[T]
}

// NewBus creates an empty bus.
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe adds a handler and returns its ID for Unsubscribe.
func (b *Bus[T]) Subscribe(handler Handler[T]) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.handlers = append(b.handlers, subscription[T]{id: b.nextID, handler: handler})
	logger.Debugf("Event Bus: Handler %d subscribed (%d total)", b.nextID, len(b.handlers))
	return b.nextID
}

// Unsubscribe removes the handler registered under id.
func (b *Bus[T]) Unsubscribe(id SubscriptionID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.handlers {
		if s.id == id {
			b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
			logger.Debugf("Event Bus: Handler %d unsubscribed", id)
			return true
		}
	}
	return false
}

// Clear removes every handler without calling any of them and returns how
// many were removed.
func (b *Bus[T]) Clear() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(b.handlers)
	b.handlers = nil
	return n
}

// Len returns the number of subscribed handlers.
func (b *Bus[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers)
}

// Dispatch calls every handler with v, synchronously.
func (b *Bus[T]) Dispatch(v T) {
	b.mu.RLock()
	if len(b.handlers) == 0 {
		b.mu.RUnlock()
		return
	}
	// Copy so handlers may subscribe or unsubscribe during dispatch.
	handlers := make([]subscription[T], len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	logger.Debugf("Event Bus: Dispatching to %d handler(s)", len(handlers))
	for _, s := range handlers {
		s.handler(v)
	}
}
