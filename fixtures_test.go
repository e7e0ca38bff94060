package mementor

import "context"

type circle struct {
	radius int
	color  string
}

func (c *circle) radiusProp() *Accessor[int] {
	return NewAccessor("Radius", func() int { return c.radius }, func(v int) { c.radius = v })
}

func (c *circle) colorProp() *Accessor[string] {
	return NewAccessor("Color", func() string { return c.color }, func(v string) { c.color = v })
}

// recorder collects change notifications.
type recorder struct {
	changes []Change
}

func (r *recorder) attach(m *Manager) SubscriptionID {
	return m.Subscribe(func(c Change) { r.changes = append(r.changes, c) })
}

// batchReturningEvent violates the rollback protocol by returning the batch
// it was built from.
type batchReturningEvent struct {
	batch *Batch
}

func (e *batchReturningEvent) Rollback(context.Context) (Event, error) {
	return e.batch, nil
}

// noInverseEvent rolls back into nothing.
type noInverseEvent struct {
	rolledBack *int
}

func (e *noInverseEvent) Rollback(context.Context) (Event, error) {
	*e.rolledBack++
	return nil, nil
}

// blockingEvent waits until it is released or its context ends.
type blockingEvent struct {
	started chan struct{}
	release chan struct{}
}

func newBlockingEvent() *blockingEvent {
	return &blockingEvent{started: make(chan struct{}), release: make(chan struct{})}
}

func (e *blockingEvent) Rollback(ctx context.Context) (Event, error) {
	close(e.started)
	select {
	case <-e.release:
		return e, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
