package mementor

import "context"

// BatchScope closes a batch when End is called. Use it with defer:
//
//	scope, err := m.BatchScope()
//	if err != nil {
//	    return err
//	}
//	defer scope.End()
type BatchScope struct {
	manager *Manager
	active  bool
}

// BatchScope opens a batch and returns a scope that closes it.
func (m *Manager) BatchScope() (*BatchScope, error) {
	wasOpen := m.current != nil
	if err := m.BeginBatch(); err != nil {
		return nil, err
	}
	// With tracking disabled BeginBatch opens nothing, so there is nothing to end.
	return &BatchScope{manager: m, active: !wasOpen && m.current != nil}, nil
}

// End closes the batch. Safe to call multiple times; only the first call has
// effect.
func (s *BatchScope) End() error {
	if !s.active {
		return nil
	}
	s.active = false
	return s.manager.EndBatch()
}

// Batch runs fn inside a batch. The batch is closed when fn returns or panics.
func (m *Manager) Batch(fn func()) error {
	return m.BatchErr(func() error {
		fn()
		return nil
	})
}

// BatchErr runs fn inside a batch and returns fn's error. Events recorded
// before a failure stay in the batch; the batch is closed either way.
func (m *Manager) BatchErr(fn func() error) (err error) {
	scope, err := m.BatchScope()
	if err != nil {
		return err
	}
	defer func() {
		err = errClosingBatch(err, scope.End())
	}()
	return fn()
}

// BatchContext is BatchErr for work that takes a context.
func (m *Manager) BatchContext(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.BatchErr(func() error {
		return fn(ctx)
	})
}

// RunInBatch runs fn inside a batch on m and returns its result.
func RunInBatch[T any](m *Manager, fn func() (T, error)) (result T, err error) {
	err = m.BatchErr(func() error {
		var fnErr error
		result, fnErr = fn()
		return fnErr
	})
	return result, err
}
