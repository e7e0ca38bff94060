// Package clipboard copies text to the system clipboard or an internal register.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/mementor/internal/logger"
)

// Backend is a system clipboard.
type Backend interface {
	WriteAll(text string) error
	ReadAll() (string, error)
	Unsupported() bool
}

type systemBackend struct{}

func (systemBackend) WriteAll(text string) error { return clipboard.WriteAll(text) }
func (systemBackend) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemBackend) Unsupported() bool          { return clipboard.Unsupported }

// Manager handles clipboard operations
type Manager struct {
	backend  Backend // nil when only the internal register is used
	register string
}

// NewManager creates a clipboard manager. With useSystem the system
// clipboard is used when available.
func NewManager(useSystem bool) *Manager {
	if !useSystem {
		return &Manager{}
	}
	return NewManagerWithBackend(systemBackend{})
}

// NewManagerWithBackend creates a manager writing through backend.
func NewManagerWithBackend(backend Backend) *Manager {
	return &Manager{backend: backend}
}

// Copy stores text in the internal register and, when configured, on the
// system clipboard. It reports whether the system clipboard received it.
func (m *Manager) Copy(text string) (bool, error) {
	m.register = text
	if m.backend == nil {
		logger.Debugf("ClipboardManager: Copied %d bytes to register", len(text))
		return false, nil
	}
	if m.backend.Unsupported() {
		logger.Warnf("ClipboardManager: System clipboard unsupported, using register")
		return false, nil
	}
	if err := m.backend.WriteAll(text); err != nil {
		return false, fmt.Errorf("failed to write system clipboard: %w", err)
	}
	logger.Debugf("ClipboardManager: Copied %d bytes to system clipboard", len(text))
	return true, nil
}

// Paste returns the system clipboard contents when available, otherwise the
// internal register.
func (m *Manager) Paste() (string, error) {
	if m.backend == nil || m.backend.Unsupported() {
		return m.register, nil
	}
	text, err := m.backend.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read system clipboard: %w", err)
	}
	return text, nil
}
