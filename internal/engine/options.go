package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/dshills/nodeedit/internal/engine/selection"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithSelection sets the initial selection. It must belong to the document
// passed to New.
func WithSelection(sel selection.Selection) Option {
	return func(e *Engine) {
		e.state.Selection = sel
	}
}

// WithReadOnly creates a read-only engine.
// Apply, ApplyAll and Commit will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}

// WithLogger routes engine logging to l.
func WithLogger(l *logrus.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l.WithField("component", "engine")
		}
	}
}

// WithAsyncNotify delivers state changes to observers from a background
// goroutine through a buffer of size changes. Call Close to stop it.
func WithAsyncNotify(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.notifyBuffer = size
		}
	}
}
