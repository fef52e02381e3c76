package engine

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dshills/nodeedit/internal/engine/model"
	"github.com/dshills/nodeedit/internal/engine/notify"
	"github.com/dshills/nodeedit/internal/engine/selection"
	"github.com/dshills/nodeedit/internal/engine/transform"
)

// Change describes a state change delivered to observers.
type Change = notify.Change

// State is a document together with its selection.
type State struct {
	Doc       *model.Node
	Selection selection.Selection
}

// Command transforms a transaction. A command that does not apply returns
// the transaction it was given.
type Command func(tr *transform.Transaction) *transform.Transaction

// Engine holds a document and selection and applies commands to them.
//
// All operations are thread-safe and can be called from multiple goroutines.
type Engine struct {
	mu sync.RWMutex

	state    State
	version  uint64
	notifier *notify.Notifier
	log      *logrus.Entry

	notifyBuffer int
	readOnly     bool
}

// New creates an Engine over doc. Without WithSelection the selection is
// the first valid position in doc.
func New(doc *model.Node, opts ...Option) *Engine {
	e := &Engine{
		state: State{Doc: doc},
		log:   logrus.WithField("component", "engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.state.Selection == nil {
		e.state.Selection = selection.AtStart(doc)
	}
	var nopts []notify.Option
	if e.notifyBuffer > 0 {
		nopts = append(nopts, notify.WithAsync(e.notifyBuffer))
	}
	e.notifier = notify.New(nopts...)
	return e
}

// Close stops change delivery. Buffered changes are delivered first.
func (e *Engine) Close() {
	e.notifier.Close()
}

// ============================================================================
// Read Operations
// ============================================================================

// Doc returns the current document.
func (e *Engine) Doc() *model.Node {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Doc
}

// Selection returns the current selection.
func (e *Engine) Selection() selection.Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Selection
}

// State returns the current document and selection.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Version returns the number of committed document changes.
func (e *Engine) Version() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.version
}

// IsReadOnly reports whether the engine rejects edits.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// Transaction starts a transaction over the current state.
func (e *Engine) Transaction() *transform.Transaction {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.newTransaction()
}

func (e *Engine) newTransaction() *transform.Transaction {
	return transform.New(e.state.Doc, transform.WithSelection(e.state.Selection))
}

// ============================================================================
// Edit Operations
// ============================================================================

// Apply runs cmd on a transaction over the current state and commits the
// result. It reports whether the command applied.
func (e *Engine) Apply(cmd Command) (bool, error) {
	return e.ApplyAll(cmd)
}

// ApplyAll runs cmds in order, each on the transaction returned by the
// previous one, and commits the result once. Commands that do not apply are
// skipped. It reports whether any command applied.
func (e *Engine) ApplyAll(cmds ...Command) (bool, error) {
	change, ok, err := e.apply(cmds)
	if err != nil || !ok {
		return false, err
	}
	e.notifier.Notify(change)
	return true, nil
}

// apply holds the write lock while commands run so a panicking command
// leaves the engine usable.
func (e *Engine) apply(cmds []Command) (Change, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly {
		return Change{}, false, ErrReadOnly
	}
	tr := e.newTransaction()
	next := tr
	for _, cmd := range cmds {
		next = cmd(next)
	}
	if next == tr {
		e.log.WithField("tx", tr.ID()).Debug("command did not apply")
		return Change{}, false, nil
	}
	change, err := e.commitLocked(next)
	if err != nil {
		return Change{}, false, err
	}
	return change, true, nil
}

// Commit makes tr's result the current state. tr must have been started
// from the current document, typically with Transaction.
func (e *Engine) Commit(tr *transform.Transaction) error {
	change, err := e.commit(tr)
	if err != nil {
		return err
	}
	e.notifier.Notify(change)
	return nil
}

func (e *Engine) commit(tr *transform.Transaction) (Change, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly {
		return Change{}, ErrReadOnly
	}
	return e.commitLocked(tr)
}

func (e *Engine) commitLocked(tr *transform.Transaction) (Change, error) {
	if tr.Before() != e.state.Doc {
		return Change{}, ErrStaleTransaction
	}
	change := Change{
		Type:      notify.ChangeSelection,
		Before:    e.state.Doc,
		After:     tr.Doc(),
		Selection: tr.Selection(),
		TxID:      tr.ID(),
	}
	if tr.DocChanged() {
		change.Type = notify.ChangeDoc
		change.Description = describe(tr)
		e.version++
	}
	e.state = State{Doc: tr.Doc(), Selection: tr.Selection()}
	e.log.WithFields(logrus.Fields{
		"tx":    tr.ID(),
		"steps": len(tr.Steps()),
	}).Debug("transaction committed")
	return change, nil
}

func describe(tr *transform.Transaction) string {
	steps := tr.Steps()
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = s.String()
	}
	return strings.Join(parts, "; ")
}

// ============================================================================
// Change Notification
// ============================================================================

// Subscribe registers fn for every state change. Observers run after the
// engine lock is released and may call back into the engine.
func (e *Engine) Subscribe(fn func(Change)) *notify.Subscription {
	return e.notifier.Subscribe(fn)
}

// SubscribeType registers fn for state changes of the given types.
func (e *Engine) SubscribeType(fn func(Change), types ...notify.ChangeType) *notify.Subscription {
	return e.notifier.SubscribeType(fn, types...)
}
