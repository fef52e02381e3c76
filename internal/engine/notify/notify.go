// Package notify delivers engine state changes to observers.
//
// Observers subscribe to every change or to specific change types and are
// called after the engine has released its lock, either synchronously or
// from a single delivery goroutine when the notifier is asynchronous.
package notify

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/nodeedit/internal/engine/model"
	"github.com/dshills/nodeedit/internal/engine/selection"
)

// ChangeType represents the kind of state change.
type ChangeType int

const (
	// ChangeDoc indicates a committed transaction changed the document.
	ChangeDoc ChangeType = iota

	// ChangeSelection indicates only the selection changed.
	ChangeSelection
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeDoc:
		return "doc"
	case ChangeSelection:
		return "selection"
	default:
		return "unknown"
	}
}

// Change represents one engine state change.
type Change struct {
	Type ChangeType

	// Before and After are the documents on either side of the change.
	// They are the same node for selection-only changes.
	Before *model.Node
	After  *model.Node

	// Selection is the selection after the change.
	Selection selection.Selection

	// TxID is the committed transaction's session ID.
	TxID uuid.UUID

	// Description summarizes the steps applied. Empty for selection changes.
	Description string
}

// Observer is called when a change occurs.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

type subscriber struct {
	observer Observer
	types    []ChangeType // nil means every type
}

func (s subscriber) wants(t ChangeType) bool {
	if s.types == nil {
		return true
	}
	for _, want := range s.types {
		if want == t {
			return true
		}
	}
	return false
}

// Notifier manages change subscriptions.
type Notifier struct {
	mu sync.RWMutex

	subscribers map[uint64]subscriber
	order       []uint64
	nextID      uint64

	// Whether to notify synchronously or asynchronously
	async  bool
	buffer chan Change
	done   chan struct{}
	wg     sync.WaitGroup

	closed bool
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithAsync enables asynchronous delivery through a buffer of bufferSize
// changes. Changes are still delivered in order.
func WithAsync(bufferSize int) Option {
	return func(n *Notifier) {
		if bufferSize > 0 {
			n.async = true
			n.buffer = make(chan Change, bufferSize)
		}
	}
}

// New creates a new Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		subscribers: make(map[uint64]subscriber),
		done:        make(chan struct{}),
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.async {
		n.wg.Add(1)
		go n.processAsync()
	}

	return n
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.add(subscriber{observer: observer})
}

// SubscribeType registers an observer for changes of the given types only.
func (n *Notifier) SubscribeType(observer Observer, types ...ChangeType) *Subscription {
	if types == nil {
		types = []ChangeType{}
	}
	return n.add(subscriber{observer: observer, types: types})
}

func (n *Notifier) add(s subscriber) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.subscribers[id] = s
	n.order = append(n.order, id)

	return &Subscription{id: id, notifier: n}
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subscribers)
}

// Notify sends a change to all matching observers. Changes sent after Close
// are dropped.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	n.mu.RUnlock()

	if n.async {
		select {
		case n.buffer <- change:
		case <-n.done:
		}
		return
	}

	n.deliver(change)
}

// Close shuts down the notifier, delivering any buffered changes first.
// It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	close(n.done)
	n.wg.Wait()
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.subscribers[id]; !ok {
		return
	}
	delete(n.subscribers, id)
	for i, sid := range n.order {
		if sid == id {
			n.order = append(n.order[:i:i], n.order[i+1:]...)
			break
		}
	}
}

// deliver calls matching observers in subscription order.
func (n *Notifier) deliver(change Change) {
	n.mu.RLock()
	var observers []Observer
	for _, id := range n.order {
		if s := n.subscribers[id]; s.wants(change.Type) {
			observers = append(observers, s.observer)
		}
	}
	n.mu.RUnlock()

	// Call observers outside the lock
	for _, obs := range observers {
		obs(change)
	}
}

func (n *Notifier) processAsync() {
	defer n.wg.Done()

	for {
		select {
		case change := <-n.buffer:
			n.deliver(change)
		case <-n.done:
			// Drain remaining buffered changes
			for {
				select {
				case change := <-n.buffer:
					n.deliver(change)
				default:
					return
				}
			}
		}
	}
}
