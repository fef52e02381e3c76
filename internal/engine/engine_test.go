package engine

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/dshills/nodeedit/internal/config/schemas"
	"github.com/dshills/nodeedit/internal/engine/model"
	"github.com/dshills/nodeedit/internal/engine/notify"
	"github.com/dshills/nodeedit/internal/engine/selection"
	"github.com/dshills/nodeedit/internal/engine/testdoc"
	"github.com/dshills/nodeedit/internal/engine/transform"
	"github.com/dshills/nodeedit/internal/engine/treeops"
)

var (
	schema = schemas.MustDefault()
	b      = testdoc.New(schema)
)

func newAtCursor(t *testing.T, d *testdoc.Tagged, opts ...Option) *Engine {
	t.Helper()
	sel := selection.Cursor(d.Node, d.Tags["cursor"])
	e := New(d.Node, append([]Option{WithSelection(sel)}, opts...)...)
	t.Cleanup(e.Close)
	return e
}

func assertDoc(t *testing.T, got *model.Node, want *testdoc.Tagged) {
	t.Helper()
	if !got.Eq(want.Node) {
		t.Errorf("document mismatch (-want +got):\n%s", cmp.Diff(want.Node.String(), got.String()))
	}
}

func removeQuote(tr *transform.Transaction) *transform.Transaction {
	return treeops.RemoveParentNodeOfType(tr, schema.NodeType("blockquote"))
}

func insertRule(tr *transform.Transaction) *transform.Transaction {
	return treeops.SafeInsert(tr, b.HR().Node)
}

// ============================================================================
// Basic Operations
// ============================================================================

func TestNew(t *testing.T) {
	doc := b.Doc(b.HR(), b.P("a")).Node
	e := New(doc)
	defer e.Close()
	if e.Doc() != doc {
		t.Error("Doc() is not the initial document")
	}
	sel, ok := e.Selection().(*selection.NodeSelection)
	if !ok || sel.From() != 0 {
		t.Errorf("initial selection = %s, want NodeSelection(0)", e.Selection())
	}
	if e.IsReadOnly() {
		t.Error("engine is read-only by default")
	}
	if e.Version() != 0 {
		t.Errorf("Version = %d, want 0", e.Version())
	}
}

func TestApply(t *testing.T) {
	d := b.Doc(b.P("one"), b.Blockquote(b.P("tw<cursor>o")))
	e := newAtCursor(t, d)

	applied, err := e.Apply(removeQuote)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !applied {
		t.Fatal("Apply reported no change")
	}
	assertDoc(t, e.Doc(), b.Doc(b.P("one")))
	if e.Version() != 1 {
		t.Errorf("Version = %d, want 1", e.Version())
	}
}

func TestApplyNoop(t *testing.T) {
	d := b.Doc(b.P("a<cursor>"))
	e := newAtCursor(t, d)
	before := e.State()

	applied, err := e.Apply(removeQuote)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if applied {
		t.Error("Apply reported a change for a no-op command")
	}
	if e.Doc() != before.Doc || e.Selection() != before.Selection {
		t.Error("state changed after a no-op command")
	}
	if e.Version() != 0 {
		t.Errorf("Version = %d after a no-op", e.Version())
	}
}

func TestApplySelectionOnly(t *testing.T) {
	d := b.Doc(b.Blockquote(b.P("a<cursor>")))
	e := newAtCursor(t, d)

	applied, err := e.Apply(func(tr *transform.Transaction) *transform.Transaction {
		return treeops.SelectParentNodeOfType(tr, schema.NodeType("blockquote"))
	})
	if err != nil || !applied {
		t.Fatalf("Apply = %v, %v", applied, err)
	}
	if !selection.IsNodeSelection(e.Selection()) {
		t.Errorf("selection = %s, want a node selection", e.Selection())
	}
	if e.Doc() != d.Node || e.Version() != 0 {
		t.Error("selection change counted as a document change")
	}
}

func TestApplyAll(t *testing.T) {
	d := b.Doc(b.P("one"), b.Blockquote(b.P("tw<cursor>o")))
	e := newAtCursor(t, d)

	var changes []Change
	e.Subscribe(func(c Change) { changes = append(changes, c) })

	// The second removeQuote finds no blockquote and is skipped.
	applied, err := e.ApplyAll(removeQuote, removeQuote, insertRule)
	if err != nil || !applied {
		t.Fatalf("ApplyAll = %v, %v", applied, err)
	}
	assertDoc(t, e.Doc(), b.Doc(b.P("one"), b.HR()))
	if e.Version() != 1 {
		t.Errorf("Version = %d, want one commit", e.Version())
	}
	if len(changes) != 1 || strings.Count(changes[0].Description, "; ") != 1 {
		t.Errorf("changes = %+v, want one change with two steps", changes)
	}

	applied, err = e.ApplyAll(removeQuote, removeQuote)
	if err != nil || applied {
		t.Errorf("ApplyAll of no-ops = %v, %v", applied, err)
	}
}

func TestReadOnly(t *testing.T) {
	d := b.Doc(b.P("one"), b.Blockquote(b.P("tw<cursor>o")))
	e := newAtCursor(t, d, WithReadOnly())

	if _, err := e.Apply(removeQuote); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Apply err = %v, want ErrReadOnly", err)
	}
	if _, err := e.ApplyAll(removeQuote); !errors.Is(err, ErrReadOnly) {
		t.Errorf("ApplyAll err = %v, want ErrReadOnly", err)
	}
	if err := e.Commit(e.Transaction()); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Commit err = %v, want ErrReadOnly", err)
	}
	if e.Doc() != d.Node {
		t.Error("read-only engine changed its document")
	}
}

func TestCommit(t *testing.T) {
	d := b.Doc(b.P("one"), b.Blockquote(b.P("tw<cursor>o")))
	e := newAtCursor(t, d)

	tr := e.Transaction()
	next := removeQuote(tr)
	if err := e.Commit(next); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	assertDoc(t, e.Doc(), b.Doc(b.P("one")))

	if err := e.Commit(next); !errors.Is(err, ErrStaleTransaction) {
		t.Errorf("recommit err = %v, want ErrStaleTransaction", err)
	}
	if e.Version() != 1 {
		t.Errorf("Version = %d, want 1", e.Version())
	}
}

func TestLogging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	d := b.Doc(b.P("a<cursor>"))
	e := newAtCursor(t, d, WithLogger(logger))

	if _, err := e.Apply(removeQuote); err != nil {
		t.Fatal(err)
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Data["component"] != "engine" {
		t.Fatalf("last entry = %+v", entry)
	}
	if entry.Message != "command did not apply" {
		t.Errorf("message = %q", entry.Message)
	}
}

// ============================================================================
// Change Notification
// ============================================================================

func TestSubscribe(t *testing.T) {
	d := b.Doc(b.P("one"), b.Blockquote(b.P("tw<cursor>o")))
	e := newAtCursor(t, d)

	var changes []Change
	sub := e.Subscribe(func(c Change) { changes = append(changes, c) })

	tr := e.Transaction()
	if _, err := e.Apply(removeQuote); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Apply(func(tr *transform.Transaction) *transform.Transaction {
		return treeops.SetTextSelection(tr, 1, 1)
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Apply(func(tr *transform.Transaction) *transform.Transaction { return tr }); err != nil {
		t.Fatal(err)
	}
	if err := e.Commit(tr); !errors.Is(err, ErrStaleTransaction) {
		t.Fatalf("stale commit err = %v", err)
	}

	var got []notify.ChangeType
	for _, c := range changes {
		got = append(got, c.Type)
	}
	want := []notify.ChangeType{notify.ChangeDoc, notify.ChangeSelection}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("change types mismatch (-want +got):\n%s", diff)
	}
	if changes[0].Before != d.Node || changes[0].After == d.Node || changes[0].Description == "" {
		t.Errorf("doc change = %+v", changes[0])
	}
	if changes[1].Before != changes[1].After || changes[1].Selection.Head() != 1 {
		t.Errorf("selection change = %+v", changes[1])
	}
	if changes[0].TxID == changes[1].TxID {
		t.Error("separate commits share a transaction ID")
	}

	sub.Unsubscribe()
	if _, err := e.Apply(insertRule); err != nil {
		t.Fatal(err)
	}
	if len(changes) != 2 {
		t.Errorf("unsubscribed observer received %d changes", len(changes)-2)
	}
}

func TestSubscribeReentrant(t *testing.T) {
	d := b.Doc(b.Blockquote(b.P("a<cursor>")), b.P("b"))
	e := newAtCursor(t, d)

	var docs []*model.Node
	e.SubscribeType(func(c Change) {
		docs = append(docs, e.Doc())
	}, notify.ChangeDoc)

	if _, err := e.Apply(removeQuote); err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0] != e.Doc() {
		t.Errorf("observer saw %v, want the committed document", docs)
	}
}

func TestAsyncNotify(t *testing.T) {
	d := b.Doc(b.P("one<cursor>"))
	e := New(d.Node, WithSelection(selection.Cursor(d.Node, d.Tags["cursor"])), WithAsyncNotify(8))

	var mu sync.Mutex
	var count int
	e.Subscribe(func(Change) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	for range 3 {
		if _, err := e.Apply(insertRule); err != nil {
			t.Fatal(err)
		}
	}
	e.Close()

	mu.Lock()
	defer mu.Unlock()
	if count != 3 {
		t.Errorf("delivered %d changes, want 3", count)
	}
}

// ============================================================================
// Concurrency
// ============================================================================

func TestConcurrentApply(t *testing.T) {
	d := b.Doc(b.P("start<cursor>"))
	e := newAtCursor(t, d)
	mention := b.Mention("m").Node

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = e.Apply(func(tr *transform.Transaction) *transform.Transaction {
				return treeops.SafeInsert(tr, mention)
			})
		}()
		go func() {
			defer wg.Done()
			_ = e.Doc().TextContent()
			_ = e.Selection().Head()
		}()
	}
	wg.Wait()

	got := len(treeops.FindChildrenByType(e.Doc(), schema.NodeType("mention"), true))
	if got != 20 {
		t.Errorf("mentions = %d, want 20", got)
	}
	if e.Version() != 20 {
		t.Errorf("Version = %d, want 20", e.Version())
	}
}

func TestApplyPanicReleasesLock(t *testing.T) {
	d := b.Doc(b.P("a<cursor>"))
	e := newAtCursor(t, d)

	func() {
		defer func() {
			if recover() == nil {
				t.Error("command panic was swallowed")
			}
		}()
		_, _ = e.Apply(func(tr *transform.Transaction) *transform.Transaction {
			panic("command failed")
		})
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if e.Doc() != d.Node {
			t.Error("document changed by a panicking command")
		}
		_, _ = e.Apply(insertRule)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("engine still locked after a command panicked")
	}
	if e.Version() != 1 {
		t.Errorf("Version = %d, want 1", e.Version())
	}
}
