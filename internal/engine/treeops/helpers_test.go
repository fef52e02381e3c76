package treeops_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/nodeedit/internal/config/schemas"
	"github.com/dshills/nodeedit/internal/engine/model"
	"github.com/dshills/nodeedit/internal/engine/selection"
	"github.com/dshills/nodeedit/internal/engine/testdoc"
	"github.com/dshills/nodeedit/internal/engine/transform"
)

var (
	schema = schemas.MustDefault()
	b      = testdoc.New(schema)
)

func typ(name string) *model.NodeType {
	t := schema.NodeType(name)
	if t == nil {
		panic("unknown node type " + name)
	}
	return t
}

func mark(t *testing.T, name string, attrs model.Attrs) *model.Mark {
	t.Helper()
	m, err := schema.Mark(name, attrs)
	if err != nil {
		t.Fatalf("creating mark %s: %v", name, err)
	}
	return m
}

// withCursor starts a transaction with a cursor at the <cursor> tag.
func withCursor(t *testing.T, d *testdoc.Tagged) *transform.Transaction {
	t.Helper()
	pos, ok := d.Tags["cursor"]
	if !ok {
		t.Fatal("document has no <cursor> tag")
	}
	return transform.New(d.Node, transform.WithSelection(selection.Cursor(d.Node, pos)))
}

// withNode starts a transaction selecting the node after the <node> tag.
func withNode(t *testing.T, d *testdoc.Tagged) *transform.Transaction {
	t.Helper()
	pos, ok := d.Tags["node"]
	if !ok {
		t.Fatal("document has no <node> tag")
	}
	sel, err := selection.NewNodeSelection(d.Node, pos)
	if err != nil {
		t.Fatalf("selecting node at %d: %v", pos, err)
	}
	return transform.New(d.Node, transform.WithSelection(sel))
}

func assertDoc(t *testing.T, got *model.Node, want *testdoc.Tagged) {
	t.Helper()
	if !got.Eq(want.Node) {
		t.Errorf("document mismatch (-want +got):\n%s", cmp.Diff(want.Node.String(), got.String()))
	}
}

func assertApplied(t *testing.T, before, after *transform.Transaction) {
	t.Helper()
	if after == before {
		t.Fatal("expected a new transaction, got the input")
	}
}

func assertNoop(t *testing.T, before, after *transform.Transaction) {
	t.Helper()
	if after != before {
		t.Fatalf("expected the input transaction back, got doc %s", after.Doc())
	}
}

func assertCursor(t *testing.T, sel selection.Selection, pos int) {
	t.Helper()
	ts, ok := sel.(*selection.TextSelection)
	if !ok || !ts.Empty() || ts.Head() != pos {
		t.Errorf("selection = %s, want Cursor(%d)", sel, pos)
	}
}

func assertNodeSelection(t *testing.T, sel selection.Selection, pos int, kind string) {
	t.Helper()
	ns, ok := sel.(*selection.NodeSelection)
	if !ok || ns.From() != pos || ns.Node().Kind() != kind {
		t.Errorf("selection = %s, want NodeSelection(%d %s)", sel, pos, kind)
	}
}
