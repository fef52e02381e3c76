package treeops_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/dshills/nodeedit/internal/engine/transform"
	"github.com/dshills/nodeedit/internal/engine/treeops"
)

// Every command returns its input when it does not apply and a new
// transaction when it does.
func TestCommandIdentity(t *testing.T) {
	paragraph := b.Doc(b.P("a<cursor>"))
	quoted := b.Doc(b.P("x"), b.Blockquote(b.P("a<cursor>")))
	ruled := b.Doc(b.P("x"), "<node>", b.HR())

	tests := []struct {
		name    string
		noop    func(t *testing.T) *transform.Transaction
		applies func(t *testing.T) *transform.Transaction
		run     func(tr *transform.Transaction) *transform.Transaction
	}{
		{
			name:    "RemoveParentNodeOfType",
			noop:    func(t *testing.T) *transform.Transaction { return withCursor(t, paragraph) },
			applies: func(t *testing.T) *transform.Transaction { return withCursor(t, quoted) },
			run: func(tr *transform.Transaction) *transform.Transaction {
				return treeops.RemoveParentNodeOfType(tr, typ("blockquote"))
			},
		},
		{
			name:    "ReplaceParentNodeOfType",
			noop:    func(t *testing.T) *transform.Transaction { return withCursor(t, paragraph) },
			applies: func(t *testing.T) *transform.Transaction { return withCursor(t, quoted) },
			run: func(tr *transform.Transaction) *transform.Transaction {
				return treeops.ReplaceParentNodeOfType(tr, b.P("y").Node, typ("blockquote"))
			},
		},
		{
			name:    "RemoveSelectedNode",
			noop:    func(t *testing.T) *transform.Transaction { return withCursor(t, paragraph) },
			applies: func(t *testing.T) *transform.Transaction { return withNode(t, ruled) },
			run:     treeops.RemoveSelectedNode,
		},
		{
			name:    "SafeInsert",
			noop:    func(t *testing.T) *transform.Transaction { return withCursor(t, b.Doc(b.Code("a<cursor>"))) },
			applies: func(t *testing.T) *transform.Transaction { return withCursor(t, paragraph) },
			run: func(tr *transform.Transaction) *transform.Transaction {
				return treeops.SafeInsert(tr, b.Mention("m").Node)
			},
		},
		{
			name:    "ReplaceSelectedNode",
			noop:    func(t *testing.T) *transform.Transaction { return withCursor(t, paragraph) },
			applies: func(t *testing.T) *transform.Transaction { return withNode(t, ruled) },
			run: func(tr *transform.Transaction) *transform.Transaction {
				return treeops.ReplaceSelectedNode(tr, b.P("y").Node)
			},
		},
		{
			name:    "SetParentNodeMarkup",
			noop:    func(t *testing.T) *transform.Transaction { return withCursor(t, paragraph) },
			applies: func(t *testing.T) *transform.Transaction { return withCursor(t, quoted) },
			run: func(tr *transform.Transaction) *transform.Transaction {
				return treeops.SetParentNodeMarkup(tr, treeops.OfKind("blockquote"), treeops.WithType(typ("blockquote")))
			},
		},
		{
			name:    "SelectParentNodeOfType",
			noop:    func(t *testing.T) *transform.Transaction { return withNode(t, ruled) },
			applies: func(t *testing.T) *transform.Transaction { return withCursor(t, quoted) },
			run: func(tr *transform.Transaction) *transform.Transaction {
				return treeops.SelectParentNodeOfType(tr, typ("blockquote"), typ("paragraph"))
			},
		},
		{
			name:    "RemoveNodeBefore",
			noop:    func(t *testing.T) *transform.Transaction { return withCursor(t, b.Doc(b.P("<cursor>a"))) },
			applies: func(t *testing.T) *transform.Transaction { return withCursor(t, paragraph) },
			run:     treeops.RemoveNodeBefore,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noop := tt.noop(t)
			if got := tt.run(noop); got != noop {
				t.Errorf("inapplicable call returned a new transaction with doc %s", got.Doc())
			}
			applies := tt.applies(t)
			if got := tt.run(applies); got == applies {
				t.Error("applicable call returned its input")
			}
		})
	}
}

func TestNoopLogging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	treeops.SetLogger(logger)
	defer treeops.SetLogger(logrus.StandardLogger())

	tr := withCursor(t, b.Doc(b.P("a<cursor>")))
	treeops.RemoveParentNodeOfType(tr, typ("blockquote"))

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("no log entry")
	}
	if entry.Level != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", entry.Level)
	}
	for key, want := range map[string]any{
		"component": "treeops",
		"op":        "RemoveParentNodeOfType",
		"reason":    "no matching ancestor",
		"tx":        tr.ID(),
	} {
		if got := entry.Data[key]; got != want {
			t.Errorf("field %s = %v, want %v", key, got, want)
		}
	}
}
