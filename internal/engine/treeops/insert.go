package treeops

import (
	"github.com/sirupsen/logrus"

	"github.com/dshills/nodeedit/internal/engine/model"
	"github.com/dshills/nodeedit/internal/engine/transform"
)

type insertConfig struct {
	pos             int
	hasPos          bool
	replaceSelected bool
}

// InsertOption configures SafeInsert.
type InsertOption func(*insertConfig)

// AtPos inserts at pos instead of the selection head.
func AtPos(pos int) InsertOption {
	return func(c *insertConfig) {
		c.pos = pos
		c.hasPos = true
	}
}

// ReplaceSelected replaces the node of a NodeSelection when the content is
// allowed in its place, before trying other insertion points.
func ReplaceSelected() InsertOption {
	return func(c *insertConfig) {
		c.replaceSelected = true
	}
}

// CanInsert reports whether content may be inserted at rp without breaking
// the content rules of rp's parent.
func CanInsert(rp *model.ResolvedPos, content model.Insertable) bool {
	index := rp.Index(rp.Depth())
	return rp.Parent().CanReplace(index, index, content.Fragment())
}

// SafeInsert inserts content at the selection head, or the AtPos position,
// which must lie inside the document.
// The position itself is tried first. An empty parent block is then
// replaced by content when its own parent accepts it in that slot.
// Otherwise content goes after the innermost ancestor whose parent accepts
// it. The selection moves into the inserted content. When no point accepts
// content, tr is returned.
func SafeInsert(tr *transform.Transaction, content model.Insertable, opts ...InsertOption) *transform.Transaction {
	const op = "SafeInsert"
	var cfg insertConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	frag := content.Fragment()
	if frag.Size() == 0 {
		return noop(tr, op, "empty content")
	}

	if cfg.replaceSelected && IsNodeSelection(tr.Selection()) {
		if next := ReplaceSelectedNode(tr, frag); next != tr {
			return next
		}
	}

	pos := tr.Selection().Head()
	if cfg.hasPos {
		pos = cfg.pos
	}
	rp := tr.Doc().Resolve(pos)

	if CanInsert(rp, frag) {
		if next, ok := insertAt(tr, op, rp.Pos, rp.Pos, frag, "direct"); ok {
			return next
		}
	}
	if next, ok := replaceEmptyParent(tr, op, rp, frag); ok {
		return next
	}
	for d := rp.Depth(); d > 0; d-- {
		after := rp.After(d)
		if !CanInsert(tr.Doc().Resolve(after), frag) {
			continue
		}
		if next, ok := insertAt(tr, op, after, after, frag, "after-ancestor"); ok {
			return next
		}
	}
	return noop(tr, op, "no valid insertion point")
}

// replaceEmptyParent replaces rp's parent with frag when the parent has no
// content and the grandparent accepts frag in its slot. Enclosing blocks
// are never considered, so list and quote structure around the cursor is
// kept.
func replaceEmptyParent(tr *transform.Transaction, op string, rp *model.ResolvedPos, frag *model.Fragment) (*transform.Transaction, bool) {
	d := rp.Depth()
	if d == 0 || rp.Parent().Content().Size() != 0 {
		return tr, false
	}
	index := rp.Index(d - 1)
	if !rp.Node(d-1).CanReplace(index, index+1, frag) {
		return tr, false
	}
	return insertAt(tr, op, rp.Before(d), rp.After(d), frag, "empty-parent")
}

func insertAt(tr *transform.Transaction, op string, from, to int, frag *model.Fragment, strategy string) (*transform.Transaction, bool) {
	next, err := tr.ReplaceWith(from, to, frag)
	if err != nil || next == tr {
		return tr, false
	}
	next = selectInserted(next, from, from+frag.Size(), frag)
	return applied(next, op, logrus.Fields{"from": from, "strategy": strategy}), true
}
