package treeops

import (
	"github.com/sirupsen/logrus"

	"github.com/dshills/nodeedit/internal/engine/model"
	"github.com/dshills/nodeedit/internal/engine/selection"
	"github.com/dshills/nodeedit/internal/engine/transform"
)

// ReplaceParentNodeOfType replaces the closest ancestor of the selection
// start whose type is one of types with content. The replacement is made
// only if the ancestor's parent accepts content in its place; the cursor
// then moves into the inserted content.
func ReplaceParentNodeOfType(tr *transform.Transaction, content model.Insertable, types ...*model.NodeType) *transform.Transaction {
	const op = "ReplaceParentNodeOfType"
	parent, ok := FindParentNodeOfType(tr.Selection(), types...)
	if !ok {
		return noop(tr, op, "no matching ancestor")
	}
	frag := content.Fragment()
	rp := tr.Doc().Resolve(parent.Pos)
	index := rp.Index(rp.Depth())
	if !rp.Parent().CanReplace(index, index+1, frag) {
		return noop(tr, op, "content not allowed in "+rp.Parent().Kind())
	}
	next, err := tr.ReplaceWith(parent.Pos, parent.End(), frag)
	if err != nil {
		return noop(tr, op, err.Error())
	}
	next = selectInserted(next, parent.Pos, parent.Pos+frag.Size(), frag)
	return applied(next, op, logrus.Fields{"kind": parent.Node.Kind(), "from": parent.Pos})
}

// ReplaceSelectedNode replaces the node selected by a NodeSelection with
// content. A single selectable replacement node stays selected.
func ReplaceSelectedNode(tr *transform.Transaction, content model.Insertable) *transform.Transaction {
	const op = "ReplaceSelectedNode"
	ns, ok := tr.Selection().(*selection.NodeSelection)
	if !ok {
		return noop(tr, op, "not a node selection")
	}
	frag := content.Fragment()
	from := ns.ResolvedFrom()
	index := from.Index(from.Depth())
	if !from.Parent().CanReplace(index, index+1, frag) {
		return noop(tr, op, "content not allowed in "+from.Parent().Kind())
	}
	next, err := tr.ReplaceWith(ns.From(), ns.To(), frag)
	if err != nil {
		return noop(tr, op, err.Error())
	}
	if frag.ChildCount() == 1 && selection.IsSelectable(frag.Child(0)) {
		if sel, err := selection.NewNodeSelection(next.Doc(), ns.From()); err == nil {
			next = next.SetSelection(sel)
		}
	}
	return applied(next, op, logrus.Fields{"kind": ns.Node().Kind(), "from": ns.From()})
}

// selectInserted moves the selection into content that now occupies
// [from, to): a cursor at the start of its first textblock, else the node
// itself when it is a single selectable block atom, else the first text
// position after it. When none exists the mapped selection is kept.
func selectInserted(tr *transform.Transaction, from, to int, content *model.Fragment) *transform.Transaction {
	doc := tr.Doc()
	if pos, ok := firstTextblockStart(doc, from, to); ok {
		return tr.SetSelection(selection.Cursor(doc, pos))
	}
	if content.ChildCount() == 1 {
		node := content.Child(0)
		if node.IsBlock() && node.IsAtom() && selection.IsSelectable(node) {
			if sel, err := selection.NewNodeSelection(doc, from); err == nil {
				return tr.SetSelection(sel)
			}
		}
	}
	if sel := selection.FindFrom(doc.Resolve(to), 1, true); sel != nil {
		return tr.SetSelection(sel)
	}
	return tr
}

// firstTextblockStart returns the content start of the first textblock lying
// entirely within [from, to).
func firstTextblockStart(doc *model.Node, from, to int) (int, bool) {
	found := -1
	doc.NodesBetween(from, to, func(node *model.Node, pos int, _ *model.Node, _ int) bool {
		if found >= 0 {
			return false
		}
		if node.IsTextblock() && pos >= from && pos+node.NodeSize() <= to {
			found = pos + 1
			return false
		}
		return !node.InlineContent()
	})
	return found, found >= 0
}
