package treeops

import (
	"github.com/sirupsen/logrus"

	"github.com/dshills/nodeedit/internal/engine/model"
	"github.com/dshills/nodeedit/internal/engine/selection"
	"github.com/dshills/nodeedit/internal/engine/transform"
)

// SelectParentNodeOfType selects the closest ancestor of the selection start
// whose type is one of types. An existing NodeSelection is left alone.
func SelectParentNodeOfType(tr *transform.Transaction, types ...*model.NodeType) *transform.Transaction {
	const op = "SelectParentNodeOfType"
	if IsNodeSelection(tr.Selection()) {
		return noop(tr, op, "already a node selection")
	}
	parent, ok := FindParentNodeOfType(tr.Selection(), types...)
	if !ok {
		return noop(tr, op, "no matching ancestor")
	}
	sel, err := selection.NewNodeSelection(tr.Doc(), parent.Pos)
	if err != nil {
		return noop(tr, op, err.Error())
	}
	return applied(tr.SetSelection(sel), op, logrus.Fields{"kind": parent.Node.Kind(), "from": parent.Pos})
}

// SetTextSelection places a cursor at the first text position found from pos
// in direction dir (1 forward, -1 backward). It panics when pos is outside
// the document.
func SetTextSelection(tr *transform.Transaction, pos, dir int) *transform.Transaction {
	const op = "SetTextSelection"
	sel := selection.FindFrom(tr.Doc().Resolve(pos), dir, true)
	if sel == nil {
		return noop(tr, op, "no text position")
	}
	return applied(tr.SetSelection(sel), op, logrus.Fields{"pos": sel.Head()})
}
