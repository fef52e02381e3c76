package treeops

import (
	"github.com/sirupsen/logrus"

	"github.com/dshills/nodeedit/internal/engine/model"
	"github.com/dshills/nodeedit/internal/engine/selection"
	"github.com/dshills/nodeedit/internal/engine/transform"
)

// RemoveParentNodeOfType deletes the closest ancestor of the selection
// start whose type is one of types.
func RemoveParentNodeOfType(tr *transform.Transaction, types ...*model.NodeType) *transform.Transaction {
	const op = "RemoveParentNodeOfType"
	parent, ok := FindParentNodeOfType(tr.Selection(), types...)
	if !ok {
		return noop(tr, op, "no matching ancestor")
	}
	return deleteRange(tr, op, parent.Pos, parent.End(), logrus.Fields{"kind": parent.Node.Kind()})
}

// RemoveSelectedNode deletes the node selected by a NodeSelection.
func RemoveSelectedNode(tr *transform.Transaction) *transform.Transaction {
	const op = "RemoveSelectedNode"
	ns, ok := tr.Selection().(*selection.NodeSelection)
	if !ok {
		return noop(tr, op, "not a node selection")
	}
	return deleteRange(tr, op, ns.From(), ns.To(), logrus.Fields{"kind": ns.Node().Kind()})
}

// RemoveNodeBefore deletes the node directly before the selection start at
// the same depth. A text run before the cursor is removed up to the cursor.
func RemoveNodeBefore(tr *transform.Transaction) *transform.Transaction {
	const op = "RemoveNodeBefore"
	pos, ok := FindPositionOfNodeBefore(tr.Selection())
	if !ok {
		return noop(tr, op, "nothing before selection")
	}
	rp := tr.Selection().ResolvedFrom()
	before := rp.NodeBefore()
	return deleteRange(tr, op, pos, rp.Pos, logrus.Fields{
		"kind":  before.Kind(),
		"shape": nodeShape(before),
	})
}

// nodeShape classifies a node for diagnostics. Every shape is removed over
// its full NodeSize.
func nodeShape(node *model.Node) string {
	switch {
	case node.IsText():
		return "text"
	case node.IsAtom():
		return "atom"
	case node.ChildCount() == 1 && node.FirstChild().Content().Size() == 0 && !node.FirstChild().IsAtom():
		return "wrapper-of-empty"
	default:
		return "container"
	}
}

func deleteRange(tr *transform.Transaction, op string, from, to int, fields logrus.Fields) *transform.Transaction {
	next, err := tr.Delete(from, to)
	if err != nil {
		return noop(tr, op, err.Error())
	}
	if next == tr {
		return noop(tr, op, "empty range")
	}
	fields["from"], fields["to"] = from, to
	return applied(next, op, fields)
}
