package treeops

import (
	"github.com/dshills/nodeedit/internal/engine/model"
	"github.com/dshills/nodeedit/internal/engine/selection"
)

// FoundNode is a node located in a document.
type FoundNode struct {
	Node *model.Node
	// Pos is the position directly before the node.
	Pos int
	// Start is the position where the node's content begins.
	Start int
	// Depth is the node's depth in the ancestor chain.
	Depth int
}

// End returns the position directly after the node.
func (f FoundNode) End() int {
	return f.Pos + f.Node.NodeSize()
}

// FindParentNodeClosestToPos returns the innermost ancestor of rp matching pred.
func FindParentNodeClosestToPos(rp *model.ResolvedPos, pred Predicate) (FoundNode, bool) {
	for d := rp.Depth(); d > 0; d-- {
		node := rp.Node(d)
		if pred(node) {
			return FoundNode{Node: node, Pos: rp.Before(d), Start: rp.Start(d), Depth: d}, true
		}
	}
	return FoundNode{}, false
}

// FindParentNode returns the innermost ancestor of the selection start matching pred.
func FindParentNode(sel selection.Selection, pred Predicate) (FoundNode, bool) {
	return FindParentNodeClosestToPos(sel.ResolvedFrom(), pred)
}

// FindParentNodeOfType returns the innermost ancestor of the selection start
// whose type is one of types.
func FindParentNodeOfType(sel selection.Selection, types ...*model.NodeType) (FoundNode, bool) {
	return FindParentNode(sel, OfType(types...))
}

// HasParentNodeOfType reports whether the selection start has an ancestor of one of types.
func HasParentNodeOfType(sel selection.Selection, types ...*model.NodeType) bool {
	_, ok := FindParentNodeOfType(sel, types...)
	return ok
}

// FindSelectedNodeOfType returns the node selected by a NodeSelection when
// its type is one of types.
func FindSelectedNodeOfType(sel selection.Selection, types ...*model.NodeType) (FoundNode, bool) {
	ns, ok := sel.(*selection.NodeSelection)
	if !ok || !OfType(types...)(ns.Node()) {
		return FoundNode{}, false
	}
	from := ns.ResolvedFrom()
	return FoundNode{Node: ns.Node(), Pos: ns.From(), Start: ns.From() + 1, Depth: from.Depth() + 1}, true
}

// IsNodeSelection reports whether sel selects a whole node.
func IsNodeSelection(sel selection.Selection) bool {
	return selection.IsNodeSelection(sel)
}

// FindPositionOfNodeBefore returns the position before the node directly
// preceding the selection start at the same depth.
func FindPositionOfNodeBefore(sel selection.Selection) (int, bool) {
	rp := sel.ResolvedFrom()
	before := rp.NodeBefore()
	if before == nil {
		return 0, false
	}
	return rp.Pos - before.NodeSize(), true
}
