package treeops

import "github.com/dshills/nodeedit/internal/engine/model"

// NodeWithPos is a descendant together with its position relative to the
// start of the searched node's content.
type NodeWithPos struct {
	Node *model.Node
	Pos  int
}

// Flatten returns the direct children of node, or all descendants when
// descend is true.
func Flatten(node *model.Node, descend bool) []NodeWithPos {
	var result []NodeWithPos
	node.Descendants(func(child *model.Node, pos int, _ *model.Node, _ int) bool {
		result = append(result, NodeWithPos{Node: child, Pos: pos})
		return descend
	})
	return result
}

// FindChildren returns the descendants of node matching pred.
func FindChildren(node *model.Node, pred Predicate, descend bool) []NodeWithPos {
	var result []NodeWithPos
	for _, child := range Flatten(node, descend) {
		if pred(child.Node) {
			result = append(result, child)
		}
	}
	return result
}

// FindTextNodes returns the text descendants of node.
func FindTextNodes(node *model.Node, descend bool) []NodeWithPos {
	return FindChildren(node, (*model.Node).IsText, descend)
}

// FindInlineNodes returns the inline descendants of node.
func FindInlineNodes(node *model.Node, descend bool) []NodeWithPos {
	return FindChildren(node, (*model.Node).IsInline, descend)
}

// FindBlockNodes returns the block descendants of node.
func FindBlockNodes(node *model.Node, descend bool) []NodeWithPos {
	return FindChildren(node, (*model.Node).IsBlock, descend)
}

// FindChildrenByType returns the descendants of node of type t.
func FindChildrenByType(node *model.Node, t *model.NodeType, descend bool) []NodeWithPos {
	return FindChildren(node, OfType(t), descend)
}

// FindChildrenByAttr returns the descendants of node whose attributes satisfy pred.
func FindChildrenByAttr(node *model.Node, pred func(attrs model.Attrs) bool, descend bool) []NodeWithPos {
	return FindChildren(node, func(child *model.Node) bool { return pred(child.Attrs()) }, descend)
}

// FindChildrenByMark returns the descendants of node carrying a mark of type mt.
func FindChildrenByMark(node *model.Node, mt *model.MarkType, descend bool) []NodeWithPos {
	return FindChildren(node, func(child *model.Node) bool { return mt.IsInSet(child.Marks()) != nil }, descend)
}

// Contains reports whether node has a descendant of type t.
func Contains(node *model.Node, t *model.NodeType) bool {
	return len(FindChildrenByType(node, t, true)) > 0
}
