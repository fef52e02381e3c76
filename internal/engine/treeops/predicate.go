package treeops

import (
	"slices"

	"github.com/dshills/nodeedit/internal/engine/model"
)

// Predicate tests a node.
type Predicate func(node *model.Node) bool

// OfType matches nodes of any of the given types.
func OfType(types ...*model.NodeType) Predicate {
	return func(node *model.Node) bool {
		return slices.Contains(types, node.Type())
	}
}

// OfKind matches nodes whose type name is any of kinds.
func OfKind(kinds ...string) Predicate {
	return func(node *model.Node) bool {
		return slices.Contains(kinds, node.Kind())
	}
}
