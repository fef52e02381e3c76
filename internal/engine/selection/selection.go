package selection

import (
	"errors"
	"fmt"

	"github.com/dshills/nodeedit/internal/engine/model"
)

// ErrNoSelectableNode indicates a NodeSelection position with no node after it.
var ErrNoSelectableNode = errors.New("no node after position")

// Mapper maps positions from one document version to the next.
// assoc chooses the side an insertion at pos lands on (-1 before, 1 after);
// deleted reports whether the position was inside removed content.
type Mapper interface {
	MapPos(pos, assoc int) (mapped int, deleted bool)
}

// Selection is a TextSelection or a NodeSelection.
type Selection interface {
	// Anchor is the fixed end of the selection.
	Anchor() int
	// Head is the moving end of the selection.
	Head() int
	// From returns the lower bound of the selection.
	From() int
	// To returns the upper bound of the selection.
	To() int
	// ResolvedFrom returns From resolved in the selection's document.
	ResolvedFrom() *model.ResolvedPos
	// ResolvedTo returns To resolved in the selection's document.
	ResolvedTo() *model.ResolvedPos
	// Empty returns true if the selection covers no content.
	Empty() bool
	// Map carries the selection into doc, the result of applying m.
	Map(doc *model.Node, m Mapper) Selection
	// Eq reports whether other is the same variant over the same positions.
	Eq(other Selection) bool
	String() string
}

// TextSelection is an anchor/head range, possibly collapsed to a cursor.
type TextSelection struct {
	anchor *model.ResolvedPos
	head   *model.ResolvedPos
}

// NewTextSelection creates a selection from anchor to head in doc.
// Positions outside the document panic.
func NewTextSelection(doc *model.Node, anchor, head int) *TextSelection {
	return &TextSelection{anchor: doc.Resolve(anchor), head: doc.Resolve(head)}
}

// Cursor creates a collapsed selection at pos.
func Cursor(doc *model.Node, pos int) *TextSelection {
	rp := doc.Resolve(pos)
	return &TextSelection{anchor: rp, head: rp}
}

// Between creates a text selection between resolved positions.
func Between(anchor, head *model.ResolvedPos) *TextSelection {
	return &TextSelection{anchor: anchor, head: head}
}

// Anchor returns the anchor position.
func (s *TextSelection) Anchor() int { return s.anchor.Pos }

// Head returns the head position.
func (s *TextSelection) Head() int { return s.head.Pos }

// From returns the lower bound of the selection.
func (s *TextSelection) From() int { return min(s.anchor.Pos, s.head.Pos) }

// To returns the upper bound of the selection.
func (s *TextSelection) To() int { return max(s.anchor.Pos, s.head.Pos) }

// ResolvedFrom returns the lower bound resolved.
func (s *TextSelection) ResolvedFrom() *model.ResolvedPos {
	if s.anchor.Pos <= s.head.Pos {
		return s.anchor
	}
	return s.head
}

// ResolvedTo returns the upper bound resolved.
func (s *TextSelection) ResolvedTo() *model.ResolvedPos {
	if s.anchor.Pos >= s.head.Pos {
		return s.anchor
	}
	return s.head
}

// ResolvedHead returns the head resolved.
func (s *TextSelection) ResolvedHead() *model.ResolvedPos { return s.head }

// Empty returns true for a cursor.
func (s *TextSelection) Empty() bool { return s.anchor.Pos == s.head.Pos }

// Map carries the selection into doc.
func (s *TextSelection) Map(doc *model.Node, m Mapper) Selection {
	headPos, _ := m.MapPos(s.head.Pos, 1)
	head := doc.Resolve(headPos)
	if !head.Parent().InlineContent() {
		return Near(head, 1)
	}
	anchorPos, _ := m.MapPos(s.anchor.Pos, 1)
	anchor := doc.Resolve(anchorPos)
	if !anchor.Parent().InlineContent() {
		anchor = head
	}
	return &TextSelection{anchor: anchor, head: head}
}

// Eq reports whether other is a text selection with the same anchor and head.
func (s *TextSelection) Eq(other Selection) bool {
	o, ok := other.(*TextSelection)
	return ok && o.anchor.Pos == s.anchor.Pos && o.head.Pos == s.head.Pos
}

// String returns a string representation of the selection.
func (s *TextSelection) String() string {
	if s.Empty() {
		return fmt.Sprintf("Cursor(%d)", s.head.Pos)
	}
	return fmt.Sprintf("TextSelection(%d->%d)", s.anchor.Pos, s.head.Pos)
}

// NodeSelection selects a single node as a unit.
type NodeSelection struct {
	from *model.ResolvedPos
	to   *model.ResolvedPos
	node *model.Node
}

// NewNodeSelection selects the node directly after pos.
func NewNodeSelection(doc *model.Node, pos int) (*NodeSelection, error) {
	rp, err := doc.ResolveSafe(pos)
	if err != nil {
		return nil, err
	}
	return nodeSelectionAt(rp)
}

func nodeSelectionAt(rp *model.ResolvedPos) (*NodeSelection, error) {
	node := rp.NodeAfter()
	if node == nil {
		return nil, fmt.Errorf("%w: %d", ErrNoSelectableNode, rp.Pos)
	}
	to := rp.Doc().Resolve(rp.Pos + node.NodeSize())
	return &NodeSelection{from: rp, to: to, node: node}, nil
}

// Node returns the selected node.
func (s *NodeSelection) Node() *model.Node { return s.node }

// Anchor returns the position before the node.
func (s *NodeSelection) Anchor() int { return s.from.Pos }

// Head returns the position after the node.
func (s *NodeSelection) Head() int { return s.to.Pos }

// From returns the position before the node.
func (s *NodeSelection) From() int { return s.from.Pos }

// To returns the position after the node.
func (s *NodeSelection) To() int { return s.to.Pos }

// ResolvedFrom returns the position before the node, resolved.
func (s *NodeSelection) ResolvedFrom() *model.ResolvedPos { return s.from }

// ResolvedTo returns the position after the node, resolved.
func (s *NodeSelection) ResolvedTo() *model.ResolvedPos { return s.to }

// Empty is always false for node selections.
func (s *NodeSelection) Empty() bool { return false }

// Map carries the selection into doc, falling back to the nearest selection
// when the node was deleted.
func (s *NodeSelection) Map(doc *model.Node, m Mapper) Selection {
	pos, deleted := m.MapPos(s.from.Pos, 1)
	rp := doc.Resolve(pos)
	if deleted {
		return Near(rp, 1)
	}
	sel, err := nodeSelectionAt(rp)
	if err != nil {
		return Near(rp, 1)
	}
	return sel
}

// Eq reports whether other selects the node at the same position.
func (s *NodeSelection) Eq(other Selection) bool {
	o, ok := other.(*NodeSelection)
	return ok && o.from.Pos == s.from.Pos
}

// String returns a string representation of the selection.
func (s *NodeSelection) String() string {
	return fmt.Sprintf("NodeSelection(%d %s)", s.from.Pos, s.node.Kind())
}

// IsNodeSelection reports whether sel is the node variant.
func IsNodeSelection(sel Selection) bool {
	_, ok := sel.(*NodeSelection)
	return ok
}

// IsSelectable reports whether node can be the target of a NodeSelection.
func IsSelectable(node *model.Node) bool {
	return !node.IsText() && node.Type().Selectable
}
