package selection

import "github.com/dshills/nodeedit/internal/engine/model"

// FindFrom finds a valid selection starting at rp and searching in direction
// dir (1 forward, -1 backward). With textOnly, only text selections are
// considered; otherwise a selectable atom may be returned as a NodeSelection.
// Returns nil when nothing is found.
func FindFrom(rp *model.ResolvedPos, dir int, textOnly bool) Selection {
	if rp.Parent().InlineContent() {
		return Between(rp, rp)
	}
	doc := rp.Doc()
	if found := findSelectionIn(doc, rp.Parent(), rp.Pos, rp.Index(rp.Depth()), dir, textOnly); found != nil {
		return found
	}
	for d := rp.Depth() - 1; d >= 0; d-- {
		var found Selection
		if dir < 0 {
			found = findSelectionIn(doc, rp.Node(d), rp.Before(d+1), rp.Index(d), dir, textOnly)
		} else {
			found = findSelectionIn(doc, rp.Node(d), rp.After(d+1), rp.Index(d)+1, dir, textOnly)
		}
		if found != nil {
			return found
		}
	}
	return nil
}

// Near finds the valid selection closest to rp, preferring direction bias.
// When the document has no valid position at all, a cursor at rp is returned.
func Near(rp *model.ResolvedPos, bias int) Selection {
	if found := FindFrom(rp, bias, false); found != nil {
		return found
	}
	if found := FindFrom(rp, -bias, false); found != nil {
		return found
	}
	return Between(rp, rp)
}

// AtStart returns the first valid selection in doc.
func AtStart(doc *model.Node) Selection {
	if found := findSelectionIn(doc, doc, 0, 0, 1, false); found != nil {
		return found
	}
	return Cursor(doc, 0)
}

// AtEnd returns the last valid selection in doc.
func AtEnd(doc *model.Node) Selection {
	size := doc.Content().Size()
	if found := findSelectionIn(doc, doc, size, doc.ChildCount(), -1, false); found != nil {
		return found
	}
	return Cursor(doc, size)
}

// findSelectionIn searches node's children starting at index, where pos is
// the position of that child boundary.
func findSelectionIn(doc, node *model.Node, pos, index, dir int, textOnly bool) Selection {
	if node.InlineContent() {
		return Cursor(doc, pos)
	}
	i := index
	if dir < 0 {
		i = index - 1
	}
	for ; i >= 0 && i < node.ChildCount(); i += dir {
		child := node.Child(i)
		if !child.IsAtom() {
			inner := 0
			if dir < 0 {
				inner = child.ChildCount()
			}
			if found := findSelectionIn(doc, child, pos+dir, inner, dir, textOnly); found != nil {
				return found
			}
		} else if !textOnly && IsSelectable(child) {
			at := pos
			if dir < 0 {
				at = pos - child.NodeSize()
			}
			if sel, err := NewNodeSelection(doc, at); err == nil {
				return sel
			}
		}
		pos += child.NodeSize() * dir
	}
	return nil
}
