package model

import (
	"fmt"
	"strings"
)

// pathEntry is one level of a resolved position's ancestor chain.
type pathEntry struct {
	node   *Node
	index  int
	offset int // absolute position where the child at index starts
}

// ResolvedPos is a position together with its ancestor chain.
//
// Depth 0 is the root; Depth() is the innermost node containing the
// position. Resolved positions are derived on demand and never cached.
type ResolvedPos struct {
	Pos          int
	ParentOffset int

	path []pathEntry
}

// ResolveSafe resolves pos within n, returning an *OutOfRangeError when pos
// is outside [0, content size].
func (n *Node) ResolveSafe(pos int) (*ResolvedPos, error) {
	if pos < 0 || pos > n.content.size {
		return nil, &OutOfRangeError{Pos: pos, Size: n.content.size}
	}
	var path []pathEntry
	start := 0
	parentOffset := pos
	for node := n; ; {
		index, offset := node.content.FindIndex(parentOffset)
		rem := parentOffset - offset
		path = append(path, pathEntry{node: node, index: index, offset: start + offset})
		if rem == 0 {
			break
		}
		node = node.Child(index)
		if node.IsText() {
			break
		}
		parentOffset = rem - 1
		start += offset + 1
	}
	return &ResolvedPos{Pos: pos, ParentOffset: parentOffset, path: path}, nil
}

// Depth returns the depth of the innermost node containing the position.
func (r *ResolvedPos) Depth() int {
	return len(r.path) - 1
}

func (r *ResolvedPos) resolveDepth(d int) int {
	if d < 0 {
		return r.Depth() + d
	}
	return d
}

// Doc returns the root node.
func (r *ResolvedPos) Doc() *Node {
	return r.path[0].node
}

// Parent returns the innermost node containing the position.
func (r *ResolvedPos) Parent() *Node {
	return r.path[len(r.path)-1].node
}

// Node returns the ancestor at depth d. Negative d counts up from Depth().
func (r *ResolvedPos) Node(d int) *Node {
	return r.path[r.resolveDepth(d)].node
}

// Index returns the child index at depth d.
func (r *ResolvedPos) Index(d int) int {
	return r.path[r.resolveDepth(d)].index
}

// IndexAfter returns the index of the child after the position at depth d.
func (r *ResolvedPos) IndexAfter(d int) int {
	d = r.resolveDepth(d)
	if d == r.Depth() && r.TextOffset() == 0 {
		return r.Index(d)
	}
	return r.Index(d) + 1
}

// Start returns the position where the content of the ancestor at depth d begins.
func (r *ResolvedPos) Start(d int) int {
	d = r.resolveDepth(d)
	if d == 0 {
		return 0
	}
	return r.path[d-1].offset + 1
}

// End returns the position where the content of the ancestor at depth d ends.
func (r *ResolvedPos) End(d int) int {
	d = r.resolveDepth(d)
	return r.Start(d) + r.Node(d).content.size
}

// Before returns the position directly before the ancestor at depth d.
// It panics for depth 0, which has no position before it.
func (r *ResolvedPos) Before(d int) int {
	d = r.resolveDepth(d)
	if d == 0 {
		panic("model: there is no position before the top-level node")
	}
	if d == r.Depth()+1 {
		return r.Pos
	}
	return r.path[d-1].offset
}

// After returns the position directly after the ancestor at depth d.
// It panics for depth 0, which has no position after it.
func (r *ResolvedPos) After(d int) int {
	d = r.resolveDepth(d)
	if d == 0 {
		panic("model: there is no position after the top-level node")
	}
	if d == r.Depth()+1 {
		return r.Pos
	}
	return r.path[d-1].offset + r.path[d].node.NodeSize()
}

// TextOffset returns how far into a text node the position points, or 0
// when it sits between nodes.
func (r *ResolvedPos) TextOffset() int {
	return r.Pos - r.path[len(r.path)-1].offset
}

// NodeAfter returns the node directly after the position, cut at the
// position for text nodes, or nil.
func (r *ResolvedPos) NodeAfter() *Node {
	parent := r.Parent()
	index := r.Index(r.Depth())
	if index == parent.ChildCount() {
		return nil
	}
	dOff := r.TextOffset()
	child := parent.Child(index)
	if dOff > 0 {
		return child.Cut(dOff, child.runeLen())
	}
	return child
}

// NodeBefore returns the node directly before the position, cut at the
// position for text nodes, or nil.
func (r *ResolvedPos) NodeBefore() *Node {
	index := r.Index(r.Depth())
	dOff := r.TextOffset()
	if dOff > 0 {
		return r.Parent().Child(index).Cut(0, dOff)
	}
	if index == 0 {
		return nil
	}
	return r.Parent().Child(index - 1)
}

// SharedDepth returns the depth of the deepest ancestor containing both this
// position and pos.
func (r *ResolvedPos) SharedDepth(pos int) int {
	for d := r.Depth(); d > 0; d-- {
		if r.Start(d) <= pos && r.End(d) >= pos {
			return d
		}
	}
	return 0
}

// Marks returns the marks active at the position: those of the text before
// it, or of the node after it at the start of a parent.
func (r *ResolvedPos) Marks() []*Mark {
	parent := r.Parent()
	index := r.Index(r.Depth())
	if parent.content.size == 0 {
		return nil
	}
	if r.TextOffset() > 0 {
		return parent.Child(index).marks
	}
	if before := parent.MaybeChild(index - 1); before != nil {
		return before.marks
	}
	if after := parent.MaybeChild(index); after != nil {
		return after.marks
	}
	return nil
}

// String renders the ancestor chain, e.g. "doc/0:paragraph/1:3".
func (r *ResolvedPos) String() string {
	var sb strings.Builder
	for d := 1; d <= r.Depth(); d++ {
		if sb.Len() > 0 {
			sb.WriteByte('/')
		}
		fmt.Fprintf(&sb, "%s_%d", r.Node(d).Kind(), r.Index(d-1))
	}
	return sb.String() + ":" + fmt.Sprint(r.ParentOffset)
}
