package model

import "strings"

// Insertable is content that can be placed into a document: a single Node or
// a Fragment of siblings.
type Insertable interface {
	Fragment() *Fragment
}

// Fragment is an ordered sequence of sibling nodes.
// Fragments are immutable; every operation returns a new value.
type Fragment struct {
	content []*Node
	size    int
}

// EmptyFragment is the fragment with no children.
var EmptyFragment = &Fragment{}

// FragmentFromArray builds a fragment, joining adjacent text nodes that
// carry the same marks.
func FragmentFromArray(nodes []*Node) *Fragment {
	if len(nodes) == 0 {
		return EmptyFragment
	}
	joined := make([]*Node, 0, len(nodes))
	size := 0
	for _, n := range nodes {
		size += n.NodeSize()
		if last := len(joined) - 1; last >= 0 && n.IsText() && joined[last].sameTextMarkup(n) {
			joined[last] = joined[last].withText(joined[last].text + n.text)
			continue
		}
		joined = append(joined, n)
	}
	return &Fragment{content: joined, size: size}
}

// FragmentFrom wraps zero or more nodes in a fragment.
func FragmentFrom(nodes ...*Node) *Fragment {
	return FragmentFromArray(nodes)
}

// Fragment returns f itself so fragments satisfy Insertable.
func (f *Fragment) Fragment() *Fragment {
	return f
}

// Size returns the total position size of the fragment's children.
func (f *Fragment) Size() int {
	return f.size
}

// ChildCount returns the number of children.
func (f *Fragment) ChildCount() int {
	return len(f.content)
}

// Child returns the child at index.
func (f *Fragment) Child(index int) *Node {
	return f.content[index]
}

// MaybeChild returns the child at index, or nil when index is out of bounds.
func (f *Fragment) MaybeChild(index int) *Node {
	if index < 0 || index >= len(f.content) {
		return nil
	}
	return f.content[index]
}

// FirstChild returns the first child or nil.
func (f *Fragment) FirstChild() *Node {
	return f.MaybeChild(0)
}

// LastChild returns the last child or nil.
func (f *Fragment) LastChild() *Node {
	return f.MaybeChild(len(f.content) - 1)
}

// Nodes returns a copy of the child slice.
func (f *Fragment) Nodes() []*Node {
	out := make([]*Node, len(f.content))
	copy(out, f.content)
	return out
}

// ForEach calls fn with each child, its offset and its index.
func (f *Fragment) ForEach(fn func(child *Node, offset, index int)) {
	pos := 0
	for i, child := range f.content {
		fn(child, pos, i)
		pos += child.NodeSize()
	}
}

// NodesBetween calls fn for every node touching [from, to), descending into
// a node's children when fn returns true. pos is relative to nodeStart.
func (f *Fragment) NodesBetween(from, to int, fn func(node *Node, pos int, parent *Node, index int) bool, nodeStart int, parent *Node) {
	pos := 0
	for i := 0; pos < to && i < len(f.content); i++ {
		child := f.content[i]
		end := pos + child.NodeSize()
		if end > from && fn(child, nodeStart+pos, parent, i) && child.content.size > 0 {
			start := pos + 1
			child.content.NodesBetween(max(0, from-start), min(child.content.size, to-start), fn, nodeStart+start, child)
		}
		pos = end
	}
}

// Append concatenates two fragments, joining text at the seam.
func (f *Fragment) Append(other *Fragment) *Fragment {
	if other.size == 0 {
		return f
	}
	if f.size == 0 {
		return other
	}
	nodes := make([]*Node, 0, len(f.content)+len(other.content))
	nodes = append(nodes, f.content...)
	nodes = append(nodes, other.content...)
	return FragmentFromArray(nodes)
}

// Cut returns the part of the fragment between from and to, splitting
// children that straddle either boundary.
func (f *Fragment) Cut(from, to int) *Fragment {
	if from == 0 && to == f.size {
		return f
	}
	var result []*Node
	if to > from {
		pos := 0
		for i := 0; pos < to; i++ {
			child := f.content[i]
			end := pos + child.NodeSize()
			if end > from {
				if pos < from || end > to {
					if child.IsText() {
						child = child.Cut(max(0, from-pos), min(child.runeLen(), to-pos))
					} else {
						child = child.Cut(max(0, from-pos-1), min(child.content.size, to-pos-1))
					}
				}
				result = append(result, child)
			}
			pos = end
		}
	}
	return FragmentFromArray(result)
}

// ReplaceChild returns a fragment with the child at index replaced by node.
func (f *Fragment) ReplaceChild(index int, node *Node) *Fragment {
	if f.content[index] == node {
		return f
	}
	nodes := f.Nodes()
	nodes[index] = node
	return &Fragment{content: nodes, size: f.size - f.content[index].NodeSize() + node.NodeSize()}
}

// FindIndex locates the child containing or starting at pos.
// It returns the child index and the offset where that child starts.
// A position on a child boundary resolves to the child after it.
func (f *Fragment) FindIndex(pos int) (index, offset int) {
	if pos == 0 {
		return 0, 0
	}
	if pos == f.size {
		return len(f.content), pos
	}
	cur := 0
	for i, child := range f.content {
		end := cur + child.NodeSize()
		if end >= pos {
			if end == pos {
				return i + 1, end
			}
			return i, cur
		}
		cur = end
	}
	panic(&OutOfRangeError{Pos: pos, Size: f.size})
}

// Eq reports whether two fragments hold equal children.
func (f *Fragment) Eq(other *Fragment) bool {
	if len(f.content) != len(other.content) {
		return false
	}
	for i, child := range f.content {
		if !child.Eq(other.content[i]) {
			return false
		}
	}
	return true
}

// String renders the children separated by commas.
func (f *Fragment) String() string {
	parts := make([]string, len(f.content))
	for i, child := range f.content {
		parts[i] = child.String()
	}
	return strings.Join(parts, ", ")
}
