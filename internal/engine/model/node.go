package model

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Node is an element of a document tree.
//
// Nodes are persistent values: nothing in this module modifies a Node after
// construction, so subtrees are freely shared between document versions.
// The Attrs map and Marks slice returned by accessors must not be modified.
type Node struct {
	typ     *NodeType
	attrs   Attrs
	content *Fragment
	marks   []*Mark

	// Text nodes only.
	text    string
	textLen int
}

// Fragment returns a one-element fragment holding n, so nodes satisfy Insertable.
func (n *Node) Fragment() *Fragment {
	return FragmentFrom(n)
}

// Type returns the node's type.
func (n *Node) Type() *NodeType { return n.typ }

// Kind returns the name of the node's type.
func (n *Node) Kind() string { return n.typ.Name }

// Attrs returns the node's attributes.
func (n *Node) Attrs() Attrs { return n.attrs }

// Attr returns a single attribute value.
func (n *Node) Attr(name string) any { return n.attrs[name] }

// Marks returns the node's marks in rank order.
func (n *Node) Marks() []*Mark { return n.marks }

// Content returns the node's children.
func (n *Node) Content() *Fragment { return n.content }

// Text returns the text of a text node, or "" for other nodes.
func (n *Node) Text() string { return n.text }

// NodeSize returns the number of positions the node occupies in its parent.
// Text nodes count one position per rune, leaves count one, and every other
// node counts its content plus its open and close boundaries.
func (n *Node) NodeSize() int {
	if n.IsText() {
		return n.textLen
	}
	if n.IsLeaf() {
		return 1
	}
	return n.content.size + 2
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return n.content.ChildCount() }

// Child returns the child at index.
func (n *Node) Child(index int) *Node { return n.content.Child(index) }

// MaybeChild returns the child at index or nil.
func (n *Node) MaybeChild(index int) *Node { return n.content.MaybeChild(index) }

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node { return n.content.FirstChild() }

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node { return n.content.LastChild() }

// IsText reports whether this is a text node.
func (n *Node) IsText() bool { return n.typ.isText }

// IsLeaf reports whether the node's type allows no content.
func (n *Node) IsLeaf() bool { return n.typ.IsLeaf() }

// IsAtom reports whether the node is a unit for selection and deletion.
func (n *Node) IsAtom() bool { return n.typ.IsAtom() }

// IsInline reports whether the node is inline.
func (n *Node) IsInline() bool { return n.typ.Inline }

// IsBlock reports whether the node is a block.
func (n *Node) IsBlock() bool { return !n.typ.Inline }

// IsTextblock reports whether the node is a block holding inline content.
func (n *Node) IsTextblock() bool { return n.typ.IsTextblock() }

// InlineContent reports whether the node's content is inline.
func (n *Node) InlineContent() bool { return n.typ.InlineContent() }

// Copy returns a node with the same markup and the given content.
func (n *Node) Copy(content *Fragment) *Node {
	if content == n.content {
		return n
	}
	return &Node{typ: n.typ, attrs: n.attrs, content: content, marks: n.marks}
}

// Mark returns a node with the same content and the given marks.
func (n *Node) Mark(marks []*Mark) *Node {
	if SameMarkSet(marks, n.marks) {
		return n
	}
	out := *n
	out.marks = marks
	return &out
}

// Cut returns the part of the node between from and to. For text nodes the
// offsets count runes; for other nodes they are content positions.
func (n *Node) Cut(from, to int) *Node {
	if n.IsText() {
		if from == 0 && to == n.textLen {
			return n
		}
		runes := []rune(n.text)
		return n.withText(string(runes[from:to]))
	}
	if from == 0 && to == n.content.size {
		return n
	}
	return n.Copy(n.content.Cut(from, to))
}

func (n *Node) withText(text string) *Node {
	if text == n.text {
		return n
	}
	return &Node{typ: n.typ, attrs: n.attrs, content: EmptyFragment, marks: n.marks, text: text, textLen: utf8.RuneCountInString(text)}
}

func (n *Node) runeLen() int { return n.textLen }

func (n *Node) sameTextMarkup(other *Node) bool {
	return n.IsText() && other.IsText() && SameMarkSet(n.marks, other.marks)
}

// SameMarkup reports whether other has the same type, attributes and marks.
func (n *Node) SameMarkup(other *Node) bool {
	return n.HasMarkup(other.typ, other.attrs, other.marks)
}

// HasMarkup reports whether the node has the given type, attributes and marks.
func (n *Node) HasMarkup(t *NodeType, attrs Attrs, marks []*Mark) bool {
	if attrs == nil {
		attrs = t.defaultAttrs
	}
	return n.typ == t && n.attrs.Eq(attrs) && SameMarkSet(n.marks, marks)
}

// Eq reports whether two nodes are structurally equal.
func (n *Node) Eq(other *Node) bool {
	if n == other {
		return true
	}
	if other == nil || !n.SameMarkup(other) || n.text != other.text {
		return false
	}
	return n.content.Eq(other.content)
}

// NodeAt returns the node starting at pos, relative to the start of n's content.
func (n *Node) NodeAt(pos int) *Node {
	node := n
	for {
		index, offset := node.content.FindIndex(pos)
		child := node.content.MaybeChild(index)
		if child == nil {
			return nil
		}
		if offset == pos || child.IsText() {
			return child
		}
		pos -= offset + 1
		node = child
	}
}

// NodesBetween calls fn for every descendant overlapping [from, to) with its
// absolute position. Returning false skips the node's children.
func (n *Node) NodesBetween(from, to int, fn func(node *Node, pos int, parent *Node, index int) bool) {
	n.content.NodesBetween(from, to, fn, 0, n)
}

// Descendants calls fn for every descendant of n.
func (n *Node) Descendants(fn func(node *Node, pos int, parent *Node, index int) bool) {
	n.NodesBetween(0, n.content.size, fn)
}

// TextContent concatenates the text of all descendant text nodes.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.text
	}
	var sb strings.Builder
	n.Descendants(func(child *Node, _ int, _ *Node, _ int) bool {
		if child.IsText() {
			sb.WriteString(child.text)
		}
		return true
	})
	return sb.String()
}

// CanReplace reports whether replacing children [from, to) with replacement
// leaves n's content valid.
func (n *Node) CanReplace(from, to int, replacement *Fragment) bool {
	kinds := make([]*NodeType, 0, n.content.ChildCount()+replacement.ChildCount())
	for i := 0; i < from; i++ {
		kinds = append(kinds, n.content.Child(i).typ)
	}
	for i := 0; i < replacement.ChildCount(); i++ {
		kinds = append(kinds, replacement.Child(i).typ)
	}
	for i := to; i < n.content.ChildCount(); i++ {
		kinds = append(kinds, n.content.Child(i).typ)
	}
	if !n.typ.content.matches(kinds) {
		return false
	}
	for i := 0; i < replacement.ChildCount(); i++ {
		if !n.typ.AllowsMarks(replacement.Child(i).marks) {
			return false
		}
	}
	return true
}

// CanReplaceWith reports whether replacing children [from, to) with a single
// node of type t leaves n's content valid.
func (n *Node) CanReplaceWith(from, to int, t *NodeType) bool {
	kinds := make([]*NodeType, 0, n.content.ChildCount()+1)
	for i := 0; i < from; i++ {
		kinds = append(kinds, n.content.Child(i).typ)
	}
	kinds = append(kinds, t)
	for i := to; i < n.content.ChildCount(); i++ {
		kinds = append(kinds, n.content.Child(i).typ)
	}
	return n.typ.content.matches(kinds)
}

// Resolve resolves pos within n. It panics with an *OutOfRangeError when pos
// is outside [0, content size]; use ResolveSafe to get the error instead.
func (n *Node) Resolve(pos int) *ResolvedPos {
	rp, err := n.ResolveSafe(pos)
	if err != nil {
		panic(err)
	}
	return rp
}

// String renders the node as kind(children) with marks wrapped around text.
func (n *Node) String() string {
	name := n.typ.Name
	if len(n.attrs) > 0 {
		name += n.attrs.String()
	}
	var base string
	switch {
	case n.IsText():
		base = strconv.Quote(n.text)
	case n.content.ChildCount() > 0:
		base = name + "(" + n.content.String() + ")"
	default:
		base = name
	}
	for i := len(n.marks) - 1; i >= 0; i-- {
		base = n.marks[i].Type.Name + "(" + base + ")"
	}
	return base
}
