package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// SchemaSpec describes the node and mark types of a schema.
// Node order matters: group references expand in declaration order.
type SchemaSpec struct {
	TopNode string
	Nodes   []NodeSpec
	Marks   []MarkSpec
}

// NodeSpec describes one node type.
type NodeSpec struct {
	Name string

	// Content is a content expression, e.g. "block+" or "inline*".
	// Empty means the node is a leaf.
	Content string

	// Group is a space-separated list of groups the type belongs to.
	Group string

	Inline bool
	Atom   bool

	// Selectable defaults to true when nil.
	Selectable *bool

	// Marks lists allowed marks by name or group; "_" allows all and ""
	// allows none. Nil allows all marks in inline content and none elsewhere.
	Marks *string

	Attrs map[string]AttrSpec
}

// MarkSpec describes one mark type.
type MarkSpec struct {
	Name  string
	Group string
	Attrs map[string]AttrSpec
}

// Schema holds the node and mark types a document is built from and answers
// content-fit questions about them.
type Schema struct {
	Spec    SchemaSpec
	TopNode *NodeType

	nodes     map[string]*NodeType
	nodeOrder []*NodeType
	marks     map[string]*MarkType
	markOrder []*MarkType
}

// NewSchema compiles a schema spec.
func NewSchema(spec SchemaSpec) (*Schema, error) {
	s := &Schema{
		Spec:  spec,
		nodes: make(map[string]*NodeType, len(spec.Nodes)),
		marks: make(map[string]*MarkType, len(spec.Marks)),
	}

	for i, ms := range spec.Marks {
		if _, dup := s.marks[ms.Name]; dup || ms.Name == "" {
			return nil, fmt.Errorf("%w: duplicate or empty mark name %q", ErrInvalidSchema, ms.Name)
		}
		mt := &MarkType{Name: ms.Name, Schema: s, rank: i, attrs: ms.Attrs}
		s.marks[ms.Name] = mt
		s.markOrder = append(s.markOrder, mt)
	}

	for i, ns := range spec.Nodes {
		if _, dup := s.nodes[ns.Name]; dup || ns.Name == "" {
			return nil, fmt.Errorf("%w: duplicate or empty node name %q", ErrInvalidSchema, ns.Name)
		}
		nt := &NodeType{
			Name:       ns.Name,
			Schema:     s,
			Groups:     strings.Fields(ns.Group),
			Inline:     ns.Inline || ns.Name == "text",
			Atom:       ns.Atom,
			Selectable: ns.Selectable == nil || *ns.Selectable,
			isText:     ns.Name == "text",
			index:      i,
			attrs:      ns.Attrs,
		}
		s.nodes[ns.Name] = nt
		s.nodeOrder = append(s.nodeOrder, nt)
	}

	top := spec.TopNode
	if top == "" {
		top = "doc"
	}
	s.TopNode = s.nodes[top]
	if s.TopNode == nil {
		return nil, fmt.Errorf("%w: top node %q not defined", ErrInvalidSchema, top)
	}
	if s.nodes["text"] == nil {
		return nil, fmt.Errorf("%w: schema needs a text type", ErrInvalidSchema)
	}

	for i, ns := range spec.Nodes {
		nt := s.nodeOrder[i]
		expr, err := compileContent(s, ns.Content)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", ns.Name, err)
		}
		nt.content = expr
		if err := nt.resolveMarks(ns.Marks); err != nil {
			return nil, err
		}
		defaults, err := computeAttrs(nt.Name, nt.attrs, nil)
		if err == nil {
			nt.defaultAttrs = defaults
		}
	}
	return s, nil
}

// resolveName expands a type or group name to node types in schema order.
func (s *Schema) resolveName(name string) []*NodeType {
	if t, ok := s.nodes[name]; ok {
		return []*NodeType{t}
	}
	var out []*NodeType
	for _, t := range s.nodeOrder {
		if t.IsInGroup(name) {
			out = append(out, t)
		}
	}
	return out
}

// NodeType returns the named node type or nil.
func (s *Schema) NodeType(name string) *NodeType {
	return s.nodes[name]
}

// MarkType returns the named mark type or nil.
func (s *Schema) MarkType(name string) *MarkType {
	return s.marks[name]
}

// NodeTypes returns the node types in declaration order.
func (s *Schema) NodeTypes() []*NodeType {
	out := make([]*NodeType, len(s.nodeOrder))
	copy(out, s.nodeOrder)
	return out
}

// Node creates a validated node of the named type.
func (s *Schema) Node(name string, attrs Attrs, content Insertable, marks []*Mark) (*Node, error) {
	t := s.nodes[name]
	if t == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNodeType, name)
	}
	return t.CreateChecked(attrs, content, marks)
}

// Text creates a text node. It panics on empty text.
func (s *Schema) Text(text string, marks []*Mark) *Node {
	if text == "" {
		panic("model: empty text nodes are not allowed")
	}
	return &Node{
		typ:     s.nodes["text"],
		attrs:   Attrs{},
		content: EmptyFragment,
		marks:   marks,
		text:    text,
		textLen: utf8.RuneCountInString(text),
	}
}

// Mark creates a mark of the named type.
func (s *Schema) Mark(name string, attrs Attrs) (*Mark, error) {
	t := s.marks[name]
	if t == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMarkType, name)
	}
	return t.Create(attrs)
}

// NodeType is a kind of node defined by a schema.
type NodeType struct {
	Name       string
	Schema     *Schema
	Groups     []string
	Inline     bool
	Atom       bool
	Selectable bool

	isText       bool
	index        int
	content      *contentExpr
	attrs        map[string]AttrSpec
	defaultAttrs Attrs
	allMarks     bool
	markSet      map[*MarkType]bool
}

func (t *NodeType) resolveMarks(spec *string) error {
	if spec == nil {
		t.allMarks = t.InlineContent()
		return nil
	}
	if *spec == "_" {
		t.allMarks = true
		return nil
	}
	t.markSet = map[*MarkType]bool{}
	for _, name := range strings.Fields(*spec) {
		found := false
		for _, mt := range t.Schema.markOrder {
			if mt.Name == name || t.Schema.markInGroup(mt, name) {
				t.markSet[mt] = true
				found = true
			}
		}
		if !found {
			return fmt.Errorf("%w: node %s allows unknown mark %q", ErrInvalidSchema, t.Name, name)
		}
	}
	return nil
}

func (s *Schema) markInGroup(mt *MarkType, group string) bool {
	for _, ms := range s.Spec.Marks {
		if ms.Name == mt.Name {
			for _, g := range strings.Fields(ms.Group) {
				if g == group {
					return true
				}
			}
		}
	}
	return false
}

// String returns the type name.
func (t *NodeType) String() string { return t.Name }

// IsInGroup reports whether the type belongs to group.
func (t *NodeType) IsInGroup(group string) bool {
	for _, g := range t.Groups {
		if g == group {
			return true
		}
	}
	return false
}

// IsText reports whether this is the text type.
func (t *NodeType) IsText() bool { return t.isText }

// IsLeaf reports whether the type allows no content.
func (t *NodeType) IsLeaf() bool { return t.content.empty() }

// IsAtom reports whether nodes of this type are indivisible units.
func (t *NodeType) IsAtom() bool { return t.IsLeaf() || t.Atom }

// IsBlock reports whether the type is a block type.
func (t *NodeType) IsBlock() bool { return !t.Inline }

// InlineContent reports whether the type holds inline content.
func (t *NodeType) InlineContent() bool { return t.content.inline() }

// IsTextblock reports whether the type is a block holding inline content.
func (t *NodeType) IsTextblock() bool { return !t.Inline && t.InlineContent() }

// ContentExpr returns the source content expression.
func (t *NodeType) ContentExpr() string { return t.content.source }

// AllowsMarkType reports whether children of this type may carry mt.
func (t *NodeType) AllowsMarkType(mt *MarkType) bool {
	return t.allMarks || t.markSet[mt]
}

// AllowsMarks reports whether children of this type may carry all of marks.
func (t *NodeType) AllowsMarks(marks []*Mark) bool {
	for _, m := range marks {
		if !t.AllowsMarkType(m.Type) {
			return false
		}
	}
	return true
}

// ValidContent reports whether content satisfies the type's content rules.
func (t *NodeType) ValidContent(content *Fragment) bool {
	kinds := make([]*NodeType, content.ChildCount())
	for i := range kinds {
		child := content.Child(i)
		kinds[i] = child.typ
		if !t.AllowsMarks(child.marks) {
			return false
		}
	}
	return t.content.matches(kinds)
}

// ComputeAttrs fills defaults for attrs and drops names the type does not declare.
func (t *NodeType) ComputeAttrs(attrs Attrs) (Attrs, error) {
	if attrs == nil && t.defaultAttrs != nil {
		return t.defaultAttrs, nil
	}
	return computeAttrs(t.Name, t.attrs, attrs)
}

// Create builds a node without validating its content.
func (t *NodeType) Create(attrs Attrs, content Insertable, marks []*Mark) (*Node, error) {
	if t.isText {
		return nil, fmt.Errorf("%w: use Schema.Text for text nodes", ErrInvalidContent)
	}
	computed, err := t.ComputeAttrs(attrs)
	if err != nil {
		return nil, err
	}
	frag := EmptyFragment
	if content != nil {
		if f := content.Fragment(); f != nil {
			frag = f
		}
	}
	return &Node{typ: t, attrs: computed, content: frag, marks: marks}, nil
}

// CreateChecked builds a node and fails with ErrInvalidContent when content
// does not fit the type.
func (t *NodeType) CreateChecked(attrs Attrs, content Insertable, marks []*Mark) (*Node, error) {
	n, err := t.Create(attrs, content, marks)
	if err != nil {
		return nil, err
	}
	if !t.ValidContent(n.content) {
		return nil, &ContentError{Type: t.Name, Content: n.content.String()}
	}
	return n, nil
}
