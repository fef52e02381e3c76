package transform

import (
	"fmt"

	"github.com/dshills/nodeedit/internal/engine/model"
)

// Step is an atomic change to a document. A step only makes sense for the
// document it was created against, since its positions refer to that
// document.
type Step interface {
	// Apply returns the document with the step applied, or a *StepError.
	Apply(doc *model.Node) (*model.Node, error)
	// GetMap returns the positions changed by the step.
	GetMap() StepMap
	String() string
}

// ReplaceStep replaces [From, To) with Content. Both ends must lie in the
// same parent node and Content is inserted as complete nodes.
type ReplaceStep struct {
	From    int
	To      int
	Content *model.Fragment
}

// NewReplaceStep creates a replace step.
func NewReplaceStep(from, to int, content *model.Fragment) *ReplaceStep {
	if content == nil {
		content = model.EmptyFragment
	}
	return &ReplaceStep{From: from, To: to, Content: content}
}

// Apply implements Step.
func (s *ReplaceStep) Apply(doc *model.Node) (*model.Node, error) {
	if s.From < 0 || s.To < s.From || s.To > doc.Content().Size() {
		return nil, fail(s, "range [%d:%d] outside document of size %d", s.From, s.To, doc.Content().Size())
	}
	from := doc.Resolve(s.From)
	to := doc.Resolve(s.To)
	depth := from.Depth()
	if to.Depth() != depth || to.Start(depth) != from.Start(depth) {
		return nil, fail(s, "range spans more than one parent")
	}
	parent := from.Parent()
	start := from.Start(depth)
	old := parent.Content()
	content := old.Cut(0, s.From-start).Append(s.Content).Append(old.Cut(s.To-start, old.Size()))
	if !parent.Type().ValidContent(content) {
		return nil, fail(s, "invalid content for %s: %s", parent.Kind(), content)
	}
	return replaceAt(from, depth, parent.Copy(content)), nil
}

// GetMap implements Step.
func (s *ReplaceStep) GetMap() StepMap {
	if s.From == s.To && s.Content.Size() == 0 {
		return EmptyMap
	}
	return StepMap{Ranges: []MapRange{{Start: s.From, OldSize: s.To - s.From, NewSize: s.Content.Size()}}}
}

// String returns a string representation of the step.
func (s *ReplaceStep) String() string {
	switch {
	case s.From == s.To:
		return fmt.Sprintf("Insert(%d, %s)", s.From, s.Content)
	case s.Content.Size() == 0:
		return fmt.Sprintf("Delete[%d:%d]", s.From, s.To)
	default:
		return fmt.Sprintf("Replace[%d:%d] with %s", s.From, s.To, s.Content)
	}
}

// SetMarkupStep rebuilds the node at Pos with a new type, attributes and
// marks. The node's children are kept as they are.
type SetMarkupStep struct {
	Pos   int
	Type  *model.NodeType
	Attrs model.Attrs
	Marks []*model.Mark
}

// Apply implements Step.
func (s *SetMarkupStep) Apply(doc *model.Node) (*model.Node, error) {
	if s.Pos < 0 || s.Pos >= doc.Content().Size() {
		return nil, fail(s, "position %d outside document", s.Pos)
	}
	node := doc.NodeAt(s.Pos)
	if node == nil || node.IsText() {
		return nil, fail(s, "no node at %d", s.Pos)
	}
	if node.IsLeaf() != s.Type.IsLeaf() {
		return nil, fail(s, "cannot turn %s into %s", node.Kind(), s.Type.Name)
	}
	updated, err := s.Type.CreateChecked(s.Attrs, node.Content(), s.Marks)
	if err != nil {
		return nil, fail(s, "%v", err)
	}
	rp := doc.Resolve(s.Pos)
	depth := rp.Depth()
	parent := rp.Parent()
	index := rp.Index(depth)
	if !parent.CanReplaceWith(index, index+1, s.Type) || !parent.Type().AllowsMarks(s.Marks) {
		return nil, fail(s, "%s not allowed in %s", s.Type.Name, parent.Kind())
	}
	return replaceAt(rp, depth, parent.Copy(parent.Content().ReplaceChild(index, updated))), nil
}

// GetMap implements Step. Positions are unchanged.
func (s *SetMarkupStep) GetMap() StepMap {
	return EmptyMap
}

// String returns a string representation of the step.
func (s *SetMarkupStep) String() string {
	if s.Type == nil {
		return fmt.Sprintf("SetMarkup(%d)", s.Pos)
	}
	return fmt.Sprintf("SetMarkup(%d, %s%s)", s.Pos, s.Type.Name, s.Attrs)
}

// replaceAt rebuilds the ancestors of rp above depth around node, sharing
// every untouched subtree.
func replaceAt(rp *model.ResolvedPos, depth int, node *model.Node) *model.Node {
	for d := depth; d > 0; d-- {
		parent := rp.Node(d - 1)
		node = parent.Copy(parent.Content().ReplaceChild(rp.Index(d-1), node))
	}
	return node
}
