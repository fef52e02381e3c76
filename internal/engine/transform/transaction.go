package transform

import (
	"slices"

	"github.com/google/uuid"

	"github.com/dshills/nodeedit/internal/engine/model"
	"github.com/dshills/nodeedit/internal/engine/selection"
)

// Transaction is a copy-on-write edit over a document and its selection.
//
// A Transaction is never modified after construction. Editing methods return
// a new Transaction with the step applied to the document and the selection
// mapped through it. On failure they return the receiver itself.
type Transaction struct {
	id      uuid.UUID
	before  *model.Node
	doc     *model.Node
	sel     selection.Selection
	steps   []Step
	docs    []*model.Node
	mapping Mapping
}

// Option configures a Transaction during creation.
type Option func(*Transaction)

// WithSelection sets the initial selection. It must belong to the document.
func WithSelection(sel selection.Selection) Option {
	return func(tr *Transaction) {
		if sel != nil {
			tr.sel = sel
		}
	}
}

// WithID sets the session ID shared by the transaction and its successors.
func WithID(id uuid.UUID) Option {
	return func(tr *Transaction) {
		tr.id = id
	}
}

// New starts a transaction over doc. Without WithSelection the selection is
// the first valid position in the document.
func New(doc *model.Node, opts ...Option) *Transaction {
	tr := &Transaction{
		id:     uuid.New(),
		before: doc,
		doc:    doc,
	}
	for _, opt := range opts {
		opt(tr)
	}
	if tr.sel == nil {
		tr.sel = selection.AtStart(doc)
	}
	return tr
}

// ID returns the session ID. Transactions derived from one another share it.
func (tr *Transaction) ID() uuid.UUID { return tr.id }

// Doc returns the current document.
func (tr *Transaction) Doc() *model.Node { return tr.doc }

// Before returns the document the transaction started from.
func (tr *Transaction) Before() *model.Node { return tr.before }

// Selection returns the current selection.
func (tr *Transaction) Selection() selection.Selection { return tr.sel }

// Steps returns a copy of the applied steps.
func (tr *Transaction) Steps() []Step { return slices.Clone(tr.steps) }

// Docs returns the document before each step.
func (tr *Transaction) Docs() []*model.Node { return slices.Clone(tr.docs) }

// Mapping returns the combined mapping of all steps.
func (tr *Transaction) Mapping() Mapping { return tr.mapping }

// DocChanged reports whether any step has been applied.
func (tr *Transaction) DocChanged() bool { return len(tr.steps) > 0 }

// clone copies tr with slices clipped so appends never share storage with
// the receiver.
func (tr *Transaction) clone() *Transaction {
	next := *tr
	next.steps = slices.Clip(tr.steps)
	next.docs = slices.Clip(tr.docs)
	next.mapping = Mapping{Maps: slices.Clip(tr.mapping.Maps)}
	return &next
}

// Step applies step and returns the resulting transaction. On failure the
// receiver is returned with a *StepError.
func (tr *Transaction) Step(step Step) (*Transaction, error) {
	doc, err := step.Apply(tr.doc)
	if err != nil {
		return tr, err
	}
	stepMap := step.GetMap()
	next := tr.clone()
	next.steps = append(next.steps, step)
	next.docs = append(next.docs, tr.doc)
	next.mapping.Maps = append(next.mapping.Maps, stepMap)
	next.doc = doc
	next.sel = tr.sel.Map(doc, stepMap)
	return next, nil
}

// Delete removes [from, to).
func (tr *Transaction) Delete(from, to int) (*Transaction, error) {
	if from == to {
		return tr, nil
	}
	return tr.Step(NewReplaceStep(from, to, model.EmptyFragment))
}

// Insert places content at pos.
func (tr *Transaction) Insert(pos int, content model.Insertable) (*Transaction, error) {
	return tr.ReplaceWith(pos, pos, content)
}

// ReplaceWith replaces [from, to) with content.
func (tr *Transaction) ReplaceWith(from, to int, content model.Insertable) (*Transaction, error) {
	frag := content.Fragment()
	if from == to && frag.Size() == 0 {
		return tr, nil
	}
	return tr.Step(NewReplaceStep(from, to, frag))
}

// SetNodeMarkup changes the type, attributes and marks of the node at pos.
// A nil t keeps the node's type.
func (tr *Transaction) SetNodeMarkup(pos int, t *model.NodeType, attrs model.Attrs, marks []*model.Mark) (*Transaction, error) {
	if t == nil {
		if pos < 0 || pos >= tr.doc.Content().Size() {
			return tr, fail(&SetMarkupStep{Pos: pos}, "position %d outside document", pos)
		}
		node := tr.doc.NodeAt(pos)
		if node == nil {
			return tr, fail(&SetMarkupStep{Pos: pos}, "no node at %d", pos)
		}
		t = node.Type()
	}
	return tr.Step(&SetMarkupStep{Pos: pos, Type: t, Attrs: attrs, Marks: marks})
}

// SetSelection returns a transaction with sel as its selection.
func (tr *Transaction) SetSelection(sel selection.Selection) *Transaction {
	next := tr.clone()
	next.sel = sel
	return next
}
