package treeops

import (
	"github.com/sirupsen/logrus"

	"github.com/dshills/nodeedit/internal/engine/model"
	"github.com/dshills/nodeedit/internal/engine/transform"
)

type markupConfig struct {
	typ          *model.NodeType
	attrs        model.Attrs
	replaceAttrs bool
	marks        []*model.Mark
	replaceMarks bool
}

// MarkupOption configures SetParentNodeMarkup.
type MarkupOption func(*markupConfig)

// WithType changes the node's type. Attributes the new type does not
// declare are dropped and missing ones take their defaults.
func WithType(t *model.NodeType) MarkupOption {
	return func(c *markupConfig) {
		c.typ = t
	}
}

// WithAttrs merges attrs over the node's current attributes.
func WithAttrs(attrs model.Attrs) MarkupOption {
	return func(c *markupConfig) {
		c.attrs = c.attrs.Merge(attrs)
		c.replaceAttrs = false
	}
}

// WithReplacedAttrs replaces the node's attributes with attrs.
func WithReplacedAttrs(attrs model.Attrs) MarkupOption {
	return func(c *markupConfig) {
		c.attrs = attrs
		c.replaceAttrs = true
	}
}

// WithMarks adds marks to the node's mark set.
func WithMarks(marks ...*model.Mark) MarkupOption {
	return func(c *markupConfig) {
		c.marks = append(c.marks, marks...)
		c.replaceMarks = false
	}
}

// WithReplacedMarks replaces the node's marks with marks.
func WithReplacedMarks(marks ...*model.Mark) MarkupOption {
	return func(c *markupConfig) {
		c.marks = marks
		c.replaceMarks = true
	}
}

// SetParentNodeMarkup restyles the closest ancestor of the selection start
// matching pred, keeping its children. Without options the node is rebuilt
// with its current markup.
func SetParentNodeMarkup(tr *transform.Transaction, pred Predicate, opts ...MarkupOption) *transform.Transaction {
	const op = "SetParentNodeMarkup"
	parent, ok := FindParentNode(tr.Selection(), pred)
	if !ok {
		return noop(tr, op, "no matching ancestor")
	}
	var cfg markupConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	attrs := parent.Node.Attrs()
	switch {
	case cfg.replaceAttrs:
		attrs = cfg.attrs
	case cfg.attrs != nil:
		attrs = attrs.Merge(cfg.attrs)
	}
	marks := parent.Node.Marks()
	if cfg.replaceMarks {
		marks = cfg.marks
	} else {
		for _, m := range cfg.marks {
			marks = m.AddToSet(marks)
		}
	}

	next, err := tr.SetNodeMarkup(parent.Pos, cfg.typ, attrs, marks)
	if err != nil {
		return noop(tr, op, err.Error())
	}
	return applied(next, op, logrus.Fields{
		"kind": parent.Node.Kind(),
		"to":   next.Doc().NodeAt(parent.Pos).Kind(),
		"from": parent.Pos,
	})
}
