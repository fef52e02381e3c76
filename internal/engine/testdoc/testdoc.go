// Package testdoc builds documents for tests from a compact notation.
//
// Text arguments may contain tags such as "<cursor>" or "<node>"; the
// builder strips them and records their document positions:
//
//	b := testdoc.New(schema)
//	d := b.Doc(b.P("hello <cursor>world"))
//	d.Tags["cursor"] // 7
package testdoc

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/dshills/nodeedit/internal/engine/model"
)

var tagRe = regexp.MustCompile(`<(\w+)>`)

// Tagged is a built node, or a run of marked inline nodes, with the tag
// positions found inside it. Tags of a node are relative to the start of its
// content; tags of a mark run are relative to the run's start.
type Tagged struct {
	Node  *model.Node
	Nodes []*model.Node
	Tags  map[string]int
}

// Builder creates nodes of one schema. Construction errors panic, which fails
// the calling test.
type Builder struct {
	Schema *model.Schema
}

// New creates a builder for schema.
func New(schema *model.Schema) *Builder {
	return &Builder{Schema: schema}
}

// Node builds a node of the named type with validated content.
func (b *Builder) Node(name string, attrs model.Attrs, children ...any) *Tagged {
	nodes, tags := b.flatten(children)
	n, err := b.Schema.Node(name, attrs, model.FragmentFromArray(nodes), nil)
	if err != nil {
		panic(fmt.Sprintf("testdoc: building %s: %v", name, err))
	}
	return &Tagged{Node: n, Tags: tags}
}

// Mark applies the named mark to every inline node built from children.
func (b *Builder) Mark(name string, attrs model.Attrs, children ...any) *Tagged {
	mark, err := b.Schema.Mark(name, attrs)
	if err != nil {
		panic(fmt.Sprintf("testdoc: building mark %s: %v", name, err))
	}
	nodes, tags := b.flatten(children)
	for i, n := range nodes {
		nodes[i] = n.Mark(mark.AddToSet(n.Marks()))
	}
	return &Tagged{Nodes: nodes, Tags: tags}
}

func (b *Builder) flatten(children []any) ([]*model.Node, map[string]int) {
	var nodes []*model.Node
	tags := map[string]int{}
	pos := 0
	for _, child := range children {
		switch c := child.(type) {
		case string:
			last := 0
			for _, m := range tagRe.FindAllStringSubmatchIndex(c, -1) {
				if text := c[last:m[0]]; text != "" {
					nodes = append(nodes, b.Schema.Text(text, nil))
					pos += utf8.RuneCountInString(text)
				}
				tags[c[m[2]:m[3]]] = pos
				last = m[1]
			}
			if text := c[last:]; text != "" {
				nodes = append(nodes, b.Schema.Text(text, nil))
				pos += utf8.RuneCountInString(text)
			}
		case *Tagged:
			if c.Node != nil {
				for name, off := range c.Tags {
					tags[name] = pos + 1 + off
				}
				nodes = append(nodes, c.Node)
				pos += c.Node.NodeSize()
				continue
			}
			for name, off := range c.Tags {
				tags[name] = pos + off
			}
			for _, n := range c.Nodes {
				nodes = append(nodes, n)
				pos += n.NodeSize()
			}
		case *model.Node:
			nodes = append(nodes, c)
			pos += c.NodeSize()
		default:
			panic(fmt.Sprintf("testdoc: unsupported child %T", child))
		}
	}
	return nodes, tags
}

// Doc builds the top node. Its tags are absolute document positions.
func (b *Builder) Doc(children ...any) *Tagged {
	return b.Node(b.Schema.TopNode.Name, nil, children...)
}

// P builds a paragraph.
func (b *Builder) P(children ...any) *Tagged { return b.Node("paragraph", nil, children...) }

// Blockquote builds a blockquote.
func (b *Builder) Blockquote(children ...any) *Tagged { return b.Node("blockquote", nil, children...) }

// H builds a heading of the given level.
func (b *Builder) H(level int, children ...any) *Tagged {
	return b.Node("heading", model.Attrs{"level": level}, children...)
}

// HR builds a horizontal rule.
func (b *Builder) HR() *Tagged { return b.Node("horizontal_rule", nil) }

// Code builds a code block.
func (b *Builder) Code(children ...any) *Tagged { return b.Node("code_block", nil, children...) }

// UL builds a bullet list.
func (b *Builder) UL(children ...any) *Tagged { return b.Node("bullet_list", nil, children...) }

// OL builds an ordered list.
func (b *Builder) OL(children ...any) *Tagged { return b.Node("ordered_list", nil, children...) }

// LI builds a list item.
func (b *Builder) LI(children ...any) *Tagged { return b.Node("list_item", nil, children...) }

// Table builds a table.
func (b *Builder) Table(children ...any) *Tagged { return b.Node("table", nil, children...) }

// TR builds a table row.
func (b *Builder) TR(children ...any) *Tagged { return b.Node("table_row", nil, children...) }

// TD builds a table cell.
func (b *Builder) TD(children ...any) *Tagged { return b.Node("table_cell", nil, children...) }

// TH builds a table header cell.
func (b *Builder) TH(children ...any) *Tagged { return b.Node("table_header", nil, children...) }

// EmptyTD builds a table cell holding one empty paragraph.
func (b *Builder) EmptyTD() *Tagged { return b.TD(b.P()) }

// Img builds an inline image.
func (b *Builder) Img(src string) *Tagged { return b.Node("image", model.Attrs{"src": src}) }

// Mention builds an inline atom mention.
func (b *Builder) Mention(id string) *Tagged { return b.Node("mention", model.Attrs{"id": id}) }

// BR builds a hard break.
func (b *Builder) BR() *Tagged { return b.Node("hard_break", nil) }

// Strong wraps children in the strong mark.
func (b *Builder) Strong(children ...any) *Tagged { return b.Mark("strong", nil, children...) }

// Em wraps children in the em mark.
func (b *Builder) Em(children ...any) *Tagged { return b.Mark("em", nil, children...) }

// Link wraps children in a link mark.
func (b *Builder) Link(href string, children ...any) *Tagged {
	return b.Mark("link", model.Attrs{"href": href}, children...)
}
