package model_test

import (
	"errors"
	"testing"

	"github.com/dshills/nodeedit/internal/engine/model"
)

func miniSpec(nodes ...model.NodeSpec) model.SchemaSpec {
	base := []model.NodeSpec{
		{Name: "doc", Content: "block+"},
		{Name: "text", Group: "inline"},
	}
	return model.SchemaSpec{Nodes: append(base, nodes...)}
}

func TestNewSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		spec model.SchemaSpec
	}{
		{"unknown name in content", miniSpec(model.NodeSpec{Name: "p", Content: "nothing*", Group: "block"})},
		{"unbalanced parens", miniSpec(model.NodeSpec{Name: "p", Content: "(inline*", Group: "block"})},
		{"dangling alternative", miniSpec(model.NodeSpec{Name: "p", Content: "inline |", Group: "block"})},
		{"duplicate node", miniSpec(model.NodeSpec{Name: "text"})},
		{"missing top node", model.SchemaSpec{TopNode: "root", Nodes: []model.NodeSpec{{Name: "text"}}}},
		{"missing text type", model.SchemaSpec{Nodes: []model.NodeSpec{{Name: "doc"}}}},
		{"unknown mark", miniSpec(model.NodeSpec{Name: "p", Content: "inline*", Group: "block", Marks: ptr("bold")})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.NewSchema(tt.spec)
			if !errors.Is(err, model.ErrInvalidSchema) {
				t.Errorf("err = %v, want ErrInvalidSchema", err)
			}
		})
	}
}

func ptr(s string) *string { return &s }

func TestContentExpressions(t *testing.T) {
	s, err := model.NewSchema(miniSpec(
		model.NodeSpec{Name: "para", Content: "inline*", Group: "block"},
		model.NodeSpec{Name: "rule", Group: "block"},
		model.NodeSpec{Name: "figure", Content: "rule? para (para | rule)+", Group: "block"},
	))
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	para := func() *model.Node {
		n, err := s.Node("para", nil, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		return n
	}
	rule := func() *model.Node {
		n, err := s.Node("rule", nil, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		return n
	}
	figure := s.NodeType("figure")

	tests := []struct {
		name    string
		content []*model.Node
		want    bool
	}{
		{"minimal", []*model.Node{para(), para()}, true},
		{"leading rule", []*model.Node{rule(), para(), rule()}, true},
		{"long tail", []*model.Node{para(), rule(), para(), rule()}, true},
		{"two leading rules", []*model.Node{rule(), rule(), para(), para()}, false},
		{"missing tail", []*model.Node{para()}, false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := figure.ValidContent(model.FragmentFromArray(tt.content)); got != tt.want {
				t.Errorf("ValidContent = %v, want %v", got, tt.want)
			}
		})
	}

	if !figure.IsBlock() || figure.IsTextblock() || figure.IsLeaf() {
		t.Error("figure classified wrongly")
	}
	if !s.NodeType("para").IsTextblock() || !s.NodeType("rule").IsAtom() {
		t.Error("para or rule classified wrongly")
	}
	if got := figure.ContentExpr(); got != "rule? para (para | rule)+" {
		t.Errorf("ContentExpr = %q", got)
	}
}

func TestDefaultSchemaTypes(t *testing.T) {
	tests := []struct {
		name                              string
		block, textblock, leaf, atom, sel bool
	}{
		{"paragraph", true, true, false, false, true},
		{"code_block", true, true, false, false, true},
		{"horizontal_rule", true, false, true, true, true},
		{"table", true, false, false, false, true},
		{"image", false, false, true, true, true},
		{"mention", false, false, true, true, true},
		{"hard_break", false, false, true, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nt := schema.NodeType(tt.name)
			got := []bool{nt.IsBlock(), nt.IsTextblock(), nt.IsLeaf(), nt.IsAtom(), nt.Selectable}
			want := []bool{tt.block, tt.textblock, tt.leaf, tt.atom, tt.sel}
			for i := range got {
				if got[i] != want[i] {
					t.Errorf("%s flags = %v, want %v", tt.name, got, want)
					break
				}
			}
		})
	}
	if schema.NodeType("list_item").IsInGroup("block") {
		t.Error("list_item is in the block group")
	}
	if len(schema.NodeTypes()) != 17 {
		t.Errorf("NodeTypes = %d, want 17", len(schema.NodeTypes()))
	}
}
