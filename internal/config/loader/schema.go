package loader

import (
	"fmt"
	"math"

	"github.com/dshills/nodeedit/internal/engine/model"
)

// DecodeSchemaSpec converts a parsed schema file into a model.SchemaSpec.
//
// The expected shape is:
//
//	top_node = "doc"
//	[[nodes]]
//	name = "heading"
//	content = "inline*"
//	group = "block"
//	[nodes.attrs.level]
//	default = 1
//	[[marks]]
//	name = "strong"
//
// All problems found are reported together as *ValidationErrors.
func DecodeSchemaSpec(raw map[string]any) (model.SchemaSpec, error) {
	var spec model.SchemaSpec
	errs := &ValidationErrors{}

	if v, ok := raw["top_node"]; ok {
		s, ok := v.(string)
		if !ok {
			errs.AddWithValue("top_node", "expected string", v)
		}
		spec.TopNode = s
	}

	for i, item := range listOf(errs, raw, "nodes") {
		path := fmt.Sprintf("nodes.%d", i)
		m, ok := item.(map[string]any)
		if !ok {
			errs.AddWithValue(path, "expected table", item)
			continue
		}
		ns := model.NodeSpec{
			Name:    stringField(errs, path, m, "name", true),
			Content: stringField(errs, path, m, "content", false),
			Group:   stringField(errs, path, m, "group", false),
			Inline:  boolField(errs, path, m, "inline"),
			Atom:    boolField(errs, path, m, "atom"),
			Attrs:   attrsField(errs, path, m),
		}
		if _, ok := m["selectable"]; ok {
			sel := boolField(errs, path, m, "selectable")
			ns.Selectable = &sel
		}
		if _, ok := m["marks"]; ok {
			marks := stringField(errs, path, m, "marks", false)
			ns.Marks = &marks
		}
		spec.Nodes = append(spec.Nodes, ns)
	}

	for i, item := range listOf(errs, raw, "marks") {
		path := fmt.Sprintf("marks.%d", i)
		m, ok := item.(map[string]any)
		if !ok {
			errs.AddWithValue(path, "expected table", item)
			continue
		}
		spec.Marks = append(spec.Marks, model.MarkSpec{
			Name:  stringField(errs, path, m, "name", true),
			Group: stringField(errs, path, m, "group", false),
			Attrs: attrsField(errs, path, m),
		})
	}

	if len(spec.Nodes) == 0 {
		errs.Add("nodes", "at least one node type is required")
	}
	return spec, errs.AsError()
}

func listOf(errs *ValidationErrors, raw map[string]any, key string) []any {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []any:
		return list
	case []map[string]any:
		out := make([]any, len(list))
		for i, m := range list {
			out[i] = m
		}
		return out
	default:
		errs.AddWithValue(key, "expected array", v)
		return nil
	}
}

func stringField(errs *ValidationErrors, path string, m map[string]any, key string, required bool) string {
	v, ok := m[key]
	if !ok {
		if required {
			errs.Add(path+"."+key, "required")
		}
		return ""
	}
	s, ok := v.(string)
	if !ok {
		errs.AddWithValue(path+"."+key, "expected string", v)
	}
	return s
}

func boolField(errs *ValidationErrors, path string, m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		errs.AddWithValue(path+"."+key, "expected boolean", v)
	}
	return b
}

func attrsField(errs *ValidationErrors, path string, m map[string]any) map[string]model.AttrSpec {
	v, ok := m["attrs"]
	if !ok {
		return nil
	}
	table, ok := v.(map[string]any)
	if !ok {
		errs.AddWithValue(path+".attrs", "expected table", v)
		return nil
	}
	out := make(map[string]model.AttrSpec, len(table))
	for name, def := range table {
		spec := model.AttrSpec{}
		switch d := def.(type) {
		case map[string]any:
			if dv, ok := d["default"]; ok {
				spec.Default = normalizeValue(dv)
				spec.HasDefault = true
			}
		case nil:
		default:
			errs.AddWithValue(path+".attrs."+name, "expected table", def)
			continue
		}
		out[name] = spec
	}
	return out
}

// normalizeValue maps the numeric types produced by the different decoders
// onto int where the value is integral, so every format yields equal specs.
func normalizeValue(v any) any {
	switch n := v.(type) {
	case int64:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < math.MaxInt32 {
			return int(n)
		}
		return n
	default:
		return v
	}
}
