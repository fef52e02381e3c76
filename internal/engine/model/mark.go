package model

import "sort"

// MarkType is a kind of inline mark defined by a schema.
type MarkType struct {
	Name   string
	Schema *Schema

	rank  int
	attrs map[string]AttrSpec
}

// Create builds a mark of this type.
func (t *MarkType) Create(attrs Attrs) (*Mark, error) {
	computed, err := computeAttrs(t.Name, t.attrs, attrs)
	if err != nil {
		return nil, err
	}
	return &Mark{Type: t, Attrs: computed}, nil
}

// Mark is a piece of inline styling attached to a node.
type Mark struct {
	Type  *MarkType
	Attrs Attrs
}

// Eq reports whether two marks have the same type and attributes.
func (m *Mark) Eq(other *Mark) bool {
	return m == other || (m.Type == other.Type && m.Attrs.Eq(other.Attrs))
}

// AddToSet returns a copy of set with m added in rank order.
// A mark of the same type already in the set is replaced.
func (m *Mark) AddToSet(set []*Mark) []*Mark {
	out := make([]*Mark, 0, len(set)+1)
	for _, other := range set {
		if other.Type != m.Type {
			out = append(out, other)
		}
	}
	out = append(out, m)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Type.rank < out[j].Type.rank })
	return out
}

// RemoveFromSet returns a copy of set without marks equal to m.
func (m *Mark) RemoveFromSet(set []*Mark) []*Mark {
	out := make([]*Mark, 0, len(set))
	for _, other := range set {
		if !m.Eq(other) {
			out = append(out, other)
		}
	}
	return out
}

// IsInSet reports whether set contains a mark equal to m.
func (m *Mark) IsInSet(set []*Mark) bool {
	for _, other := range set {
		if m.Eq(other) {
			return true
		}
	}
	return false
}

// IsInSet reports whether set contains a mark of this type.
func (t *MarkType) IsInSet(set []*Mark) *Mark {
	for _, m := range set {
		if m.Type == t {
			return m
		}
	}
	return nil
}

// SameMarkSet reports whether two mark sets are equal.
func SameMarkSet(a, b []*Mark) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Eq(b[i]) {
			return false
		}
	}
	return true
}
