package model

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Attrs maps attribute names to values.
// Attrs values attached to nodes are never modified in place.
type Attrs map[string]any

// Merge returns a new Attrs with other's values laid over a's.
func (a Attrs) Merge(other Attrs) Attrs {
	out := make(Attrs, len(a)+len(other))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Eq reports whether both attribute sets hold the same keys and values.
func (a Attrs) Eq(other Attrs) bool {
	if len(a) != len(other) {
		return false
	}
	for k, v := range a {
		ov, ok := other[k]
		if !ok || !reflect.DeepEqual(v, ov) {
			return false
		}
	}
	return true
}

// String renders the attributes with keys in sorted order.
func (a Attrs) String() string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, a[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// AttrSpec describes a single attribute of a node or mark type.
type AttrSpec struct {
	Default    any
	HasDefault bool
}

// computeAttrs fills defaults and drops attributes the type does not declare.
func computeAttrs(typeName string, specs map[string]AttrSpec, given Attrs) (Attrs, error) {
	out := make(Attrs, len(specs))
	for name, spec := range specs {
		if v, ok := given[name]; ok {
			out[name] = v
			continue
		}
		if !spec.HasDefault {
			return nil, fmt.Errorf("%w: %s on %s", ErrMissingAttr, name, typeName)
		}
		out[name] = spec.Default
	}
	return out, nil
}
