package transform

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStepMapMapPos(t *testing.T) {
	// Replace 3 positions at 5 with 1.
	m := StepMap{Ranges: []MapRange{{Start: 5, OldSize: 3, NewSize: 1}}}

	tests := []struct {
		name        string
		pos, assoc  int
		want        int
		wantDeleted bool
	}{
		{"before", 2, 1, 2, false},
		{"at start", 5, -1, 5, false},
		{"inside, assoc right", 6, 1, 6, true},
		{"inside, assoc left", 6, -1, 5, true},
		{"at end", 8, 1, 6, false},
		{"after", 10, 1, 8, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, deleted := m.MapPos(tt.pos, tt.assoc)
			if got != tt.want || deleted != tt.wantDeleted {
				t.Errorf("MapPos(%d, %d) = (%d, %v), want (%d, %v)", tt.pos, tt.assoc, got, deleted, tt.want, tt.wantDeleted)
			}
		})
	}
}

func TestStepMapInsertion(t *testing.T) {
	m := StepMap{Ranges: []MapRange{{Start: 4, NewSize: 2}}}
	if got := m.Map(4, -1); got != 4 {
		t.Errorf("Map(4, -1) = %d, want 4", got)
	}
	if got := m.Map(4, 1); got != 6 {
		t.Errorf("Map(4, 1) = %d, want 6", got)
	}
	if got := EmptyMap.Map(7, 1); got != 7 {
		t.Errorf("EmptyMap.Map(7) = %d", got)
	}
}

func TestMapping(t *testing.T) {
	m := Mapping{Maps: []StepMap{
		{Ranges: []MapRange{{Start: 0, NewSize: 3}}},
		{Ranges: []MapRange{{Start: 10, OldSize: 4}}},
	}}
	got := []int{m.Map(0, 1), m.Map(5, 1), m.Map(8, 1), m.Map(12, 1)}
	want := []int{3, 8, 10, 11}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Map mismatch (-want +got):\n%s", diff)
	}
	if _, deleted := m.MapPos(8, 1); !deleted {
		t.Error("position inside a deleted range not reported deleted")
	}
	if got := m.Slice(1, 2).Map(5, 1); got != 5 {
		t.Errorf("Slice(1, 2).Map(5) = %d, want 5", got)
	}
}
