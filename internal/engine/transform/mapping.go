package transform

import "fmt"

// MapRange is one changed region of a StepMap: OldSize positions starting at
// Start were replaced by NewSize positions.
type MapRange struct {
	Start   int
	OldSize int
	NewSize int
}

// StepMap describes the positions changed by one step.
// Ranges are sorted by Start and expressed in the pre-step document.
type StepMap struct {
	Ranges []MapRange
}

// EmptyMap is the identity map.
var EmptyMap = StepMap{}

// MapPos maps pos through the step.
//
// Mapping rules:
//   - Positions before a changed range are unchanged.
//   - Positions after it shift by the range's size delta.
//   - Positions inside a replaced range move to its start (assoc < 0) or to
//     the end of the new content (assoc > 0) and are reported deleted.
//   - At a pure insertion point, assoc chooses the side.
func (m StepMap) MapPos(pos, assoc int) (int, bool) {
	diff := 0
	for _, r := range m.Ranges {
		if r.Start > pos {
			break
		}
		end := r.Start + r.OldSize
		if pos <= end {
			side := assoc
			if r.OldSize > 0 {
				if pos == r.Start {
					side = -1
				} else if pos == end {
					side = 1
				}
			}
			result := r.Start + diff
			if side >= 0 {
				result += r.NewSize
			}
			deleted := false
			if r.OldSize > 0 {
				if assoc < 0 {
					deleted = pos != r.Start
				} else {
					deleted = pos != end
				}
			}
			return result, deleted
		}
		diff += r.NewSize - r.OldSize
	}
	return pos + diff, false
}

// Map maps pos through the step, discarding the deleted flag.
func (m StepMap) Map(pos, assoc int) int {
	p, _ := m.MapPos(pos, assoc)
	return p
}

// String returns a string representation of the map.
func (m StepMap) String() string {
	return fmt.Sprintf("StepMap%v", m.Ranges)
}

// Mapping is a sequence of step maps applied in order.
type Mapping struct {
	Maps []StepMap
}

// MapPos maps pos through every step map in order. The position counts as
// deleted when any map deleted it.
func (m Mapping) MapPos(pos, assoc int) (int, bool) {
	deleted := false
	for _, sm := range m.Maps {
		var del bool
		pos, del = sm.MapPos(pos, assoc)
		deleted = deleted || del
	}
	return pos, deleted
}

// Map maps pos through every step map in order.
func (m Mapping) Map(pos, assoc int) int {
	p, _ := m.MapPos(pos, assoc)
	return p
}

// Slice returns the mapping covering maps [from, to).
func (m Mapping) Slice(from, to int) Mapping {
	return Mapping{Maps: m.Maps[from:to:to]}
}
