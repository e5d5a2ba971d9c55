package summary

import (
	"math"

	"github.com/milk9111/actionmap/action"
	"github.com/milk9111/actionmap/actionstate"
)

// DiffKind identifies the type of change record.
type DiffKind string

const (
	// DiffPressed marks an action newly pressed or pressed with a changed
	// value.
	DiffPressed DiffKind = "pressed"
	// DiffReleased marks an action no longer pressed.
	DiffReleased DiffKind = "released"
	// DiffAxisChanged carries a changed scalar axis value.
	DiffAxisChanged DiffKind = "axis"
	// DiffDualAxisChanged carries a changed dual-axis value.
	DiffDualAxisChanged DiffKind = "dualAxis"
	// DiffTripleAxisChanged carries a changed triple-axis value.
	DiffTripleAxisChanged DiffKind = "tripleAxis"
)

// ActionDiff is one change record between two snapshots. It carries only the
// action's hash; the receiving side recovers an opaque action from it and
// never needs the concrete action type.
type ActionDiff struct {
	Kind   DiffKind    `json:"kind"`
	Action string      `json:"action"`
	Value  float64     `json:"value,omitempty"`
	Pair   *[2]float64 `json:"pair,omitempty"`
	Triple *[3]float64 `json:"triple,omitempty"`
}

// RecoveredAction returns the diff's action as an opaque hash-only value.
func (d ActionDiff) RecoveredAction() action.Actionlike {
	return action.Opaque{H: d.Action}
}

// GenerateDiffs compares this snapshot (the new state) against other (the
// previous state) and returns the minimal ordered change sequence that
// carries other to this, using the default Epsilon tolerance. Comparison
// order is fixed: pressed, released, scalar axes, dual axes, triple axes,
// with hashes sorted inside each phase.
func (s *SummarizedActionState) GenerateDiffs(other *SummarizedActionState) []ActionDiff {
	return s.GenerateDiffsEpsilon(other, Epsilon)
}

// GenerateDiffsEpsilon is GenerateDiffs with an explicit float tolerance,
// for callers whose profile tunes the diff epsilon.
func (s *SummarizedActionState) GenerateDiffsEpsilon(other *SummarizedActionState, epsilon float64) []ActionDiff {
	if other == nil {
		other = New()
	}
	var diffs []ActionDiff

	for _, hash := range sortedKeys(s.Pressed) {
		value := s.Pressed[hash]
		prev, was := other.Pressed[hash]
		if !was || math.Abs(value-prev) > epsilon {
			diffs = append(diffs, ActionDiff{Kind: DiffPressed, Action: hash, Value: value})
		}
	}
	for _, hash := range sortedKeys(other.Pressed) {
		if _, still := s.Pressed[hash]; !still {
			diffs = append(diffs, ActionDiff{Kind: DiffReleased, Action: hash})
		}
	}
	for _, hash := range unionKeys(s.Axes, other.Axes) {
		value := s.Axes[hash]
		if math.Abs(value-other.Axes[hash]) > epsilon {
			diffs = append(diffs, ActionDiff{Kind: DiffAxisChanged, Action: hash, Value: value})
		}
	}
	for _, hash := range unionKeys(s.AxisPairs, other.AxisPairs) {
		pair := s.AxisPairs[hash]
		if pairDelta(pair, other.AxisPairs[hash]) > epsilon {
			p := pair
			diffs = append(diffs, ActionDiff{Kind: DiffDualAxisChanged, Action: hash, Pair: &p})
		}
	}
	for _, hash := range unionKeys(s.AxisTriples, other.AxisTriples) {
		triple := s.AxisTriples[hash]
		if tripleDelta(triple, other.AxisTriples[hash]) > epsilon {
			t := triple
			diffs = append(diffs, ActionDiff{Kind: DiffTripleAxisChanged, Action: hash, Triple: &t})
		}
	}
	return diffs
}

// ApplyDiff mutates a remote action state with one change record. Unknown
// action hashes are skipped silently as stale or foreign records.
func ApplyDiff[A action.Actionlike](d ActionDiff, st *actionstate.ActionState[A]) {
	switch d.Kind {
	case DiffPressed:
		st.Press(d.Action, d.Value)
	case DiffReleased:
		st.Release(d.Action)
	case DiffAxisChanged:
		st.SetValue(d.Action, d.Value)
	case DiffDualAxisChanged:
		if d.Pair != nil {
			st.SetAxisPair(d.Action, d.Pair[0], d.Pair[1])
		}
	case DiffTripleAxisChanged:
		if d.Triple != nil {
			st.SetAxisTriple(d.Action, d.Triple[0], d.Triple[1], d.Triple[2])
		}
	}
}

// ApplyDiffs applies a sequence of change records in order.
func ApplyDiffs[A action.Actionlike](diffs []ActionDiff, st *actionstate.ActionState[A]) {
	for _, d := range diffs {
		ApplyDiff(d, st)
	}
}

// Apply carries a previous snapshot to a new one by replaying diffs,
// returning the updated snapshot. Useful for keeping a remote mirror
// snapshot without a full action state.
func Apply(prev *SummarizedActionState, diffs []ActionDiff) *SummarizedActionState {
	next := New()
	if prev != nil {
		for k, v := range prev.Pressed {
			next.Pressed[k] = v
		}
		for k, v := range prev.Axes {
			next.Axes[k] = v
		}
		for k, v := range prev.AxisPairs {
			next.AxisPairs[k] = v
		}
		for k, v := range prev.AxisTriples {
			next.AxisTriples[k] = v
		}
	}
	for _, d := range diffs {
		switch d.Kind {
		case DiffPressed:
			next.Pressed[d.Action] = d.Value
		case DiffReleased:
			delete(next.Pressed, d.Action)
		case DiffAxisChanged:
			if d.Value == 0 {
				delete(next.Axes, d.Action)
			} else {
				next.Axes[d.Action] = d.Value
			}
		case DiffDualAxisChanged:
			if d.Pair == nil || (d.Pair[0] == 0 && d.Pair[1] == 0) {
				delete(next.AxisPairs, d.Action)
			} else {
				next.AxisPairs[d.Action] = *d.Pair
			}
		case DiffTripleAxisChanged:
			if d.Triple == nil || (d.Triple[0] == 0 && d.Triple[1] == 0 && d.Triple[2] == 0) {
				delete(next.AxisTriples, d.Action)
			} else {
				next.AxisTriples[d.Action] = *d.Triple
			}
		}
	}
	return next
}
