// Package summary compresses an action state into a comparable snapshot,
// diffs two snapshots into a minimal ordered change sequence, and applies
// snapshots back onto a state. The serialized snapshot and the diff records
// are the only values that ever cross a process boundary; actions, inputs,
// and bindings stay local.
package summary

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/milk9111/actionmap/action"
	"github.com/milk9111/actionmap/actionstate"
)

// Epsilon is the float tolerance for diff comparisons. Scalars closer than
// this, and vectors whose difference magnitude is smaller, are considered
// unchanged.
const Epsilon = 0.001

// SummarizedActionState holds only active data: at-rest actions are omitted
// entirely. All four mappings are keyed by action hash.
type SummarizedActionState struct {
	Pressed     map[string]float64    `json:"pressed" jsonschema:"description=Currently pressed actions with their values keyed by action hash"`
	Axes        map[string]float64    `json:"axes" jsonschema:"description=Non-zero scalar axis values keyed by action hash"`
	AxisPairs   map[string][2]float64 `json:"axisPairs" jsonschema:"description=Non-zero dual-axis values keyed by action hash"`
	AxisTriples map[string][3]float64 `json:"axisTriples" jsonschema:"description=Non-zero triple-axis values keyed by action hash"`
}

// New creates an empty snapshot.
func New() *SummarizedActionState {
	return &SummarizedActionState{
		Pressed:     make(map[string]float64),
		Axes:        make(map[string]float64),
		AxisPairs:   make(map[string][2]float64),
		AxisTriples: make(map[string][3]float64),
	}
}

// FromActionState extracts the active data of every registered action from
// the state's live buffers. Disabled actions are omitted, matching the
// neutral reads every local query reports for them.
func FromActionState[A action.Actionlike](st *actionstate.ActionState[A]) *SummarizedActionState {
	s := New()
	for _, hash := range st.Hashes() {
		if st.DisabledHash(hash) {
			continue
		}
		d, ok := st.Data(hash)
		if !ok {
			continue
		}
		if d.Pressed {
			s.Pressed[hash] = d.Value
		}
		if d.Value != 0 {
			s.Axes[hash] = d.Value
		}
		if d.AxisPairX != 0 || d.AxisPairY != 0 {
			s.AxisPairs[hash] = [2]float64{d.AxisPairX, d.AxisPairY}
		}
		if d.AxisTripleX != 0 || d.AxisTripleY != 0 || d.AxisTripleZ != 0 {
			s.AxisTriples[hash] = [3]float64{d.AxisTripleX, d.AxisTripleY, d.AxisTripleZ}
		}
	}
	return s
}

// ApplyToActionState resets the target, then replays this snapshot's
// pressed, scalar, and axis entries onto it. Reconstruction is idempotent
// and order-independent for a single snapshot. Hashes unknown to the target
// are skipped silently; they are stale or foreign records, not errors.
func ApplyToActionState[A action.Actionlike](s *SummarizedActionState, st *actionstate.ActionState[A]) {
	st.Reset()
	for _, hash := range sortedKeys(s.Pressed) {
		st.Press(hash, s.Pressed[hash])
	}
	for _, hash := range sortedKeys(s.Axes) {
		st.SetValue(hash, s.Axes[hash])
	}
	for _, hash := range sortedKeys(s.AxisPairs) {
		pair := s.AxisPairs[hash]
		st.SetAxisPair(hash, pair[0], pair[1])
	}
	for _, hash := range sortedKeys(s.AxisTriples) {
		t := s.AxisTriples[hash]
		st.SetAxisTriple(hash, t[0], t[1], t[2])
	}
}

// Serialize encodes the snapshot as a flat JSON record of its four
// mappings.
func (s *SummarizedActionState) Serialize() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("summary: serialize: %w", err)
	}
	return data, nil
}

// Deserialize decodes a snapshot produced by Serialize.
func Deserialize(data []byte) (*SummarizedActionState, error) {
	s := New()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("summary: deserialize: %w", err)
	}
	if s.Pressed == nil {
		s.Pressed = make(map[string]float64)
	}
	if s.Axes == nil {
		s.Axes = make(map[string]float64)
	}
	if s.AxisPairs == nil {
		s.AxisPairs = make(map[string][2]float64)
	}
	if s.AxisTriples == nil {
		s.AxisTriples = make(map[string][3]float64)
	}
	return s, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func unionKeys[V any](a, b map[string]V) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := seen[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func pairDelta(a, b [2]float64) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}

func tripleDelta(a, b [3]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
