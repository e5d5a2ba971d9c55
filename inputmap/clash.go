package inputmap

import (
	"github.com/milk9111/actionmap/action"
	"github.com/milk9111/actionmap/input"
)

// ClashStrategy decides which of two clashing, simultaneously satisfied
// actions should win a frame.
type ClashStrategy uint8

const (
	// PrioritizeLargest keeps only the clashing action whose satisfied input
	// has the largest decomposed-input count: the longest chord wins and the
	// simpler binding is suppressed that frame. When decompositions are the
	// same size the earlier-registered action wins.
	PrioritizeLargest ClashStrategy = iota
	// UseAll performs no suppression; all clashing actions fire.
	UseAll
)

// Clash records one pair of actions whose bound inputs overlap, together
// with the overlapping inputs from both sides. Clashes are recomputed from
// current bindings each time; they are never persisted across frames.
type Clash struct {
	ActionA           string
	ActionB           string
	OverlappingInputs []input.UserInput
}

type registered struct {
	hash   string
	inputs []input.UserInput
	order  int
}

// ClashDetector indexes action bindings to answer which actions can clash
// and, given a frame's processed states, which should be suppressed.
type ClashDetector struct {
	actions []registered
	byHash  map[string]int
}

// NewClashDetector creates an empty detector.
func NewClashDetector() *ClashDetector {
	return &ClashDetector{byHash: make(map[string]int)}
}

// ClashDetector builds a detector over this map's current bindings, in
// registration order.
func (m *InputMap[A]) ClashDetector() *ClashDetector {
	d := NewClashDetector()
	for _, hash := range m.actions.Keys() {
		if b := m.bindingFor(hash); b != nil {
			d.register(hash, b.inputs)
		}
	}
	return d
}

// RegisterAction adds an action's bindings. Re-registering replaces the
// inputs but keeps the original registration order.
func (d *ClashDetector) RegisterAction(act action.Actionlike, inputs []input.UserInput) {
	d.register(act.Hash(), inputs)
}

func (d *ClashDetector) register(hash string, inputs []input.UserInput) {
	copied := append([]input.UserInput(nil), inputs...)
	if i, ok := d.byHash[hash]; ok {
		d.actions[i].inputs = copied
		return
	}
	d.byHash[hash] = len(d.actions)
	d.actions = append(d.actions, registered{hash: hash, inputs: copied, order: len(d.actions)})
}

// inputsClash reports whether two distinct inputs share at least one atomic
// constituent. Two identical inputs do not clash; the consumed-input rule in
// ProcessActions already arbitrates those.
func inputsClash(a, b input.UserInput) bool {
	if a.Hash() == b.Hash() {
		return false
	}
	atoms := make(map[string]struct{})
	for _, atom := range a.Decompose() {
		atoms[atom.Hash()] = struct{}{}
	}
	for _, atom := range b.Decompose() {
		if _, ok := atoms[atom.Hash()]; ok {
			return true
		}
	}
	return false
}

// DoActionsClash reports whether any input bound to a overlaps any input
// bound to b.
func (d *ClashDetector) DoActionsClash(a, b action.Actionlike) bool {
	ia, ok := d.byHash[a.Hash()]
	if !ok {
		return false
	}
	ib, ok := d.byHash[b.Hash()]
	if !ok {
		return false
	}
	return len(overlapping(d.actions[ia].inputs, d.actions[ib].inputs)) > 0
}

func overlapping(as, bs []input.UserInput) []input.UserInput {
	var out []input.UserInput
	seen := make(map[string]struct{})
	for _, a := range as {
		for _, b := range bs {
			if !inputsClash(a, b) {
				continue
			}
			for _, in := range []input.UserInput{a, b} {
				h := in.Hash()
				if _, ok := seen[h]; ok {
					continue
				}
				seen[h] = struct{}{}
				out = append(out, in)
			}
		}
	}
	return out
}

// DetectClashes returns every clashing pair over the registered bindings, in
// registration order.
func (d *ClashDetector) DetectClashes() []Clash {
	var clashes []Clash
	for i := 0; i < len(d.actions); i++ {
		for j := i + 1; j < len(d.actions); j++ {
			inputs := overlapping(d.actions[i].inputs, d.actions[j].inputs)
			if len(inputs) == 0 {
				continue
			}
			clashes = append(clashes, Clash{
				ActionA:           d.actions[i].hash,
				ActionB:           d.actions[j].hash,
				OverlappingInputs: inputs,
			})
		}
	}
	return clashes
}

// ResolveClashes inspects the frame's processed states and returns the set
// of action hashes that survive clash resolution. Only clashes whose two
// actions are both currently pressed are live; everything else wins by
// default.
func (d *ClashDetector) ResolveClashes(processed map[string]ProcessedActionState, store *input.RawInputStore, strategy ClashStrategy) map[string]struct{} {
	winners := make(map[string]struct{}, len(processed))
	for hash := range processed {
		winners[hash] = struct{}{}
	}
	if strategy == UseAll {
		return winners
	}

	for _, clash := range d.DetectClashes() {
		pa, okA := processed[clash.ActionA]
		pb, okB := processed[clash.ActionB]
		if !okA || !okB || !pa.Pressed || !pb.Pressed {
			continue
		}
		sizeA := d.satisfiedSize(clash.ActionA, store)
		sizeB := d.satisfiedSize(clash.ActionB, store)
		switch {
		case sizeA > sizeB:
			delete(winners, clash.ActionB)
		case sizeB > sizeA:
			delete(winners, clash.ActionA)
		default:
			// Equal decomposition size: first registered wins.
			delete(winners, clash.ActionB)
		}
	}
	return winners
}

// SuppressLosers zeroes the processed state of every action that lost clash
// resolution, so the action-state layer sees it as released this frame.
func (d *ClashDetector) SuppressLosers(processed map[string]ProcessedActionState, store *input.RawInputStore, strategy ClashStrategy) {
	winners := d.ResolveClashes(processed, store, strategy)
	for hash, state := range processed {
		if _, won := winners[hash]; won {
			continue
		}
		wasPressed := state.Pressed && !state.JustPressed
		processed[hash] = ProcessedActionState{
			JustReleased: wasPressed,
		}
	}
}

// satisfiedSize returns the largest decomposed-input count among the
// action's inputs that are currently satisfied.
func (d *ClashDetector) satisfiedSize(hash string, store *input.RawInputStore) int {
	i, ok := d.byHash[hash]
	if !ok {
		return 0
	}
	size := 0
	for _, in := range d.actions[i].inputs {
		if !in.Pressed(store) {
			continue
		}
		if n := len(in.Decompose()); n > size {
			size = n
		}
	}
	return size
}
