// Package inputmap owns the many-to-one binding of logical actions to
// physical inputs, the per-frame processing that turns a RawInputStore
// snapshot into per-action states, and the detection and resolution of
// clashes between overlapping bindings.
package inputmap

import (
	"fmt"
	"math"

	"github.com/iancoleman/orderedmap"

	"github.com/milk9111/actionmap/action"
	"github.com/milk9111/actionmap/input"
)

// DefaultDeadZone is the minimum magnitude an axis or dual-axis input must
// exceed (strictly) to count as active.
const DefaultDeadZone = 0.01

// ProcessedActionState is the ephemeral per-frame result for one action,
// consumed immediately by the action-state layer.
type ProcessedActionState struct {
	Pressed      bool
	JustPressed  bool
	JustReleased bool
	Value        float64
	AxisPairX    float64
	AxisPairY    float64
	HasAxisPair  bool
}

type binding[A action.Actionlike] struct {
	act    A
	inputs []input.UserInput
	seen   map[string]struct{}
}

// InputMap binds actions to the physical inputs that drive them. Iteration
// order everywhere is registration order, which keeps per-frame consumption
// and clash tie-breaks deterministic. The forward and reverse indices are
// kept mutually consistent by every mutation.
type InputMap[A action.Actionlike] struct {
	actions        *orderedmap.OrderedMap
	inputToActions map[string]map[string]struct{}
	device         string
	deadZone       float64
}

// NewInputMap creates an empty map with the default dead zone and no device
// scope.
func NewInputMap[A action.Actionlike]() *InputMap[A] {
	return &InputMap[A]{
		actions:        orderedmap.New(),
		inputToActions: make(map[string]map[string]struct{}),
		deadZone:       DefaultDeadZone,
	}
}

// SetDeadZone overrides the axis dead zone. Invalid values fail here rather
// than propagating into per-frame logic.
func (m *InputMap[A]) SetDeadZone(v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("inputmap: invalid dead zone %v", v)
	}
	m.deadZone = v
	return nil
}

// DeadZone returns the active axis dead zone.
func (m *InputMap[A]) DeadZone() float64 {
	return m.deadZone
}

// SetDevice scopes this map to one physical device (e.g. "gamepad:0").
// The empty string means any device.
func (m *InputMap[A]) SetDevice(device string) {
	m.device = device
}

// Device returns the map's device scope.
func (m *InputMap[A]) Device() string {
	return m.device
}

func (m *InputMap[A]) bindingFor(hash string) *binding[A] {
	v, ok := m.actions.Get(hash)
	if !ok {
		return nil
	}
	b, _ := v.(*binding[A])
	return b
}

// Insert binds an input to an action. Inserting the same pair twice has no
// additional effect; input sets de-duplicate by hash.
func (m *InputMap[A]) Insert(act A, in input.UserInput) {
	hash := act.Hash()
	b := m.bindingFor(hash)
	if b == nil {
		b = &binding[A]{act: act, seen: make(map[string]struct{})}
		m.actions.Set(hash, b)
	}
	inHash := in.Hash()
	if _, dup := b.seen[inHash]; dup {
		return
	}
	b.seen[inHash] = struct{}{}
	b.inputs = append(b.inputs, in)

	set := m.inputToActions[inHash]
	if set == nil {
		set = make(map[string]struct{})
		m.inputToActions[inHash] = set
	}
	set[hash] = struct{}{}
}

// Remove unbinds an input from an action. Removing an action's last input
// drops the action from the registry entirely.
func (m *InputMap[A]) Remove(act A, in input.UserInput) {
	hash := act.Hash()
	b := m.bindingFor(hash)
	if b == nil {
		return
	}
	inHash := in.Hash()
	if _, ok := b.seen[inHash]; !ok {
		return
	}
	delete(b.seen, inHash)
	for i, bound := range b.inputs {
		if bound.Hash() == inHash {
			b.inputs = append(b.inputs[:i], b.inputs[i+1:]...)
			break
		}
	}
	if set := m.inputToActions[inHash]; set != nil {
		delete(set, hash)
		if len(set) == 0 {
			delete(m.inputToActions, inHash)
		}
	}
	if len(b.inputs) == 0 {
		m.actions.Delete(hash)
	}
}

// Merge copies every binding from other into this map. When the two maps are
// scoped to different devices the merged scope degrades to "any device":
// silently preferring one player's device over the other would feel
// non-deterministic to players.
func (m *InputMap[A]) Merge(other *InputMap[A]) {
	if other == nil {
		return
	}
	if m.device != other.device {
		m.device = ""
	}
	for _, hash := range other.actions.Keys() {
		b := other.bindingFor(hash)
		if b == nil {
			continue
		}
		for _, in := range b.inputs {
			m.Insert(b.act, in)
		}
	}
}

// Actions returns the registered actions in registration order.
func (m *InputMap[A]) Actions() []A {
	keys := m.actions.Keys()
	out := make([]A, 0, len(keys))
	for _, hash := range keys {
		if b := m.bindingFor(hash); b != nil {
			out = append(out, b.act)
		}
	}
	return out
}

// Inputs returns the inputs bound to an action, in insertion order.
func (m *InputMap[A]) Inputs(act A) []input.UserInput {
	b := m.bindingFor(act.Hash())
	if b == nil {
		return nil
	}
	return append([]input.UserInput(nil), b.inputs...)
}

// Len returns the number of registered actions.
func (m *InputMap[A]) Len() int {
	return len(m.actions.Keys())
}

// ProcessActions reads every bound input out of the store and produces a
// ProcessedActionState per action, returning it alongside the set of input
// hashes consumed this frame. An input that satisfies one action's threshold
// is consumed; later actions in registration order cannot also claim it.
// Edges are derived against prev; a missing previous entry is treated as
// released.
func (m *InputMap[A]) ProcessActions(store *input.RawInputStore, prev map[string]ProcessedActionState) (map[string]ProcessedActionState, map[string]struct{}) {
	processed := make(map[string]ProcessedActionState, m.Len())
	consumed := make(map[string]struct{})

	for _, hash := range m.actions.Keys() {
		b := m.bindingFor(hash)
		if b == nil {
			continue
		}
		var state ProcessedActionState
		bestMagnitude := 0.0
		for _, in := range b.inputs {
			inHash := in.Hash()
			if _, taken := consumed[inHash]; taken {
				continue
			}
			switch in.Control() {
			case input.Buttonlike:
				if !in.Pressed(store) {
					continue
				}
				state.Pressed = true
				if v := in.Value(store); math.Abs(v) >= bestMagnitude {
					bestMagnitude = math.Abs(v)
					state.Value = v
				}
			case input.Axislike:
				v := in.Value(store)
				if math.Abs(v) <= m.deadZone {
					continue
				}
				state.Pressed = true
				if math.Abs(v) >= bestMagnitude {
					bestMagnitude = math.Abs(v)
					state.Value = v
				}
			case input.DualAxislike:
				x, y := in.AxisPair(store)
				mag := math.Hypot(x, y)
				if mag <= m.deadZone {
					continue
				}
				state.Pressed = true
				// Last satisfying dual-axis input wins the pair.
				state.AxisPairX = x
				state.AxisPairY = y
				state.HasAxisPair = true
				if mag >= bestMagnitude {
					bestMagnitude = mag
					state.Value = mag
				}
			}
			consumed[inHash] = struct{}{}
		}

		wasPressed := false
		if p, ok := prev[hash]; ok {
			wasPressed = p.Pressed
		}
		state.JustPressed = state.Pressed && !wasPressed
		state.JustReleased = !state.Pressed && wasPressed
		processed[hash] = state
	}
	return processed, consumed
}
