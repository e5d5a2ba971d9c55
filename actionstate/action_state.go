// Package actionstate tracks the temporal state of every action for one
// player or context: pressed/just-pressed/just-released edges, values, axis
// pairs, and held durations, advanced by two sequential but independently
// paced clocks (the variable-rate Update loop and the fixed-rate FixedUpdate
// loop). Each clock owns an isolated buffer so neither loop's edge detection
// can consume the other's transitions.
package actionstate

import (
	"time"

	"github.com/milk9111/actionmap/action"
	"github.com/milk9111/actionmap/inputmap"
)

// ActionState owns the per-action records for one context. It is explicit
// state, never process-wide: multiplayer hosts hold one instance per player.
// All methods assume the single-threaded tick pipeline; the buffer swap is a
// synchronization point, not a lock.
type ActionState[A action.Actionlike] struct {
	order       []string
	acts        map[string]A
	data        map[string]*ActionData
	allDisabled bool
}

// NewActionState creates an empty state with the Update buffer live.
func NewActionState[A action.Actionlike]() *ActionState[A] {
	return &ActionState[A]{
		acts: make(map[string]A),
		data: make(map[string]*ActionData),
	}
}

// Register makes an action known so diffs addressed to it apply. Actions
// seen by Update register themselves; receivers of network diffs register
// their expected actions up front.
func (s *ActionState[A]) Register(act A) {
	s.ensure(act)
}

func (s *ActionState[A]) ensure(act A) *ActionData {
	hash := act.Hash()
	if d, ok := s.data[hash]; ok {
		return d
	}
	d := &ActionData{}
	s.data[hash] = d
	s.acts[hash] = act
	s.order = append(s.order, hash)
	return d
}

// Actions returns the registered actions in registration order.
func (s *ActionState[A]) Actions() []A {
	out := make([]A, 0, len(s.order))
	for _, hash := range s.order {
		out = append(out, s.acts[hash])
	}
	return out
}

// Hashes returns the registered action hashes in registration order.
func (s *ActionState[A]) Hashes() []string {
	return append([]string(nil), s.order...)
}

// Update ingests the clash-resolved processed states for this step,
// overwriting pressed/value/axis data and deriving just-pressed and
// just-released against the live buffer's state before this call. Hashes
// not present in resolved keep their current state.
func (s *ActionState[A]) Update(resolved map[string]inputmap.ProcessedActionState) {
	for _, hash := range s.order {
		p, ok := resolved[hash]
		if !ok {
			continue
		}
		d := s.data[hash].live()
		was := d.Pressed
		d.Pressed = p.Pressed
		d.Value = p.Value
		if p.HasAxisPair {
			d.AxisPairX = p.AxisPairX
			d.AxisPairY = p.AxisPairY
		} else {
			d.AxisPairX = 0
			d.AxisPairY = 0
		}
		d.JustPressed = d.Pressed && !was
		d.JustReleased = !d.Pressed && was
		if d.JustPressed {
			d.HeldDuration = 0
		}
	}
}

// UpdateFrom registers any actions that resolved knows but this state does
// not, then updates. Convenient on the sending side where the input map is
// the source of truth for the action set.
func (s *ActionState[A]) UpdateFrom(acts []A, resolved map[string]inputmap.ProcessedActionState) {
	for _, act := range acts {
		s.ensure(act)
	}
	s.Update(resolved)
}

// Tick advances held-duration counters and clears the just-pressed and
// just-released flags for the live buffer. Call it exactly once per
// simulated step, after every consumer has read the edges for that step.
func (s *ActionState[A]) Tick(delta time.Duration) {
	for _, hash := range s.order {
		d := s.data[hash].live()
		if d.Pressed {
			d.HeldDuration += delta
		}
		d.JustPressed = false
		d.JustReleased = false
	}
}

// SwapToFixedUpdateState makes the FixedUpdate buffer live for every
// action. The Update buffer keeps its state untouched until swapped back; a
// buffer that has never been written reads as neutral.
func (s *ActionState[A]) SwapToFixedUpdateState() {
	s.swapTo(slotFixedUpdate)
}

// SwapToUpdateState makes the Update buffer live for every action.
func (s *ActionState[A]) SwapToUpdateState() {
	s.swapTo(slotUpdate)
}

// SwapToFixedUpdate is a legacy alias for SwapToFixedUpdateState.
func (s *ActionState[A]) SwapToFixedUpdate() {
	s.SwapToFixedUpdateState()
}

// SwapToUpdate is a legacy alias for SwapToUpdateState.
func (s *ActionState[A]) SwapToUpdate() {
	s.SwapToUpdateState()
}

func (s *ActionState[A]) swapTo(slot int) {
	for _, hash := range s.order {
		s.data[hash].swapTo(slot)
	}
}

// Reset clears both buffers of every action. Used on disconnect or despawn.
// Registration and disabled flags survive.
func (s *ActionState[A]) Reset() {
	for _, hash := range s.order {
		s.data[hash].reset()
	}
}

// Disable hides one action: its queries report neutral values while the
// underlying buffers keep accumulating.
func (s *ActionState[A]) Disable(act A) {
	s.ensure(act).Disabled = true
}

// Enable restores visibility of one action without discarding buffer state.
func (s *ActionState[A]) Enable(act A) {
	s.ensure(act).Disabled = false
}

// DisableAll hides every action, including ones registered later.
func (s *ActionState[A]) DisableAll() {
	s.allDisabled = true
}

// EnableAll undoes DisableAll. Per-action disabled flags are unaffected.
func (s *ActionState[A]) EnableAll() {
	s.allDisabled = false
}

// Disabled reports whether queries for the action currently read neutral.
func (s *ActionState[A]) Disabled(act A) bool {
	return s.DisabledHash(act.Hash())
}

// DisabledHash is Disabled keyed by raw action hash.
func (s *ActionState[A]) DisabledHash(hash string) bool {
	if s.allDisabled {
		return true
	}
	d, ok := s.data[hash]
	return ok && d.Disabled
}

func (s *ActionState[A]) visible(hash string) (*ButtonData, bool) {
	if s.allDisabled {
		return nil, false
	}
	d, ok := s.data[hash]
	if !ok || d.Disabled {
		return nil, false
	}
	return d.live(), true
}

// Pressed reports whether the action is held. Unknown or disabled actions
// report released rather than an error; binding mistakes surface in tests,
// not in the hot path.
func (s *ActionState[A]) Pressed(act A) bool {
	return s.PressedHash(act.Hash())
}

// JustPressed reports whether the action transitioned to pressed this step.
func (s *ActionState[A]) JustPressed(act A) bool {
	d, ok := s.visible(act.Hash())
	return ok && d.JustPressed
}

// JustReleased reports whether the action transitioned to released this
// step.
func (s *ActionState[A]) JustReleased(act A) bool {
	d, ok := s.visible(act.Hash())
	return ok && d.JustReleased
}

// Value returns the action's scalar value, or zero.
func (s *ActionState[A]) Value(act A) float64 {
	return s.ValueHash(act.Hash())
}

// AxisPair returns the action's dual-axis value, or a zero pair.
func (s *ActionState[A]) AxisPair(act A) (float64, float64) {
	return s.AxisPairHash(act.Hash())
}

// AxisTriple returns the action's triple-axis value, or a zero triple.
func (s *ActionState[A]) AxisTriple(act A) (float64, float64, float64) {
	return s.AxisTripleHash(act.Hash())
}

// HeldDuration returns how long the action has been held on the live clock.
func (s *ActionState[A]) HeldDuration(act A) time.Duration {
	d, ok := s.visible(act.Hash())
	if !ok {
		return 0
	}
	return d.HeldDuration
}

// PressedHash is Pressed keyed by raw action hash.
func (s *ActionState[A]) PressedHash(hash string) bool {
	d, ok := s.visible(hash)
	return ok && d.Pressed
}

// ValueHash is Value keyed by raw action hash.
func (s *ActionState[A]) ValueHash(hash string) float64 {
	d, ok := s.visible(hash)
	if !ok {
		return 0
	}
	return d.Value
}

// AxisPairHash is AxisPair keyed by raw action hash.
func (s *ActionState[A]) AxisPairHash(hash string) (float64, float64) {
	d, ok := s.visible(hash)
	if !ok {
		return 0, 0
	}
	return d.AxisPairX, d.AxisPairY
}

// AxisTripleHash is AxisTriple keyed by raw action hash.
func (s *ActionState[A]) AxisTripleHash(hash string) (float64, float64, float64) {
	d, ok := s.visible(hash)
	if !ok {
		return 0, 0, 0
	}
	return d.AxisTripleX, d.AxisTripleY, d.AxisTripleZ
}

// Press forces an action pressed by hash, deriving the just-pressed edge
// from the live buffer. Diff application and tests drive state through this
// instead of a raw input pipeline. Returns false for unregistered hashes.
func (s *ActionState[A]) Press(hash string, value float64) bool {
	d, ok := s.data[hash]
	if !ok {
		return false
	}
	b := d.live()
	if !b.Pressed {
		b.JustPressed = true
		b.HeldDuration = 0
	}
	b.Pressed = true
	b.Value = value
	return true
}

// Release forces an action released by hash, deriving the just-released
// edge. Returns false for unregistered hashes.
func (s *ActionState[A]) Release(hash string) bool {
	d, ok := s.data[hash]
	if !ok {
		return false
	}
	b := d.live()
	if b.Pressed {
		b.JustReleased = true
	}
	b.Pressed = false
	b.Value = 0
	b.AxisPairX = 0
	b.AxisPairY = 0
	return true
}

// SetValue overwrites an action's scalar value by hash.
func (s *ActionState[A]) SetValue(hash string, v float64) bool {
	d, ok := s.data[hash]
	if !ok {
		return false
	}
	d.live().Value = v
	return true
}

// SetAxisPair overwrites an action's dual-axis value by hash.
func (s *ActionState[A]) SetAxisPair(hash string, x, y float64) bool {
	d, ok := s.data[hash]
	if !ok {
		return false
	}
	b := d.live()
	b.AxisPairX = x
	b.AxisPairY = y
	return true
}

// SetAxisTriple overwrites an action's triple-axis value by hash.
func (s *ActionState[A]) SetAxisTriple(hash string, x, y, z float64) bool {
	d, ok := s.data[hash]
	if !ok {
		return false
	}
	b := d.live()
	b.AxisTripleX = x
	b.AxisTripleY = y
	b.AxisTripleZ = z
	return true
}

// Data returns the live-buffer snapshot for an action hash, ignoring the
// disabled flag; callers that must respect it check DisabledHash first.
func (s *ActionState[A]) Data(hash string) (ButtonData, bool) {
	d, ok := s.data[hash]
	if !ok {
		return ButtonData{}, false
	}
	return d.Snapshot(), true
}
