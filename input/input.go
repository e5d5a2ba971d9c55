// Package input describes the physical side of a binding: atomic device
// inputs (keys, mouse buttons, axes, gamepad buttons, sticks), composite
// inputs built from them (chords, virtual dpads, virtual axes), and the
// per-frame RawInputStore snapshot they are read out of.
package input

import (
	"math"
	"strings"
)

// Kind discriminates the closed set of UserInput variants.
type Kind uint8

const (
	KindKey Kind = iota
	KindMouseButton
	KindMouseWheel
	KindMouseWheelVector
	KindGamepadButton
	KindGamepadStick
	KindChord
	KindVirtualDPad
	KindVirtualAxis
)

// Control classifies how an input is read: as a button, a scalar axis, or a
// dual axis.
type Control uint8

const (
	Buttonlike Control = iota
	Axislike
	DualAxislike
)

// MouseButton identifies a physical mouse button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	}
	return "unknown"
}

// StickSide identifies a gamepad thumbstick.
type StickSide uint8

const (
	StickLeftSide StickSide = iota
	StickRightSide
)

func (s StickSide) String() string {
	if s == StickRightSide {
		return "right"
	}
	return "left"
}

// UserInput is an immutable description of a thing that can be bound to an
// action. Atomic variants name one device input; composite variants hold an
// ordered list of simpler parts. The zero value is not a valid input.
type UserInput struct {
	kind  Kind
	id    string
	parts []UserInput
}

// Key binds a keyboard key by its stable name (e.g. "Space", "W",
// "LeftControl"). Names follow the collector's key table.
func Key(name string) UserInput {
	return UserInput{kind: KindKey, id: "key:" + name}
}

// Mouse binds a mouse button.
func Mouse(btn MouseButton) UserInput {
	return UserInput{kind: KindMouseButton, id: "mouse:" + btn.String()}
}

// MouseWheel binds the scalar mouse wheel delta.
func MouseWheel() UserInput {
	return UserInput{kind: KindMouseWheel, id: "wheel"}
}

// MouseWheelVector binds the two-dimensional mouse wheel delta.
func MouseWheelVector() UserInput {
	return UserInput{kind: KindMouseWheelVector, id: "wheelvec"}
}

// GamepadButton binds a gamepad button by its standard-layout name
// (e.g. "south", "start", "leftTrigger").
func GamepadButton(name string) UserInput {
	return UserInput{kind: KindGamepadButton, id: "pad:" + name}
}

// GamepadStick binds a thumbstick as a dual-axis input.
func GamepadStick(side StickSide) UserInput {
	return UserInput{kind: KindGamepadStick, id: "stick:" + side.String()}
}

// Chord binds a set of buttonlike inputs that must all be held together.
// Part order is preserved; it participates in the chord's identity.
func Chord(parts ...UserInput) UserInput {
	copied := append([]UserInput(nil), parts...)
	return UserInput{kind: KindChord, parts: copied}
}

// VirtualDPad builds a dual-axis input out of four buttonlike inputs.
// Up is +Y, right is +X.
func VirtualDPad(up, down, left, right UserInput) UserInput {
	return UserInput{kind: KindVirtualDPad, parts: []UserInput{up, down, left, right}}
}

// VirtualAxis builds a scalar axis out of a negative and a positive
// buttonlike input.
func VirtualAxis(negative, positive UserInput) UserInput {
	return UserInput{kind: KindVirtualAxis, parts: []UserInput{negative, positive}}
}

// Kind returns the variant discriminant.
func (u UserInput) Kind() Kind {
	return u.kind
}

// Control returns how this input is read out of a RawInputStore.
func (u UserInput) Control() Control {
	switch u.kind {
	case KindMouseWheel, KindVirtualAxis:
		return Axislike
	case KindMouseWheelVector, KindGamepadStick, KindVirtualDPad:
		return DualAxislike
	default:
		return Buttonlike
	}
}

// Hash returns a stable identity string for clash and consumption
// bookkeeping. Composite hashes embed their parts' hashes in order, so two
// chords over the same keys in the same order are the same input.
func (u UserInput) Hash() string {
	switch u.kind {
	case KindChord:
		return "chord(" + joinHashes(u.parts) + ")"
	case KindVirtualDPad:
		return "dpad(" + joinHashes(u.parts) + ")"
	case KindVirtualAxis:
		return "vaxis(" + joinHashes(u.parts) + ")"
	default:
		return u.id
	}
}

func joinHashes(parts []UserInput) string {
	hashes := make([]string, 0, len(parts))
	for _, p := range parts {
		hashes = append(hashes, p.Hash())
	}
	return strings.Join(hashes, "|")
}

// Decompose returns the ordered atomic constituents of this input. Atomic
// inputs decompose into themselves; composites flatten recursively. Clash
// detection tests binding overlap on these leaves.
func (u UserInput) Decompose() []UserInput {
	switch u.kind {
	case KindChord, KindVirtualDPad, KindVirtualAxis:
		atoms := make([]UserInput, 0, len(u.parts))
		for _, p := range u.parts {
			atoms = append(atoms, p.Decompose()...)
		}
		return atoms
	default:
		return []UserInput{u}
	}
}

// Pressed reads the input's current pressed state from the store. Composite
// chords require every part to be held; virtual pads and axes are pressed
// when any constituent is.
func (u UserInput) Pressed(store *RawInputStore) bool {
	switch u.kind {
	case KindChord:
		if len(u.parts) == 0 {
			return false
		}
		for _, p := range u.parts {
			if !p.Pressed(store) {
				return false
			}
		}
		return true
	case KindVirtualDPad, KindVirtualAxis:
		for _, p := range u.parts {
			if p.Pressed(store) {
				return true
			}
		}
		return false
	case KindMouseWheel:
		return store.Value(u.id) != 0
	case KindMouseWheelVector, KindGamepadStick:
		x, y := store.DualAxisValue(u.Hash())
		return x != 0 || y != 0
	default:
		return store.Pressed(u.id)
	}
}

// Value reads the input's scalar magnitude from the store. For a pure button
// this is 1 when pressed; analog buttons report their recorded magnitude.
func (u UserInput) Value(store *RawInputStore) float64 {
	switch u.kind {
	case KindChord:
		if !u.Pressed(store) {
			return 0
		}
		max := 0.0
		for _, p := range u.parts {
			if v := p.Value(store); v > max {
				max = v
			}
		}
		return max
	case KindVirtualAxis:
		if len(u.parts) != 2 {
			return 0
		}
		return u.parts[1].Value(store) - u.parts[0].Value(store)
	case KindVirtualDPad, KindMouseWheelVector, KindGamepadStick:
		x, y := u.AxisPair(store)
		return math.Hypot(x, y)
	case KindMouseWheel:
		return store.Value(u.id)
	default:
		return store.Value(u.id)
	}
}

// AxisPair reads the input's dual-axis value from the store. Buttonlike and
// scalar inputs report a zero pair.
func (u UserInput) AxisPair(store *RawInputStore) (float64, float64) {
	switch u.kind {
	case KindMouseWheelVector, KindGamepadStick:
		return store.DualAxisValue(u.Hash())
	case KindVirtualDPad:
		if len(u.parts) != 4 {
			return 0, 0
		}
		x := u.parts[3].Value(store) - u.parts[2].Value(store)
		y := u.parts[0].Value(store) - u.parts[1].Value(store)
		return x, y
	default:
		return 0, 0
	}
}
