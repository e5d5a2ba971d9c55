package actionstate

import "time"

// ButtonData is one clock's view of an action: the stored booleans encode
// the {Released, JustPressed, Pressed, JustReleased} machine without an
// explicit enum. The zero value is the neutral, unpressed state.
type ButtonData struct {
	Pressed      bool
	JustPressed  bool
	JustReleased bool
	Value        float64
	AxisPairX    float64
	AxisPairY    float64
	AxisTripleX  float64
	AxisTripleY  float64
	AxisTripleZ  float64
	HeldDuration time.Duration
}

const (
	slotUpdate = iota
	slotFixedUpdate
)

// ActionData is the persistent per-action record: one buffer slot per clock
// plus the disabled flag. Exactly one slot is live at a time; the active
// index is flipped by the owning state's swap calls.
type ActionData struct {
	slots    [2]ButtonData
	active   int
	Disabled bool
}

func (d *ActionData) live() *ButtonData {
	return &d.slots[d.active]
}

// Snapshot returns a copy of the live buffer.
func (d *ActionData) Snapshot() ButtonData {
	if d == nil {
		return ButtonData{}
	}
	return *d.live()
}

func (d *ActionData) swapTo(slot int) {
	d.active = slot
}

func (d *ActionData) reset() {
	disabled := d.Disabled
	*d = ActionData{Disabled: disabled}
}
