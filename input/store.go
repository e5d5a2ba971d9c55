package input

// RawInputStore is a per-frame snapshot of physical input values keyed by
// the stable hash of the atomic input. A device-polling collaborator writes
// it once at the top of the frame; everything above reads it and never
// writes. The engine never initiates device reads itself.
type RawInputStore struct {
	buttons map[string]bool
	axes    map[string]float64
	pairs   map[string][2]float64
	triples map[string][3]float64
}

// NewRawInputStore creates an empty store.
func NewRawInputStore() *RawInputStore {
	return &RawInputStore{
		buttons: make(map[string]bool),
		axes:    make(map[string]float64),
		pairs:   make(map[string][2]float64),
		triples: make(map[string][3]float64),
	}
}

// UpdateKeyboardKey records a keyboard key's pressed state.
func (s *RawInputStore) UpdateKeyboardKey(name string, pressed bool) {
	s.setButton(Key(name).Hash(), pressed)
}

// UpdateMouseButton records a mouse button's pressed state.
func (s *RawInputStore) UpdateMouseButton(btn MouseButton, pressed bool) {
	s.setButton(Mouse(btn).Hash(), pressed)
}

// UpdateMouseWheel records the scalar wheel delta for this frame.
func (s *RawInputStore) UpdateMouseWheel(delta float64) {
	s.axes[MouseWheel().Hash()] = delta
}

// UpdateMouseWheelVector records the two-dimensional wheel delta.
func (s *RawInputStore) UpdateMouseWheelVector(x, y float64) {
	s.pairs[MouseWheelVector().Hash()] = [2]float64{x, y}
}

// UpdateGamepadButton records a gamepad button's digital pressed state.
func (s *RawInputStore) UpdateGamepadButton(name string, pressed bool) {
	s.setButton(GamepadButton(name).Hash(), pressed)
}

// UpdateGamepadButtonValue records an analog button (trigger) magnitude.
// The button counts as pressed while the magnitude is non-zero.
func (s *RawInputStore) UpdateGamepadButtonValue(name string, magnitude float64) {
	hash := GamepadButton(name).Hash()
	s.buttons[hash] = magnitude != 0
	s.axes[hash] = magnitude
}

// UpdateGamepadStickLeft records the left stick vector. The z component is
// kept for triple-axis consumers; dual-axis reads see only x and y.
func (s *RawInputStore) UpdateGamepadStickLeft(x, y, z float64) {
	s.updateStick(StickLeftSide, x, y, z)
}

// UpdateGamepadStickRight records the right stick vector.
func (s *RawInputStore) UpdateGamepadStickRight(x, y, z float64) {
	s.updateStick(StickRightSide, x, y, z)
}

func (s *RawInputStore) updateStick(side StickSide, x, y, z float64) {
	hash := GamepadStick(side).Hash()
	s.pairs[hash] = [2]float64{x, y}
	s.triples[hash] = [3]float64{x, y, z}
}

func (s *RawInputStore) setButton(hash string, pressed bool) {
	s.buttons[hash] = pressed
	if pressed {
		s.axes[hash] = 1
	} else {
		s.axes[hash] = 0
	}
}

// Pressed reports the recorded pressed state for an atomic input hash.
func (s *RawInputStore) Pressed(hash string) bool {
	if s == nil {
		return false
	}
	return s.buttons[hash]
}

// Value returns the recorded scalar value for an atomic input hash.
func (s *RawInputStore) Value(hash string) float64 {
	if s == nil {
		return 0
	}
	return s.axes[hash]
}

// DualAxisValue returns the recorded axis pair for an atomic input hash.
func (s *RawInputStore) DualAxisValue(hash string) (float64, float64) {
	if s == nil {
		return 0, 0
	}
	pair := s.pairs[hash]
	return pair[0], pair[1]
}

// TripleAxisValue returns the recorded axis triple for an atomic input hash.
func (s *RawInputStore) TripleAxisValue(hash string) (float64, float64, float64) {
	if s == nil {
		return 0, 0, 0
	}
	t := s.triples[hash]
	return t[0], t[1], t[2]
}

// Size returns the number of distinct input hashes with any recorded value.
func (s *RawInputStore) Size() int {
	if s == nil {
		return 0
	}
	seen := make(map[string]struct{}, len(s.buttons)+len(s.axes)+len(s.pairs))
	for h := range s.buttons {
		seen[h] = struct{}{}
	}
	for h := range s.axes {
		seen[h] = struct{}{}
	}
	for h := range s.pairs {
		seen[h] = struct{}{}
	}
	for h := range s.triples {
		seen[h] = struct{}{}
	}
	return len(seen)
}

// Clear drops every recorded value. Collectors call it at the top of a frame
// before repopulating, or on focus loss to release stuck inputs.
func (s *RawInputStore) Clear() {
	if s == nil {
		return
	}
	clear(s.buttons)
	clear(s.axes)
	clear(s.pairs)
	clear(s.triples)
}
