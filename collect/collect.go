// Package collect is the device-polling collaborator: once per frame it
// reads ebiten's keyboard, mouse, and gamepad state into a RawInputStore.
// Nothing above this package ever touches the platform layer.
package collect

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/actionmap/input"
)

// Collector polls exactly the atomic inputs that appear in some binding.
// Build it from the decomposed inputs of every map it feeds.
type Collector struct {
	store *input.RawInputStore

	keys     map[string]ebiten.Key
	mouse    map[input.MouseButton]bool
	buttons  map[string]ebiten.StandardGamepadButton
	triggers map[string]ebiten.StandardGamepadButton
	wheel    bool
	wheelVec bool
	left     bool
	right    bool

	gamepad    ebiten.GamepadID
	hasGamepad bool
}

// NewCollector creates a collector feeding store, polling the atomic
// constituents of the given inputs. Unknown key or button names fail here
// so a typo in a binding surfaces at startup, not as a dead control.
func NewCollector(store *input.RawInputStore, inputs ...input.UserInput) (*Collector, error) {
	c := &Collector{
		store:    store,
		keys:     make(map[string]ebiten.Key),
		mouse:    make(map[input.MouseButton]bool),
		buttons:  make(map[string]ebiten.StandardGamepadButton),
		triggers: make(map[string]ebiten.StandardGamepadButton),
	}
	for _, in := range inputs {
		for _, atom := range in.Decompose() {
			if err := c.watch(atom); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

func (c *Collector) watch(atom input.UserInput) error {
	hash := atom.Hash()
	switch atom.Kind() {
	case input.KindKey:
		name := strings.TrimPrefix(hash, "key:")
		key, ok := keyNameMap[name]
		if !ok {
			return fmt.Errorf("collect: unknown key name %q", name)
		}
		c.keys[name] = key
	case input.KindMouseButton:
		switch strings.TrimPrefix(hash, "mouse:") {
		case "left":
			c.mouse[input.MouseLeft] = true
		case "right":
			c.mouse[input.MouseRight] = true
		case "middle":
			c.mouse[input.MouseMiddle] = true
		}
	case input.KindMouseWheel:
		c.wheel = true
	case input.KindMouseWheelVector:
		c.wheelVec = true
	case input.KindGamepadButton:
		name := strings.TrimPrefix(hash, "pad:")
		if btn, ok := padButtonMap[name]; ok {
			c.buttons[name] = btn
			return nil
		}
		if btn, ok := padTriggerMap[name]; ok {
			c.triggers[name] = btn
			return nil
		}
		return fmt.Errorf("collect: unknown gamepad button %q", name)
	case input.KindGamepadStick:
		if strings.TrimPrefix(hash, "stick:") == "right" {
			c.right = true
		} else {
			c.left = true
		}
	}
	return nil
}

// Poll refreshes the store from the current device state. Call it once at
// the top of every frame, before any map processing.
func (c *Collector) Poll() {
	c.store.Clear()

	for name, key := range c.keys {
		c.store.UpdateKeyboardKey(name, ebiten.IsKeyPressed(key))
	}

	for btn := range c.mouse {
		c.store.UpdateMouseButton(btn, ebiten.IsMouseButtonPressed(ebitenMouseButton(btn)))
	}

	if c.wheel || c.wheelVec {
		x, y := ebiten.Wheel()
		if c.wheel {
			c.store.UpdateMouseWheel(y)
		}
		if c.wheelVec {
			c.store.UpdateMouseWheelVector(x, y)
		}
	}

	id, ok := c.pickGamepad()
	if !ok {
		return
	}

	for name, btn := range c.buttons {
		c.store.UpdateGamepadButton(name, ebiten.IsStandardGamepadButtonPressed(id, btn))
	}
	for name, btn := range c.triggers {
		c.store.UpdateGamepadButtonValue(name, ebiten.StandardGamepadButtonValue(id, btn))
	}

	// Ebiten's vertical stick axes grow downward; flip so +Y is up, matching
	// the virtual dpad convention.
	if c.left {
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		c.store.UpdateGamepadStickLeft(x, -y, 0)
	}
	if c.right {
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		c.store.UpdateGamepadStickRight(x, -y, 0)
	}
}

// SetGamepad pins the collector to one gamepad instead of the first
// connected one.
func (c *Collector) SetGamepad(id ebiten.GamepadID) {
	c.gamepad = id
	c.hasGamepad = true
}

func (c *Collector) pickGamepad() (ebiten.GamepadID, bool) {
	if c.hasGamepad {
		return c.gamepad, true
	}
	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		return ids[0], true
	}
	return 0, false
}

func ebitenMouseButton(btn input.MouseButton) ebiten.MouseButton {
	switch btn {
	case input.MouseRight:
		return ebiten.MouseButtonRight
	case input.MouseMiddle:
		return ebiten.MouseButtonMiddle
	default:
		return ebiten.MouseButtonLeft
	}
}
