package inputmap

import (
	"math"
	"testing"

	"github.com/milk9111/actionmap/action"
	"github.com/milk9111/actionmap/input"
)

func TestInsertRemove(t *testing.T) {
	t.Run("duplicate_insert_is_idempotent", func(t *testing.T) {
		m := NewInputMap[action.Named]()
		m.Insert("jump", input.Key("Space"))
		m.Insert("jump", input.Key("Space"))
		if got := len(m.Inputs("jump")); got != 1 {
			t.Fatalf("expected 1 bound input, got %d", got)
		}
	})

	t.Run("remove_keeps_indices_consistent", func(t *testing.T) {
		m := NewInputMap[action.Named]()
		m.Insert("jump", input.Key("Space"))
		m.Insert("jump", input.GamepadButton("south"))
		m.Remove("jump", input.Key("Space"))
		inputs := m.Inputs("jump")
		if len(inputs) != 1 || inputs[0].Hash() != "pad:south" {
			t.Fatalf("unexpected inputs after remove: %v", inputs)
		}
	})

	t.Run("removing_last_input_drops_action", func(t *testing.T) {
		m := NewInputMap[action.Named]()
		m.Insert("jump", input.Key("Space"))
		m.Remove("jump", input.Key("Space"))
		if m.Len() != 0 {
			t.Fatalf("expected empty map, got %d actions", m.Len())
		}
	})

	t.Run("registration_order_is_stable", func(t *testing.T) {
		m := NewInputMap[action.Named]()
		m.Insert("c", input.Key("C"))
		m.Insert("a", input.Key("A"))
		m.Insert("b", input.Key("B"))
		acts := m.Actions()
		want := []action.Named{"c", "a", "b"}
		for i, act := range acts {
			if act != want[i] {
				t.Fatalf("actions[%d] = %q, want %q", i, act, want[i])
			}
		}
	})
}

func TestMergeDeviceScope(t *testing.T) {
	cases := []struct {
		name    string
		devA    string
		devB    string
		wantDev string
	}{
		{"same_device_kept", "gamepad:0", "gamepad:0", "gamepad:0"},
		{"different_devices_degrade_to_generic", "gamepad:0", "gamepad:1", ""},
		{"scoped_and_generic_degrade", "gamepad:0", "", ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := NewInputMap[action.Named]()
			a.SetDevice(c.devA)
			a.Insert("jump", input.Key("Space"))

			b := NewInputMap[action.Named]()
			b.SetDevice(c.devB)
			b.Insert("fire", input.Mouse(input.MouseLeft))

			a.Merge(b)
			if a.Device() != c.wantDev {
				t.Fatalf("device = %q, want %q", a.Device(), c.wantDev)
			}
			if a.Len() != 2 {
				t.Fatalf("merged map should hold both actions, got %d", a.Len())
			}
		})
	}
}

func TestSetDeadZone(t *testing.T) {
	m := NewInputMap[action.Named]()
	for _, bad := range []float64{-0.1, math.NaN(), math.Inf(1)} {
		if err := m.SetDeadZone(bad); err == nil {
			t.Fatalf("SetDeadZone(%v) should fail", bad)
		}
	}
	if err := m.SetDeadZone(0.2); err != nil {
		t.Fatalf("SetDeadZone(0.2): %v", err)
	}
	if m.DeadZone() != 0.2 {
		t.Fatalf("dead zone = %v, want 0.2", m.DeadZone())
	}
}

func TestProcessActions(t *testing.T) {
	t.Run("button_press_and_edges", func(t *testing.T) {
		m := NewInputMap[action.Named]()
		m.Insert("jump", input.Key("Space"))
		store := input.NewRawInputStore()

		store.UpdateKeyboardKey("Space", true)
		processed, _ := m.ProcessActions(store, nil)
		state := processed["jump"]
		if !state.Pressed || !state.JustPressed || state.JustReleased {
			t.Fatalf("press frame: %+v", state)
		}
		if state.Value != 1 {
			t.Fatalf("button value = %v, want 1", state.Value)
		}

		processed2, _ := m.ProcessActions(store, processed)
		state = processed2["jump"]
		if !state.Pressed || state.JustPressed {
			t.Fatalf("hold frame: %+v", state)
		}

		store.UpdateKeyboardKey("Space", false)
		processed3, _ := m.ProcessActions(store, processed2)
		state = processed3["jump"]
		if state.Pressed || !state.JustReleased {
			t.Fatalf("release frame: %+v", state)
		}
	})

	t.Run("dead_zone_boundary_is_strict", func(t *testing.T) {
		m := NewInputMap[action.Named]()
		m.Insert("zoom", input.MouseWheel())
		store := input.NewRawInputStore()

		store.UpdateMouseWheel(0.01)
		processed, _ := m.ProcessActions(store, nil)
		if processed["zoom"].Pressed {
			t.Fatalf("value at exactly the dead zone must not count as pressed")
		}

		store.UpdateMouseWheel(0.011)
		processed, _ = m.ProcessActions(store, nil)
		if !processed["zoom"].Pressed {
			t.Fatalf("value just above the dead zone must count as pressed")
		}
		if processed["zoom"].Value != 0.011 {
			t.Fatalf("axis value = %v, want 0.011", processed["zoom"].Value)
		}
	})

	t.Run("dual_axis_dead_zone_and_pair", func(t *testing.T) {
		m := NewInputMap[action.Named]()
		m.Insert("move", input.GamepadStick(input.StickLeftSide))
		store := input.NewRawInputStore()

		store.UpdateGamepadStickLeft(0.005, 0.005, 0)
		processed, _ := m.ProcessActions(store, nil)
		if processed["move"].Pressed {
			t.Fatalf("magnitude below dead zone should not claim the input")
		}

		store.UpdateGamepadStickLeft(0.6, -0.8, 0)
		processed, _ = m.ProcessActions(store, nil)
		state := processed["move"]
		if !state.Pressed || !state.HasAxisPair {
			t.Fatalf("stick should satisfy: %+v", state)
		}
		if state.AxisPairX != 0.6 || state.AxisPairY != -0.8 {
			t.Fatalf("pair = (%v, %v)", state.AxisPairX, state.AxisPairY)
		}
		if math.Abs(state.Value-1.0) > 1e-9 {
			t.Fatalf("value = %v, want magnitude 1", state.Value)
		}
	})

	t.Run("value_is_max_magnitude_not_sum", func(t *testing.T) {
		m := NewInputMap[action.Named]()
		m.Insert("throttle", input.GamepadButton("leftTrigger"))
		m.Insert("throttle", input.GamepadButton("rightTrigger"))
		store := input.NewRawInputStore()
		store.UpdateGamepadButtonValue("leftTrigger", 0.3)
		store.UpdateGamepadButtonValue("rightTrigger", 0.7)

		processed, _ := m.ProcessActions(store, nil)
		if v := processed["throttle"].Value; v != 0.7 {
			t.Fatalf("value = %v, want max 0.7", v)
		}
	})

	t.Run("consumed_input_exclusivity_is_deterministic", func(t *testing.T) {
		m := NewInputMap[action.Named]()
		m.Insert("first", input.Key("Space"))
		m.Insert("second", input.Key("Space"))
		store := input.NewRawInputStore()
		store.UpdateKeyboardKey("Space", true)

		for i := 0; i < 10; i++ {
			processed, consumed := m.ProcessActions(store, nil)
			if !processed["first"].Pressed {
				t.Fatalf("iteration %d: first-registered action must win the input", i)
			}
			if processed["second"].Pressed {
				t.Fatalf("iteration %d: consumed input must not drive a second action", i)
			}
			if _, ok := consumed["key:Space"]; !ok {
				t.Fatalf("iteration %d: input should be marked consumed", i)
			}
		}
	})

	t.Run("chord_and_plain_key_both_fire_before_resolution", func(t *testing.T) {
		m := NewInputMap[action.Named]()
		m.Insert("type_s", input.Key("S"))
		m.Insert("save", input.Chord(input.Key("LeftControl"), input.Key("S")))
		store := input.NewRawInputStore()
		store.UpdateKeyboardKey("LeftControl", true)
		store.UpdateKeyboardKey("S", true)

		processed, _ := m.ProcessActions(store, nil)
		if !processed["type_s"].Pressed || !processed["save"].Pressed {
			t.Fatalf("distinct input hashes must both fire at the processing stage: %+v", processed)
		}
	})
}
