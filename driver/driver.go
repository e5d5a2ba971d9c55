// Package driver feeds a RawInputStore from a tengo script instead of a
// physical device: bots, replay rigs, and deterministic integration tests
// press keys by emitting events per frame.
package driver

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/actionmap/input"
)

const driverEpilogue = `
__events = update(__frame)
`

// Driver runs a compiled input script once per frame. The script defines
// update(frame) returning a list of event maps:
//
//	{type: "key", name: "Space", pressed: true}
//	{type: "mouse", button: "left", pressed: true}
//	{type: "pad", name: "south", pressed: true}
//	{type: "stick", side: "left", x: 0.5, y: -1.0}
//	{type: "wheel", delta: 1.0}
type Driver struct {
	store    *input.RawInputStore
	compiled *tengo.Compiled
}

// New compiles an input script against the given store.
func New(store *input.RawInputStore, src []byte) (*Driver, error) {
	script := tengo.NewScript(append(append([]byte(nil), src...), []byte(driverEpilogue)...))
	script.SetImports(stdlib.GetModuleMap("math", "rand"))
	_ = script.Add("__frame", 0)
	_ = script.Add("__events", []interface{}{})

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("driver: compile script: %w", err)
	}
	return &Driver{store: store, compiled: compiled}, nil
}

// Step clears the store, runs the script for one frame, and writes the
// events it returned.
func (d *Driver) Step(frame int) error {
	d.store.Clear()
	if err := d.compiled.Set("__frame", frame); err != nil {
		return fmt.Errorf("driver: set frame: %w", err)
	}
	if err := d.compiled.Run(); err != nil {
		return fmt.Errorf("driver: frame %d: %w", frame, err)
	}
	for _, item := range d.compiled.Get("__events").Array() {
		event, ok := item.(map[string]interface{})
		if !ok {
			return fmt.Errorf("driver: frame %d: event is %T, want map", frame, item)
		}
		if err := d.apply(event); err != nil {
			return fmt.Errorf("driver: frame %d: %w", frame, err)
		}
	}
	return nil
}

func (d *Driver) apply(event map[string]interface{}) error {
	switch asString(event["type"]) {
	case "key":
		d.store.UpdateKeyboardKey(asString(event["name"]), asBool(event["pressed"]))
	case "mouse":
		btn, err := mouseButton(asString(event["button"]))
		if err != nil {
			return err
		}
		d.store.UpdateMouseButton(btn, asBool(event["pressed"]))
	case "pad":
		d.store.UpdateGamepadButton(asString(event["name"]), asBool(event["pressed"]))
	case "stick":
		x := asFloat(event["x"])
		y := asFloat(event["y"])
		z := asFloat(event["z"])
		if asString(event["side"]) == "right" {
			d.store.UpdateGamepadStickRight(x, y, z)
		} else {
			d.store.UpdateGamepadStickLeft(x, y, z)
		}
	case "wheel":
		d.store.UpdateMouseWheel(asFloat(event["delta"]))
	default:
		return fmt.Errorf("unknown event type %q", asString(event["type"]))
	}
	return nil
}

func mouseButton(name string) (input.MouseButton, error) {
	switch name {
	case "left":
		return input.MouseLeft, nil
	case "right":
		return input.MouseRight, nil
	case "middle":
		return input.MouseMiddle, nil
	}
	return 0, fmt.Errorf("unknown mouse button %q", name)
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}
