package profile

import (
	"fmt"
	"strings"

	"github.com/milk9111/actionmap/input"
)

// ParseInput turns one input descriptor string into a UserInput.
//
// Atomic descriptors:
//
//	Space, key:LeftControl            keyboard keys (bare names are keys)
//	mouse:left, mouse:right, mouse:middle
//	wheel, wheelvec
//	pad:south, pad:start, ...         standard-layout gamepad buttons
//	stick:left, stick:right
//
// Composite descriptors reference atoms:
//
//	chord:LeftControl+S
//	dpad:W,S,A,D                      up, down, left, right
//	vaxis:S,W                         negative, positive
func ParseInput(desc string) (input.UserInput, error) {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return input.UserInput{}, fmt.Errorf("empty input descriptor")
	}

	prefix, rest, hasPrefix := strings.Cut(desc, ":")
	if !hasPrefix {
		switch desc {
		case "wheel":
			return input.MouseWheel(), nil
		case "wheelvec":
			return input.MouseWheelVector(), nil
		default:
			return input.Key(desc), nil
		}
	}

	switch prefix {
	case "key":
		if rest == "" {
			return input.UserInput{}, fmt.Errorf("empty key name in %q", desc)
		}
		return input.Key(rest), nil
	case "mouse":
		switch rest {
		case "left":
			return input.Mouse(input.MouseLeft), nil
		case "right":
			return input.Mouse(input.MouseRight), nil
		case "middle":
			return input.Mouse(input.MouseMiddle), nil
		}
		return input.UserInput{}, fmt.Errorf("unknown mouse button %q", rest)
	case "pad":
		if rest == "" {
			return input.UserInput{}, fmt.Errorf("empty gamepad button in %q", desc)
		}
		return input.GamepadButton(rest), nil
	case "stick":
		switch rest {
		case "left":
			return input.GamepadStick(input.StickLeftSide), nil
		case "right":
			return input.GamepadStick(input.StickRightSide), nil
		}
		return input.UserInput{}, fmt.Errorf("unknown stick %q", rest)
	case "chord":
		parts, err := parseAtoms(strings.Split(rest, "+"), desc)
		if err != nil {
			return input.UserInput{}, err
		}
		if len(parts) < 2 {
			return input.UserInput{}, fmt.Errorf("chord %q needs at least two inputs", desc)
		}
		return input.Chord(parts...), nil
	case "dpad":
		parts, err := parseAtoms(strings.Split(rest, ","), desc)
		if err != nil {
			return input.UserInput{}, err
		}
		if len(parts) != 4 {
			return input.UserInput{}, fmt.Errorf("dpad %q needs up,down,left,right", desc)
		}
		return input.VirtualDPad(parts[0], parts[1], parts[2], parts[3]), nil
	case "vaxis":
		parts, err := parseAtoms(strings.Split(rest, ","), desc)
		if err != nil {
			return input.UserInput{}, err
		}
		if len(parts) != 2 {
			return input.UserInput{}, fmt.Errorf("vaxis %q needs negative,positive", desc)
		}
		return input.VirtualAxis(parts[0], parts[1]), nil
	}
	return input.UserInput{}, fmt.Errorf("unknown input descriptor %q", desc)
}

func parseAtoms(descs []string, parent string) ([]input.UserInput, error) {
	parts := make([]input.UserInput, 0, len(descs))
	for _, d := range descs {
		in, err := ParseInput(d)
		if err != nil {
			return nil, fmt.Errorf("in %q: %w", parent, err)
		}
		switch in.Kind() {
		case input.KindChord, input.KindVirtualDPad, input.KindVirtualAxis:
			return nil, fmt.Errorf("in %q: composite inputs cannot nest", parent)
		}
		parts = append(parts, in)
	}
	return parts, nil
}
