package collect

import "github.com/hajimehoshi/ebiten/v2"

// keyNameMap maps the stable key names used in bindings and profiles to
// ebiten keys. Collectors and profiles share this vocabulary.
var keyNameMap = map[string]ebiten.Key{
	"A":            ebiten.KeyA,
	"B":            ebiten.KeyB,
	"C":            ebiten.KeyC,
	"D":            ebiten.KeyD,
	"E":            ebiten.KeyE,
	"F":            ebiten.KeyF,
	"G":            ebiten.KeyG,
	"H":            ebiten.KeyH,
	"I":            ebiten.KeyI,
	"J":            ebiten.KeyJ,
	"K":            ebiten.KeyK,
	"L":            ebiten.KeyL,
	"M":            ebiten.KeyM,
	"N":            ebiten.KeyN,
	"O":            ebiten.KeyO,
	"P":            ebiten.KeyP,
	"Q":            ebiten.KeyQ,
	"R":            ebiten.KeyR,
	"S":            ebiten.KeyS,
	"T":            ebiten.KeyT,
	"U":            ebiten.KeyU,
	"V":            ebiten.KeyV,
	"W":            ebiten.KeyW,
	"X":            ebiten.KeyX,
	"Y":            ebiten.KeyY,
	"Z":            ebiten.KeyZ,
	"0":            ebiten.Key0,
	"1":            ebiten.Key1,
	"2":            ebiten.Key2,
	"3":            ebiten.Key3,
	"4":            ebiten.Key4,
	"5":            ebiten.Key5,
	"6":            ebiten.Key6,
	"7":            ebiten.Key7,
	"8":            ebiten.Key8,
	"9":            ebiten.Key9,
	"Space":        ebiten.KeySpace,
	"Enter":        ebiten.KeyEnter,
	"Escape":       ebiten.KeyEscape,
	"Tab":          ebiten.KeyTab,
	"Backspace":    ebiten.KeyBackspace,
	"ArrowUp":      ebiten.KeyArrowUp,
	"ArrowDown":    ebiten.KeyArrowDown,
	"ArrowLeft":    ebiten.KeyArrowLeft,
	"ArrowRight":   ebiten.KeyArrowRight,
	"LeftShift":    ebiten.KeyShiftLeft,
	"RightShift":   ebiten.KeyShiftRight,
	"LeftControl":  ebiten.KeyControlLeft,
	"RightControl": ebiten.KeyControlRight,
	"LeftAlt":      ebiten.KeyAltLeft,
	"RightAlt":     ebiten.KeyAltRight,
	"Minus":        ebiten.KeyMinus,
	"Equal":        ebiten.KeyEqual,
	"Comma":        ebiten.KeyComma,
	"Period":       ebiten.KeyPeriod,
	"Slash":        ebiten.KeySlash,
	"Semicolon":    ebiten.KeySemicolon,
	"Quote":        ebiten.KeyQuote,
	"Home":         ebiten.KeyHome,
	"End":          ebiten.KeyEnd,
	"PageUp":       ebiten.KeyPageUp,
	"PageDown":     ebiten.KeyPageDown,
	"F1":           ebiten.KeyF1,
	"F2":           ebiten.KeyF2,
	"F3":           ebiten.KeyF3,
	"F4":           ebiten.KeyF4,
	"F5":           ebiten.KeyF5,
	"F6":           ebiten.KeyF6,
	"F7":           ebiten.KeyF7,
	"F8":           ebiten.KeyF8,
	"F9":           ebiten.KeyF9,
	"F10":          ebiten.KeyF10,
	"F11":          ebiten.KeyF11,
	"F12":          ebiten.KeyF12,
}

// padButtonMap maps standard-layout gamepad button names to ebiten's
// standard gamepad buttons.
var padButtonMap = map[string]ebiten.StandardGamepadButton{
	"south":         ebiten.StandardGamepadButtonRightBottom,
	"east":          ebiten.StandardGamepadButtonRightRight,
	"west":          ebiten.StandardGamepadButtonRightLeft,
	"north":         ebiten.StandardGamepadButtonRightTop,
	"dpadUp":        ebiten.StandardGamepadButtonLeftTop,
	"dpadDown":      ebiten.StandardGamepadButtonLeftBottom,
	"dpadLeft":      ebiten.StandardGamepadButtonLeftLeft,
	"dpadRight":     ebiten.StandardGamepadButtonLeftRight,
	"leftShoulder":  ebiten.StandardGamepadButtonFrontTopLeft,
	"rightShoulder": ebiten.StandardGamepadButtonFrontTopRight,
	"leftStick":     ebiten.StandardGamepadButtonLeftStick,
	"rightStick":    ebiten.StandardGamepadButtonRightStick,
	"back":          ebiten.StandardGamepadButtonCenterLeft,
	"start":         ebiten.StandardGamepadButtonCenterRight,
	"guide":         ebiten.StandardGamepadButtonCenterCenter,
}

// padTriggerMap maps analog trigger names to their standard buttons; their
// values are read as magnitudes instead of booleans.
var padTriggerMap = map[string]ebiten.StandardGamepadButton{
	"leftTrigger":  ebiten.StandardGamepadButtonFrontBottomLeft,
	"rightTrigger": ebiten.StandardGamepadButtonFrontBottomRight,
}
