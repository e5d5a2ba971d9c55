package inputmap

import (
	"testing"

	"github.com/milk9111/actionmap/action"
	"github.com/milk9111/actionmap/input"
)

func chordCtrlSpace() input.UserInput {
	return input.Chord(input.Key("LeftControl"), input.Key("Space"))
}

func TestDoActionsClash(t *testing.T) {
	cases := []struct {
		name   string
		inputA input.UserInput
		inputB input.UserInput
		want   bool
	}{
		{"chord_overlaps_plain_key", chordCtrlSpace(), input.Key("Space"), true},
		{"disjoint_keys", input.Key("A"), input.Key("B"), false},
		{"identical_inputs_do_not_clash", input.Key("Space"), input.Key("Space"), false},
		{"chords_sharing_a_key", input.Chord(input.Key("LeftControl"), input.Key("S")), chordCtrlSpace(), true},
		{"dpad_overlaps_member_key", input.VirtualDPad(input.Key("W"), input.Key("S"), input.Key("A"), input.Key("D")), input.Key("S"), true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := NewClashDetector()
			d.RegisterAction(action.Named("a"), []input.UserInput{c.inputA})
			d.RegisterAction(action.Named("b"), []input.UserInput{c.inputB})
			if got := d.DoActionsClash(action.Named("a"), action.Named("b")); got != c.want {
				t.Fatalf("DoActionsClash = %v, want %v", got, c.want)
			}
		})
	}
}

func TestDetectClashes(t *testing.T) {
	m := NewInputMap[action.Named]()
	m.Insert("jump", input.Key("Space"))
	m.Insert("save", chordCtrlSpace())
	m.Insert("fire", input.Mouse(input.MouseLeft))

	clashes := m.ClashDetector().DetectClashes()
	if len(clashes) != 1 {
		t.Fatalf("expected 1 clash, got %d", len(clashes))
	}
	clash := clashes[0]
	if clash.ActionA != "jump" || clash.ActionB != "save" {
		t.Fatalf("clash pair = (%q, %q)", clash.ActionA, clash.ActionB)
	}
	if len(clash.OverlappingInputs) != 2 {
		t.Fatalf("expected both overlapping inputs recorded, got %d", len(clash.OverlappingInputs))
	}
}

func TestResolveClashesPrioritizeLargest(t *testing.T) {
	m := NewInputMap[action.Named]()
	m.Insert("jump", input.Key("Space"))
	m.Insert("save", chordCtrlSpace())
	d := m.ClashDetector()

	t.Run("chord_beats_plain_key", func(t *testing.T) {
		store := input.NewRawInputStore()
		store.UpdateKeyboardKey("LeftControl", true)
		store.UpdateKeyboardKey("Space", true)

		processed, _ := m.ProcessActions(store, nil)
		d.SuppressLosers(processed, store, PrioritizeLargest)
		if processed["jump"].Pressed || processed["jump"].JustPressed {
			t.Fatalf("plain binding must be suppressed while the chord is held: %+v", processed["jump"])
		}
		if !processed["save"].Pressed || !processed["save"].JustPressed {
			t.Fatalf("chord action must win: %+v", processed["save"])
		}
	})

	t.Run("plain_key_alone_fires", func(t *testing.T) {
		store := input.NewRawInputStore()
		store.UpdateKeyboardKey("Space", true)

		processed, _ := m.ProcessActions(store, nil)
		d.SuppressLosers(processed, store, PrioritizeLargest)
		if !processed["jump"].Pressed || !processed["jump"].JustPressed {
			t.Fatalf("plain binding must fire without the chord: %+v", processed["jump"])
		}
		if processed["save"].Pressed {
			t.Fatalf("chord must not fire on a partial hold")
		}
	})
}

func TestResolveClashesUseAll(t *testing.T) {
	m := NewInputMap[action.Named]()
	m.Insert("jump", input.Key("Space"))
	m.Insert("save", chordCtrlSpace())
	d := m.ClashDetector()

	store := input.NewRawInputStore()
	store.UpdateKeyboardKey("LeftControl", true)
	store.UpdateKeyboardKey("Space", true)

	processed, _ := m.ProcessActions(store, nil)
	d.SuppressLosers(processed, store, UseAll)
	if !processed["jump"].Pressed || !processed["save"].Pressed {
		t.Fatalf("UseAll must not suppress either action")
	}
}

func TestEqualSizeTieBreakFirstRegisteredWins(t *testing.T) {
	m := NewInputMap[action.Named]()
	m.Insert("copy", input.Chord(input.Key("LeftControl"), input.Key("C")))
	m.Insert("interrupt", input.Chord(input.Key("LeftControl"), input.Key("C"), input.Key("LeftShift")))
	d := m.ClashDetector()

	// Only Ctrl+C held: both chords decompose through Ctrl and C, but the
	// three-key chord is unsatisfied, so sizes compare 2 vs 0.
	store := input.NewRawInputStore()
	store.UpdateKeyboardKey("LeftControl", true)
	store.UpdateKeyboardKey("C", true)
	processed, _ := m.ProcessActions(store, nil)
	d.SuppressLosers(processed, store, PrioritizeLargest)
	if !processed["copy"].Pressed {
		t.Fatalf("satisfied chord must win over an unsatisfied larger one")
	}

	// Two equal-size chords over a shared key: registration order decides.
	m2 := NewInputMap[action.Named]()
	m2.Insert("second", input.Chord(input.Key("LeftControl"), input.Key("X")))
	m2.Insert("first", input.Chord(input.Key("LeftShift"), input.Key("X")))
	d2 := m2.ClashDetector()

	store2 := input.NewRawInputStore()
	store2.UpdateKeyboardKey("LeftControl", true)
	store2.UpdateKeyboardKey("LeftShift", true)
	store2.UpdateKeyboardKey("X", true)
	processed2, _ := m2.ProcessActions(store2, nil)
	d2.SuppressLosers(processed2, store2, PrioritizeLargest)
	if !processed2["second"].Pressed {
		t.Fatalf("earlier-registered action must win an equal-size clash")
	}
	if processed2["first"].Pressed {
		t.Fatalf("later-registered action must be suppressed on an equal-size clash")
	}
}
