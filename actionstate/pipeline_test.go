package actionstate

import (
	"testing"
	"time"

	"github.com/milk9111/actionmap/action"
	"github.com/milk9111/actionmap/input"
	"github.com/milk9111/actionmap/inputmap"
)

// Drives the full per-frame pipeline the way a game loop does: store →
// process → clash resolution → update → tick, with the fixed clock stepping
// between variable frames.
func TestFullPipeline(t *testing.T) {
	typeS := action.Named("type_s")
	save := action.Named("save")
	move := action.Named("move")

	m := inputmap.NewInputMap[action.Named]()
	m.Insert(typeS, input.Key("S"))
	m.Insert(save, input.Chord(input.Key("LeftControl"), input.Key("S")))
	m.Insert(move, input.VirtualDPad(input.Key("ArrowUp"), input.Key("ArrowDown"), input.Key("ArrowLeft"), input.Key("ArrowRight")))
	detector := m.ClashDetector()

	store := input.NewRawInputStore()
	state := NewActionState[action.Named]()
	for _, act := range m.Actions() {
		state.Register(act)
	}

	var prev map[string]inputmap.ProcessedActionState
	frame := func() {
		processed, _ := m.ProcessActions(store, prev)
		detector.SuppressLosers(processed, store, inputmap.PrioritizeLargest)
		prev = processed
		state.Update(processed)
	}

	// Frame 1: plain S types; the unsatisfied chord stays quiet.
	store.UpdateKeyboardKey("S", true)
	store.UpdateKeyboardKey("ArrowRight", true)
	frame()
	if !state.JustPressed(typeS) {
		t.Fatalf("frame 1: plain S must fire")
	}
	if state.Pressed(save) {
		t.Fatalf("frame 1: chord must not fire")
	}
	if x, _ := state.AxisPair(move); x != 1 {
		t.Fatalf("frame 1: dpad must report +X, got %v", x)
	}
	state.Tick(time.Second / 60)

	// Frame 2: Ctrl joins, the chord wins and plain S is suppressed.
	store.UpdateKeyboardKey("LeftControl", true)
	frame()
	if !state.JustPressed(save) {
		t.Fatalf("frame 2: chord must fire")
	}
	if state.Pressed(typeS) {
		t.Fatalf("frame 2: plain S must be suppressed by the chord")
	}
	if !state.JustReleased(typeS) {
		t.Fatalf("frame 2: suppression must read as a release edge")
	}
	if !state.Pressed(move) {
		t.Fatalf("frame 2: the disjoint dpad must be unaffected")
	}
	state.Tick(time.Second / 60)

	// A fixed step in between sees its own isolated view.
	state.SwapToFixedUpdateState()
	state.Update(prev)
	if !state.JustPressed(save) {
		t.Fatalf("fixed step: own buffer must see a fresh edge")
	}
	state.Tick(time.Second / 50)
	state.SwapToUpdateState()

	// Frame 3: everything released.
	store.Clear()
	frame()
	if !state.JustReleased(save) {
		t.Fatalf("frame 3: chord must release")
	}
	if state.Pressed(move) {
		t.Fatalf("frame 3: dpad must release")
	}
	state.Tick(time.Second / 60)
}
