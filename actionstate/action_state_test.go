package actionstate

import (
	"testing"
	"time"

	"github.com/milk9111/actionmap/action"
	"github.com/milk9111/actionmap/inputmap"
)

const step = time.Second / 60

var jump = action.Named("jump")

func pressed(value float64) inputmap.ProcessedActionState {
	return inputmap.ProcessedActionState{Pressed: true, Value: value}
}

func released() inputmap.ProcessedActionState {
	return inputmap.ProcessedActionState{}
}

func newJumpState() *ActionState[action.Named] {
	s := NewActionState[action.Named]()
	s.Register(jump)
	return s
}

func TestEdgeSequence(t *testing.T) {
	s := newJumpState()

	frames := []struct {
		name             string
		in               inputmap.ProcessedActionState
		wantPressed      bool
		wantJustPressed  bool
		wantJustReleased bool
	}{
		{"press", pressed(1), true, true, false},
		{"hold", pressed(1), true, false, false},
		{"release", released(), false, false, true},
	}

	for _, f := range frames {
		s.Update(map[string]inputmap.ProcessedActionState{"jump": f.in})
		if got := s.Pressed(jump); got != f.wantPressed {
			t.Fatalf("%s: pressed = %v, want %v", f.name, got, f.wantPressed)
		}
		if got := s.JustPressed(jump); got != f.wantJustPressed {
			t.Fatalf("%s: justPressed = %v, want %v", f.name, got, f.wantJustPressed)
		}
		if got := s.JustReleased(jump); got != f.wantJustReleased {
			t.Fatalf("%s: justReleased = %v, want %v", f.name, got, f.wantJustReleased)
		}
		s.Tick(step)
	}
}

func TestTickAtRestIsIdempotent(t *testing.T) {
	s := newJumpState()
	s.Update(map[string]inputmap.ProcessedActionState{"jump": pressed(0.5)})
	s.Tick(step)

	wantValue := s.Value(jump)
	for i := 0; i < 5; i++ {
		s.Tick(step)
		if s.JustPressed(jump) || s.JustReleased(jump) {
			t.Fatalf("tick %d: just-flags must stay cleared", i)
		}
		if !s.Pressed(jump) || s.Value(jump) != wantValue {
			t.Fatalf("tick %d: pressed/value must be unchanged", i)
		}
	}
}

func TestHeldDuration(t *testing.T) {
	s := newJumpState()
	s.Update(map[string]inputmap.ProcessedActionState{"jump": pressed(1)})
	for i := 0; i < 3; i++ {
		s.Tick(step)
		s.Update(map[string]inputmap.ProcessedActionState{"jump": pressed(1)})
	}
	if got := s.HeldDuration(jump); got != 3*step {
		t.Fatalf("held = %v, want %v", got, 3*step)
	}

	// A fresh press restarts the counter.
	s.Update(map[string]inputmap.ProcessedActionState{"jump": released()})
	s.Tick(step)
	s.Update(map[string]inputmap.ProcessedActionState{"jump": pressed(1)})
	if got := s.HeldDuration(jump); got != 0 {
		t.Fatalf("held after re-press = %v, want 0", got)
	}
}

func TestDualBufferIsolation(t *testing.T) {
	s := newJumpState()

	// Press while the Update buffer is live.
	s.Update(map[string]inputmap.ProcessedActionState{"jump": pressed(1)})
	if !s.Pressed(jump) {
		t.Fatalf("update buffer should see the press")
	}

	// The FixedUpdate buffer starts neutral and progresses independently.
	s.SwapToFixedUpdateState()
	if s.Pressed(jump) {
		t.Fatalf("fixed-update buffer must start released")
	}
	s.Update(map[string]inputmap.ProcessedActionState{"jump": pressed(1)})
	if !s.JustPressed(jump) {
		t.Fatalf("fixed-update buffer must see its own edge")
	}
	s.Tick(step)
	s.Update(map[string]inputmap.ProcessedActionState{"jump": released()})

	// Swapping back shows the Update buffer untouched.
	s.SwapToUpdateState()
	if !s.Pressed(jump) {
		t.Fatalf("update buffer must be unaffected by fixed-update writes")
	}
	if !s.JustPressed(jump) {
		t.Fatalf("update buffer edge must not be consumed by the other clock")
	}
}

func TestLegacySwapAliases(t *testing.T) {
	s := newJumpState()
	s.Update(map[string]inputmap.ProcessedActionState{"jump": pressed(1)})

	s.SwapToFixedUpdate()
	if s.Pressed(jump) {
		t.Fatalf("legacy alias must behave like SwapToFixedUpdateState")
	}
	s.SwapToUpdate()
	if !s.Pressed(jump) {
		t.Fatalf("legacy alias must behave like SwapToUpdateState")
	}
}

func TestReset(t *testing.T) {
	s := newJumpState()
	s.Update(map[string]inputmap.ProcessedActionState{"jump": pressed(1)})
	s.SwapToFixedUpdateState()
	s.Update(map[string]inputmap.ProcessedActionState{"jump": pressed(1)})
	s.Reset()

	if s.Pressed(jump) {
		t.Fatalf("fixed buffer must be cleared by reset")
	}
	s.SwapToUpdateState()
	if s.Pressed(jump) {
		t.Fatalf("update buffer must be cleared by reset")
	}
}

func TestDisableEnable(t *testing.T) {
	s := newJumpState()
	s.Update(map[string]inputmap.ProcessedActionState{"jump": pressed(0.75)})

	s.Disable(jump)
	if s.Pressed(jump) || s.Value(jump) != 0 {
		t.Fatalf("disabled action must report neutral")
	}
	x, y := s.AxisPair(jump)
	if x != 0 || y != 0 {
		t.Fatalf("disabled action must report a zero pair")
	}

	// Buffers keep accumulating underneath.
	s.Update(map[string]inputmap.ProcessedActionState{"jump": pressed(0.9)})
	s.Enable(jump)
	if !s.Pressed(jump) || s.Value(jump) != 0.9 {
		t.Fatalf("enable must restore visibility without discarding state")
	}

	s.DisableAll()
	if s.Pressed(jump) {
		t.Fatalf("disableAll must hide every action")
	}
	s.EnableAll()
	if !s.Pressed(jump) {
		t.Fatalf("enableAll must restore visibility")
	}
}

func TestUnknownActionReadsNeutral(t *testing.T) {
	s := NewActionState[action.Named]()
	ghost := action.Named("ghost")
	if s.Pressed(ghost) || s.JustPressed(ghost) || s.JustReleased(ghost) {
		t.Fatalf("unknown action must read released")
	}
	if s.Value(ghost) != 0 || s.HeldDuration(ghost) != 0 {
		t.Fatalf("unknown action must read zero")
	}
	x, y, z := s.AxisTriple(ghost)
	if x != 0 || y != 0 || z != 0 {
		t.Fatalf("unknown action must read a zero triple")
	}
}

func TestPressReleaseByHash(t *testing.T) {
	s := newJumpState()

	if s.Press("ghost", 1) {
		t.Fatalf("pressing an unregistered hash must be skipped")
	}
	if !s.Press("jump", 0.5) {
		t.Fatalf("press on a registered hash must apply")
	}
	if !s.JustPressed(jump) || s.Value(jump) != 0.5 {
		t.Fatalf("press must derive the just-pressed edge")
	}

	s.Tick(step)
	if !s.Release("jump") {
		t.Fatalf("release on a registered hash must apply")
	}
	if !s.JustReleased(jump) || s.Pressed(jump) {
		t.Fatalf("release must derive the just-released edge")
	}
}
