package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/actionmap/action"
	"github.com/milk9111/actionmap/actionstate"
	"github.com/milk9111/actionmap/collect"
	"github.com/milk9111/actionmap/driver"
	"github.com/milk9111/actionmap/input"
	"github.com/milk9111/actionmap/inputmap"
	"github.com/milk9111/actionmap/profile"
	"github.com/milk9111/actionmap/summary"
)

const (
	fixedStep = time.Second / 50
	gravity   = 900.0
	moveSpeed = 260.0
	jumpSpeed = 420.0
)

// Game runs the per-frame pipeline: poll devices into the raw store,
// process the map, suppress clash losers, feed the action state, then let
// the variable Update clock and the fixed physics clock each consume their
// own buffered view.
type Game struct {
	mu sync.Mutex

	store    *input.RawInputStore
	inputs   *inputmap.InputMap[action.Named]
	detector *inputmap.ClashDetector
	strategy inputmap.ClashStrategy
	state    *actionstate.ActionState[action.Named]
	prev     map[string]inputmap.ProcessedActionState

	collector *collect.Collector
	script    *driver.Driver
	frame     int

	space       *cp.Space
	player      *cp.Body
	accumulator time.Duration
	lastTick    time.Time

	epsilon float64

	zoom  float64
	saves int
}

// NewGame builds the pipeline from a profile. When scriptPath is set a
// tengo driver replaces the device collector.
func NewGame(prof *profile.Profile, scriptPath string) (*Game, error) {
	m, strategy, err := buildMap(prof)
	if err != nil {
		return nil, err
	}

	g := &Game{
		store:    input.NewRawInputStore(),
		state:    actionstate.NewActionState[action.Named](),
		epsilon:  diffEpsilon(prof),
		zoom:     1,
		lastTick: time.Now(),
	}
	g.setBindings(m, strategy)

	if scriptPath != "" {
		src, err := os.ReadFile(scriptPath)
		if err != nil {
			return nil, fmt.Errorf("read script %s: %w", scriptPath, err)
		}
		g.script, err = driver.New(g.store, src)
		if err != nil {
			return nil, err
		}
	} else {
		g.collector, err = collect.NewCollector(g.store, allInputs(m)...)
		if err != nil {
			return nil, err
		}
	}

	g.space = cp.NewSpace()
	g.space.SetGravity(cp.Vector{X: 0, Y: gravity})

	ground := cp.NewStaticBody()
	groundShape := cp.NewSegment(ground, cp.Vector{X: 0, Y: baseHeight - 40}, cp.Vector{X: baseWidth, Y: baseHeight - 40}, 4)
	groundShape.SetFriction(1)
	g.space.AddBody(ground)
	g.space.AddShape(groundShape)

	g.player = cp.NewBody(1, cp.MomentForBox(1, 32, 32))
	g.player.SetPosition(cp.Vector{X: baseWidth / 2, Y: baseHeight / 2})
	playerShape := cp.NewBox(g.player, 32, 32, 0)
	playerShape.SetFriction(0.8)
	g.space.AddBody(g.player)
	g.space.AddShape(playerShape)

	return g, nil
}

func (g *Game) setBindings(m *inputmap.InputMap[action.Named], strategy inputmap.ClashStrategy) {
	g.inputs = m
	g.detector = m.ClashDetector()
	g.strategy = strategy
	g.prev = nil
	for _, act := range m.Actions() {
		g.state.Register(act)
	}
}

// Rebind swaps in a new input map, clash strategy, and diff epsilon at a
// frame boundary.
func (g *Game) Rebind(m *inputmap.InputMap[action.Named], strategy inputmap.ClashStrategy, epsilon float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.setBindings(m, strategy)
	g.epsilon = epsilon
	if g.collector != nil {
		collector, err := collect.NewCollector(g.store, allInputs(m)...)
		if err == nil {
			g.collector = collector
		}
	}
}

func diffEpsilon(prof *profile.Profile) float64 {
	if prof.Epsilon != nil {
		return *prof.Epsilon
	}
	return summary.Epsilon
}

func allInputs(m *inputmap.InputMap[action.Named]) []input.UserInput {
	var out []input.UserInput
	for _, act := range m.Actions() {
		out = append(out, m.Inputs(act)...)
	}
	return out
}

// Update is ebiten's variable-rate step. Device polling happens fully
// before the map reads the store.
func (g *Game) Update() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.frame++
	if g.script != nil {
		if err := g.script.Step(g.frame); err != nil {
			return err
		}
	} else {
		g.collector.Poll()
	}

	processed, _ := g.inputs.ProcessActions(g.store, g.prev)
	g.detector.SuppressLosers(processed, g.store, g.strategy)
	g.prev = processed

	now := time.Now()
	delta := now.Sub(g.lastTick)
	g.lastTick = now
	if delta > time.Second/4 {
		delta = time.Second / 4
	}

	// Update clock: variable-rate consumers read their own buffer.
	g.state.Update(processed)
	if g.state.JustPressed(actSave) {
		g.saves++
	}
	if wheel := g.state.Value(actZoom); wheel != 0 {
		g.zoom += wheel * 0.1
		if g.zoom < 0.25 {
			g.zoom = 0.25
		}
	}
	g.state.Tick(delta)

	// FixedUpdate clock: physics sees isolated edges at a fixed cadence.
	g.accumulator += delta
	for g.accumulator >= fixedStep {
		g.accumulator -= fixedStep
		g.state.SwapToFixedUpdateState()
		g.state.Update(processed)
		g.stepPhysics()
		g.state.Tick(fixedStep)
		g.state.SwapToUpdateState()
	}

	return nil
}

func (g *Game) stepPhysics() {
	moveX, _ := g.state.AxisPair(actMove)
	vel := g.player.Velocity()
	vel.X = moveX * moveSpeed
	if g.state.JustPressed(actJump) {
		vel.Y = -jumpSpeed
	}
	g.player.SetVelocity(vel.X, vel.Y)
	g.space.Step(fixedStep.Seconds())
}

// Draw renders the scene and a state readout.
func (g *Game) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	pos := g.player.Position()
	moveX, moveY := g.state.AxisPair(actMove)
	status := fmt.Sprintf(
		"FPS: %.1f\npos: (%.0f, %.0f)\nmove: (%.2f, %.2f)\njump held: %v (%.2fs)\nsaves: %d\nzoom: %.2f",
		ebiten.ActualFPS(), pos.X, pos.Y, moveX, moveY,
		g.state.Pressed(actJump), g.state.HeldDuration(actJump).Seconds(), g.saves, g.zoom,
	)
	g.mu.Unlock()

	ebitenutil.DebugPrint(screen, status)
	ebitenutil.DrawRect(screen, pos.X-16, pos.Y-16, 32, 32, playerColor)
	ebitenutil.DrawRect(screen, 0, baseHeight-44, baseWidth, 8, groundColor)
}

// Layout reports the fixed logical size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

// Close releases resources owned by the game.
func (g *Game) Close() {
	// The cp space and stores are garbage collected; nothing to release yet.
}
