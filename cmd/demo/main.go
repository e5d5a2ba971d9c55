// Command demo is a minimal playable wiring of the whole pipeline: a
// profile-driven input map, clash resolution, dual-clock action state, a
// Chipmunk body pushed around by the resolved actions, and an optional
// websocket mirror of the action state.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/actionmap/action"
	"github.com/milk9111/actionmap/inputmap"
	"github.com/milk9111/actionmap/profile"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

const defaultProfile = `
clash_strategy: prioritize_largest
bindings:
  - action: save
    inputs: ["chord:LeftControl+S"]
  - action: jump
    inputs: [Space, "pad:south"]
  - action: move
    inputs: ["stick:left", "dpad:W,S,A,D"]
  - action: zoom
    inputs: [wheel]
`

func main() {
	profilePath := flag.String("profile", "", "binding profile yaml (built-in defaults when empty)")
	scriptPath := flag.String("script", "", "tengo input script driving the game instead of devices")
	listenAddr := flag.String("listen", "", "serve action-state mirror over websocket (e.g. :8080)")
	flag.Parse()

	prof, err := loadProfile(*profilePath)
	if err != nil {
		log.Fatal(err)
	}

	game, err := NewGame(prof, *scriptPath)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if *profilePath != "" {
		watchProfile(game, *profilePath)
	}
	if *listenAddr != "" {
		go serveMirror(game, *listenAddr)
	}

	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("actionmap demo")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func loadProfile(path string) (*profile.Profile, error) {
	if path == "" {
		return profile.Parse([]byte(defaultProfile))
	}
	return profile.Load(path)
}

func watchProfile(game *Game, path string) {
	watcher, err := profile.Watch(path)
	if err != nil {
		log.Printf("profile watch disabled: %v", err)
		return
	}
	go func() {
		for err := range watcher.Errors {
			log.Printf("profile reload: %v", err)
		}
	}()
	go func() {
		for prof := range watcher.Profiles {
			m, err := prof.Build()
			if err != nil {
				log.Printf("profile reload: %v", err)
				continue
			}
			strategy, _ := prof.Strategy()
			game.Rebind(m, strategy, diffEpsilon(prof))
			log.Printf("rebound from %s", path)
		}
	}()
}

// demo action identities, matching the default profile.
var (
	actSave = action.Named("save")
	actJump = action.Named("jump")
	actMove = action.Named("move")
	actZoom = action.Named("zoom")
)

func buildMap(prof *profile.Profile) (*inputmap.InputMap[action.Named], inputmap.ClashStrategy, error) {
	m, err := prof.Build()
	if err != nil {
		return nil, 0, err
	}
	strategy, err := prof.Strategy()
	if err != nil {
		return nil, 0, err
	}
	return m, strategy, nil
}
