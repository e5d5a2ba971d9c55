package main

import (
	"image/color"
	"log"
	"net/http"
	"time"

	"github.com/milk9111/actionmap/netsync"
	"github.com/milk9111/actionmap/summary"
)

var (
	playerColor = color.RGBA{R: 0x5a, G: 0xc8, B: 0xfa, A: 0xff}
	groundColor = color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
)

// serveMirror publishes the game's action state to every websocket client,
// diffing between ticks with periodic keyframes.
func serveMirror(game *Game, addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/actions", func(w http.ResponseWriter, r *http.Request) {
		conn, err := netsync.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("mirror upgrade: %v", err)
			return
		}
		defer conn.Close()

		sender := netsync.NewSender(conn, 60)
		ticker := time.NewTicker(time.Second / 30)
		defer ticker.Stop()
		for range ticker.C {
			game.mu.Lock()
			snap := summary.FromActionState(game.state)
			sender.SetEpsilon(game.epsilon)
			game.mu.Unlock()
			if err := sender.Send(snap); err != nil {
				log.Printf("mirror send: %v", err)
				return
			}
		}
	})

	log.Printf("serving action mirror on %s/actions", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("mirror server: %v", err)
	}
}
