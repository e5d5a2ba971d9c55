// Package netsync moves action state across a websocket boundary. Only the
// serialized summary snapshots and diff sequences ever cross the wire;
// actions, inputs, and bindings stay on their own side.
package netsync

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/milk9111/actionmap/action"
	"github.com/milk9111/actionmap/actionstate"
	"github.com/milk9111/actionmap/summary"
)

// MessageType discriminates wire envelopes.
type MessageType string

const (
	// MessageSummary carries a full keyframe snapshot.
	MessageSummary MessageType = "summary"
	// MessageDiffs carries an ordered diff sequence against the previous
	// acknowledged snapshot.
	MessageDiffs MessageType = "diffs"
)

// Envelope is the wire payload. Exactly one of Summary or Diffs is set,
// matching Type.
type Envelope struct {
	Type    MessageType                    `json:"type"`
	Tick    uint64                         `json:"tick"`
	Summary *summary.SummarizedActionState `json:"summary,omitempty"`
	Diffs   []summary.ActionDiff           `json:"diffs,omitempty"`
}

// Sender publishes one context's action state over a websocket connection,
// diffing consecutive snapshots and falling back to periodic keyframes so a
// receiver that missed messages can resynchronize.
type Sender struct {
	conn             *websocket.Conn
	prev             *summary.SummarizedActionState
	tick             uint64
	keyframeInterval uint64
	epsilon          float64
}

// NewSender wraps an established connection. Every keyframeInterval-th
// message is a full summary; zero disables keyframes after the first.
func NewSender(conn *websocket.Conn, keyframeInterval uint64) *Sender {
	return &Sender{conn: conn, keyframeInterval: keyframeInterval, epsilon: summary.Epsilon}
}

// SetEpsilon overrides the diff tolerance, typically from a profile's
// epsilon setting. Changes smaller than this never cross the wire.
func (s *Sender) SetEpsilon(epsilon float64) {
	s.epsilon = epsilon
}

// Send snapshots the state and transmits either a keyframe or the diffs
// against the previous snapshot. A tick with no changes sends nothing.
func (s *Sender) Send(state *summary.SummarizedActionState) error {
	s.tick++
	keyframe := s.prev == nil || (s.keyframeInterval > 0 && s.tick%s.keyframeInterval == 0)

	env := Envelope{Tick: s.tick}
	if keyframe {
		env.Type = MessageSummary
		env.Summary = state
	} else {
		diffs := state.GenerateDiffsEpsilon(s.prev, s.epsilon)
		if len(diffs) == 0 {
			s.prev = state
			return nil
		}
		env.Type = MessageDiffs
		env.Diffs = diffs
	}

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("netsync: marshal envelope: %w", err)
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("netsync: write: %w", err)
	}
	s.prev = state
	return nil
}

// Receiver mirrors a remote context's action state from wire envelopes.
type Receiver[A action.Actionlike] struct {
	state  *actionstate.ActionState[A]
	mirror *summary.SummarizedActionState
}

// NewReceiver applies incoming envelopes onto state. Register the expected
// actions on state first; diffs for unregistered hashes are skipped as
// stale or foreign records.
func NewReceiver[A action.Actionlike](state *actionstate.ActionState[A]) *Receiver[A] {
	return &Receiver[A]{state: state, mirror: summary.New()}
}

// Handle decodes one wire message and applies it.
func (r *Receiver[A]) Handle(data []byte) error {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("netsync: unmarshal envelope: %w", err)
	}
	switch env.Type {
	case MessageSummary:
		if env.Summary == nil {
			return fmt.Errorf("netsync: summary envelope without payload")
		}
		r.mirror = env.Summary
	case MessageDiffs:
		r.mirror = summary.Apply(r.mirror, env.Diffs)
	default:
		return fmt.Errorf("netsync: unknown message type %q", env.Type)
	}
	summary.ApplyToActionState(r.mirror, r.state)
	return nil
}

// Run reads messages until the connection closes, applying each.
func (r *Receiver[A]) Run(conn *websocket.Conn) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("netsync: read: %w", err)
		}
		if err := r.Handle(data); err != nil {
			return err
		}
	}
}

// Upgrader is the handshake configuration shared by hosting games. Origins
// are not checked; the embedding server decides its own policy.
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}
