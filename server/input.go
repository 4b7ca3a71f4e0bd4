package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/saiyanquest/ecs/component"
	"github.com/milk9111/saiyanquest/game"
)

var ErrBadMessage = errors.New("server: bad input message")

// InputMessage is an inbound websocket text message, e.g.
// {"type":"press","action":"punch"} or {"type":"move","direction":"left"}.
type InputMessage struct {
	Type      string `json:"type"`
	Action    string `json:"action,omitempty"`
	Direction string `json:"direction,omitempty"`
}

type inputKind int

const (
	inputPress inputKind = iota
	inputHold
	inputRelease
	inputMove
	inputStop
)

// Input is a decoded client intent. It is applied to the session at the
// start of the next tick.
type Input struct {
	ClientID  string
	kind      inputKind
	action    component.Action
	direction component.Direction
}

// ParseInput decodes one websocket payload.
func ParseInput(payload []byte) (Input, error) {
	var msg InputMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Input{}, fmt.Errorf("%w: %v", ErrBadMessage, err)
	}

	var in Input
	switch strings.ToLower(msg.Type) {
	case "press":
		in.kind = inputPress
	case "hold":
		in.kind = inputHold
	case "release":
		in.kind = inputRelease
	case "move":
		d, err := component.ParseDirection(strings.ToLower(msg.Direction))
		if err != nil {
			return Input{}, fmt.Errorf("%w: %v", ErrBadMessage, err)
		}
		in.kind = inputMove
		in.direction = d
		return in, nil
	case "stop":
		in.kind = inputStop
		return in, nil
	default:
		return Input{}, fmt.Errorf("%w: unknown type %q", ErrBadMessage, msg.Type)
	}

	a, err := component.ParseAction(strings.ToLower(msg.Action))
	if err != nil {
		return Input{}, fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	in.action = a
	return in, nil
}

func (in Input) apply(s *game.Session) {
	switch in.kind {
	case inputPress:
		s.Press(in.action)
	case inputHold:
		s.SetHeld(in.action, true)
	case inputRelease:
		s.SetHeld(in.action, false)
	case inputMove:
		s.Move(in.direction)
	case inputStop:
		s.Stop()
	}
}
