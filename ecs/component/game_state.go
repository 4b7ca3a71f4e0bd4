package component

import "fmt"

// Phase is the top-level game phase.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// GameState is a singleton holding the phase and the simulation clock.
type GameState struct {
	Phase      Phase
	Time       float64
	Frame      uint64
	DefeatedAt float64
}

var GameStateComponent = NewComponent[GameState]()

func (g *GameState) Playing() bool {
	return g.Phase == PhasePlaying
}
