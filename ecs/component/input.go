package component

import "fmt"

// Action is a discrete, edge-triggered input.
type Action int

const (
	ActionPunch Action = iota
	ActionEnergyAttack
	ActionCycleAttack
	ActionRestart

	actionCount
)

var actionNames = [...]string{
	ActionPunch:        "punch",
	ActionEnergyAttack: "energy_attack",
	ActionCycleAttack:  "cycle_attack",
	ActionRestart:      "restart",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

func ParseAction(s string) (Action, error) {
	for i, name := range actionNames {
		if name == s {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

func (a *Action) UnmarshalText(text []byte) error {
	v, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Input stores per-frame input state for the player. A held button fires
// once on the frame it goes down; taps fire once regardless of held state.
type Input struct {
	MoveX float64
	MoveZ float64

	held [actionCount]bool
	prev [actionCount]bool
	taps [actionCount]bool
}

var InputComponent = NewComponent[Input]()

// SetHeld records the current physical state of a button.
func (in *Input) SetHeld(a Action, down bool) {
	if a < 0 || a >= actionCount {
		return
	}
	in.held[a] = down
}

// Tap queues a single press for the next frame.
func (in *Input) Tap(a Action) {
	if a < 0 || a >= actionCount {
		return
	}
	in.taps[a] = true
}

// JustPressed reports a rising edge or a queued tap.
func (in *Input) JustPressed(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	return in.taps[a] || (in.held[a] && !in.prev[a])
}

// EndFrame latches held state and clears taps.
func (in *Input) EndFrame() {
	in.prev = in.held
	in.taps = [actionCount]bool{}
}

// SetMove sets the held movement axis on the ground plane.
func (in *Input) SetMove(x, z float64) {
	in.MoveX = x
	in.MoveZ = z
}
