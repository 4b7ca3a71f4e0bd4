package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/saiyanquest/ecs"
	"github.com/milk9111/saiyanquest/ecs/component"
)

// PlayerMovementSystem moves the player along the held movement axis and
// turns it to face the direction of travel.
type PlayerMovementSystem struct {
	tables *Tables
}

func NewPlayerMovementSystem(tables *Tables) *PlayerMovementSystem {
	return &PlayerMovementSystem{tables: tables}
}

func (s *PlayerMovementSystem) Update(w *ecs.World, dt float64) {
	if !playing(w) {
		return
	}
	refs, ok := FindPlayer(w)
	if !ok || refs.Input == nil {
		return
	}
	move := cp.Vector{X: refs.Input.MoveX, Y: refs.Input.MoveZ}
	if move.LengthSq() == 0 {
		return
	}
	move = move.Normalize()
	refs.Player.Facing = component.FacingToward(move, refs.Player.Facing)
	refs.Transform.SetGround(refs.Transform.Ground().Add(move.Mult(refs.Player.MoveSpeed * dt)))
	clampToArena(s.tables.Balance, refs.Transform)
}
