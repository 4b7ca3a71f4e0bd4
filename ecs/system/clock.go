package system

import (
	"github.com/milk9111/saiyanquest/ecs"
)

// ClockSystem advances the simulation clock. It runs first so every later
// system sees the same frame time.
type ClockSystem struct{}

func NewClockSystem() *ClockSystem {
	return &ClockSystem{}
}

func (s *ClockSystem) Update(w *ecs.World, dt float64) {
	gs := gameState(w)
	if gs == nil {
		return
	}
	gs.Time += dt
	gs.Frame++
}
