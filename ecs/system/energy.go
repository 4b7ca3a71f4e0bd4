package system

import (
	"github.com/milk9111/saiyanquest/ecs"
)

// EnergyRegenSystem refills energy while the player is not attacking.
type EnergyRegenSystem struct {
	tables *Tables
}

func NewEnergyRegenSystem(tables *Tables) *EnergyRegenSystem {
	return &EnergyRegenSystem{tables: tables}
}

func (s *EnergyRegenSystem) Update(w *ecs.World, dt float64) {
	if !playing(w) {
		return
	}
	refs, ok := FindPlayer(w)
	if !ok || (refs.Cooldowns != nil && refs.Cooldowns.Attacking()) {
		return
	}
	refs.Stats.RegenEnergy(s.tables.Player.EnergyRegenPerSecond, dt)
}
