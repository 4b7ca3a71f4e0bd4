package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/saiyanquest/ecs"
	"github.com/milk9111/saiyanquest/ecs/component"
	"github.com/milk9111/saiyanquest/ecs/entity"
)

// GameOverSystem moves the game to the game-over phase when the player falls
// and back to playing on restart.
type GameOverSystem struct {
	tables *Tables
	log    *zap.Logger
}

func NewGameOverSystem(tables *Tables, log *zap.Logger) *GameOverSystem {
	return &GameOverSystem{tables: tables, log: orNop(log).Named("game_over")}
}

func (s *GameOverSystem) Update(w *ecs.World, _ float64) {
	gs := gameState(w)
	refs, ok := FindPlayer(w)
	if gs == nil || !ok {
		return
	}
	switch gs.Phase {
	case component.PhasePlaying:
		if refs.Stats.Defeated() {
			s.enterGameOver(w, gs)
		}
	case component.PhaseGameOver:
		if refs.Input != nil && refs.Input.JustPressed(component.ActionRestart) {
			s.Restart(w)
		}
	}
}

func (s *GameOverSystem) enterGameOver(w *ecs.World, gs *component.GameState) {
	gs.Phase = component.PhaseGameOver
	gs.DefeatedAt = gs.Time
	cleared := entity.ClearAllProjectiles(w)
	s.log.Info("game over", zap.Float64("at", gs.Time), zap.Int("cleared", cleared))
}

// Restart applies the death penalty, returns the player to its spawn point
// and resumes play. It is rejected unless the game is over.
func (s *GameOverSystem) Restart(w *ecs.World) component.Outcome {
	gs := gameState(w)
	refs, ok := FindPlayer(w)
	if gs == nil || !ok {
		return component.RejectedDead
	}
	if gs.Phase != component.PhaseGameOver {
		return component.RejectedNotPlaying
	}

	penalty := s.tables.Death
	lost := refs.Stats.Respawn(penalty.ExpLoss, penalty.HealthRestore, penalty.EnergyRestore)
	*refs.Transform = refs.Player.Spawn
	if refs.Cooldowns != nil {
		*refs.Cooldowns = component.Cooldowns{}
	}
	entity.ClearAllProjectiles(w)
	gs.Phase = component.PhasePlaying

	w.Events().Push(ecs.Event{Type: ecs.EventRespawned, Entity: refs.Entity, Data: lost})
	s.log.Info("player respawned",
		zap.Int("exp_lost", lost),
		zap.Int("health", refs.Stats.Health),
		zap.Int("energy", refs.Stats.Energy))
	return component.Applied
}
