package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/saiyanquest/ecs"
	"github.com/milk9111/saiyanquest/ecs/component"
)

// DeathSystem removes defeated enemies and pays out their experience. An
// enemy is removed in the frame it dies, so the reward is granted once.
type DeathSystem struct {
	log *zap.Logger
}

func NewDeathSystem(log *zap.Logger) *DeathSystem {
	return &DeathSystem{log: orNop(log).Named("death")}
}

func (s *DeathSystem) Update(w *ecs.World, _ float64) {
	refs, havePlayer := FindPlayer(w)

	ecs.ForEach(w, component.EnemyComponent.Kind(), func(e ecs.Entity, enemy *component.Enemy) {
		if enemy.IsAlive {
			return
		}
		if !ecs.DestroyEntity(w, e) {
			return
		}
		s.log.Info("enemy defeated",
			zap.Stringer("archetype", enemy.Archetype),
			zap.Int("exp", enemy.ExpReward))
		// a player felled this frame keeps no reward; game over must still see health 0.
		if !havePlayer || refs.Stats.Defeated() {
			return
		}
		if levels := refs.Stats.GainExperience(enemy.ExpReward); levels > 0 {
			w.Events().Push(ecs.Event{Type: ecs.EventLevelUp, Entity: refs.Entity, Data: refs.Stats.Level})
			s.log.Info("level up",
				zap.Int("level", refs.Stats.Level),
				zap.Int("next_level_exp", refs.Stats.NextLevelExp))
		}
	})
}
