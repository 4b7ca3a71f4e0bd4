package system

import (
	"github.com/milk9111/saiyanquest/ecs"
	"github.com/milk9111/saiyanquest/ecs/component"
)

// TimerSystem counts down the invincibility window, attack cooldowns and
// TTLs, destroying entities whose TTL runs out.
type TimerSystem struct{}

func NewTimerSystem() *TimerSystem {
	return &TimerSystem{}
}

func (s *TimerSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.PlayerStatsComponent.Kind(), func(_ ecs.Entity, stats *component.PlayerStats) {
		stats.Tick(dt)
	})

	ecs.ForEach(w, component.CooldownsComponent.Kind(), func(_ ecs.Entity, cd *component.Cooldowns) {
		cd.Tick(dt)
	})

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Seconds -= dt
		if ttl.Seconds <= 1e-9 {
			ecs.DestroyEntity(w, e)
		}
	})
}
