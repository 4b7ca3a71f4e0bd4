package system

import (
	"github.com/milk9111/saiyanquest/ecs"
	"github.com/milk9111/saiyanquest/ecs/component"
)

// ProjectileSystem advances ki blasts and removes those past their range.
type ProjectileSystem struct{}

func NewProjectileSystem() *ProjectileSystem {
	return &ProjectileSystem{}
}

func (s *ProjectileSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach2(w, component.KiBlastComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, blast *component.KiBlast, tr *component.Transform) {
		step := blast.Speed * dt
		tr.SetGround(tr.Ground().Add(blast.Direction.Mult(step)))
		blast.Travelled += step
		if blast.MaxRange > 0 && blast.Travelled > blast.MaxRange {
			ecs.DestroyEntity(w, e)
		}
	})
}
