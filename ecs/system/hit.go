package system

import (
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/saiyanquest/ecs"
	"github.com/milk9111/saiyanquest/ecs/component"
)

// HitSystem resolves player attacks against enemies after everything has
// moved. Melee attacks damage each enemy in reach at most once; a ki blast
// is spent on the first enemy it reaches.
type HitSystem struct {
	tables *Tables
	log    *zap.Logger
	grid   *HitGrid
}

func NewHitSystem(tables *Tables, log *zap.Logger) *HitSystem {
	return &HitSystem{tables: tables, log: orNop(log).Named("hit")}
}

func (s *HitSystem) Update(w *ecs.World, _ float64) {
	if !playing(w) {
		return
	}
	s.index(w)
	if s.grid.Len() == 0 {
		return
	}

	ecs.ForEach2(w, component.MeleeAttackComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, melee *component.MeleeAttack, tr *component.Transform) {
		s.grid.QueryCircle(tr.Ground(), melee.Radius, func(target ecs.Entity, _ cp.Vector) bool {
			if melee.HitTargets[uint64(target)] {
				return true
			}
			if s.damage(w, target, melee.Damage, "punch") {
				melee.HitTargets[uint64(target)] = true
			}
			return true
		})
	})

	ecs.ForEach2(w, component.KiBlastComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, blast *component.KiBlast, tr *component.Transform) {
		hit := false
		s.grid.QueryCircle(tr.Ground(), blast.Radius, func(target ecs.Entity, _ cp.Vector) bool {
			if !s.damage(w, target, blast.Damage, blast.Kind.String()) {
				return true
			}
			hit = true
			return false
		})
		if hit {
			ecs.DestroyEntity(w, e)
		}
	})
}

func (s *HitSystem) index(w *ecs.World) {
	cell := s.tables.Combat.GridCellSize
	if s.grid == nil || s.grid.cellSize != cell {
		s.grid = NewHitGrid(cell)
	} else {
		s.grid.Clear()
	}
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, enemy *component.Enemy, tr *component.Transform) {
		if enemy.IsAlive {
			s.grid.Add(e, tr.Ground())
		}
	})
}

// damage reports whether the hit landed. Enemies killed earlier in the frame
// stay indexed but reject further hits.
func (s *HitSystem) damage(w *ecs.World, target ecs.Entity, amount int, source string) bool {
	enemy, ok := ecs.Get(w, target, component.EnemyComponent.Kind())
	if !ok {
		return false
	}
	outcome, killed := enemy.TakeDamage(amount)
	if !outcome.Ok() {
		return false
	}
	w.Events().Push(ecs.Event{Type: ecs.EventEnemyHit, Entity: target, Data: amount})
	s.log.Debug("enemy hit",
		zap.Stringer("archetype", enemy.Archetype),
		zap.String("source", source),
		zap.Int("damage", amount),
		zap.Int("health", enemy.Health))
	if killed {
		w.Events().Push(ecs.Event{Type: ecs.EventEnemyDefeated, Entity: target, Data: enemy.Archetype})
	}
	return true
}
