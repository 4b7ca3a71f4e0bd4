package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/saiyanquest/ecs"
	"github.com/milk9111/saiyanquest/ecs/component"
	"github.com/milk9111/saiyanquest/prefabs"
)

// NewKiBlast launches a projectile from origin along dir. It returns
// RejectedCapacity without touching the world once maxLive blasts exist.
func NewKiBlast(w *ecs.World, kind component.AttackKind, origin component.Transform, dir cp.Vector, table prefabs.AttackTable, maxLive int) (ecs.Entity, component.Outcome, error) {
	if maxLive > 0 && ecs.Count(w, component.KiBlastComponent.Kind()) >= maxLive {
		return 0, component.RejectedCapacity, nil
	}
	if dir.LengthSq() == 0 {
		dir = component.DirectionDown.Vector()
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.KiBlastComponent.Kind(), &component.KiBlast{
		Kind:      kind,
		Direction: dir.Normalize(),
		Speed:     table.Speed,
		Damage:    table.Damage,
		Radius:    table.Radius,
		MaxRange:  table.MaxRange,
	}); err != nil {
		return 0, 0, fmt.Errorf("ki blast: add blast: %w", err)
	}

	pos := origin
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &pos); err != nil {
		return 0, 0, fmt.Errorf("ki blast: add transform: %w", err)
	}

	if table.Lifetime > 0 {
		if err := ecs.Add(w, entity, component.TTLComponent.Kind(), &component.TTL{Seconds: table.Lifetime}); err != nil {
			return 0, 0, fmt.Errorf("ki blast: add ttl: %w", err)
		}
	}

	return entity, component.Applied, nil
}

// NewMeleeAttack places a strike zone at origin that expires after table's
// melee lifetime.
func NewMeleeAttack(w *ecs.World, origin component.Transform, facing component.Direction, table prefabs.CombatTable, now float64) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.MeleeAttackComponent.Kind(), &component.MeleeAttack{
		Direction:  facing,
		Damage:     table.MeleeDamage,
		Radius:     table.MeleeRange,
		Timestamp:  now,
		HitTargets: make(map[uint64]bool),
	}); err != nil {
		return 0, fmt.Errorf("melee: add attack: %w", err)
	}

	pos := origin
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &pos); err != nil {
		return 0, fmt.Errorf("melee: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.TTLComponent.Kind(), &component.TTL{Seconds: table.MeleeLifetime}); err != nil {
		return 0, fmt.Errorf("melee: add ttl: %w", err)
	}

	return entity, nil
}

// NewSolarFlare places an area marker at origin.
func NewSolarFlare(w *ecs.World, origin component.Transform, table prefabs.AttackTable, now float64) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.SolarFlareComponent.Kind(), &component.SolarFlare{
		Radius:    table.Radius,
		Timestamp: now,
	}); err != nil {
		return 0, fmt.Errorf("solar flare: add flare: %w", err)
	}

	pos := origin
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &pos); err != nil {
		return 0, fmt.Errorf("solar flare: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.TTLComponent.Kind(), &component.TTL{Seconds: table.Lifetime}); err != nil {
		return 0, fmt.Errorf("solar flare: add ttl: %w", err)
	}

	return entity, nil
}

// RemoveKiBlast destroys a live ki blast. Unknown or already removed ids
// return false.
func RemoveKiBlast(w *ecs.World, e ecs.Entity) bool {
	if !ecs.Has(w, e, component.KiBlastComponent.Kind()) {
		return false
	}
	return ecs.DestroyEntity(w, e)
}

// RemoveMeleeAttack destroys a live melee attack. Unknown or already removed
// ids return false.
func RemoveMeleeAttack(w *ecs.World, e ecs.Entity) bool {
	if !ecs.Has(w, e, component.MeleeAttackComponent.Kind()) {
		return false
	}
	return ecs.DestroyEntity(w, e)
}

// ClearAllProjectiles destroys every ki blast, melee attack and solar flare.
// It returns how many entities were removed.
func ClearAllProjectiles(w *ecs.World) int {
	removed := 0
	destroy := func(e ecs.Entity) {
		if ecs.DestroyEntity(w, e) {
			removed++
		}
	}
	ecs.ForEach(w, component.KiBlastComponent.Kind(), func(e ecs.Entity, _ *component.KiBlast) { destroy(e) })
	ecs.ForEach(w, component.MeleeAttackComponent.Kind(), func(e ecs.Entity, _ *component.MeleeAttack) { destroy(e) })
	ecs.ForEach(w, component.SolarFlareComponent.Kind(), func(e ecs.Entity, _ *component.SolarFlare) { destroy(e) })
	return removed
}
