package entity

import (
	"fmt"
	"slices"

	"github.com/milk9111/saiyanquest/ecs"
	"github.com/milk9111/saiyanquest/ecs/component"
	"github.com/milk9111/saiyanquest/prefabs"
)

// NewEnemy spawns a resolved enemy placement. onDeath may be nil.
func NewEnemy(w *ecs.World, spawn prefabs.Spawn, onDeath func(*component.Enemy)) (ecs.Entity, error) {
	cfg := spawn.Config
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.EnemyComponent.Kind(), &component.Enemy{
		Archetype:      spawn.Archetype,
		Health:         cfg.Health,
		MaxHealth:      cfg.Health,
		Damage:         cfg.Damage,
		ExpReward:      cfg.ExpReward,
		IsAlive:        true,
		LastAttackTime: -cfg.AttackCooldown,
		OnDeath:        onDeath,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy: %w", err)
	}

	if err := ecs.Add(w, entity, component.AIComponent.Kind(), &component.AI{
		Mode:           cfg.Behavior,
		MoveSpeed:      cfg.MoveSpeed,
		AttackRange:    cfg.AttackRange,
		DetectionRange: cfg.DetectionRange,
		AttackCooldown: cfg.AttackCooldown,
		Facing:         component.DirectionDown,
		Waypoints:      slices.Clone(spawn.Waypoints),
		Script:         cfg.Script,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add ai: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{
		X: spawn.Position.X,
		Z: spawn.Position.Y,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add transform: %w", err)
	}

	return entity, nil
}
