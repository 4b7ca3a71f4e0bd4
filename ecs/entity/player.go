package entity

import (
	"fmt"

	"github.com/milk9111/saiyanquest/ecs"
	"github.com/milk9111/saiyanquest/ecs/component"
	"github.com/milk9111/saiyanquest/prefabs"
)

// NewPlayer spawns the player at spawn with the table defaults.
func NewPlayer(w *ecs.World, table prefabs.PlayerTable, spawn component.Transform) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.PlayerStatsComponent.Kind(), NewPlayerStats(table)); err != nil {
		return 0, fmt.Errorf("player: add stats: %w", err)
	}

	if err := ecs.Add(w, entity, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed: table.MoveSpeed,
		Facing:    component.DirectionDown,
		Attack:    table.StartingAttack,
		Spawn:     spawn,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}

	pos := spawn
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &pos); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.CooldownsComponent.Kind(), &component.Cooldowns{}); err != nil {
		return 0, fmt.Errorf("player: add cooldowns: %w", err)
	}

	if err := ecs.Add(w, entity, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}

	return entity, nil
}

// NewPlayerStats returns fresh level-one stats for table.
func NewPlayerStats(table prefabs.PlayerTable) *component.PlayerStats {
	return &component.PlayerStats{
		Health:              table.MaxHealth,
		MaxHealth:           table.MaxHealth,
		Energy:              table.MaxEnergy,
		MaxEnergy:           table.MaxEnergy,
		Level:               1,
		NextLevelExp:        table.NextLevelExp,
		InvincibilityWindow: table.InvincibilitySeconds,
		Growth:              table.Growth,
	}
}

// NewGameState creates the phase/clock singleton.
func NewGameState(w *ecs.World) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.GameStateComponent.Kind(), &component.GameState{Phase: component.PhasePlaying}); err != nil {
		return 0, fmt.Errorf("game state: add state: %w", err)
	}
	return entity, nil
}
