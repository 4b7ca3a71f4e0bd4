package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/saiyanquest/ecs"
)

// Pipeline is the full per-frame system order for one session.
type Pipeline struct {
	Scheduler *ecs.Scheduler
	Attack    *AttackSystem
	AI        *EnemyAISystem
	GameOver  *GameOverSystem
}

// NewPipeline wires the systems in frame order: input and attacks, player
// movement, enemy AI, projectile motion, hit resolution, deaths, timers,
// energy regen, game over, input latch.
func NewPipeline(tables *Tables, log *zap.Logger) *Pipeline {
	p := &Pipeline{
		Attack:   NewAttackSystem(tables, log),
		AI:       NewEnemyAISystem(tables, log),
		GameOver: NewGameOverSystem(tables, log),
	}
	p.Scheduler = ecs.NewScheduler(
		NewClockSystem(),
		p.Attack,
		NewPlayerMovementSystem(tables),
		p.AI,
		NewProjectileSystem(),
		NewHitSystem(tables, log),
		NewDeathSystem(log),
		NewTimerSystem(),
		NewEnergyRegenSystem(tables),
		p.GameOver,
		NewInputLatchSystem(),
	)
	return p
}
