package component

import "github.com/jakecoffman/cp"

// Enemy is the combat state of a spawned enemy. Once IsAlive turns false it
// never turns back.
type Enemy struct {
	Archetype      Archetype
	Health         int
	MaxHealth      int
	Damage         int
	ExpReward      int
	IsAlive        bool
	LastAttackTime float64

	OnDeath func(e *Enemy)
}

var EnemyComponent = NewComponent[Enemy]()

// TakeDamage subtracts amount, clamping at zero. killed is true only on the
// hit that crosses zero.
func (e *Enemy) TakeDamage(amount int) (outcome Outcome, killed bool) {
	if amount < 0 {
		return RejectedInvalidAmount, false
	}
	if !e.IsAlive {
		return RejectedDead, false
	}
	e.Health = max(0, e.Health-amount)
	if e.Health > 0 {
		return Applied, false
	}
	e.IsAlive = false
	if e.OnDeath != nil {
		e.OnDeath(e)
	}
	return Applied, true
}

// AI drives an enemy's movement and attack timing.
type AI struct {
	Mode           BehaviorMode
	MoveSpeed      float64
	AttackRange    float64
	DetectionRange float64
	AttackCooldown float64

	CooldownLeft float64
	Elapsed      float64
	Facing       Direction

	Waypoints []cp.Vector
	Waypoint  int

	Swooping bool
	Script   string
}

var AIComponent = NewComponent[AI]()

// Ready reports whether the attack cooldown has elapsed.
func (a *AI) Ready() bool {
	return a.CooldownLeft <= 0
}
