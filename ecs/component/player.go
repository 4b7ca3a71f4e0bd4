package component

import "math"

// LevelGrowth is applied on every level-up.
type LevelGrowth struct {
	MaxHealth int
	MaxEnergy int
	ExpCurve  float64
}

// PlayerStats holds the bounded resources and progression of the player.
// Invariants: 0 <= Health <= MaxHealth, 0 <= Energy <= MaxEnergy,
// 0 <= Experience < NextLevelExp after every mutation.
type PlayerStats struct {
	Health    int
	MaxHealth int
	Energy    int
	MaxEnergy int

	Level        int
	Experience   int
	NextLevelExp int

	IsInvincible        bool
	InvincibleFor       float64
	LastDamageTime      float64
	InvincibilityWindow float64

	Growth LevelGrowth

	regenCarry float64
}

var PlayerStatsComponent = NewComponent[PlayerStats]()

// Defeated reports whether health has reached zero.
func (p *PlayerStats) Defeated() bool {
	return p.Health <= 0
}

// TakeDamage applies a hit at time now. A successful hit opens the
// invincibility window even when it is the killing blow.
func (p *PlayerStats) TakeDamage(amount int, now float64) Outcome {
	switch {
	case amount < 0:
		return RejectedInvalidAmount
	case p.Defeated():
		return RejectedDead
	case p.IsInvincible:
		return RejectedInvincible
	}
	p.Health = max(0, p.Health-amount)
	p.IsInvincible = p.InvincibilityWindow > 0
	p.InvincibleFor = p.InvincibilityWindow
	p.LastDamageTime = now
	return Applied
}

func (p *PlayerStats) Heal(amount int) Outcome {
	if amount < 0 {
		return RejectedInvalidAmount
	}
	p.Health = min(p.MaxHealth, p.Health+amount)
	return Applied
}

// DrainEnergy spends amount of energy. It never spends partially.
func (p *PlayerStats) DrainEnergy(amount int) Outcome {
	if amount < 0 {
		return RejectedInvalidAmount
	}
	if p.Energy < amount {
		return RejectedInsufficientResource
	}
	p.Energy -= amount
	return Applied
}

func (p *PlayerStats) RechargeEnergy(amount int) Outcome {
	if amount < 0 {
		return RejectedInvalidAmount
	}
	p.Energy = min(p.MaxEnergy, p.Energy+amount)
	return Applied
}

// RegenEnergy adds rate*dt energy, carrying the fractional remainder between
// calls. Nothing accumulates while energy is full.
func (p *PlayerStats) RegenEnergy(rate, dt float64) {
	if rate <= 0 || dt <= 0 {
		return
	}
	if p.Energy >= p.MaxEnergy {
		p.regenCarry = 0
		return
	}
	p.regenCarry += rate * dt
	whole := math.Floor(p.regenCarry)
	p.regenCarry -= whole
	p.RechargeEnergy(int(whole))
}

// GainExperience adds amount (negative amounts subtract, flooring at zero)
// and levels up as many times as the total allows. It returns the number of
// levels gained. A defeated player gains nothing until respawned.
func (p *PlayerStats) GainExperience(amount int) int {
	if p.Defeated() {
		return 0
	}
	p.Experience = max(0, p.Experience+amount)
	levels := 0
	for p.NextLevelExp > 0 && p.Experience >= p.NextLevelExp {
		p.Experience -= p.NextLevelExp
		p.LevelUp()
		levels++
	}
	return levels
}

// LevelUp grows the caps, refills both resources and scales the threshold.
// It reports false, changing nothing, while the player is defeated.
func (p *PlayerStats) LevelUp() bool {
	if p.Defeated() {
		return false
	}
	p.Level++
	p.MaxHealth += p.Growth.MaxHealth
	p.MaxEnergy += p.Growth.MaxEnergy
	p.Health = p.MaxHealth
	p.Energy = p.MaxEnergy
	curve := p.Growth.ExpCurve
	if curve <= 1 {
		curve = 1.5
	}
	p.NextLevelExp = int(math.Floor(float64(p.NextLevelExp) * curve))
	return true
}

// Tick advances the invincibility window by dt seconds.
func (p *PlayerStats) Tick(dt float64) {
	if !p.IsInvincible {
		return
	}
	p.InvincibleFor -= dt
	if p.InvincibleFor <= 0 {
		p.InvincibleFor = 0
		p.IsInvincible = false
	}
}

// Respawn applies the death penalty and restores resources to the given
// fractions of their caps. It returns the experience lost.
func (p *PlayerStats) Respawn(expLoss, healthFrac, energyFrac float64) int {
	lost := int(math.Floor(float64(p.Experience) * expLoss))
	p.Experience = max(0, p.Experience-lost)
	p.Health = clampInt(int(math.Floor(float64(p.MaxHealth)*healthFrac)), 1, p.MaxHealth)
	p.Energy = clampInt(int(math.Floor(float64(p.MaxEnergy)*energyFrac)), 0, p.MaxEnergy)
	p.IsInvincible = false
	p.InvincibleFor = 0
	p.regenCarry = 0
	return lost
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// Player carries movement and attack selection state.
type Player struct {
	MoveSpeed float64
	Facing    Direction
	Attack    AttackKind
	Spawn     Transform
}

var PlayerComponent = NewComponent[Player]()

// Cooldowns are countdown timers in seconds; zero means ready.
type Cooldowns struct {
	Energy float64
	Punch  float64
}

var CooldownsComponent = NewComponent[Cooldowns]()

func (c *Cooldowns) Tick(dt float64) {
	c.Energy = max(0, c.Energy-dt)
	c.Punch = max(0, c.Punch-dt)
}

// Attacking reports whether any attack cooldown is still running.
func (c *Cooldowns) Attacking() bool {
	return c.Energy > 0 || c.Punch > 0
}
