package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStats() *PlayerStats {
	return &PlayerStats{
		Health: 100, MaxHealth: 100,
		Energy: 100, MaxEnergy: 100,
		Level: 1, NextLevelExp: 100,
		InvincibilityWindow: 0.8,
		Growth:              LevelGrowth{MaxHealth: 20, MaxEnergy: 10, ExpCurve: 1.5},
	}
}

func TestTakeDamageOpensInvincibilityWindow(t *testing.T) {
	p := newTestStats()

	require.Equal(t, Applied, p.TakeDamage(15, 0))
	assert.Equal(t, 85, p.Health)
	assert.True(t, p.IsInvincible)
	assert.InDelta(t, 0.8, p.InvincibleFor, 1e-9)

	p.Tick(0.1)
	assert.Equal(t, RejectedInvincible, p.TakeDamage(15, 0.1))
	assert.Equal(t, 85, p.Health)

	p.Tick(0.75)
	assert.False(t, p.IsInvincible)
	require.Equal(t, Applied, p.TakeDamage(15, 0.85))
	assert.Equal(t, 70, p.Health)
	assert.InDelta(t, 0.85, p.LastDamageTime, 1e-9)
}

func TestHealthStaysInBounds(t *testing.T) {
	tests := []struct {
		name   string
		start  int
		damage int
		heal   int
		want   int
	}{
		{"overkill_clamps_to_zero", 10, 500, 0, 0},
		{"overheal_clamps_to_max", 50, 0, 500, 100},
		{"exact_kill", 15, 15, 0, 0},
		{"damage_then_heal", 100, 30, 10, 80},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestStats()
			p.Health = tc.start
			p.TakeDamage(tc.damage, 0)
			p.Heal(tc.heal)
			assert.Equal(t, tc.want, p.Health)
			assert.GreaterOrEqual(t, p.Health, 0)
			assert.LessOrEqual(t, p.Health, p.MaxHealth)
		})
	}
}

func TestNegativeAmountsRejected(t *testing.T) {
	p := newTestStats()
	assert.Equal(t, RejectedInvalidAmount, p.TakeDamage(-5, 0))
	assert.Equal(t, RejectedInvalidAmount, p.Heal(-5))
	assert.Equal(t, RejectedInvalidAmount, p.DrainEnergy(-5))
	assert.Equal(t, RejectedInvalidAmount, p.RechargeEnergy(-5))
	assert.Equal(t, 100, p.Health)
	assert.Equal(t, 100, p.Energy)
	assert.False(t, p.IsInvincible)
}

func TestDamageWhileDefeatedIsRejected(t *testing.T) {
	p := newTestStats()
	p.InvincibilityWindow = 0
	require.Equal(t, Applied, p.TakeDamage(100, 0))
	assert.True(t, p.Defeated())
	assert.Equal(t, RejectedDead, p.TakeDamage(1, 1))
}

func TestEnergyDrainNeverGoesPartial(t *testing.T) {
	p := newTestStats()
	p.Energy = 10
	assert.Equal(t, RejectedInsufficientResource, p.DrainEnergy(15))
	assert.Equal(t, 10, p.Energy)
	assert.Equal(t, Applied, p.DrainEnergy(10))
	assert.Equal(t, 0, p.Energy)
	p.RechargeEnergy(1000)
	assert.Equal(t, 100, p.Energy)
}

func TestRegenEnergyCarriesFractions(t *testing.T) {
	p := newTestStats()
	p.Energy = 0
	for i := 0; i < 30; i++ {
		p.RegenEnergy(20, 1.0/30)
	}
	assert.InDelta(t, 20, p.Energy, 1)

	p.Energy = 99
	p.RegenEnergy(20, 1)
	assert.Equal(t, 100, p.Energy)
}

func TestGainExperience(t *testing.T) {
	tests := []struct {
		name       string
		gain       int
		wantLevel  int
		wantExp    int
		wantNext   int
		wantLevels int
	}{
		{"below_threshold", 99, 1, 99, 100, 0},
		{"exactly_threshold", 100, 2, 0, 150, 1},
		{"overflow_carried", 130, 2, 30, 150, 1},
		{"multiple_levels", 260, 3, 10, 225, 2},
		{"negative_floors_at_zero", -50, 1, 0, 100, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestStats()
			p.Health = 40
			levels := p.GainExperience(tc.gain)
			assert.Equal(t, tc.wantLevels, levels)
			assert.Equal(t, tc.wantLevel, p.Level)
			assert.Equal(t, tc.wantExp, p.Experience)
			assert.Equal(t, tc.wantNext, p.NextLevelExp)
			assert.Less(t, p.Experience, p.NextLevelExp)
		})
	}
}

func TestLevelUpGrowsAndRefills(t *testing.T) {
	p := newTestStats()
	p.Health = 1
	p.Energy = 1

	require.True(t, p.LevelUp())

	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 120, p.MaxHealth)
	assert.Equal(t, 120, p.Health)
	assert.Equal(t, 110, p.MaxEnergy)
	assert.Equal(t, 110, p.Energy)
	assert.Equal(t, 150, p.NextLevelExp)
}

func TestDefeatedPlayerCannotLevel(t *testing.T) {
	p := newTestStats()
	p.Health = 0
	p.Experience = 99

	assert.Zero(t, p.GainExperience(50))
	assert.False(t, p.LevelUp())

	assert.Equal(t, 0, p.Health)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 99, p.Experience)
	assert.Equal(t, 100, p.MaxHealth)
}

func TestRespawnAppliesPenalty(t *testing.T) {
	p := newTestStats()
	p.Experience = 55
	p.Health = 0
	p.Energy = 3
	p.IsInvincible = true

	lost := p.Respawn(0.1, 0.5, 1)

	assert.Equal(t, 5, lost)
	assert.Equal(t, 50, p.Experience)
	assert.Equal(t, 50, p.Health)
	assert.Equal(t, 100, p.Energy)
	assert.False(t, p.IsInvincible)
}

func TestCooldownsTick(t *testing.T) {
	c := Cooldowns{Energy: 0.6, Punch: 0.4}
	assert.True(t, c.Attacking())
	c.Tick(0.5)
	assert.InDelta(t, 0.1, c.Energy, 1e-9)
	assert.Zero(t, c.Punch)
	c.Tick(0.5)
	assert.False(t, c.Attacking())
}
