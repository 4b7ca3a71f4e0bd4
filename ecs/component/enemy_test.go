package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnemyDiesExactlyOnce(t *testing.T) {
	deaths := 0
	e := &Enemy{Archetype: ArchetypeWolf, Health: 60, MaxHealth: 60, IsAlive: true}
	e.OnDeath = func(*Enemy) { deaths++ }

	outcome, killed := e.TakeDamage(20)
	require.Equal(t, Applied, outcome)
	assert.False(t, killed)
	assert.Equal(t, 40, e.Health)

	outcome, killed = e.TakeDamage(25)
	require.Equal(t, Applied, outcome)
	assert.False(t, killed)
	assert.Equal(t, 15, e.Health)

	outcome, killed = e.TakeDamage(25)
	require.Equal(t, Applied, outcome)
	assert.True(t, killed)
	assert.Equal(t, 0, e.Health, "health clamps at zero")
	assert.False(t, e.IsAlive)

	outcome, killed = e.TakeDamage(25)
	assert.Equal(t, RejectedDead, outcome)
	assert.False(t, killed)
	assert.Equal(t, 1, deaths)
}

func TestAIReady(t *testing.T) {
	ai := AI{CooldownLeft: 0.2}
	assert.False(t, ai.Ready())
	ai.CooldownLeft = 0
	assert.True(t, ai.Ready())
}
