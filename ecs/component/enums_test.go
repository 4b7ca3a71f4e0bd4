package component

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestAttackCycleWraps(t *testing.T) {
	k := AttackKiBlast
	seen := []AttackKind{k}
	for i := 0; i < 3; i++ {
		k = k.Next()
		seen = append(seen, k)
	}
	assert.Equal(t, []AttackKind{AttackKiBlast, AttackKamehameha, AttackSolarFlare, AttackKiBlast}, seen)
}

func TestFacingToward(t *testing.T) {
	tests := []struct {
		name  string
		delta cp.Vector
		want  Direction
	}{
		{"right", cp.Vector{X: 3, Y: 1}, DirectionRight},
		{"left", cp.Vector{X: -3, Y: 1}, DirectionLeft},
		{"down_is_positive_z", cp.Vector{X: 1, Y: 4}, DirectionDown},
		{"up_is_negative_z", cp.Vector{X: 1, Y: -4}, DirectionUp},
		{"tie_prefers_horizontal", cp.Vector{X: -2, Y: 2}, DirectionLeft},
		{"zero_keeps_current", cp.Vector{}, DirectionUp},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FacingToward(tc.delta, DirectionUp))
		})
	}
}

func TestDirectionVectorsAreUnit(t *testing.T) {
	for _, d := range []Direction{DirectionDown, DirectionUp, DirectionLeft, DirectionRight} {
		assert.InDelta(t, 1, d.Vector().Length(), 1e-9, d.String())
		assert.Equal(t, d, FacingToward(d.Vector(), DirectionDown))
	}
}

func TestEnumsDecodeFromYAML(t *testing.T) {
	var doc struct {
		Archetype Archetype    `yaml:"archetype"`
		Behavior  BehaviorMode `yaml:"behavior"`
		Attack    AttackKind   `yaml:"attack"`
		Facing    Direction    `yaml:"facing"`
	}
	src := "archetype: pterodactyl\nbehavior: flying\nattack: kamehameha\nfacing: left\n"
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	assert.Equal(t, ArchetypePterodactyl, doc.Archetype)
	assert.Equal(t, BehaviorFlying, doc.Behavior)
	assert.Equal(t, AttackKamehameha, doc.Attack)
	assert.Equal(t, DirectionLeft, doc.Facing)

	err := yaml.Unmarshal([]byte("archetype: dragon\n"), &doc)
	assert.Error(t, err)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "applied", Applied.String())
	assert.Equal(t, "on_cooldown", RejectedOnCooldown.String())
	assert.True(t, Applied.Ok())
	assert.False(t, RejectedInvincible.Ok())
	assert.Equal(t, "unknown", Outcome(99).String())
}

func TestInputEdgeTrigger(t *testing.T) {
	var in Input

	in.SetHeld(ActionPunch, true)
	assert.True(t, in.JustPressed(ActionPunch))
	in.EndFrame()

	assert.False(t, in.JustPressed(ActionPunch), "held button fires once")
	in.EndFrame()

	in.SetHeld(ActionPunch, false)
	in.EndFrame()
	in.SetHeld(ActionPunch, true)
	assert.True(t, in.JustPressed(ActionPunch))

	in.Tap(ActionCycleAttack)
	assert.True(t, in.JustPressed(ActionCycleAttack))
	in.EndFrame()
	assert.False(t, in.JustPressed(ActionCycleAttack))
}
