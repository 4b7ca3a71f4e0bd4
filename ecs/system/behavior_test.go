package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"

	"github.com/milk9111/saiyanquest/ecs/component"
	"github.com/milk9111/saiyanquest/prefabs"
)

var testTuning = prefabs.BehaviorTuning{
	PatrolSpeedFactor:  0.5,
	WaypointThreshold:  1,
	RetreatSpeedFactor: 0.3,
	RetreatRangeFactor: 1.5,
	HoverHeight:        3,
	HoverBob:           0.5,
	HoverBobFrequency:  2,
	OrbitAngularSpeed:  0.5,
	OrbitRadiusFactor:  2,
}

func ctxAt(ai *component.AI, self, player cp.Vector) *BehaviorContext {
	return &BehaviorContext{
		Self:     self,
		Player:   player,
		Distance: self.Distance(player),
		AI:       ai,
		DT:       testDT,
		Tuning:   testTuning,
	}
}

func wolfAI() *component.AI {
	return &component.AI{MoveSpeed: 3, AttackRange: 1.2, DetectionRange: 8, AttackCooldown: 1.5}
}

func TestAggressiveBehavior(t *testing.T) {
	tests := []struct {
		name       string
		player     cp.Vector
		cooldown   float64
		wantMoving bool
		wantAttack bool
	}{
		{"idle_outside_detection", cp.Vector{X: 9}, 0, false, false},
		{"chases_inside_detection", cp.Vector{X: 5}, 0, true, false},
		{"attacks_in_range_while_chasing", cp.Vector{X: 1}, 0, true, true},
		{"chases_during_cooldown", cp.Vector{X: 1}, 0.5, true, false},
		{"holds_on_top_of_player", cp.Vector{}, 0, false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ai := wolfAI()
			ai.CooldownLeft = tc.cooldown
			act := AggressiveBehavior{}.Tick(ctxAt(ai, cp.Vector{}, tc.player))
			assert.Equal(t, tc.wantAttack, act.Attack)
			assert.Equal(t, tc.wantMoving, act.Velocity.LengthSq() > 0)
			if tc.wantMoving {
				assert.InDelta(t, 3, act.Velocity.Length(), 1e-9)
				assert.Greater(t, act.Velocity.X, 0.0)
			}
		})
	}
}

func TestPatrolBehavior(t *testing.T) {
	t.Run("walks_waypoints_at_half_speed", func(t *testing.T) {
		ai := wolfAI()
		ai.Waypoints = []cp.Vector{{X: 0, Y: 0}, {X: 10, Y: 0}}
		act := PatrolBehavior{}.Tick(ctxAt(ai, cp.Vector{X: 0.5}, cp.Vector{X: 100}))
		assert.Equal(t, 1, ai.Waypoint, "reached waypoint 0, heads to 1")
		assert.InDelta(t, 1.5, act.Velocity.Length(), 1e-9)
		assert.Greater(t, act.Velocity.X, 0.0)
	})

	t.Run("wraps_to_first_waypoint", func(t *testing.T) {
		ai := wolfAI()
		ai.Waypoints = []cp.Vector{{X: 0, Y: 0}, {X: 10, Y: 0}}
		ai.Waypoint = 1
		PatrolBehavior{}.Tick(ctxAt(ai, cp.Vector{X: 9.5}, cp.Vector{X: 100}))
		assert.Equal(t, 0, ai.Waypoint)
	})

	t.Run("turns_aggressive_on_detection", func(t *testing.T) {
		ai := wolfAI()
		ai.Waypoints = []cp.Vector{{X: -10}}
		act := PatrolBehavior{}.Tick(ctxAt(ai, cp.Vector{}, cp.Vector{X: 4}))
		assert.InDelta(t, 3, act.Velocity.Length(), 1e-9)
		assert.Greater(t, act.Velocity.X, 0.0, "chases the player, not the waypoint")
	})
}

func TestDefensiveBehavior(t *testing.T) {
	robber := func() *component.AI {
		return &component.AI{MoveSpeed: 2.5, AttackRange: 3, DetectionRange: 7, AttackCooldown: 2}
	}

	act := DefensiveBehavior{}.Tick(ctxAt(robber(), cp.Vector{}, cp.Vector{X: 2}))
	assert.True(t, act.Attack)
	assert.Zero(t, act.Velocity.LengthSq())

	act = DefensiveBehavior{}.Tick(ctxAt(robber(), cp.Vector{}, cp.Vector{X: 4}))
	assert.False(t, act.Attack)
	assert.Zero(t, act.Velocity.LengthSq(), "holds between attack range and retreat threshold")

	act = DefensiveBehavior{}.Tick(ctxAt(robber(), cp.Vector{}, cp.Vector{X: 6}))
	assert.InDelta(t, 0.75, act.Velocity.Length(), 1e-9)
	assert.Less(t, act.Velocity.X, 0.0, "backs away from the player")

	act = DefensiveBehavior{}.Tick(ctxAt(robber(), cp.Vector{}, cp.Vector{X: 8}))
	assert.Equal(t, Action{}, act)
}

func TestFlyingBehavior(t *testing.T) {
	ptero := func() *component.AI {
		return &component.AI{MoveSpeed: 4, AttackRange: 1.5, DetectionRange: 10, AttackCooldown: 3}
	}

	t.Run("hovers_with_bob", func(t *testing.T) {
		ai := ptero()
		ai.Elapsed = 1
		act := FlyingBehavior{}.Tick(ctxAt(ai, cp.Vector{}, cp.Vector{X: 50}))
		assert.True(t, act.SetHeight)
		assert.InDelta(t, 3+0.5*math.Sin(2), act.Height, 1e-9)
		assert.Zero(t, act.Velocity.LengthSq())
	})

	t.Run("circles_while_on_cooldown", func(t *testing.T) {
		ai := ptero()
		ai.CooldownLeft = 2
		act := FlyingBehavior{}.Tick(ctxAt(ai, cp.Vector{X: 8}, cp.Vector{}))
		assert.False(t, ai.Swooping)
		assert.False(t, act.Attack)
		// orbit target at t=0 is (3, 0): head toward it.
		assert.Less(t, act.Velocity.X, 0.0)
	})

	t.Run("swoops_then_strikes", func(t *testing.T) {
		ai := ptero()
		act := FlyingBehavior{}.Tick(ctxAt(ai, cp.Vector{X: 6}, cp.Vector{}))
		assert.True(t, ai.Swooping)
		assert.InDelta(t, 4, act.Velocity.Length(), 1e-9)

		act = FlyingBehavior{}.Tick(ctxAt(ai, cp.Vector{X: 1}, cp.Vector{}))
		assert.True(t, act.Attack)
		assert.False(t, ai.Swooping, "resumes circling after the strike")
	})

	t.Run("abandons_swoop_when_player_escapes", func(t *testing.T) {
		ai := ptero()
		ai.Swooping = true
		FlyingBehavior{}.Tick(ctxAt(ai, cp.Vector{X: 20}, cp.Vector{}))
		assert.False(t, ai.Swooping)
	})
}

func TestArriveDoesNotOvershoot(t *testing.T) {
	v := arrive(cp.Vector{}, cp.Vector{X: 0.01}, 5, testDT)
	assert.InDelta(t, 0.01, v.Mult(testDT).X, 1e-9)
	assert.Equal(t, cp.Vector{}, arrive(cp.Vector{X: 1}, cp.Vector{X: 1}, 5, testDT))
}
