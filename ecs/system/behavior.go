package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/saiyanquest/ecs/component"
	"github.com/milk9111/saiyanquest/prefabs"
)

// BehaviorContext is what a behavior sees of the world for one enemy tick.
// Positions are on the ground plane.
type BehaviorContext struct {
	Self     cp.Vector
	Player   cp.Vector
	Distance float64
	AI       *component.AI
	DT       float64
	Tuning   prefabs.BehaviorTuning
}

// Action is a behavior's decision for one tick.
type Action struct {
	// Velocity in ground units per second.
	Velocity  cp.Vector
	Height    float64
	SetHeight bool
	Attack    bool
}

// Behavior decides movement and attacks for one behavior mode. A behavior
// may update bookkeeping on ctx.AI (waypoint index, swoop state).
type Behavior interface {
	Tick(ctx *BehaviorContext) Action
}

var behaviorRegistry = map[component.BehaviorMode]Behavior{
	component.BehaviorAggressive: AggressiveBehavior{},
	component.BehaviorPatrol:     PatrolBehavior{},
	component.BehaviorDefensive:  DefensiveBehavior{},
	component.BehaviorFlying:     FlyingBehavior{},
}

func seek(from, to cp.Vector, speed float64) cp.Vector {
	delta := to.Sub(from)
	if delta.LengthSq() == 0 {
		return cp.Vector{}
	}
	return delta.Normalize().Mult(speed)
}

// arrive is seek that does not overshoot target within dt.
func arrive(from, to cp.Vector, speed, dt float64) cp.Vector {
	d := from.Distance(to)
	if d == 0 {
		return cp.Vector{}
	}
	if dt > 0 && d < speed*dt {
		return to.Sub(from).Mult(1 / dt)
	}
	return seek(from, to, speed)
}

// AggressiveBehavior chases the player inside detection range, attacking as
// well whenever it is in attack range.
type AggressiveBehavior struct{}

func (AggressiveBehavior) Tick(ctx *BehaviorContext) Action {
	ai := ctx.AI
	if ctx.Distance > ai.DetectionRange {
		return Action{}
	}
	return Action{
		Velocity: arrive(ctx.Self, ctx.Player, ai.MoveSpeed, ctx.DT),
		Attack:   ctx.Distance <= ai.AttackRange && ai.Ready(),
	}
}

// PatrolBehavior walks its waypoints at reduced speed and turns aggressive
// when the player is detected.
type PatrolBehavior struct{}

func (PatrolBehavior) Tick(ctx *BehaviorContext) Action {
	ai := ctx.AI
	if ctx.Distance <= ai.DetectionRange || len(ai.Waypoints) == 0 {
		return AggressiveBehavior{}.Tick(ctx)
	}
	if ai.Waypoint < 0 || ai.Waypoint >= len(ai.Waypoints) {
		ai.Waypoint = 0
	}
	target := ai.Waypoints[ai.Waypoint]
	if ctx.Self.Distance(target) < ctx.Tuning.WaypointThreshold {
		ai.Waypoint = (ai.Waypoint + 1) % len(ai.Waypoints)
		target = ai.Waypoints[ai.Waypoint]
	}
	return Action{Velocity: arrive(ctx.Self, target, ai.MoveSpeed*ctx.Tuning.PatrolSpeedFactor, ctx.DT)}
}

// DefensiveBehavior holds its ground, attacks anything in range and backs
// away from a player lingering at the edge of detection.
type DefensiveBehavior struct{}

func (DefensiveBehavior) Tick(ctx *BehaviorContext) Action {
	ai := ctx.AI
	switch {
	case ctx.Distance <= ai.AttackRange:
		return Action{Attack: ai.Ready()}
	case ctx.Distance <= ai.DetectionRange && ctx.Distance > ai.AttackRange*ctx.Tuning.RetreatRangeFactor:
		return Action{Velocity: seek(ctx.Player, ctx.Self, ai.MoveSpeed*ctx.Tuning.RetreatSpeedFactor)}
	default:
		return Action{}
	}
}

// FlyingBehavior hovers with a bob and circles the detected player. When its
// cooldown is ready it swoops in, strikes once in range, then resumes
// circling.
type FlyingBehavior struct{}

func (FlyingBehavior) Tick(ctx *BehaviorContext) Action {
	ai := ctx.AI
	tune := ctx.Tuning
	act := Action{
		SetHeight: true,
		Height:    tune.HoverHeight + tune.HoverBob*math.Sin(ai.Elapsed*tune.HoverBobFrequency),
	}

	if ctx.Distance > ai.DetectionRange {
		ai.Swooping = false
		return act
	}

	if ai.Swooping || ai.Ready() {
		ai.Swooping = true
		if ctx.Distance <= ai.AttackRange {
			act.Attack = true
			ai.Swooping = false
			return act
		}
		act.Velocity = seek(ctx.Self, ctx.Player, ai.MoveSpeed)
		return act
	}

	orbit := ctx.Player.Add(cp.ForAngle(ai.Elapsed * tune.OrbitAngularSpeed).Mult(ai.AttackRange * tune.OrbitRadiusFactor))
	act.Velocity = arrive(ctx.Self, orbit, ai.MoveSpeed, ctx.DT)
	return act
}
