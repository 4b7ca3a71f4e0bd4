package component

import "github.com/jakecoffman/cp"

// KiBlast is a travelling energy projectile. It is consumed by its first hit
// or removed once it has travelled MaxRange.
type KiBlast struct {
	Kind      AttackKind
	Direction cp.Vector
	Speed     float64
	Damage    int
	Radius    float64
	Travelled float64
	MaxRange  float64
}

var KiBlastComponent = NewComponent[KiBlast]()

// MeleeAttack is a short-lived strike zone. Each enemy is hit at most once
// per attack.
type MeleeAttack struct {
	Direction  Direction
	Damage     int
	Radius     float64
	Timestamp  float64
	HitTargets map[uint64]bool
}

var MeleeAttackComponent = NewComponent[MeleeAttack]()

// SolarFlare is an area marker with no effect on enemies.
type SolarFlare struct {
	Radius    float64
	Timestamp float64
}

var SolarFlareComponent = NewComponent[SolarFlare]()

// TTL destroys its entity once Seconds runs out.
type TTL struct {
	Seconds float64
}

var TTLComponent = NewComponent[TTL]()
