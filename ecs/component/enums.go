package component

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// Direction is a cardinal facing on the ground plane. Up is -Z, down is +Z.
type Direction int

const (
	DirectionDown Direction = iota
	DirectionUp
	DirectionLeft
	DirectionRight
)

var directionNames = [...]string{
	DirectionDown:  "down",
	DirectionUp:    "up",
	DirectionLeft:  "left",
	DirectionRight: "right",
}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "unknown"
	}
	return directionNames[d]
}

// Vector returns the unit ground-plane vector (x, z) for the facing.
func (d Direction) Vector() cp.Vector {
	switch d {
	case DirectionUp:
		return cp.Vector{X: 0, Y: -1}
	case DirectionLeft:
		return cp.Vector{X: -1, Y: 0}
	case DirectionRight:
		return cp.Vector{X: 1, Y: 0}
	default:
		return cp.Vector{X: 0, Y: 1}
	}
}

// FacingToward picks the facing of the dominant axis of delta. Ties go to
// the horizontal axis; a zero delta keeps the current facing.
func FacingToward(delta cp.Vector, current Direction) Direction {
	if delta.X == 0 && delta.Y == 0 {
		return current
	}
	if math.Abs(delta.X) >= math.Abs(delta.Y) {
		if delta.X > 0 {
			return DirectionRight
		}
		return DirectionLeft
	}
	if delta.Y > 0 {
		return DirectionDown
	}
	return DirectionUp
}

func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	v, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Archetype is the closed set of enemy kinds.
type Archetype int

const (
	ArchetypeWolf Archetype = iota
	ArchetypeDinosaur
	ArchetypePterodactyl
	ArchetypeRobber
	ArchetypeSaiyan
)

var archetypeNames = [...]string{
	ArchetypeWolf:        "wolf",
	ArchetypeDinosaur:    "dinosaur",
	ArchetypePterodactyl: "pterodactyl",
	ArchetypeRobber:      "robber",
	ArchetypeSaiyan:      "saiyan",
}

// Archetypes lists every archetype in declaration order.
func Archetypes() []Archetype {
	out := make([]Archetype, len(archetypeNames))
	for i := range archetypeNames {
		out[i] = Archetype(i)
	}
	return out
}

func (a Archetype) String() string {
	if a < 0 || int(a) >= len(archetypeNames) {
		return "unknown"
	}
	return archetypeNames[a]
}

func ParseArchetype(s string) (Archetype, error) {
	for i, name := range archetypeNames {
		if name == s {
			return Archetype(i), nil
		}
	}
	return 0, fmt.Errorf("unknown archetype %q", s)
}

func (a Archetype) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Archetype) UnmarshalText(text []byte) error {
	v, err := ParseArchetype(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// BehaviorMode selects the enemy movement/attack policy.
type BehaviorMode int

const (
	BehaviorAggressive BehaviorMode = iota
	BehaviorPatrol
	BehaviorDefensive
	BehaviorFlying
	BehaviorScripted
)

var behaviorNames = [...]string{
	BehaviorAggressive: "aggressive",
	BehaviorPatrol:     "patrol",
	BehaviorDefensive:  "defensive",
	BehaviorFlying:     "flying",
	BehaviorScripted:   "scripted",
}

func (b BehaviorMode) String() string {
	if b < 0 || int(b) >= len(behaviorNames) {
		return "unknown"
	}
	return behaviorNames[b]
}

func ParseBehaviorMode(s string) (BehaviorMode, error) {
	for i, name := range behaviorNames {
		if name == s {
			return BehaviorMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown behavior %q", s)
}

func (b BehaviorMode) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *BehaviorMode) UnmarshalText(text []byte) error {
	v, err := ParseBehaviorMode(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// AttackKind is the closed set of energy attacks the player cycles through.
type AttackKind int

const (
	AttackKiBlast AttackKind = iota
	AttackKamehameha
	AttackSolarFlare

	attackKindCount
)

var attackNames = [...]string{
	AttackKiBlast:    "ki_blast",
	AttackKamehameha: "kamehameha",
	AttackSolarFlare: "solar_flare",
}

// Next returns the following attack in the cycle.
func (k AttackKind) Next() AttackKind {
	return (k + 1) % attackKindCount
}

func (k AttackKind) String() string {
	if k < 0 || int(k) >= len(attackNames) {
		return "unknown"
	}
	return attackNames[k]
}

func ParseAttackKind(s string) (AttackKind, error) {
	for i, name := range attackNames {
		if name == s {
			return AttackKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown attack %q", s)
}

func (k AttackKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *AttackKind) UnmarshalText(text []byte) error {
	v, err := ParseAttackKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
