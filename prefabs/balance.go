package prefabs

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/saiyanquest/ecs/component"
)

// Balance is the validated, enum-keyed form of BalanceSpec that the
// simulation reads.
type Balance struct {
	Player          PlayerTable
	Combat          CombatTable
	Attacks         map[component.AttackKind]AttackTable
	Enemies         map[component.Archetype]EnemyConfig
	AttackCooldowns map[component.BehaviorMode]float64
	Behaviors       BehaviorTuning
	Death           DeathPenalty
	Arena           cp.BB
}

type PlayerTable struct {
	MaxHealth            int
	MaxEnergy            int
	NextLevelExp         int
	MoveSpeed            float64
	InvincibilitySeconds float64
	EnergyRegenPerSecond float64
	StartingAttack       component.AttackKind
	Growth               component.LevelGrowth
}

type CombatTable struct {
	GlobalCooldown float64
	PunchCooldown  float64
	MeleeDamage    int
	MeleeRange     float64
	MeleeLifetime  float64
	MaxKiBlasts    int
	GridCellSize   float64
}

type AttackTable struct {
	Damage   int
	Cost     int
	Speed    float64
	Radius   float64
	MaxRange float64
	Lifetime float64
}

type EnemyConfig struct {
	Health         int
	Damage         int
	MoveSpeed      float64
	AttackRange    float64
	DetectionRange float64
	ExpReward      int
	Behavior       component.BehaviorMode
	AttackCooldown float64
	Script         string
}

type BehaviorTuning struct {
	PatrolSpeedFactor  float64
	WaypointThreshold  float64
	RetreatSpeedFactor float64
	RetreatRangeFactor float64
	HoverHeight        float64
	HoverBob           float64
	HoverBobFrequency  float64
	OrbitAngularSpeed  float64
	OrbitRadiusFactor  float64
}

type DeathPenalty struct {
	ExpLoss       float64
	HealthRestore float64
	EnergyRestore float64
}

// Spawn is a resolved enemy placement.
type Spawn struct {
	Archetype component.Archetype
	Config    EnemyConfig
	Position  cp.Vector
	Waypoints []cp.Vector
}

func (p PointSpec) Vector() cp.Vector {
	return cp.Vector{X: p.X, Y: p.Z}
}

// LoadBalance loads and resolves balance.yaml.
func LoadBalance() (*Balance, error) {
	spec, err := LoadBalanceSpec()
	if err != nil {
		return nil, err
	}
	return spec.Resolve()
}

// Resolve validates the spec and converts names into enums. Every attack
// kind and every archetype must have an entry.
func (s *BalanceSpec) Resolve() (*Balance, error) {
	b := &Balance{
		Attacks:         make(map[component.AttackKind]AttackTable),
		Enemies:         make(map[component.Archetype]EnemyConfig),
		AttackCooldowns: make(map[component.BehaviorMode]float64),
	}

	start := component.AttackKiBlast
	if s.Player.StartingAttack != "" {
		k, err := component.ParseAttackKind(s.Player.StartingAttack)
		if err != nil {
			return nil, fmt.Errorf("prefabs: player starting_attack: %w", err)
		}
		start = k
	}
	b.Player = PlayerTable{
		MaxHealth:            s.Player.MaxHealth,
		MaxEnergy:            s.Player.MaxEnergy,
		NextLevelExp:         s.Player.NextLevelExp,
		MoveSpeed:            s.Player.MoveSpeed,
		InvincibilitySeconds: s.Player.InvincibilitySeconds,
		EnergyRegenPerSecond: s.Player.EnergyRegenPerSecond,
		StartingAttack:       start,
		Growth: component.LevelGrowth{
			MaxHealth: s.Player.LevelUp.MaxHealth,
			MaxEnergy: s.Player.LevelUp.MaxEnergy,
			ExpCurve:  s.Player.LevelUp.ExpCurve,
		},
	}
	if b.Player.MaxHealth <= 0 || b.Player.MaxEnergy < 0 || b.Player.NextLevelExp <= 0 {
		return nil, fmt.Errorf("%w: player caps must be positive", ErrInvalidValue)
	}

	b.Combat = CombatTable(s.Combat)
	if b.Combat.MaxKiBlasts <= 0 {
		return nil, fmt.Errorf("%w: combat max_ki_blasts must be positive", ErrInvalidValue)
	}
	if b.Combat.GridCellSize <= 0 {
		b.Combat.GridCellSize = 4
	}

	for name, a := range s.Attacks {
		kind, err := component.ParseAttackKind(name)
		if err != nil {
			return nil, fmt.Errorf("prefabs: attacks: %w", err)
		}
		if a.Cost < 0 || a.Damage < 0 {
			return nil, fmt.Errorf("%w: attack %s has negative cost or damage", ErrInvalidValue, kind)
		}
		b.Attacks[kind] = AttackTable(a)
	}
	for k := component.AttackKiBlast; k <= component.AttackSolarFlare; k++ {
		if _, ok := b.Attacks[k]; !ok {
			return nil, fmt.Errorf("%w: attack %s", ErrMissingEntry, k)
		}
	}

	for name, cd := range s.Cooldowns {
		mode, err := component.ParseBehaviorMode(name)
		if err != nil {
			return nil, fmt.Errorf("prefabs: attack_cooldowns: %w", err)
		}
		b.AttackCooldowns[mode] = cd
	}

	for name, e := range s.Enemies {
		arch, err := component.ParseArchetype(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownArchetype, name)
		}
		mode, err := component.ParseBehaviorMode(e.Behavior)
		if err != nil {
			return nil, fmt.Errorf("prefabs: enemy %s: %w", arch, err)
		}
		if e.Health <= 0 {
			return nil, fmt.Errorf("%w: enemy %s health must be positive", ErrInvalidValue, arch)
		}
		b.Enemies[arch] = EnemyConfig{
			Health:         e.Health,
			Damage:         e.Damage,
			MoveSpeed:      e.MoveSpeed,
			AttackRange:    e.AttackRange,
			DetectionRange: e.DetectionRange,
			ExpReward:      e.ExpReward,
			Behavior:       mode,
			AttackCooldown: b.AttackCooldowns[mode],
			Script:         e.Script,
		}
	}
	for _, arch := range component.Archetypes() {
		if _, ok := b.Enemies[arch]; !ok {
			return nil, fmt.Errorf("%w: enemy %s", ErrMissingEntry, arch)
		}
	}

	b.Behaviors = BehaviorTuning(s.Behaviors)
	b.Death = DeathPenalty(s.Death)
	if b.Death.ExpLoss < 0 || b.Death.ExpLoss > 1 {
		return nil, fmt.Errorf("%w: death_penalty exp_loss must be within [0,1]", ErrInvalidValue)
	}

	if s.Arena.HalfWidth > 0 && s.Arena.HalfDepth > 0 {
		b.Arena = cp.NewBBForExtents(cp.Vector{}, s.Arena.HalfWidth, s.Arena.HalfDepth)
	}
	return b, nil
}

// ResolveSpawns resolves every spawn of a scenario against b.
func (s *ScenarioSpec) ResolveSpawns(b *Balance) ([]Spawn, error) {
	out := make([]Spawn, 0, len(s.Spawns))
	for i, sp := range s.Spawns {
		r, err := sp.Resolve(b)
		if err != nil {
			return nil, fmt.Errorf("prefabs: scenario %s spawn %d: %w", s.Name, i, err)
		}
		out = append(out, r)
	}
	return out, nil
}
