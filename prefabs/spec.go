package prefabs

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/saiyanquest/ecs/component"
)

const (
	BalanceFile  = "balance.yaml"
	ScenarioFile = "arena.yaml"
)

var (
	ErrUnknownArchetype = errors.New("prefabs: unknown archetype")
	ErrMissingEntry     = errors.New("prefabs: missing table entry")
	ErrInvalidValue     = errors.New("prefabs: invalid value")
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type BalanceSpec struct {
	Player    PlayerSpec            `yaml:"player"`
	Combat    CombatSpec            `yaml:"combat"`
	Attacks   map[string]AttackSpec `yaml:"attacks"`
	Enemies   map[string]EnemySpec  `yaml:"enemies"`
	Behaviors BehaviorSpec          `yaml:"behaviors"`
	Cooldowns map[string]float64    `yaml:"attack_cooldowns"`
	Death     DeathPenaltySpec      `yaml:"death_penalty"`
	Arena     ArenaSpec             `yaml:"arena"`
}

type PlayerSpec struct {
	MaxHealth            int             `yaml:"max_health"`
	MaxEnergy            int             `yaml:"max_energy"`
	NextLevelExp         int             `yaml:"next_level_exp"`
	MoveSpeed            float64         `yaml:"move_speed"`
	InvincibilitySeconds float64         `yaml:"invincibility_seconds"`
	EnergyRegenPerSecond float64         `yaml:"energy_regen_per_second"`
	StartingAttack       string          `yaml:"starting_attack"`
	LevelUp              LevelGrowthSpec `yaml:"level_up"`
}

type LevelGrowthSpec struct {
	MaxHealth int     `yaml:"max_health"`
	MaxEnergy int     `yaml:"max_energy"`
	ExpCurve  float64 `yaml:"exp_curve"`
}

type CombatSpec struct {
	GlobalCooldown float64 `yaml:"global_cooldown"`
	PunchCooldown  float64 `yaml:"punch_cooldown"`
	MeleeDamage    int     `yaml:"melee_damage"`
	MeleeRange     float64 `yaml:"melee_range"`
	MeleeLifetime  float64 `yaml:"melee_lifetime"`
	MaxKiBlasts    int     `yaml:"max_ki_blasts"`
	GridCellSize   float64 `yaml:"grid_cell_size"`
}

type AttackSpec struct {
	Damage   int     `yaml:"damage"`
	Cost     int     `yaml:"cost"`
	Speed    float64 `yaml:"speed"`
	Radius   float64 `yaml:"radius"`
	MaxRange float64 `yaml:"max_range"`
	Lifetime float64 `yaml:"lifetime"`
}

type EnemySpec struct {
	Health         int     `yaml:"health"`
	Damage         int     `yaml:"damage"`
	MoveSpeed      float64 `yaml:"move_speed"`
	AttackRange    float64 `yaml:"attack_range"`
	DetectionRange float64 `yaml:"detection_range"`
	ExpReward      int     `yaml:"exp_reward"`
	Behavior       string  `yaml:"behavior"`
	Script         string  `yaml:"script,omitempty"`
}

type BehaviorSpec struct {
	PatrolSpeedFactor  float64 `yaml:"patrol_speed_factor"`
	WaypointThreshold  float64 `yaml:"waypoint_threshold"`
	RetreatSpeedFactor float64 `yaml:"retreat_speed_factor"`
	RetreatRangeFactor float64 `yaml:"retreat_range_factor"`
	HoverHeight        float64 `yaml:"hover_height"`
	HoverBob           float64 `yaml:"hover_bob"`
	HoverBobFrequency  float64 `yaml:"hover_bob_frequency"`
	OrbitAngularSpeed  float64 `yaml:"orbit_angular_speed"`
	OrbitRadiusFactor  float64 `yaml:"orbit_radius_factor"`
}

type DeathPenaltySpec struct {
	ExpLoss       float64 `yaml:"exp_loss"`
	HealthRestore float64 `yaml:"health_restore"`
	EnergyRestore float64 `yaml:"energy_restore"`
}

type ArenaSpec struct {
	HalfWidth float64 `yaml:"half_width"`
	HalfDepth float64 `yaml:"half_depth"`
}

func LoadBalanceSpec() (*BalanceSpec, error) {
	spec, err := LoadSpec[BalanceSpec](BalanceFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ScenarioSpec describes an arena layout and, for headless runs, a timed
// input script.
type ScenarioSpec struct {
	Name     string      `yaml:"name"`
	Duration float64     `yaml:"duration"`
	TickRate int         `yaml:"tick_rate"`
	Spawns   []SpawnSpec `yaml:"spawns"`
	Inputs   []InputSpec `yaml:"inputs"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Z float64 `yaml:"z"`
}

type SpawnSpec struct {
	Archetype string      `yaml:"archetype"`
	Position  PointSpec   `yaml:"position"`
	Behavior  string      `yaml:"behavior,omitempty"`
	Waypoints []PointSpec `yaml:"waypoints,omitempty"`
	Script    string      `yaml:"script,omitempty"`
}

// InputSpec fires at At seconds. Exactly one of Press, Move or Stop is set.
type InputSpec struct {
	At    float64 `yaml:"at"`
	Press string  `yaml:"press,omitempty"`
	Move  string  `yaml:"move,omitempty"`
	Stop  bool    `yaml:"stop,omitempty"`
}

func LoadScenarioSpec(filename string) (*ScenarioSpec, error) {
	if filename == "" {
		filename = ScenarioFile
	}
	spec, err := LoadSpec[ScenarioSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ParseScenarioSpec decodes a scenario that does not live in the prefab tree.
func ParseScenarioSpec(data []byte) (*ScenarioSpec, error) {
	var spec ScenarioSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal scenario: %w", err)
	}
	return &spec, nil
}

// Resolve maps a spawn onto its archetype's table entry, applying the
// spawn's behavior and script overrides.
func (s SpawnSpec) Resolve(b *Balance) (Spawn, error) {
	arch, err := component.ParseArchetype(s.Archetype)
	if err != nil {
		return Spawn{}, fmt.Errorf("%w: %q", ErrUnknownArchetype, s.Archetype)
	}
	cfg, ok := b.Enemies[arch]
	if !ok {
		return Spawn{}, fmt.Errorf("%w: enemy %s", ErrMissingEntry, arch)
	}
	if s.Behavior != "" {
		mode, err := component.ParseBehaviorMode(s.Behavior)
		if err != nil {
			return Spawn{}, fmt.Errorf("prefabs: spawn %s: %w", arch, err)
		}
		cfg.Behavior = mode
		if cd, ok := b.AttackCooldowns[mode]; ok {
			cfg.AttackCooldown = cd
		}
	}
	if s.Script != "" {
		cfg.Script = s.Script
		if s.Behavior == "" {
			cfg.Behavior = component.BehaviorScripted
		}
	}
	if cfg.Behavior == component.BehaviorScripted && cfg.Script == "" {
		return Spawn{}, fmt.Errorf("%w: scripted %s spawn without script", ErrInvalidValue, arch)
	}
	if cfg.Behavior == component.BehaviorPatrol && len(s.Waypoints) == 0 {
		return Spawn{}, fmt.Errorf("%w: patrol %s spawn without waypoints", ErrInvalidValue, arch)
	}
	out := Spawn{
		Archetype: arch,
		Config:    cfg,
		Position:  s.Position.Vector(),
	}
	for _, wp := range s.Waypoints {
		out.Waypoints = append(out.Waypoints, wp.Vector())
	}
	return out, nil
}
