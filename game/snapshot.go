package game

import (
	"cmp"
	"slices"

	"github.com/milk9111/saiyanquest/ecs"
	"github.com/milk9111/saiyanquest/ecs/component"
)

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func vec3(t *component.Transform) Vec3 {
	if t == nil {
		return Vec3{}
	}
	return Vec3{X: t.X, Y: t.Y, Z: t.Z}
}

type PlayerView struct {
	ID           ecs.Entity           `json:"id"`
	Position     Vec3                 `json:"position"`
	Facing       component.Direction  `json:"facing"`
	Attack       component.AttackKind `json:"attack"`
	Health       int                  `json:"health"`
	MaxHealth    int                  `json:"max_health"`
	Energy       int                  `json:"energy"`
	MaxEnergy    int                  `json:"max_energy"`
	Level        int                  `json:"level"`
	Experience   int                  `json:"experience"`
	NextLevelExp int                  `json:"next_level_exp"`
	Invincible   bool                 `json:"invincible"`
}

type EnemyView struct {
	ID        ecs.Entity             `json:"id"`
	Archetype component.Archetype    `json:"archetype"`
	Behavior  component.BehaviorMode `json:"behavior"`
	Position  Vec3                   `json:"position"`
	Facing    component.Direction    `json:"facing"`
	Health    int                    `json:"health"`
	MaxHealth int                    `json:"max_health"`
}

type KiBlastView struct {
	ID       ecs.Entity           `json:"id"`
	Kind     component.AttackKind `json:"kind"`
	Position Vec3                 `json:"position"`
	DirX     float64              `json:"dir_x"`
	DirZ     float64              `json:"dir_z"`
	Speed    float64              `json:"speed"`
	Damage   int                  `json:"damage"`
}

type MeleeView struct {
	ID        ecs.Entity          `json:"id"`
	Position  Vec3                `json:"position"`
	Facing    component.Direction `json:"facing"`
	Damage    int                 `json:"damage"`
	Timestamp float64             `json:"timestamp"`
}

type FlareView struct {
	ID        ecs.Entity `json:"id"`
	Position  Vec3       `json:"position"`
	Radius    float64    `json:"radius"`
	Timestamp float64    `json:"timestamp"`
}

// Snapshot is the JSON-friendly state of a session at one frame. Every list
// is ordered by entity id.
type Snapshot struct {
	Frame   uint64          `json:"frame"`
	Time    float64         `json:"time"`
	Phase   component.Phase `json:"phase"`
	Player  *PlayerView     `json:"player,omitempty"`
	Enemies []EnemyView     `json:"enemies"`
	Blasts  []KiBlastView   `json:"ki_blasts"`
	Melee   []MeleeView     `json:"melee_attacks"`
	Flares  []FlareView     `json:"solar_flares"`
}

// EventView is the JSON form of an ecs.Event.
type EventView struct {
	Type   ecs.EventType `json:"event"`
	Entity ecs.Entity    `json:"entity"`
	Data   any           `json:"data,omitempty"`
}

func EventViews(evts []ecs.Event) []EventView {
	out := make([]EventView, 0, len(evts))
	for _, evt := range evts {
		out = append(out, EventView{Type: evt.Type, Entity: evt.Entity, Data: evt.Data})
	}
	return out
}

func (s *Session) Snapshot() Snapshot {
	w := s.world
	snap := Snapshot{
		Phase:   s.Phase(),
		Enemies: []EnemyView{},
		Blasts:  []KiBlastView{},
		Melee:   []MeleeView{},
		Flares:  []FlareView{},
	}
	if gs := s.gameState(); gs != nil {
		snap.Frame = gs.Frame
		snap.Time = gs.Time
	}

	if refs, ok := s.refs(); ok {
		snap.Player = &PlayerView{
			ID:           refs.Entity,
			Position:     vec3(refs.Transform),
			Facing:       refs.Player.Facing,
			Attack:       refs.Player.Attack,
			Health:       refs.Stats.Health,
			MaxHealth:    refs.Stats.MaxHealth,
			Energy:       refs.Stats.Energy,
			MaxEnergy:    refs.Stats.MaxEnergy,
			Level:        refs.Stats.Level,
			Experience:   refs.Stats.Experience,
			NextLevelExp: refs.Stats.NextLevelExp,
			Invincible:   refs.Stats.IsInvincible,
		}
	}

	transform := func(e ecs.Entity) *component.Transform {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		return t
	}

	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.AIComponent.Kind(), func(e ecs.Entity, en *component.Enemy, ai *component.AI) {
		if !en.IsAlive {
			return
		}
		snap.Enemies = append(snap.Enemies, EnemyView{
			ID:        e,
			Archetype: en.Archetype,
			Behavior:  ai.Mode,
			Position:  vec3(transform(e)),
			Facing:    ai.Facing,
			Health:    en.Health,
			MaxHealth: en.MaxHealth,
		})
	})
	ecs.ForEach(w, component.KiBlastComponent.Kind(), func(e ecs.Entity, b *component.KiBlast) {
		snap.Blasts = append(snap.Blasts, KiBlastView{
			ID:       e,
			Kind:     b.Kind,
			Position: vec3(transform(e)),
			DirX:     b.Direction.X,
			DirZ:     b.Direction.Y,
			Speed:    b.Speed,
			Damage:   b.Damage,
		})
	})
	ecs.ForEach(w, component.MeleeAttackComponent.Kind(), func(e ecs.Entity, m *component.MeleeAttack) {
		snap.Melee = append(snap.Melee, MeleeView{
			ID:        e,
			Position:  vec3(transform(e)),
			Facing:    m.Direction,
			Damage:    m.Damage,
			Timestamp: m.Timestamp,
		})
	})
	ecs.ForEach(w, component.SolarFlareComponent.Kind(), func(e ecs.Entity, f *component.SolarFlare) {
		snap.Flares = append(snap.Flares, FlareView{
			ID:        e,
			Position:  vec3(transform(e)),
			Radius:    f.Radius,
			Timestamp: f.Timestamp,
		})
	})

	slices.SortFunc(snap.Enemies, func(a, b EnemyView) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(snap.Blasts, func(a, b KiBlastView) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(snap.Melee, func(a, b MeleeView) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(snap.Flares, func(a, b FlareView) int { return cmp.Compare(a.ID, b.ID) })
	return snap
}
