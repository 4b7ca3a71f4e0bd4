package system

import (
	"github.com/d5/tengo/v2"
	"go.uber.org/zap"

	"github.com/milk9111/saiyanquest/ecs"
	"github.com/milk9111/saiyanquest/ecs/component"
)

// EnemyAISystem ticks every living enemy's behavior, moves it and lets it
// strike the player.
type EnemyAISystem struct {
	tables *Tables
	log    *zap.Logger

	templates map[string]*tengo.Compiled
	scripted  map[ecs.Entity]*ScriptedBehavior
	failed    map[string]bool
}

func NewEnemyAISystem(tables *Tables, log *zap.Logger) *EnemyAISystem {
	return &EnemyAISystem{
		tables:    tables,
		log:       orNop(log).Named("ai"),
		templates: map[string]*tengo.Compiled{},
		scripted:  map[ecs.Entity]*ScriptedBehavior{},
		failed:    map[string]bool{},
	}
}

// ReloadScripts drops every compiled script so edited sources are picked up
// on the next tick.
func (s *EnemyAISystem) ReloadScripts() {
	clear(s.templates)
	clear(s.scripted)
	clear(s.failed)
}

func (s *EnemyAISystem) Update(w *ecs.World, dt float64) {
	s.prune(w)
	if !playing(w) {
		return
	}
	refs, ok := FindPlayer(w)
	if !ok {
		return
	}
	playerPos := refs.Transform.Ground()
	t := now(w)

	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.AIComponent.Kind(), func(e ecs.Entity, enemy *component.Enemy, ai *component.AI) {
		if !enemy.IsAlive {
			return
		}
		tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}

		ai.Elapsed += dt
		ai.CooldownLeft = max(0, ai.CooldownLeft-dt)

		self := tr.Ground()
		ctx := &BehaviorContext{
			Self:     self,
			Player:   playerPos,
			Distance: self.Distance(playerPos),
			AI:       ai,
			DT:       dt,
			Tuning:   s.tables.Behaviors,
		}
		behavior := s.behaviorFor(e, ai)
		if behavior == nil {
			return
		}
		act := behavior.Tick(ctx)

		if act.Velocity.LengthSq() > 0 {
			tr.SetGround(self.Add(act.Velocity.Mult(dt)))
			clampToArena(s.tables.Balance, tr)
		}
		if act.SetHeight {
			tr.Y = act.Height
		}
		ai.Facing = component.FacingToward(playerPos.Sub(tr.Ground()), ai.Facing)

		if act.Attack && ai.Ready() && tr.Ground().Distance(playerPos) <= ai.AttackRange {
			s.strike(w, e, enemy, ai, refs, t)
		}
	})
}

func (s *EnemyAISystem) strike(w *ecs.World, e ecs.Entity, enemy *component.Enemy, ai *component.AI, refs PlayerRefs, t float64) {
	ai.CooldownLeft = ai.AttackCooldown
	enemy.LastAttackTime = t

	outcome := refs.Stats.TakeDamage(enemy.Damage, t)
	if !outcome.Ok() {
		s.log.Debug("enemy attack absorbed",
			zap.Stringer("archetype", enemy.Archetype),
			zap.Stringer("outcome", outcome))
		return
	}

	w.Events().Push(ecs.Event{Type: ecs.EventPlayerHit, Entity: e, Data: enemy.Damage})
	s.log.Debug("player hit",
		zap.Stringer("archetype", enemy.Archetype),
		zap.Int("damage", enemy.Damage),
		zap.Int("health", refs.Stats.Health))

	if refs.Stats.Defeated() {
		w.Events().Push(ecs.Event{Type: ecs.EventPlayerDefeated, Entity: refs.Entity})
	}
}

func (s *EnemyAISystem) behaviorFor(e ecs.Entity, ai *component.AI) Behavior {
	if ai.Mode != component.BehaviorScripted {
		return behaviorRegistry[ai.Mode]
	}
	if b, ok := s.scripted[e]; ok {
		return b
	}
	if s.failed[ai.Script] {
		return nil
	}
	tmpl, ok := s.templates[ai.Script]
	if !ok {
		compiled, err := CompileScript(ai.Script)
		if err != nil {
			s.failed[ai.Script] = true
			s.log.Error("load behavior script", zap.String("script", ai.Script), zap.Error(err))
			return nil
		}
		tmpl = compiled
		s.templates[ai.Script] = tmpl
	}
	b := NewScriptedBehavior(ai.Script, tmpl)
	s.scripted[e] = b
	return b
}

func (s *EnemyAISystem) prune(w *ecs.World) {
	for e := range s.scripted {
		if !ecs.IsAlive(w, e) {
			delete(s.scripted, e)
		}
	}
}
