package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/saiyanquest/ecs"
	"github.com/milk9111/saiyanquest/ecs/component"
	"github.com/milk9111/saiyanquest/ecs/entity"
)

// AttackSystem turns edge-triggered player input into attacks: cycling the
// selected energy attack, firing it, and punching.
type AttackSystem struct {
	tables *Tables
	log    *zap.Logger
}

func NewAttackSystem(tables *Tables, log *zap.Logger) *AttackSystem {
	return &AttackSystem{tables: tables, log: orNop(log).Named("attack")}
}

func (s *AttackSystem) Update(w *ecs.World, _ float64) {
	if !playing(w) {
		return
	}
	refs, ok := FindPlayer(w)
	if !ok || refs.Input == nil {
		return
	}
	if refs.Input.JustPressed(component.ActionCycleAttack) {
		s.CycleAttack(w)
	}
	if refs.Input.JustPressed(component.ActionEnergyAttack) {
		s.EnergyAttack(w)
	}
	if refs.Input.JustPressed(component.ActionPunch) {
		s.Punch(w)
	}
}

// CycleAttack selects the next energy attack and returns it.
func (s *AttackSystem) CycleAttack(w *ecs.World) component.AttackKind {
	refs, ok := FindPlayer(w)
	if !ok {
		return component.AttackKiBlast
	}
	refs.Player.Attack = refs.Player.Attack.Next()
	w.Events().Push(ecs.Event{Type: ecs.EventAttackCycled, Entity: refs.Entity, Data: refs.Player.Attack})
	s.log.Debug("attack cycled", zap.Stringer("attack", refs.Player.Attack))
	return refs.Player.Attack
}

// EnergyAttack fires the selected energy attack if the global cooldown has
// elapsed and the player can pay for it.
func (s *AttackSystem) EnergyAttack(w *ecs.World) component.Outcome {
	refs, ok := FindPlayer(w)
	if !ok {
		return component.RejectedDead
	}
	kind := refs.Player.Attack
	outcome := s.energyAttack(w, refs, kind)
	s.report(w, refs.Entity, kind.String(), outcome)
	return outcome
}

func (s *AttackSystem) energyAttack(w *ecs.World, refs PlayerRefs, kind component.AttackKind) component.Outcome {
	switch {
	case !playing(w):
		return component.RejectedNotPlaying
	case refs.Stats.Defeated():
		return component.RejectedDead
	case refs.Cooldowns != nil && refs.Cooldowns.Energy > 0:
		return component.RejectedOnCooldown
	}
	table, ok := s.tables.Attacks[kind]
	if !ok {
		return component.RejectedInvalidAmount
	}
	if refs.Stats.Energy < table.Cost {
		return component.RejectedInsufficientResource
	}

	t := now(w)
	switch kind {
	case component.AttackKiBlast, component.AttackKamehameha:
		_, outcome, err := entity.NewKiBlast(w, kind, *refs.Transform, refs.Player.Facing.Vector(), table, s.tables.Combat.MaxKiBlasts)
		if err != nil {
			s.log.Error("spawn ki blast", zap.Error(err))
			return component.RejectedCapacity
		}
		if outcome != component.Applied {
			return outcome
		}
	case component.AttackSolarFlare:
		if _, err := entity.NewSolarFlare(w, *refs.Transform, table, t); err != nil {
			s.log.Error("spawn solar flare", zap.Error(err))
			return component.RejectedCapacity
		}
	}

	refs.Stats.DrainEnergy(table.Cost)
	if refs.Cooldowns != nil {
		refs.Cooldowns.Energy = s.tables.Combat.GlobalCooldown
	}
	return component.Applied
}

// Punch places a melee strike at the player's position and facing.
func (s *AttackSystem) Punch(w *ecs.World) component.Outcome {
	refs, ok := FindPlayer(w)
	if !ok {
		return component.RejectedDead
	}
	outcome := s.punch(w, refs)
	s.report(w, refs.Entity, "punch", outcome)
	return outcome
}

func (s *AttackSystem) punch(w *ecs.World, refs PlayerRefs) component.Outcome {
	switch {
	case !playing(w):
		return component.RejectedNotPlaying
	case refs.Stats.Defeated():
		return component.RejectedDead
	case refs.Cooldowns != nil && refs.Cooldowns.Punch > 0:
		return component.RejectedOnCooldown
	}
	if _, err := entity.NewMeleeAttack(w, *refs.Transform, refs.Player.Facing, s.tables.Combat, now(w)); err != nil {
		s.log.Error("spawn melee attack", zap.Error(err))
		return component.RejectedCapacity
	}
	if refs.Cooldowns != nil {
		refs.Cooldowns.Punch = s.tables.Combat.PunchCooldown
	}
	return component.Applied
}

func (s *AttackSystem) report(w *ecs.World, e ecs.Entity, attack string, outcome component.Outcome) {
	if outcome.Ok() {
		w.Events().Push(ecs.Event{Type: ecs.EventAttackFired, Entity: e, Data: attack})
		s.log.Debug("attack fired", zap.String("attack", attack))
		return
	}
	w.Events().Push(ecs.Event{Type: ecs.EventAttackRejected, Entity: e, Data: outcome})
	s.log.Debug("attack rejected", zap.String("attack", attack), zap.Stringer("outcome", outcome))
}
