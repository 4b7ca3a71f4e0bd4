package game

import (
	"encoding/json"
	"maps"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/milk9111/saiyanquest/ecs"
	"github.com/milk9111/saiyanquest/ecs/component"
	"github.com/milk9111/saiyanquest/prefabs"
)

const dt = 1.0 / 30

func newSession(t *testing.T, opts Options) *Session {
	t.Helper()
	prev := prefabs.DiskDir()
	prefabs.SetDiskDir("")
	t.Cleanup(func() { prefabs.SetDiskDir(prev) })

	opts.Logger = zaptest.NewLogger(t)
	s, err := NewSession(opts)
	require.NoError(t, err)
	return s
}

func run(s *Session, frames int) []ecs.Event {
	var out []ecs.Event
	for i := 0; i < frames; i++ {
		out = append(out, s.Step(dt)...)
	}
	return out
}

func count(evts []ecs.Event, typ ecs.EventType) int {
	n := 0
	for _, e := range evts {
		if e.Type == typ {
			n++
		}
	}
	return n
}

// inertWolf never notices the player.
func inertWolf(t *testing.T, s *Session, at cp.Vector) ecs.Entity {
	t.Helper()
	cfg := s.Balance().Enemies[component.ArchetypeWolf]
	cfg.DetectionRange = 0
	cfg.AttackRange = 0
	e, err := s.SpawnEnemy(prefabs.Spawn{Archetype: component.ArchetypeWolf, Config: cfg, Position: at})
	require.NoError(t, err)
	return e
}

func TestNewSessionDefaults(t *testing.T) {
	s := newSession(t, Options{})

	stats, pos, err := s.Player()
	require.NoError(t, err)
	assert.Equal(t, 100, stats.Health)
	assert.Equal(t, 100, stats.Energy)
	assert.Equal(t, 1, stats.Level)
	assert.Equal(t, 100, stats.NextLevelExp)
	assert.Equal(t, component.Transform{}, pos)
	assert.Equal(t, component.PhasePlaying, s.Phase())
	assert.Equal(t, component.AttackKiBlast, s.CurrentAttack())
}

func TestTakeDamageStartsInvincibility(t *testing.T) {
	s := newSession(t, Options{})

	require.Equal(t, component.Applied, s.TakeDamage(15))
	assert.Equal(t, component.RejectedInvincible, s.TakeDamage(15))
	assert.Equal(t, component.RejectedInvalidAmount, s.Heal(-1))

	stats, _, _ := s.Player()
	assert.Equal(t, 85, stats.Health)
	assert.True(t, stats.IsInvincible)

	evts := run(s, 30)
	assert.Equal(t, 1, count(evts, ecs.EventPlayerHit))

	require.Equal(t, component.Applied, s.TakeDamage(15))
	stats, _, _ = s.Player()
	assert.Equal(t, 70, stats.Health)
}

func TestHealthAndEnergyStayInBounds(t *testing.T) {
	s := newSession(t, Options{})

	assert.Equal(t, component.Applied, s.Heal(50))
	assert.Equal(t, component.RejectedInsufficientResource, s.DrainEnergy(150))
	assert.Equal(t, component.Applied, s.DrainEnergy(30))
	assert.Equal(t, component.Applied, s.RechargeEnergy(500))

	stats, _, _ := s.Player()
	assert.Equal(t, 100, stats.Health)
	assert.Equal(t, 100, stats.Energy)
}

func TestLethalDamageEndsGameAndRestartRespawns(t *testing.T) {
	s := newSession(t, Options{})
	s.GainExperience(50)
	s.DrainEnergy(40)
	s.Move(component.DirectionRight)
	run(s, 15)
	s.Stop()

	require.Equal(t, component.Applied, s.TakeDamage(200))
	evts := s.Step(dt)
	assert.Equal(t, 1, count(evts, ecs.EventPlayerDefeated))
	assert.Equal(t, component.PhaseGameOver, s.Phase())

	assert.Equal(t, component.RejectedNotPlaying, s.EnergyAttack())
	assert.Equal(t, component.RejectedNotPlaying, s.Punch())

	require.Equal(t, component.Applied, s.Restart())
	assert.Equal(t, component.PhasePlaying, s.Phase())
	assert.Equal(t, component.RejectedNotPlaying, s.Restart())

	stats, pos, _ := s.Player()
	assert.Equal(t, 50, stats.Health)
	assert.Equal(t, 100, stats.Energy)
	assert.Equal(t, 45, stats.Experience)
	assert.False(t, stats.IsInvincible)
	assert.Equal(t, component.Transform{}, pos)
}

func TestDefeatedPlayerStaysDownUntilRestart(t *testing.T) {
	s := newSession(t, Options{})
	s.GainExperience(90)
	require.Equal(t, component.Applied, s.TakeDamage(200))

	assert.Zero(t, s.GainExperience(50))
	s.LevelUp()
	evts := s.Step(dt)
	assert.Zero(t, count(evts, ecs.EventLevelUp))
	assert.Equal(t, component.PhaseGameOver, s.Phase())

	stats, _, err := s.Player()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Health)
	assert.Equal(t, 1, stats.Level)
	assert.Equal(t, 90, stats.Experience)
}

func TestRestartByInput(t *testing.T) {
	s := newSession(t, Options{})
	s.TakeDamage(100)
	s.Step(dt)
	require.Equal(t, component.PhaseGameOver, s.Phase())

	s.Press(component.ActionRestart)
	evts := s.Step(dt)
	assert.Equal(t, component.PhasePlaying, s.Phase())
	assert.Equal(t, 1, count(evts, ecs.EventRespawned))
}

func TestGainExperienceLevelsUp(t *testing.T) {
	s := newSession(t, Options{})

	assert.Equal(t, 1, s.GainExperience(130))
	stats, _, _ := s.Player()
	assert.Equal(t, 2, stats.Level)
	assert.Equal(t, 30, stats.Experience)
	assert.Equal(t, 150, stats.NextLevelExp)
	assert.Equal(t, 120, stats.MaxHealth)
	assert.Equal(t, 110, stats.MaxEnergy)

	assert.Equal(t, 0, s.GainExperience(-500))
	stats, _, _ = s.Player()
	assert.Equal(t, 0, stats.Experience)

	evts := s.Step(0)
	assert.Equal(t, 1, count(evts, ecs.EventLevelUp))
}

func TestMeleeThenBlastKillsOnce(t *testing.T) {
	deaths := 0
	s := newSession(t, Options{OnEnemyDeath: func(*component.Enemy) { deaths++ }})
	wolf := inertWolf(t, s, cp.Vector{X: 0.8})

	_, err := s.PerformMeleeAttack(component.Transform{}, component.DirectionRight)
	require.NoError(t, err)
	s.Step(dt)
	en, ok := s.Enemy(wolf)
	require.True(t, ok)
	assert.Equal(t, 20, en.Health)

	_, outcome := s.CreateKiBlast(component.Transform{X: 0.8}, cp.Vector{X: 1}, 25, 1)
	require.Equal(t, component.Applied, outcome)
	evts := s.Step(dt)
	evts = append(evts, run(s, 20)...)

	_, ok = s.Enemy(wolf)
	assert.False(t, ok)
	assert.Equal(t, 1, deaths)
	assert.Equal(t, 1, count(evts, ecs.EventEnemyDefeated))

	stats, _, _ := s.Player()
	assert.Equal(t, 25, stats.Experience)
}

func TestKiBlastTravelsAndExpires(t *testing.T) {
	s := newSession(t, Options{})

	blast, outcome := s.CreateKiBlast(component.Transform{}, cp.Vector{X: 1}, 25, 15)
	require.Equal(t, component.Applied, outcome)

	run(s, 30)
	snap := s.Snapshot()
	require.Len(t, snap.Blasts, 1)
	assert.Equal(t, blast, snap.Blasts[0].ID)
	assert.InDelta(t, 15, snap.Blasts[0].Position.X, 1e-6)

	run(s, 12)
	assert.Empty(t, s.Snapshot().Blasts)
	assert.False(t, s.RemoveKiBlast(blast))
}

func TestRemovalIsIdempotent(t *testing.T) {
	s := newSession(t, Options{})

	blast, _ := s.CreateKiBlast(component.Transform{}, cp.Vector{Y: 1}, 25, 15)
	melee, err := s.PerformMeleeAttack(component.Transform{}, component.DirectionUp)
	require.NoError(t, err)

	assert.False(t, s.RemoveKiBlast(melee))
	assert.False(t, s.RemoveMeleeAttack(blast))

	assert.True(t, s.RemoveKiBlast(blast))
	assert.False(t, s.RemoveKiBlast(blast))
	assert.True(t, s.RemoveMeleeAttack(melee))
	assert.False(t, s.RemoveMeleeAttack(melee))

	s.CreateKiBlast(component.Transform{}, cp.Vector{X: 1}, 25, 15)
	s.CreateKiBlast(component.Transform{}, cp.Vector{X: -1}, 25, 15)
	assert.Equal(t, 2, s.ClearAllProjectiles())
	assert.Equal(t, 0, s.ClearAllProjectiles())

	_, outcome := s.CreateKiBlast(component.Transform{}, cp.Vector{X: 1}, -5, 15)
	assert.Equal(t, component.RejectedInvalidAmount, outcome)
}

func TestEnergyAttackCooldownAndCycle(t *testing.T) {
	s := newSession(t, Options{})

	start := s.CurrentAttack()
	s.CycleAttack()
	s.CycleAttack()
	assert.Equal(t, start, s.CycleAttack())

	require.Equal(t, component.Applied, s.EnergyAttack())
	assert.Equal(t, component.RejectedOnCooldown, s.EnergyAttack())
	require.Equal(t, component.Applied, s.Punch())
	assert.Equal(t, component.RejectedOnCooldown, s.Punch())

	stats, _, _ := s.Player()
	assert.Equal(t, 85, stats.Energy)

	payload, err := json.Marshal(EventViews(s.Step(0)))
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"event":"attack_rejected"`)
	assert.Contains(t, string(payload), `"data":"on_cooldown"`)
	assert.Contains(t, string(payload), `"data":"ki_blast"`)
}

func TestMoveAndStop(t *testing.T) {
	s := newSession(t, Options{})

	s.Move(component.DirectionRight)
	run(s, 30)
	_, pos, _ := s.Player()
	assert.InDelta(t, 5, pos.X, 1e-6)
	assert.Equal(t, component.DirectionRight, s.Snapshot().Player.Facing)

	s.Stop()
	run(s, 10)
	_, pos, _ = s.Player()
	assert.InDelta(t, 5, pos.X, 1e-6)
}

func TestApplyBalanceTakesEffect(t *testing.T) {
	s := newSession(t, Options{})

	b := *s.Balance()
	b.Attacks = maps.Clone(b.Attacks)
	blast := b.Attacks[component.AttackKiBlast]
	blast.Cost = 1000
	b.Attacks[component.AttackKiBlast] = blast
	s.ApplyBalance(&b)

	assert.Equal(t, component.RejectedInsufficientResource, s.EnergyAttack())
}

func TestResetRebuildsConfiguredSpawns(t *testing.T) {
	b, err := prefabs.LoadBalance()
	require.NoError(t, err)
	spawns := []prefabs.Spawn{
		{Archetype: component.ArchetypeRobber, Config: b.Enemies[component.ArchetypeRobber], Position: cp.Vector{X: 20, Y: 20}},
	}
	s := newSession(t, Options{Balance: b, Spawns: spawns})

	_, err = s.SpawnArchetype(component.ArchetypeDinosaur, cp.Vector{X: -20})
	require.NoError(t, err)
	s.TakeDamage(30)
	require.Len(t, s.Snapshot().Enemies, 2)

	require.NoError(t, s.Reset())
	snap := s.Snapshot()
	require.Len(t, snap.Enemies, 1)
	assert.Equal(t, component.ArchetypeRobber, snap.Enemies[0].Archetype)
	assert.Equal(t, 100, snap.Player.Health)
	assert.Zero(t, s.Time())
}

func TestSnapshotJSON(t *testing.T) {
	s := newSession(t, Options{})
	inertWolf(t, s, cp.Vector{X: 10})
	s.EnergyAttack()
	s.Step(dt)

	payload, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)
	body := string(payload)
	assert.Contains(t, body, `"phase":"playing"`)
	assert.Contains(t, body, `"archetype":"wolf"`)
	assert.Contains(t, body, `"kind":"ki_blast"`)
	assert.Contains(t, body, `"frame":1`)
}
