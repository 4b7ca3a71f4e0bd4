package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/milk9111/saiyanquest/ecs"
	"github.com/milk9111/saiyanquest/ecs/component"
	"github.com/milk9111/saiyanquest/ecs/entity"
	"github.com/milk9111/saiyanquest/prefabs"
)

const testDT = 1.0 / 30

type harness struct {
	t        *testing.T
	w        *ecs.World
	tables   *Tables
	pipeline *Pipeline
	player   ecs.Entity
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	b, err := prefabs.LoadBalance()
	require.NoError(t, err)

	w := ecs.NewWorld()
	_, err = entity.NewGameState(w)
	require.NoError(t, err)
	player, err := entity.NewPlayer(w, b.Player, component.Transform{})
	require.NoError(t, err)

	tables := &Tables{Balance: b}
	return &harness{
		t:        t,
		w:        w,
		tables:   tables,
		pipeline: NewPipeline(tables, zaptest.NewLogger(t)),
		player:   player,
	}
}

func (h *harness) step(n int) {
	for i := 0; i < n; i++ {
		h.pipeline.Scheduler.Update(h.w, testDT)
	}
}

func (h *harness) refs() PlayerRefs {
	h.t.Helper()
	refs, ok := FindPlayer(h.w)
	require.True(h.t, ok)
	return refs
}

func (h *harness) tap(a component.Action) {
	h.refs().Input.Tap(a)
}

// spawn places an enemy; mutate may tweak its resolved config.
func (h *harness) spawn(arch component.Archetype, at cp.Vector, mutate func(*prefabs.EnemyConfig)) ecs.Entity {
	h.t.Helper()
	cfg := h.tables.Enemies[arch]
	if mutate != nil {
		mutate(&cfg)
	}
	e, err := entity.NewEnemy(h.w, prefabs.Spawn{Archetype: arch, Config: cfg, Position: at}, nil)
	require.NoError(h.t, err)
	return e
}

// inert keeps an enemy from noticing the player.
func inert(cfg *prefabs.EnemyConfig) {
	cfg.DetectionRange = 0
	cfg.AttackRange = 0
}

func (h *harness) enemy(e ecs.Entity) *component.Enemy {
	en, _ := ecs.Get(h.w, e, component.EnemyComponent.Kind())
	return en
}

func (h *harness) phase() component.Phase {
	return gameState(h.w).Phase
}

func (h *harness) drain() []ecs.Event {
	return h.w.Events().Drain()
}

func countEvents(evts []ecs.Event, typ ecs.EventType) int {
	n := 0
	for _, e := range evts {
		if e.Type == typ {
			n++
		}
	}
	return n
}
