package system

import (
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/saiyanquest/ecs"
	"github.com/milk9111/saiyanquest/ecs/component"
	"github.com/milk9111/saiyanquest/prefabs"
)

// Tables is the balance shared by every system of one session. Swapping
// Balance takes effect on the next frame.
type Tables struct {
	*prefabs.Balance
}

func orNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

func gameState(w *ecs.World) *component.GameState {
	_, gs, ok := ecs.First(w, component.GameStateComponent.Kind())
	if !ok {
		return nil
	}
	return gs
}

func playing(w *ecs.World) bool {
	gs := gameState(w)
	return gs != nil && gs.Playing()
}

func now(w *ecs.World) float64 {
	if gs := gameState(w); gs != nil {
		return gs.Time
	}
	return 0
}

// PlayerRefs bundles the player's components for one frame.
type PlayerRefs struct {
	Entity    ecs.Entity
	Stats     *component.PlayerStats
	Player    *component.Player
	Transform *component.Transform
	Cooldowns *component.Cooldowns
	Input     *component.Input
}

// FindPlayer resolves the tagged player entity and its components.
func FindPlayer(w *ecs.World) (PlayerRefs, bool) {
	e, _, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return PlayerRefs{}, false
	}
	refs := PlayerRefs{Entity: e}
	if refs.Stats, ok = ecs.Get(w, e, component.PlayerStatsComponent.Kind()); !ok {
		return PlayerRefs{}, false
	}
	if refs.Player, ok = ecs.Get(w, e, component.PlayerComponent.Kind()); !ok {
		return PlayerRefs{}, false
	}
	if refs.Transform, ok = ecs.Get(w, e, component.TransformComponent.Kind()); !ok {
		return PlayerRefs{}, false
	}
	refs.Cooldowns, _ = ecs.Get(w, e, component.CooldownsComponent.Kind())
	refs.Input, _ = ecs.Get(w, e, component.InputComponent.Kind())
	return refs, true
}

func clampToArena(b *prefabs.Balance, t *component.Transform) {
	if b == nil || b.Arena == (cp.BB{}) {
		return
	}
	g := t.Ground()
	t.SetGround(b.Arena.ClampVect(&g))
}
