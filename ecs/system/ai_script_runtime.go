package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/saiyanquest/prefabs"
)

var scriptInputs = []string{
	"self_x", "self_z",
	"player_x", "player_z",
	"distance",
	"attack_range", "detection_range", "move_speed",
	"elapsed", "dt",
	"ready",
}

// ScriptedBehavior runs a tengo script each tick. The script reads the
// variables in scriptInputs and may assign move_x, move_z (velocity), attack
// and height. A script that fails at runtime leaves the enemy idle for that
// tick.
type ScriptedBehavior struct {
	path     string
	compiled *tengo.Compiled
	lastErr  error
}

// CompileScript loads and compiles a behavior script. The result is a
// template: use NewScriptedBehavior to get an instance per enemy.
func CompileScript(path string) (*tengo.Compiled, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("ai script %s: %w", path, err)
	}

	script := tengo.NewScript(src)
	for _, name := range scriptInputs {
		var zero any = 0.0
		if name == "ready" {
			zero = false
		}
		if err := script.Add(name, zero); err != nil {
			return nil, fmt.Errorf("ai script %s: declare %s: %w", path, name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ai script %s: compile: %w", path, err)
	}
	return compiled, nil
}

// NewScriptedBehavior gives an enemy its own copy of a compiled script so
// per-enemy globals never leak between enemies.
func NewScriptedBehavior(path string, template *tengo.Compiled) *ScriptedBehavior {
	return &ScriptedBehavior{path: path, compiled: template.Clone()}
}

func (b *ScriptedBehavior) Tick(ctx *BehaviorContext) Action {
	b.lastErr = b.run(ctx)
	if b.lastErr != nil {
		return Action{}
	}
	act := Action{Attack: b.compiled.Get("attack").Bool()}
	if b.compiled.IsDefined("move_x") || b.compiled.IsDefined("move_z") {
		act.Velocity.X = b.compiled.Get("move_x").Float()
		act.Velocity.Y = b.compiled.Get("move_z").Float()
	}
	if speed := ctx.AI.MoveSpeed; speed > 0 {
		act.Velocity = act.Velocity.Clamp(speed)
	}
	if b.compiled.IsDefined("height") {
		act.Height = b.compiled.Get("height").Float()
		act.SetHeight = true
	}
	return act
}

// Err returns the error from the most recent tick, if any.
func (b *ScriptedBehavior) Err() error {
	return b.lastErr
}

func (b *ScriptedBehavior) run(ctx *BehaviorContext) error {
	values := map[string]any{
		"self_x":          ctx.Self.X,
		"self_z":          ctx.Self.Y,
		"player_x":        ctx.Player.X,
		"player_z":        ctx.Player.Y,
		"distance":        ctx.Distance,
		"attack_range":    ctx.AI.AttackRange,
		"detection_range": ctx.AI.DetectionRange,
		"move_speed":      ctx.AI.MoveSpeed,
		"elapsed":         ctx.AI.Elapsed,
		"dt":              ctx.DT,
		"ready":           ctx.AI.Ready(),
	}
	for name, v := range values {
		if err := b.compiled.Set(name, v); err != nil {
			return fmt.Errorf("ai script %s: set %s: %w", b.path, name, err)
		}
	}
	if err := b.compiled.Run(); err != nil {
		return fmt.Errorf("ai script %s: run: %w", b.path, err)
	}
	return nil
}
