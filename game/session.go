package game

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/saiyanquest/ecs"
	"github.com/milk9111/saiyanquest/ecs/component"
	"github.com/milk9111/saiyanquest/ecs/entity"
	"github.com/milk9111/saiyanquest/ecs/system"
	"github.com/milk9111/saiyanquest/prefabs"
)

// ErrNoPlayer is returned when a session operation needs the player but the
// world has none.
var ErrNoPlayer = errors.New("game: no player")

// Options configures a Session.
type Options struct {
	// Balance defaults to the embedded balance tables.
	Balance *prefabs.Balance
	// Spawns are placed on creation and again on Reset.
	Spawns     []prefabs.Spawn
	SpawnPoint component.Transform
	Logger     *zap.Logger
	// OnEnemyDeath runs once for every enemy that dies.
	OnEnemyDeath func(*component.Enemy)
}

// Session owns one simulated arena: the world, its balance tables and the
// frame pipeline. It is not safe for concurrent use.
type Session struct {
	opts     Options
	log      *zap.Logger
	tables   *system.Tables
	pipeline *system.Pipeline

	world  *ecs.World
	player ecs.Entity
}

// NewSession builds a world with the player at opts.SpawnPoint and every
// spawn in opts.Spawns.
func NewSession(opts Options) (*Session, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Balance == nil {
		b, err := prefabs.LoadBalance()
		if err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
		opts.Balance = b
	}

	s := &Session{
		opts:   opts,
		log:    opts.Logger.Named("session"),
		tables: &system.Tables{Balance: opts.Balance},
	}
	s.pipeline = system.NewPipeline(s.tables, opts.Logger)
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset discards the world and rebuilds it from the session options.
func (s *Session) Reset() error {
	w := ecs.NewWorld()
	if _, err := entity.NewGameState(w); err != nil {
		return fmt.Errorf("game: reset: %w", err)
	}
	player, err := entity.NewPlayer(w, s.tables.Player, s.opts.SpawnPoint)
	if err != nil {
		return fmt.Errorf("game: reset: %w", err)
	}

	s.world = w
	s.player = player
	s.pipeline.AI.ReloadScripts()

	for _, spawn := range s.opts.Spawns {
		if _, err := s.SpawnEnemy(spawn); err != nil {
			return fmt.Errorf("game: reset: %w", err)
		}
	}
	s.log.Info("session reset", zap.Int("enemies", len(s.opts.Spawns)))
	return nil
}

// Step advances the simulation by dt seconds and returns the events raised
// since the previous step.
func (s *Session) Step(dt float64) []ecs.Event {
	if dt > 0 {
		s.pipeline.Scheduler.Update(s.world, dt)
	}
	return s.world.Events().Drain()
}

// World exposes the underlying ECS world.
func (s *Session) World() *ecs.World {
	return s.world
}

// Balance returns the tables currently in effect.
func (s *Session) Balance() *prefabs.Balance {
	return s.tables.Balance
}

// ApplyBalance swaps the balance tables. Entities already spawned keep their
// stats; new spawns, attacks and cooldowns use b from the next frame on.
func (s *Session) ApplyBalance(b *prefabs.Balance) {
	if b == nil {
		return
	}
	s.tables.Balance = b
	s.pipeline.AI.ReloadScripts()
	s.log.Info("balance applied")
}

func (s *Session) gameState() *component.GameState {
	_, gs, _ := ecs.First(s.world, component.GameStateComponent.Kind())
	return gs
}

// Phase reports whether the game is playing or over.
func (s *Session) Phase() component.Phase {
	if gs := s.gameState(); gs != nil {
		return gs.Phase
	}
	return component.PhaseGameOver
}

// Time is the simulation clock in seconds.
func (s *Session) Time() float64 {
	if gs := s.gameState(); gs != nil {
		return gs.Time
	}
	return 0
}

func (s *Session) refs() (system.PlayerRefs, bool) {
	return system.FindPlayer(s.world)
}

// Player returns a copy of the player's stats and position.
func (s *Session) Player() (component.PlayerStats, component.Transform, error) {
	refs, ok := s.refs()
	if !ok {
		return component.PlayerStats{}, component.Transform{}, ErrNoPlayer
	}
	return *refs.Stats, *refs.Transform, nil
}

func (s *Session) input() *component.Input {
	refs, ok := s.refs()
	if !ok {
		return nil
	}
	return refs.Input
}

// Press queues a single press of a, handled on the next Step.
func (s *Session) Press(a component.Action) {
	if in := s.input(); in != nil {
		in.Tap(a)
	}
}

// SetHeld records a button that stays down across frames. It fires once on
// the frame it goes down.
func (s *Session) SetHeld(a component.Action, down bool) {
	if in := s.input(); in != nil {
		in.SetHeld(a, down)
	}
}

// Move holds a movement direction until Stop.
func (s *Session) Move(d component.Direction) {
	if in := s.input(); in != nil {
		v := d.Vector()
		in.SetMove(v.X, v.Y)
	}
}

func (s *Session) Stop() {
	if in := s.input(); in != nil {
		in.SetMove(0, 0)
	}
}

// EnergyAttack fires the selected energy attack immediately.
func (s *Session) EnergyAttack() component.Outcome {
	return s.pipeline.Attack.EnergyAttack(s.world)
}

// Punch performs a melee attack immediately.
func (s *Session) Punch() component.Outcome {
	return s.pipeline.Attack.Punch(s.world)
}

// CycleAttack selects the next energy attack.
func (s *Session) CycleAttack() component.AttackKind {
	return s.pipeline.Attack.CycleAttack(s.world)
}

// CurrentAttack is the energy attack EnergyAttack would fire.
func (s *Session) CurrentAttack() component.AttackKind {
	refs, ok := s.refs()
	if !ok {
		return component.AttackKiBlast
	}
	return refs.Player.Attack
}

// TakeDamage hurts the player. A hit that empties health raises a
// player-defeated event; the phase changes on the next Step.
func (s *Session) TakeDamage(amount int) component.Outcome {
	refs, ok := s.refs()
	if !ok {
		return component.RejectedDead
	}
	outcome := refs.Stats.TakeDamage(amount, s.Time())
	if !outcome.Ok() {
		s.log.Debug("damage rejected", zap.Int("amount", amount), zap.Stringer("outcome", outcome))
		return outcome
	}
	s.world.Events().Push(ecs.Event{Type: ecs.EventPlayerHit, Entity: refs.Entity, Data: amount})
	if refs.Stats.Defeated() {
		s.world.Events().Push(ecs.Event{Type: ecs.EventPlayerDefeated, Entity: refs.Entity})
	}
	return outcome
}

func (s *Session) Heal(amount int) component.Outcome {
	refs, ok := s.refs()
	if !ok {
		return component.RejectedDead
	}
	return refs.Stats.Heal(amount)
}

func (s *Session) DrainEnergy(amount int) component.Outcome {
	refs, ok := s.refs()
	if !ok {
		return component.RejectedDead
	}
	return refs.Stats.DrainEnergy(amount)
}

func (s *Session) RechargeEnergy(amount int) component.Outcome {
	refs, ok := s.refs()
	if !ok {
		return component.RejectedDead
	}
	return refs.Stats.RechargeEnergy(amount)
}

// GainExperience adds amount, which may be negative, and returns how many
// levels were gained.
func (s *Session) GainExperience(amount int) int {
	refs, ok := s.refs()
	if !ok {
		return 0
	}
	levels := refs.Stats.GainExperience(amount)
	if levels > 0 {
		s.world.Events().Push(ecs.Event{Type: ecs.EventLevelUp, Entity: refs.Entity, Data: refs.Stats.Level})
		s.log.Info("level up", zap.Int("level", refs.Stats.Level))
	}
	return levels
}

func (s *Session) LevelUp() {
	refs, ok := s.refs()
	if !ok {
		return
	}
	if !refs.Stats.LevelUp() {
		return
	}
	s.world.Events().Push(ecs.Event{Type: ecs.EventLevelUp, Entity: refs.Entity, Data: refs.Stats.Level})
}

// CreateKiBlast launches a ki blast with explicit damage and speed. Range,
// radius and lifetime come from the ki blast table.
func (s *Session) CreateKiBlast(pos component.Transform, dir cp.Vector, damage int, speed float64) (ecs.Entity, component.Outcome) {
	if damage < 0 || speed < 0 {
		return 0, component.RejectedInvalidAmount
	}
	table := s.tables.Attacks[component.AttackKiBlast]
	table.Damage = damage
	table.Speed = speed
	e, outcome, err := entity.NewKiBlast(s.world, component.AttackKiBlast, pos, dir, table, s.tables.Combat.MaxKiBlasts)
	if err != nil {
		s.log.Error("create ki blast", zap.Error(err))
		return 0, component.RejectedCapacity
	}
	return e, outcome
}

func (s *Session) RemoveKiBlast(e ecs.Entity) bool {
	return entity.RemoveKiBlast(s.world, e)
}

// PerformMeleeAttack places a melee strike with the table damage and range.
func (s *Session) PerformMeleeAttack(pos component.Transform, facing component.Direction) (ecs.Entity, error) {
	e, err := entity.NewMeleeAttack(s.world, pos, facing, s.tables.Combat, s.Time())
	if err != nil {
		return 0, fmt.Errorf("game: %w", err)
	}
	return e, nil
}

func (s *Session) RemoveMeleeAttack(e ecs.Entity) bool {
	return entity.RemoveMeleeAttack(s.world, e)
}

// ClearAllProjectiles removes every live attack and returns how many there
// were.
func (s *Session) ClearAllProjectiles() int {
	return entity.ClearAllProjectiles(s.world)
}

// SpawnEnemy places a resolved spawn. OnEnemyDeath from the options is
// attached to it.
func (s *Session) SpawnEnemy(spawn prefabs.Spawn) (ecs.Entity, error) {
	e, err := entity.NewEnemy(s.world, spawn, s.opts.OnEnemyDeath)
	if err != nil {
		return 0, fmt.Errorf("game: spawn %s: %w", spawn.Archetype, err)
	}
	s.log.Debug("enemy spawned",
		zap.Stringer("archetype", spawn.Archetype),
		zap.Stringer("behavior", spawn.Config.Behavior),
		zap.Float64("x", spawn.Position.X),
		zap.Float64("z", spawn.Position.Y))
	return e, nil
}

// SpawnArchetype places an enemy of arch with its table defaults.
func (s *Session) SpawnArchetype(arch component.Archetype, at cp.Vector) (ecs.Entity, error) {
	cfg, ok := s.tables.Enemies[arch]
	if !ok {
		return 0, fmt.Errorf("game: %w: %s", prefabs.ErrUnknownArchetype, arch)
	}
	return s.SpawnEnemy(prefabs.Spawn{Archetype: arch, Config: cfg, Position: at})
}

// Enemy returns a copy of a live enemy's state.
func (s *Session) Enemy(e ecs.Entity) (component.Enemy, bool) {
	en, ok := ecs.Get(s.world, e, component.EnemyComponent.Kind())
	if !ok {
		return component.Enemy{}, false
	}
	return *en, true
}

// Restart respawns the player after a game over.
func (s *Session) Restart() component.Outcome {
	return s.pipeline.GameOver.Restart(s.world)
}
