// Package engine wires the maze managers together and drives them one
// frame at a time. Front ends feed it input and read presentation updates
// through an events.Sink.
package engine

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nathoo/runemaze/config"
	"github.com/nathoo/runemaze/engine/arbiter"
	"github.com/nathoo/runemaze/engine/clock"
	"github.com/nathoo/runemaze/engine/door"
	"github.com/nathoo/runemaze/engine/effects"
	"github.com/nathoo/runemaze/engine/events"
	"github.com/nathoo/runemaze/engine/exit"
	"github.com/nathoo/runemaze/engine/geom"
	"github.com/nathoo/runemaze/engine/player"
	"github.com/nathoo/runemaze/engine/progress"
	"github.com/nathoo/runemaze/engine/runes"
	"github.com/nathoo/runemaze/engine/secrets"
	"github.com/nathoo/runemaze/engine/state"
	"github.com/nathoo/runemaze/engine/treasure"
	"github.com/nathoo/runemaze/engine/world"
	"github.com/nathoo/runemaze/types"
)

// ErrUnknownMaze is returned when the requested maze is not defined.
var ErrUnknownMaze = errors.New("unknown maze")

// StartMessage is shown at the start of every play-through.
const StartMessage = "Find the treasures and reach the exit..."

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source. A *clock.Manual also makes Step advance
// time deterministically.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithSink adds a presentation sink.
func WithSink(s events.Sink) Option {
	return func(e *Engine) { e.sinks = append(e.sinks, s) }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithSeed seeds the RNG. Without it the seed comes from the config, or
// the clock when the config seed is zero.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// Engine holds one maze session.
type Engine struct {
	Defs   *state.Defs
	Maze   types.MazeDef
	Config config.Config
	ID     string
	RNG    *RNG

	clock clock.Clock
	sinks []events.Sink
	sink  events.Sink
	rec   *events.Recorder
	log   *zap.Logger
	seed  int64

	sched     *effects.Scheduler
	fx        *effects.Engine
	reg       *world.Registry
	pl        *player.Player
	door      *door.Door
	gate      *progress.Gate
	mechanism *exit.Mechanism
	zone      *exit.TriggerZone
	treasures *treasure.Manager
	secrets   *secrets.Manager
	runes     *runes.Resolver
	arbiter   *arbiter.Arbiter

	moveX, moveZ   float64
	queuedInteract bool
	queuedUse      bool
	last           arbiter.Resolution
	startedAt      time.Time
}

// New builds a session for mazeID. An empty mazeID picks the game's start
// maze.
func New(defs *state.Defs, mazeID string, cfg config.Config, opts ...Option) (*Engine, error) {
	e := &Engine{Defs: defs, Config: cfg, ID: uuid.NewString(), seed: cfg.Seed}
	for _, opt := range opts {
		opt(e)
	}
	if e.clock == nil {
		e.clock = clock.Real{}
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.seed == 0 {
		e.seed = e.clock.Now().UnixNano()
	}
	e.log = e.log.With(zap.String("session", e.ID))

	if mazeID == "" {
		mazeID = defs.Game.Start
	}
	if mazeID == "" {
		if ids := defs.MazeIDs(); len(ids) > 0 {
			mazeID = ids[0]
		}
	}
	m, ok := defs.Maze(mazeID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaze, mazeID)
	}
	e.Maze = m
	e.RNG = NewRNG(e.seed)
	e.rec = events.NewRecorder()
	e.sink = append(events.Fanout{e.rec}, e.sinks...)

	e.build()
	e.begin()
	e.log.Info("session started",
		zap.String("maze", m.ID),
		zap.Int64("seed", e.seed),
		zap.Float64("fake_chance", e.runes.FakeChance()))
	return e, nil
}

func (e *Engine) build() {
	m, cfg, log := e.Maze, e.Config, e.log
	grid := world.NewGrid(m.Layout, m.TileSize)

	e.reg = world.NewRegistry(grid)
	e.sched = effects.NewScheduler(e.clock)
	e.fx = effects.NewEngine(e.sched, log.Named("effects"))
	e.pl = player.New(cfg.Player, grid.Center(m.PlayerStart, 0))
	e.door = door.New(e.reg, e.sink, m.Exit, log.Named("door"))
	e.gate = progress.New(e.sched, e.fx, e.sink, e.door, log.Named("progress"))
	e.mechanism = exit.NewMechanism(e.reg, e.gate, m.ExitMechanism, log.Named("exit"))
	e.zone = exit.NewTriggerZone(e.door, e.gate, cfg.Exit.Radius)
	e.treasures = treasure.NewManager(e.reg, e.gate, m.Treasures, log.Named("treasure"))
	e.runes = runes.NewResolver(runes.Deps{
		Config:   cfg.Runes,
		Registry: e.reg,
		Player:   e.pl,
		Effects:  e.fx,
		Sink:     e.sink,
		Rand:     e.RNG,
		Log:      log.Named("runes"),
	})
	e.runes.Load(m.Runes)
	e.secrets = secrets.NewManager(e.reg, e.pl, e.fx, e.sink, e.runes, cfg.Secrets.Quicksand, log.Named("secrets"))
	e.secrets.Load(m.Secrets)

	e.arbiter = arbiter.New(e.reg, e.sink, cfg.Interaction.RayDistance, cfg.Interaction.Range, e.gate.IsGameOver, log.Named("arbiter"))
	e.arbiter.Register(e.runes)
	e.arbiter.Register(e.door)
	e.arbiter.Register(e.secrets.Traps())
	e.arbiter.Register(e.treasures)
	e.arbiter.Register(e.secrets.Walls())
	e.arbiter.Register(e.mechanism)
}

// begin puts a freshly built or reset session into its starting state.
func (e *Engine) begin() {
	countdown := e.Maze.Countdown
	if countdown <= 0 {
		countdown = e.Config.Exit.Countdown
	}
	e.gate.Reset(state.TotalTreasures(e.Maze), countdown)
	e.pl.Yaw = openHeading(e.reg.Grid(), e.Maze.PlayerStart)
	e.moveX, e.moveZ = 0, 0
	e.queuedInteract, e.queuedUse = false, false
	e.startedAt = e.clock.Now()

	e.sink.SetHUDVisible(true)
	e.sink.UpdateEquippedRune("")
	e.sink.ShowMessage(StartMessage, 0)
}

// Reset restarts the maze. Every pending effect is reverted and every
// timer cleared before the fresh state is built up.
func (e *Engine) Reset() {
	e.fx.CancelAll()
	e.sched.StopAll()
	e.reg.SetBlackout(false)

	e.pl.Reset(e.reg.Grid().Center(e.Maze.PlayerStart, 0))
	e.door.Reset()
	e.mechanism.Reset()
	e.zone.Reset()
	e.treasures.Reset()
	e.secrets.Reset()
	e.runes.Reset()
	e.begin()
	e.log.Info("session reset")
}

// openHeading faces the first open neighbour of a tile, checking north,
// west, south then east.
func openHeading(g *world.Grid, t types.Tile) float64 {
	dirs := []struct {
		dx, dz int
		yaw    float64
	}{
		{0, -1, 0},
		{-1, 0, math.Pi / 2},
		{0, 1, math.Pi},
		{1, 0, -math.Pi / 2},
	}
	for _, d := range dirs {
		if !g.IsWall(t.X+d.dx, t.Z+d.dz) {
			return d.yaw
		}
	}
	return 0
}

// Interact queues an interact action for the next frame.
func (e *Engine) Interact() { e.queuedInteract = true }

// UseRune queues a rune use for the next frame.
func (e *Engine) UseRune() { e.queuedUse = true }

// MoveAxis sets the held movement input: x strafes right, z walks
// forward. Values are clamped to [-1, 1].
func (e *Engine) MoveAxis(x, z float64) {
	e.moveX = math.Max(-1, math.Min(1, x))
	e.moveZ = math.Max(-1, math.Min(1, z))
}

// Turn rotates the view by yaw and pitch radians.
func (e *Engine) Turn(yaw, pitch float64) {
	if e.gate.MovementLocked() {
		return
	}
	e.pl.Turn(yaw, pitch)
}

// Frame advances the game by dt in a fixed order: timers, movement with
// collision correction, the queued interact, the queued rune use, world
// hazards and finally the exit watcher. A panic in one step is logged
// and the rest of the frame still runs.
func (e *Engine) Frame(dt time.Duration) {
	e.guard("timers", e.sched.Update)
	e.guard("movement", func() { e.move(dt) })

	if e.queuedInteract {
		e.queuedInteract = false
		e.guard("interact", func() {
			e.last = e.arbiter.ResolveInteract(e.pl.Pos, e.pl.Aim(), e.pl.Pos)
		})
	}
	if e.queuedUse {
		e.queuedUse = false
		e.guard("use", func() {
			if !e.gate.IsGameOver() {
				e.runes.Use()
			}
		})
	}

	if !e.gate.IsGameOver() {
		e.guard("hazards", e.secrets.Update)
		e.guard("exit", func() { e.zone.Update(e.pl.Pos) })
	}
}

func (e *Engine) move(dt time.Duration) {
	if e.gate.MovementLocked() || dt <= 0 {
		return
	}
	blocked := e.pl.Move(e.moveX, e.moveZ, dt, e.reg)
	if len(blocked) > 0 {
		e.secrets.OnCollide(blocked)
	}
}

func (e *Engine) guard(step string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("frame step panicked",
				zap.String("step", step),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()
	fn()
}

// Elapsed is the time since the session (re)started.
func (e *Engine) Elapsed() time.Duration {
	return e.clock.Now().Sub(e.startedAt)
}

// LastInteraction is the resolution of the most recent interact action.
func (e *Engine) LastInteraction() arbiter.Resolution { return e.last }

// Registry exposes the world for rendering.
func (e *Engine) Registry() *world.Registry { return e.reg }

// Player exposes the player body.
func (e *Engine) Player() *player.Player { return e.pl }

// Progress returns a copy of the progress record.
func (e *Engine) Progress() state.Progress { return e.gate.State() }

// DoorState returns the exit door's state.
func (e *Engine) DoorState() door.State { return e.door.State() }

// Equipped returns the equipped rune kind.
func (e *Engine) Equipped() runes.Kind { return e.runes.Equipped() }

// Runes returns the runes still in the world.
func (e *Engine) Runes() []*runes.Rune { return e.runes.Runes() }

// ActiveEffects returns the running effects and their time left.
func (e *Engine) ActiveEffects() []ActiveEffect {
	var out []ActiveEffect
	for _, k := range e.fx.Kinds() {
		out = append(out, ActiveEffect{Kind: k, Remaining: e.fx.Remaining(k)})
	}
	return out
}

// ActiveEffect is a running effect for display.
type ActiveEffect struct {
	Kind      effects.Kind
	Remaining time.Duration
}

// DoorPosition is the door's center.
func (e *Engine) DoorPosition() geom.Vec3 { return e.door.Position() }
