// Package effects schedules time-limited modifications and guarantees that
// each one is reverted exactly once. Effects are keyed by Kind; scheduling
// a kind that is already running supersedes the running instance.
package effects

import (
	"time"

	"go.uber.org/zap"
)

// Kind is the closed set of temporary effect kinds.
type Kind int

const (
	SpeedMultiplier Kind = iota // speed rune
	ControlsInvert              // confusion trap
	MovementLock                // gravity trap
	PathBlock                   // pathblock trap
	Blindness                   // void trap
	Quicksand                   // sink-in-quicksand hazard
	Flight
	Strength
	Reveal  // vision rune
	Silence // HUD hidden
	Debris  // collapse trap

	numKinds // keep last
)

var kindNames = map[Kind]string{
	SpeedMultiplier: "movement-speed-multiplier",
	ControlsInvert:  "vision-invert",
	MovementLock:    "movement-lock",
	PathBlock:       "path-block",
	Blindness:       "blindness",
	Quicksand:       "sink-in-quicksand",
	Flight:          "flight",
	Strength:        "strength",
	Reveal:          "reveal",
	Silence:         "silence",
	Debris:          "debris",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// active is one in-flight effect.
type active struct {
	kind     Kind
	timer    TimerID
	deadline time.Time
	revert   func()
	done     bool
}

// finish runs the revert at most once.
func (a *active) finish() {
	if a.done {
		return
	}
	a.done = true
	if a.revert != nil {
		a.revert()
	}
}

// Engine tracks active effects by kind on top of a Scheduler.
type Engine struct {
	sched      *Scheduler
	active     map[Kind]*active
	cancelling bool
	log        *zap.Logger
}

// NewEngine creates an effect engine. A nil logger is replaced by a no-op.
func NewEngine(sched *Scheduler, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		sched:  sched,
		active: map[Kind]*active{},
		log:    log,
	}
}

// Schedule registers revert to run once d has elapsed. The caller applies
// the effect itself before calling Schedule. If kind is already active,
// its pending revert is dropped without running and the countdown starts
// over; reverts must therefore restore the baseline rather than a value
// captured at apply time. Schedule is refused while CancelAll is running
// so a revert cannot leave a timer behind after teardown.
func (e *Engine) Schedule(kind Kind, d time.Duration, revert func()) bool {
	if e.cancelling {
		e.log.Warn("effect scheduled during teardown, ignored", zap.Stringer("kind", kind))
		return false
	}
	if prev, ok := e.active[kind]; ok {
		e.sched.Stop(prev.timer)
		prev.done = true
		e.log.Debug("effect superseded", zap.Stringer("kind", kind))
	}

	a := &active{
		kind:     kind,
		deadline: e.sched.Now().Add(d),
		revert:   revert,
	}
	a.timer = e.sched.After(d, func() {
		if e.active[kind] == a {
			delete(e.active, kind)
		}
		e.log.Debug("effect expired", zap.Stringer("kind", kind))
		a.finish()
	})
	e.active[kind] = a
	e.log.Debug("effect scheduled", zap.Stringer("kind", kind), zap.Duration("duration", d))
	return true
}

// Cancel ends kind early, running its revert synchronously. It reports
// whether the kind was active.
func (e *Engine) Cancel(kind Kind) bool {
	a, ok := e.active[kind]
	if !ok {
		return false
	}
	delete(e.active, kind)
	e.sched.Stop(a.timer)
	a.finish()
	return true
}

// CancelAll ends every active effect, running each revert synchronously.
func (e *Engine) CancelAll() {
	e.cancelling = true
	defer func() { e.cancelling = false }()
	for _, kind := range e.Kinds() {
		e.Cancel(kind)
	}
}

// Active reports whether kind is in flight.
func (e *Engine) Active(kind Kind) bool {
	_, ok := e.active[kind]
	return ok
}

// Remaining returns the time left on kind, or zero if it is not active.
func (e *Engine) Remaining(kind Kind) time.Duration {
	a, ok := e.active[kind]
	if !ok {
		return 0
	}
	left := a.deadline.Sub(e.sched.Now())
	if left < 0 {
		return 0
	}
	return left
}

// Kinds returns the active kinds in declaration order.
func (e *Engine) Kinds() []Kind {
	var kinds []Kind
	for k := Kind(0); k < numKinds; k++ {
		if _, ok := e.active[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
