// Package arbiter resolves an interact action to exactly one target and
// dispatches it to the manager that owns the target's category.
package arbiter

import (
	"go.uber.org/zap"

	"github.com/nathoo/runemaze/engine/events"
	"github.com/nathoo/runemaze/engine/geom"
	"github.com/nathoo/runemaze/engine/world"
	"github.com/nathoo/runemaze/types"
)

const msgTooFar = "That's too far away."

// Provider owns the interactables of one category.
type Provider interface {
	Category() types.Category
	Interactables() []*world.Entity
	Interact(e *world.Entity)
}

// Outcome says what an interact action resolved to.
type Outcome int

const (
	GameOver   Outcome = iota // suppressed, the game has ended
	NoTarget                  // the ray hit nothing in reach
	TooFar                    // the hit failed the range gate
	Dispatched                // exactly one handler ran
)

func (o Outcome) String() string {
	switch o {
	case GameOver:
		return "game-over"
	case NoTarget:
		return "no-target"
	case TooFar:
		return "too-far"
	case Dispatched:
		return "dispatched"
	}
	return "unknown"
}

// Resolution is the result of one ResolveInteract call.
type Resolution struct {
	Outcome Outcome
	Target  *world.Entity
	Dist    float64 // ray distance to the target
}

// Arbiter is the single entry point for interact actions.
type Arbiter struct {
	reg         *world.Registry
	sink        events.Sink
	log         *zap.Logger
	rayDistance float64
	rangeLimit  float64
	gameOver    func() bool
	providers   map[types.Category]Provider
	order       []types.Category
}

// New creates an arbiter. gameOver, if set, suppresses every call once it
// reports true.
func New(reg *world.Registry, sink events.Sink, rayDistance, rangeLimit float64, gameOver func() bool, log *zap.Logger) *Arbiter {
	if log == nil {
		log = zap.NewNop()
	}
	if gameOver == nil {
		gameOver = func() bool { return false }
	}
	return &Arbiter{
		reg:         reg,
		sink:        sink,
		log:         log,
		rayDistance: rayDistance,
		rangeLimit:  rangeLimit,
		gameOver:    gameOver,
		providers:   map[types.Category]Provider{},
	}
}

// Register installs the provider for its category, replacing any other.
func (a *Arbiter) Register(p Provider) {
	c := p.Category()
	if c == types.CategoryObstacle {
		a.log.Warn("obstacles are not interactable, provider ignored")
		return
	}
	if _, ok := a.providers[c]; !ok {
		a.order = append(a.order, c)
	}
	a.providers[c] = p
}

// ResolveInteract casts the aim ray, picks the nearest visible candidate
// across every registered category, applies the range gate from anchor,
// and dispatches to the owning provider.
func (a *Arbiter) ResolveInteract(origin, dir, anchor geom.Vec3) Resolution {
	if a.gameOver() {
		return Resolution{Outcome: GameOver}
	}

	var candidates []*world.Entity
	owner := map[world.ID]Provider{}
	for _, c := range a.order {
		p := a.providers[c]
		for _, e := range p.Interactables() {
			if e.Category != c || !a.reg.IsVisible(e) {
				continue
			}
			candidates = append(candidates, e)
			owner[e.ID] = p
		}
	}

	hits := a.reg.Raycast(origin, dir, a.rayDistance, candidates)
	if len(hits) == 0 {
		return Resolution{Outcome: NoTarget}
	}
	hit := hits[0]

	if geom.Dist(anchor, hit.Entity.Pos) > a.rangeLimit {
		a.sink.ShowMessage(msgTooFar, 0)
		return Resolution{Outcome: TooFar, Target: hit.Entity, Dist: hit.Dist}
	}

	a.log.Debug("interact dispatched",
		zap.Int("category", int(hit.Entity.Category)),
		zap.String("name", hit.Entity.Name),
		zap.Float64("dist", hit.Dist))
	owner[hit.Entity.ID].Interact(hit.Entity)
	return Resolution{Outcome: Dispatched, Target: hit.Entity, Dist: hit.Dist}
}
