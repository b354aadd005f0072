// Package runes spawns runes, decides at spawn time which ones are
// disguised traps, and runs their effects on pickup and use.
package runes

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/nathoo/runemaze/config"
	"github.com/nathoo/runemaze/engine/effects"
	"github.com/nathoo/runemaze/engine/events"
	"github.com/nathoo/runemaze/engine/geom"
	"github.com/nathoo/runemaze/engine/player"
	"github.com/nathoo/runemaze/engine/world"
	"github.com/nathoo/runemaze/types"
)

const (
	msgSlotFull   = "You already have a rune equipped!"
	msgNoRune     = "No rune equipped!"
	msgBlinkFails = "Something is in the way. The blink fizzles."
)

// Random is the randomness the resolver draws on.
type Random interface {
	Float64() float64
	Intn(n int) int
}

// Rune is one rune in the world. Visual is what the player sees; Effect
// is what runs. Both are fixed at spawn.
type Rune struct {
	Visual   Kind
	Effect   Kind
	Trap     bool
	Tile     types.Tile
	Recycled bool // taken from the free pool rather than allocated

	entity world.ID
}

// PickupResult is the outcome of a pickup attempt.
type PickupResult int

const (
	PickupRefused   PickupResult = iota // slot already occupied
	PickupEquipped                      // real rune now in the slot
	PickupTriggered                     // disguised trap went off
)

// UseResult is the outcome of a use attempt.
type UseResult int

const (
	UseNothing UseResult = iota // slot empty
	UseBlocked                  // the rune refused to fire and stays equipped
	UseActivated
)

// Deps are the collaborators a Resolver acts on.
type Deps struct {
	Config   config.Runes
	Registry *world.Registry
	Player   *player.Player
	Effects  *effects.Engine
	Sink     events.Sink
	Rand     Random
	Log      *zap.Logger
}

// Resolver owns every rune and the equipped slot.
type Resolver struct {
	cfg  config.Runes
	reg  *world.Registry
	pl   *player.Player
	fx   *effects.Engine
	sink events.Sink
	rng  Random
	log  *zap.Logger

	fakeChance float64
	spawns     []types.RuneSpawn
	runes      map[world.ID]*Rune
	free       []*Rune
	equipped   Kind

	takeoff geom.Vec3 // ground spot the current flight left from
	retries int
}

// NewResolver creates a resolver. The fake chance for the session is
// drawn here, once.
func NewResolver(d Deps) *Resolver {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Sink == nil {
		d.Sink = events.Nop{}
	}
	r := &Resolver{
		cfg:   d.Config,
		reg:   d.Registry,
		pl:    d.Player,
		fx:    d.Effects,
		sink:  d.Sink,
		rng:   d.Rand,
		log:   d.Log,
		runes: map[world.ID]*Rune{},
	}
	r.fakeChance = d.Config.FakeChanceMin + r.rng.Float64()*(d.Config.FakeChanceMax-d.Config.FakeChanceMin)
	r.log.Debug("fake chance drawn", zap.Float64("chance", r.fakeChance))
	return r
}

// FakeChance is the session's disguise probability.
func (r *Resolver) FakeChance() float64 { return r.fakeChance }

// Load spawns every rune in a maze's spawn table. Unknown kinds are
// logged and skipped.
func (r *Resolver) Load(spawns []types.RuneSpawn) {
	r.spawns = spawns
	for _, s := range spawns {
		k, err := ParseKind(s.Type)
		if err != nil {
			r.log.Error("skipping rune spawn", zap.Error(err), zap.Int("x", s.X), zap.Int("z", s.Z))
			continue
		}
		r.Spawn(k, types.Tile{X: s.X, Z: s.Z}, s.Trap)
	}
}

// Spawn places a rune of base kind on a tile. When forceTrap is set, or
// the disguise roll falls under the session's fake chance, the rune's
// effect becomes a trap picked uniformly at random.
func (r *Resolver) Spawn(base Kind, tile types.Tile, forceTrap bool) *Rune {
	rn := r.alloc()
	rn.Visual, rn.Effect, rn.Trap, rn.Tile = base, base, base.IsTrap(), tile

	if !base.IsTrap() && (forceTrap || r.rng.Float64() < r.fakeChance) {
		traps := Traps()
		rn.Effect = traps[r.rng.Intn(len(traps))]
		rn.Trap = true
	}

	rn.entity = r.reg.Add(&world.Entity{
		Category: types.CategoryRune,
		Name:     base.String(),
		Tile:     tile,
		Pos:      r.reg.Grid().Center(tile, 1),
		Half:     geom.Vec3{X: 0.5, Y: 1, Z: 0.5},
		Visible:  true,
	})
	r.runes[rn.entity] = rn
	r.log.Debug("rune spawned",
		zap.Stringer("visual", rn.Visual),
		zap.Stringer("effect", rn.Effect),
		zap.Bool("recycled", rn.Recycled))
	return rn
}

func (r *Resolver) alloc() *Rune {
	if n := len(r.free); n > 0 {
		rn := r.free[n-1]
		r.free = r.free[:n-1]
		*rn = Rune{Recycled: true}
		return rn
	}
	return &Rune{}
}

func (r *Resolver) release(rn *Rune) {
	r.reg.Remove(rn.entity)
	delete(r.runes, rn.entity)
	r.free = append(r.free, rn)
}

// Rune returns the rune behind an entity.
func (r *Resolver) Rune(id world.ID) (*Rune, bool) {
	rn, ok := r.runes[id]
	return rn, ok
}

// Runes returns the runes still in the world.
func (r *Resolver) Runes() []*Rune {
	out := make([]*Rune, 0, len(r.runes))
	for _, e := range r.reg.Entities(types.CategoryRune) {
		if rn, ok := r.runes[e.ID]; ok {
			out = append(out, rn)
		}
	}
	return out
}

// Equipped returns the kind in the slot, or None.
func (r *Resolver) Equipped() Kind { return r.equipped }

// Category implements the arbiter provider.
func (r *Resolver) Category() types.Category { return types.CategoryRune }

// Interactables implements the arbiter provider.
func (r *Resolver) Interactables() []*world.Entity {
	return r.reg.Entities(types.CategoryRune)
}

// Interact implements the arbiter provider.
func (r *Resolver) Interact(e *world.Entity) {
	r.Pickup(e)
}

// Pickup takes the rune behind e. A trap fires at once and leaves the
// slot empty; a real rune fills the slot.
func (r *Resolver) Pickup(e *world.Entity) PickupResult {
	rn, ok := r.runes[e.ID]
	if !ok {
		r.log.Warn("pickup of unknown rune", zap.String("id", string(e.ID)))
		return PickupRefused
	}
	if r.equipped != None {
		r.sink.ShowMessage(msgSlotFull, 0)
		return PickupRefused
	}

	visual, effect, trap := rn.Visual, rn.Effect, rn.Trap
	r.release(rn)
	r.sink.ShowMessage(fmt.Sprintf("Picked up %s.", visual.Label()), 0)

	if trap {
		r.log.Info("trap rune triggered", zap.Stringer("visual", visual), zap.Stringer("effect", effect))
		r.trigger(effect)
		return PickupTriggered
	}
	r.equipped = effect
	r.sink.UpdateEquippedRune(effect.Label())
	return PickupEquipped
}

// Use fires the equipped rune.
func (r *Resolver) Use() UseResult {
	k := r.equipped
	if k == None {
		r.sink.ShowMessage(msgNoRune, 0)
		return UseNothing
	}
	if !r.activate(k) {
		return UseBlocked
	}
	r.clearSlot(k)
	r.log.Info("rune used", zap.Stringer("kind", k))
	return UseActivated
}

// Consume spends the equipped rune without running its effect when it is
// of kind k. Secrets use it when a rune acts on them directly.
func (r *Resolver) Consume(k Kind) bool {
	if r.equipped != k || k == None {
		return false
	}
	r.clearSlot(k)
	return true
}

func (r *Resolver) clearSlot(k Kind) {
	r.equipped = None
	r.sink.UpdateEquippedRune("")
	r.sink.ShowMessage(fmt.Sprintf("%s used", k.Label()), 0)
}

// Reset empties the slot, returns every rune to the pool and respawns
// the maze's runes. Active effects are the effect engine's to cancel.
func (r *Resolver) Reset() {
	r.equipped = None
	r.sink.UpdateEquippedRune("")
	for _, rn := range r.Runes() {
		r.release(rn)
	}
	r.reg.RemoveTag(tagPathBlock)
	r.reg.RemoveTag(tagDebris)
	r.Load(r.spawns)
}
