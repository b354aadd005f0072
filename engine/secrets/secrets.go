// Package secrets places the maze's hidden features: walls that are not
// what they seem and quicksand patches.
package secrets

import (
	"go.uber.org/zap"

	"github.com/nathoo/runemaze/config"
	"github.com/nathoo/runemaze/engine/effects"
	"github.com/nathoo/runemaze/engine/events"
	"github.com/nathoo/runemaze/engine/geom"
	"github.com/nathoo/runemaze/engine/player"
	"github.com/nathoo/runemaze/engine/runes"
	"github.com/nathoo/runemaze/engine/world"
	"github.com/nathoo/runemaze/types"
)

const (
	msgCrumbles    = "The wall crumbles!"
	msgWeakWall    = "The wall looks weak. Something strong could break it."
	msgShimmer     = "The wall shimmers under your touch."
	msgLowWall     = "A low wall. You could fly over it."
	msgQuicksand   = "The ground gives way beneath you!"
	quicksandLevel = 0.5 // half height of the patch's interaction volume
)

// Slot is the rune slot as secrets see it.
type Slot interface {
	Consume(k runes.Kind) bool
}

// Manager owns every secret feature in the maze.
type Manager struct {
	reg  *world.Registry
	pl   *player.Player
	fx   *effects.Engine
	sink events.Sink
	slot Slot
	cfg  config.Quicksand
	log  *zap.Logger

	spawns []types.SecretSpawn
	ids    []world.ID
}

// NewManager creates a manager. Call Load to place features.
func NewManager(reg *world.Registry, pl *player.Player, fx *effects.Engine, sink events.Sink, slot Slot, cfg config.Quicksand, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{reg: reg, pl: pl, fx: fx, sink: sink, slot: slot, cfg: cfg, log: log}
}

// Load places every feature in a spawn table. Unknown types are logged
// and skipped.
func (m *Manager) Load(spawns []types.SecretSpawn) {
	m.spawns = spawns
	for _, s := range spawns {
		e, ok := m.entity(s)
		if !ok {
			m.log.Error("skipping unknown secret", zap.String("type", s.Type), zap.Int("x", s.X), zap.Int("z", s.Z))
			continue
		}
		m.ids = append(m.ids, m.reg.Add(e))
	}
}

func (m *Manager) entity(s types.SecretSpawn) (*world.Entity, bool) {
	g := m.reg.Grid()
	tile := types.Tile{X: s.X, Z: s.Z}
	h := g.TileSize / 2
	e := &world.Entity{
		Category: types.CategorySecretWall,
		Name:     s.Type,
		Tile:     tile,
		Visible:  true,
	}
	switch s.Type {
	case types.SecretPassThrough, types.SecretBreakable:
		e.Pos = g.Center(tile, g.TileSize)
		e.Half = geom.Vec3{X: h, Y: g.TileSize, Z: h}
		e.Solid = s.Type == types.SecretBreakable
	case types.SecretLowWall:
		e.Pos = g.Center(tile, g.TileSize*0.25)
		e.Half = geom.Vec3{X: h, Y: g.TileSize * 0.25, Z: h}
		e.Solid = true
	case types.SecretQuicksand:
		e.Category = types.CategoryTrap
		e.Pos = g.Center(tile, 0)
		e.Half = geom.Vec3{X: g.TileSize * 0.4, Y: quicksandLevel, Z: g.TileSize * 0.4}
	default:
		return nil, false
	}
	return e, true
}

// Features returns every feature still in the world.
func (m *Manager) Features() []*world.Entity {
	out := make([]*world.Entity, 0, len(m.ids))
	for _, id := range m.ids {
		if e, ok := m.reg.Get(id); ok {
			out = append(out, e)
		}
	}
	return out
}

func (m *Manager) byCategory(c types.Category) []*world.Entity {
	var out []*world.Entity
	for _, e := range m.Features() {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}

// Walls is the arbiter provider for secret walls.
func (m *Manager) Walls() WallProvider { return WallProvider{m} }

// Traps is the arbiter provider for trap patches.
func (m *Manager) Traps() TrapProvider { return TrapProvider{m} }

// WallProvider dispatches interactions with secret walls.
type WallProvider struct{ m *Manager }

// Category is the secret-wall category.
func (p WallProvider) Category() types.Category { return types.CategorySecretWall }

// Interactables returns the walls that react to interaction.
func (p WallProvider) Interactables() []*world.Entity {
	return p.m.byCategory(types.CategorySecretWall)
}

// Interact breaks e if the player has strength, otherwise describes it.
func (p WallProvider) Interact(e *world.Entity) { p.m.interactWall(e) }

// TrapProvider dispatches interactions with trap patches.
type TrapProvider struct{ m *Manager }

// Category is the trap category.
func (p TrapProvider) Category() types.Category { return types.CategoryTrap }

// Interactables returns every trap patch.
func (p TrapProvider) Interactables() []*world.Entity {
	return p.m.byCategory(types.CategoryTrap)
}

// Interact warns about the quicksand and sinks the player into it.
func (p TrapProvider) Interact(e *world.Entity) {
	p.m.sink.ShowMessage(msgQuicksand, 0)
	p.m.sinkPlayer()
}

func (m *Manager) interactWall(e *world.Entity) {
	switch e.Name {
	case types.SecretBreakable:
		if m.pl.Strong() || m.slot.Consume(runes.Strength) {
			m.breakWall(e)
			return
		}
		m.sink.ShowMessage(msgWeakWall, 0)
	case types.SecretPassThrough:
		m.sink.ShowMessage(msgShimmer, 0)
	case types.SecretLowWall:
		m.sink.ShowMessage(msgLowWall, 0)
	}
}

func (m *Manager) breakWall(e *world.Entity) {
	m.reg.Remove(e.ID)
	for i, id := range m.ids {
		if id == e.ID {
			m.ids = append(m.ids[:i], m.ids[i+1:]...)
			break
		}
	}
	m.sink.ShowMessage(msgCrumbles, 0)
	m.log.Info("breakable wall broken", zap.Int("x", e.Tile.X), zap.Int("z", e.Tile.Z))
}

// OnCollide breaks any breakable wall the player walked into while strong.
func (m *Manager) OnCollide(blockers []*world.Entity) {
	if !m.pl.Strong() {
		return
	}
	for _, e := range blockers {
		if e.Category == types.CategorySecretWall && e.Name == types.SecretBreakable {
			if _, ok := m.reg.Get(e.ID); ok {
				m.breakWall(e)
			}
		}
	}
}

// Update runs the per-frame hazard check: standing in quicksand sinks the
// player and keeps the effect running.
func (m *Manager) Update() {
	if m.pl.Flying() {
		return
	}
	for _, e := range m.byCategory(types.CategoryTrap) {
		if e.Box().ContainsXZ(m.pl.Pos) {
			if !m.fx.Active(effects.Quicksand) {
				m.sink.ShowMessage(msgQuicksand, 0)
			}
			m.sinkPlayer()
			return
		}
	}
}

func (m *Manager) sinkPlayer() {
	m.pl.SetModifier(effects.Quicksand, m.cfg.SpeedMultiplier)
	m.pl.SetSink(m.cfg.SinkDepth)
	m.fx.Schedule(effects.Quicksand, m.cfg.Duration, func() {
		m.pl.ClearModifier(effects.Quicksand)
		m.pl.SetSink(0)
	})
}

// Reset removes every feature and places the full set again.
func (m *Manager) Reset() {
	for _, id := range m.ids {
		m.reg.Remove(id)
	}
	m.ids = nil
	m.Load(m.spawns)
}
