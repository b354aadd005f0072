// Package treasure spawns the collectible treasures and reports each
// pickup to the game manager.
package treasure

import (
	"go.uber.org/zap"

	"github.com/nathoo/runemaze/engine/geom"
	"github.com/nathoo/runemaze/engine/world"
	"github.com/nathoo/runemaze/types"
)

// Collector counts collected treasures.
type Collector interface {
	CollectTreasure() bool
}

var pickupHalf = geom.Vec3{X: 0.5, Y: 1, Z: 0.5}

// Manager owns the treasure entities.
type Manager struct {
	reg   *world.Registry
	gate  Collector
	log   *zap.Logger
	tiles []types.Tile
	ids   []world.ID
}

// NewManager creates a manager and spawns a treasure on every tile.
func NewManager(reg *world.Registry, gate Collector, tiles []types.Tile, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{reg: reg, gate: gate, log: log, tiles: tiles}
	m.spawn()
	return m
}

func (m *Manager) spawn() {
	for _, t := range m.tiles {
		m.ids = append(m.ids, m.reg.Add(&world.Entity{
			Category: types.CategoryTreasure,
			Name:     "treasure",
			Tile:     t,
			Pos:      m.reg.Grid().Center(t, 1),
			Half:     pickupHalf,
			Visible:  true,
		}))
	}
}

// Remaining returns how many treasures are still in the world.
func (m *Manager) Remaining() int { return len(m.ids) }

// Category implements the arbiter provider.
func (m *Manager) Category() types.Category { return types.CategoryTreasure }

// Interactables implements the arbiter provider.
func (m *Manager) Interactables() []*world.Entity {
	out := make([]*world.Entity, 0, len(m.ids))
	for _, id := range m.ids {
		if e, ok := m.reg.Get(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// Interact collects a treasure.
func (m *Manager) Interact(e *world.Entity) {
	idx := -1
	for i, id := range m.ids {
		if id == e.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.log.Warn("interact with unknown treasure", zap.String("id", string(e.ID)))
		return
	}
	m.reg.Remove(e.ID)
	m.ids = append(m.ids[:idx], m.ids[idx+1:]...)
	m.gate.CollectTreasure()
	m.log.Debug("treasure collected", zap.Int("x", e.Tile.X), zap.Int("z", e.Tile.Z))
}

// Reset removes every remaining treasure and spawns the full set again.
func (m *Manager) Reset() {
	for _, id := range m.ids {
		m.reg.Remove(id)
	}
	m.ids = nil
	m.spawn()
}
