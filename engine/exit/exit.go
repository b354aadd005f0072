// Package exit places the exit mechanism and watches the door for the
// player's escape.
package exit

import (
	"go.uber.org/zap"

	"github.com/nathoo/runemaze/engine/geom"
	"github.com/nathoo/runemaze/engine/world"
	"github.com/nathoo/runemaze/types"
)

// Gate is the part of the game manager the exit needs.
type Gate interface {
	ActivateExit() bool
	WinGame() bool
}

// Door is the part of the door the trigger zone needs.
type Door interface {
	Locked() bool
	Position() geom.Vec3
}

// Mechanism is the lever that unlocks the door once every treasure is found.
type Mechanism struct {
	reg  *world.Registry
	gate Gate
	log  *zap.Logger
	tile types.Tile
	id   world.ID
}

// NewMechanism places the mechanism on a tile.
func NewMechanism(reg *world.Registry, gate Gate, tile types.Tile, log *zap.Logger) *Mechanism {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Mechanism{reg: reg, gate: gate, log: log, tile: tile}
	m.place()
	return m
}

func (m *Mechanism) place() {
	m.id = m.reg.Add(&world.Entity{
		Category: types.CategoryExitMechanism,
		Name:     "exit_mechanism",
		Tile:     m.tile,
		Pos:      m.reg.Grid().Center(m.tile, 1),
		Half:     geom.Vec3{X: 1, Y: 1, Z: 1},
		Visible:  true,
	})
}

// Present reports whether the mechanism is still in the world.
func (m *Mechanism) Present() bool {
	_, ok := m.reg.Get(m.id)
	return ok
}

// Category implements the arbiter provider.
func (m *Mechanism) Category() types.Category { return types.CategoryExitMechanism }

// Interactables implements the arbiter provider.
func (m *Mechanism) Interactables() []*world.Entity {
	if e, ok := m.reg.Get(m.id); ok {
		return []*world.Entity{e}
	}
	return nil
}

// Interact asks the gate to activate the exit and removes the mechanism
// when it does.
func (m *Mechanism) Interact(*world.Entity) {
	if !m.gate.ActivateExit() {
		return
	}
	m.reg.Remove(m.id)
	m.log.Info("exit mechanism activated")
}

// Reset puts the mechanism back if it was used.
func (m *Mechanism) Reset() {
	if !m.Present() {
		m.place()
	}
}

// TriggerZone wins the game the first time the player comes within
// radius of an unlocked door.
type TriggerZone struct {
	door   Door
	gate   Gate
	radius float64
	fired  bool
}

// NewTriggerZone creates a zone around the door.
func NewTriggerZone(door Door, gate Gate, radius float64) *TriggerZone {
	return &TriggerZone{door: door, gate: gate, radius: radius}
}

// Update checks the player's position. It reports whether it fired.
func (z *TriggerZone) Update(player geom.Vec3) bool {
	if z.fired || z.door.Locked() {
		return false
	}
	if geom.Dist(player, z.door.Position()) >= z.radius {
		return false
	}
	z.fired = true
	z.gate.WinGame()
	return true
}

// Reset re-arms the zone.
func (z *TriggerZone) Reset() { z.fired = false }
