// Package door implements the exit door: Locked, then Unlocked by the exit
// mechanism, then Open once the player interacts with it.
package door

import (
	"go.uber.org/zap"

	"github.com/nathoo/runemaze/engine/events"
	"github.com/nathoo/runemaze/engine/geom"
	"github.com/nathoo/runemaze/engine/world"
	"github.com/nathoo/runemaze/types"
)

// State is a door state. Open is terminal.
type State int

const (
	Locked State = iota
	Unlocked
	Open
)

func (s State) String() string {
	switch s {
	case Locked:
		return "locked"
	case Unlocked:
		return "unlocked"
	case Open:
		return "open"
	}
	return "unknown"
}

const (
	msgLocked      = "The door is locked! Activate the exit mechanism first."
	msgOpened      = "The door is open! Go!"
	msgAlreadyOpen = "The door is already open. You can exit."
)

// Door is the exit door and its state machine.
type Door struct {
	reg   *world.Registry
	sink  events.Sink
	log   *zap.Logger
	id    world.ID
	state State
}

// New places a locked door on a tile.
func New(reg *world.Registry, sink events.Sink, tile types.Tile, log *zap.Logger) *Door {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Door{reg: reg, sink: sink, log: log}
	d.id = reg.Add(&world.Entity{
		Category: types.CategoryDoor,
		Name:     "exit_door",
		Tile:     tile,
		Pos:      reg.Grid().Center(tile, 2),
		Half:     geom.Vec3{X: 1.3, Y: 2, Z: 1.3},
		Visible:  true,
		Solid:    true,
	})
	return d
}

// State returns the current state.
func (d *Door) State() State { return d.state }

// Locked reports whether the door is still locked.
func (d *Door) Locked() bool { return d.state == Locked }

// IsOpen reports whether the door has been opened.
func (d *Door) IsOpen() bool { return d.state == Open }

// Position returns the center of the door.
func (d *Door) Position() geom.Vec3 {
	e, _ := d.reg.Get(d.id)
	return e.Pos
}

// Unlock moves Locked to Unlocked. It reports whether the state changed.
func (d *Door) Unlock() bool {
	if d.state != Locked {
		return false
	}
	d.state = Unlocked
	d.log.Info("door unlocked")
	return true
}

// Category implements the arbiter provider.
func (d *Door) Category() types.Category { return types.CategoryDoor }

// Interactables implements the arbiter provider.
func (d *Door) Interactables() []*world.Entity {
	e, ok := d.reg.Get(d.id)
	if !ok {
		return nil
	}
	return []*world.Entity{e}
}

// Interact handles the player using the door.
func (d *Door) Interact(*world.Entity) {
	switch d.state {
	case Locked:
		d.sink.ShowMessage(msgLocked, 0)
	case Unlocked:
		d.state = Open
		if err := d.reg.SetSolid(d.id, false); err != nil {
			d.log.Error("door collider missing", zap.Error(err))
		}
		d.log.Info("door opened")
		d.sink.ShowMessage(msgOpened, 0)
	case Open:
		d.sink.ShowMessage(msgAlreadyOpen, 0)
	}
}

// Reset relocks the door and restores its collider.
func (d *Door) Reset() {
	d.state = Locked
	if err := d.reg.SetSolid(d.id, true); err != nil {
		d.log.Error("door collider missing", zap.Error(err))
	}
}
