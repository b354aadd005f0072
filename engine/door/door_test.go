package door

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/runemaze/engine/events"
	"github.com/nathoo/runemaze/engine/world"
	"github.com/nathoo/runemaze/types"
)

func newDoor(t *testing.T) (*Door, *world.Registry, *events.Recorder) {
	t.Helper()
	reg := world.NewRegistry(world.NewGrid([]string{
		"#####",
		"#   #",
		"#####",
	}, 3))
	rec := events.NewRecorder()
	return New(reg, rec, types.Tile{X: 3, Z: 1}, nil), reg, rec
}

func TestDoor_LockedInteractDoesNothing(t *testing.T) {
	d, reg, rec := newDoor(t)
	d.Interact(nil)
	d.Interact(nil)

	assert.Equal(t, Locked, d.State())
	assert.Equal(t, []string{msgLocked, msgLocked}, rec.Messages())
	e := d.Interactables()[0]
	assert.True(t, e.Solid)
	assert.Len(t, reg.Entities(types.CategoryDoor), 1)
}

func TestDoor_UnlockThenOpenOnce(t *testing.T) {
	d, _, rec := newDoor(t)
	require.True(t, d.Unlock())
	assert.False(t, d.Unlock(), "unlock is one-way")

	d.Interact(nil)
	d.Interact(nil)

	assert.True(t, d.IsOpen())
	assert.False(t, d.Locked())
	assert.Equal(t, []string{msgOpened, msgAlreadyOpen}, rec.Messages())

	e := d.Interactables()[0]
	assert.False(t, e.Solid, "open door has no collider")
	assert.True(t, e.Visible, "open door stays targetable")
}

func TestDoor_UnlockAfterOpenIsNoop(t *testing.T) {
	d, _, _ := newDoor(t)
	d.Unlock()
	d.Interact(nil)
	assert.False(t, d.Unlock())
	assert.Equal(t, Open, d.State())
}

func TestDoor_Reset(t *testing.T) {
	d, _, _ := newDoor(t)
	d.Unlock()
	d.Interact(nil)
	d.Reset()

	assert.Equal(t, Locked, d.State())
	assert.True(t, d.Interactables()[0].Solid)
}

func TestDoor_Position(t *testing.T) {
	d, _, _ := newDoor(t)
	p := d.Position()
	assert.Equal(t, 9.0, p.X)
	assert.Equal(t, 3.0, p.Z)
	assert.Equal(t, 2.0, p.Y)
}
