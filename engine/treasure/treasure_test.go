package treasure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/runemaze/engine/world"
	"github.com/nathoo/runemaze/types"
)

type countingGate struct{ n int }

func (g *countingGate) CollectTreasure() bool {
	g.n++
	return true
}

func newManager() (*Manager, *world.Registry, *countingGate) {
	reg := world.NewRegistry(world.NewGrid([]string{
		"#####",
		"#   #",
		"#####",
	}, 3))
	gate := &countingGate{}
	return NewManager(reg, gate, []types.Tile{{X: 1, Z: 1}, {X: 3, Z: 1}}, nil), reg, gate
}

func TestManager_Spawn(t *testing.T) {
	m, reg, _ := newManager()
	assert.Equal(t, 2, m.Remaining())
	items := reg.Entities(types.CategoryTreasure)
	require.Len(t, items, 2)
	assert.Equal(t, 3.0, items[0].Pos.X)
	assert.Equal(t, 1.0, items[0].Pos.Y)
}

func TestManager_CollectRemovesOnce(t *testing.T) {
	m, reg, gate := newManager()
	e := m.Interactables()[0]

	m.Interact(e)
	m.Interact(e)
	assert.Equal(t, 1, gate.n, "a treasure counts once")
	assert.Equal(t, 1, m.Remaining())
	assert.Len(t, reg.Entities(types.CategoryTreasure), 1)
}

func TestManager_Reset(t *testing.T) {
	m, reg, _ := newManager()
	m.Interact(m.Interactables()[0])
	m.Reset()
	assert.Equal(t, 2, m.Remaining())
	assert.Len(t, reg.Entities(types.CategoryTreasure), 2)
}
