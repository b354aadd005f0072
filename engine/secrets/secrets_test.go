package secrets

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/runemaze/config"
	"github.com/nathoo/runemaze/engine/clock"
	"github.com/nathoo/runemaze/engine/effects"
	"github.com/nathoo/runemaze/engine/events"
	"github.com/nathoo/runemaze/engine/geom"
	"github.com/nathoo/runemaze/engine/player"
	"github.com/nathoo/runemaze/engine/runes"
	"github.com/nathoo/runemaze/engine/world"
	"github.com/nathoo/runemaze/types"
)

type fakeSlot struct{ equipped runes.Kind }

func (s *fakeSlot) Consume(k runes.Kind) bool {
	if s.equipped != k {
		return false
	}
	s.equipped = runes.None
	return true
}

type fixture struct {
	m     *Manager
	reg   *world.Registry
	pl    *player.Player
	fx    *effects.Engine
	sched *effects.Scheduler
	clk   *clock.Manual
	rec   *events.Recorder
	slot  *fakeSlot
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.Default()
	reg := world.NewRegistry(world.NewGrid([]string{
		"#########",
		"#       #",
		"#########",
	}, 3))
	clk := clock.NewManual(time.Unix(0, 0))
	sched := effects.NewScheduler(clk)
	fx := effects.NewEngine(sched, nil)
	pl := player.New(cfg.Player, geom.Vec3{X: 3, Z: 3})
	pl.Turn(-math.Pi/2, 0)
	rec := events.NewRecorder()
	slot := &fakeSlot{}

	m := NewManager(reg, pl, fx, rec, slot, cfg.Secrets.Quicksand, nil)
	m.Load([]types.SecretSpawn{
		{X: 2, Z: 1, Type: types.SecretPassThrough},
		{X: 4, Z: 1, Type: types.SecretBreakable},
		{X: 5, Z: 1, Type: types.SecretLowWall},
		{X: 6, Z: 1, Type: types.SecretQuicksand},
		{X: 7, Z: 1, Type: "hole"},
	})
	return &fixture{m: m, reg: reg, pl: pl, fx: fx, sched: sched, clk: clk, rec: rec, slot: slot}
}

func (f *fixture) feature(t *testing.T, name string) *world.Entity {
	t.Helper()
	for _, e := range f.m.Features() {
		if e.Name == name {
			return e
		}
	}
	require.Failf(t, "feature not found", name)
	return nil
}

func TestLoad_Features(t *testing.T) {
	f := newFixture(t)
	assert.Len(t, f.m.Features(), 4, "unknown type skipped")
	assert.Len(t, f.m.Walls().Interactables(), 3)
	assert.Len(t, f.m.Traps().Interactables(), 1)

	assert.False(t, f.feature(t, types.SecretPassThrough).Solid)
	assert.True(t, f.feature(t, types.SecretBreakable).Solid)
}

func TestPassThrough_NoCollision(t *testing.T) {
	f := newFixture(t)
	f.pl.Move(0, 1, 300*time.Millisecond, f.reg)
	assert.InDelta(t, 4.5, f.pl.Pos.X, 1e-9, "walks into the pass-through tile")
}

func TestLowWall_BlocksWalkingNotFlying(t *testing.T) {
	f := newFixture(t)
	lw := f.feature(t, types.SecretLowWall)
	standing := f.pl.BoxAt(geom.Vec3{X: 15, Y: 1.6, Z: 3})
	flying := f.pl.BoxAt(geom.Vec3{X: 15, Y: 16.6, Z: 3})
	assert.True(t, lw.Box().Intersects(standing))
	assert.False(t, lw.Box().Intersects(flying))
}

func TestBreakable_NeedsStrength(t *testing.T) {
	f := newFixture(t)
	wall := f.feature(t, types.SecretBreakable)

	f.m.Walls().Interact(wall)
	assert.Equal(t, []string{msgWeakWall}, f.rec.Messages())
	assert.Len(t, f.m.Features(), 4)

	f.slot.equipped = runes.Strength
	f.m.Walls().Interact(wall)
	assert.Equal(t, runes.None, f.slot.equipped, "strength rune consumed")
	assert.Len(t, f.m.Features(), 3)
	_, ok := f.reg.Get(wall.ID)
	assert.False(t, ok)
}

func TestBreakable_WalkIntoWhileStrong(t *testing.T) {
	f := newFixture(t)
	f.pl.Pos.X = 9
	blocked := f.pl.Move(0, 1, 300*time.Millisecond, f.reg)
	require.Len(t, blocked, 1)

	f.m.OnCollide(blocked)
	assert.Len(t, f.m.Features(), 4, "not strong yet")

	f.pl.SetStrong(true)
	f.m.OnCollide(blocked)
	assert.Len(t, f.m.Features(), 3)
	assert.Contains(t, f.rec.Messages(), msgCrumbles)
}

func TestQuicksand_SinksWhileStanding(t *testing.T) {
	f := newFixture(t)
	base := f.pl.Speed()
	f.pl.Pos.X = 18

	f.m.Update()
	assert.InDelta(t, base*0.4, f.pl.Speed(), 1e-9)
	assert.InDelta(t, 1.0, f.pl.Pos.Y, 1e-9)
	f.m.Update()
	assert.Equal(t, []string{msgQuicksand}, f.rec.Messages(), "message once per immersion")

	f.clk.Advance(2 * time.Second)
	f.sched.Update()
	f.m.Update()
	f.pl.Pos.X = 12 // step out
	f.clk.Advance(2 * time.Second)
	f.sched.Update()
	f.m.Update()
	assert.True(t, f.fx.Active(effects.Quicksand), "standing refreshed the effect")

	f.clk.Advance(time.Second)
	f.sched.Update()
	assert.Equal(t, base, f.pl.Speed())
	assert.InDelta(t, 1.6, f.pl.Pos.Y, 1e-9)
}

func TestQuicksand_FlyingIsSafe(t *testing.T) {
	f := newFixture(t)
	f.pl.Pos.X = 18
	f.pl.Ascend(15)
	f.m.Update()
	assert.False(t, f.fx.Active(effects.Quicksand))
}

func TestQuicksand_InteractSprings(t *testing.T) {
	f := newFixture(t)
	patch := f.feature(t, types.SecretQuicksand)
	f.m.Traps().Interact(patch)
	assert.True(t, f.fx.Active(effects.Quicksand))
}

func TestReset_RestoresBrokenWall(t *testing.T) {
	f := newFixture(t)
	f.pl.SetStrong(true)
	f.m.Walls().Interact(f.feature(t, types.SecretBreakable))
	require.Len(t, f.m.Features(), 3)

	f.m.Reset()
	assert.Len(t, f.m.Features(), 4)
	assert.Len(t, f.reg.Entities(types.CategorySecretWall), 3)
}
