package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/runemaze/engine/clock"
	"github.com/nathoo/runemaze/engine/effects"
	"github.com/nathoo/runemaze/engine/events"
	"github.com/nathoo/runemaze/types"
)

type fakeDoor struct{ unlocks int }

func (d *fakeDoor) Unlock() bool {
	d.unlocks++
	return d.unlocks == 1
}

type fixture struct {
	gate  *Gate
	door  *fakeDoor
	rec   *events.Recorder
	clk   *clock.Manual
	sched *effects.Scheduler
	fx    *effects.Engine
}

func newFixture(total int) *fixture {
	clk := clock.NewManual(time.Unix(0, 0))
	sched := effects.NewScheduler(clk)
	fx := effects.NewEngine(sched, nil)
	rec := events.NewRecorder()
	door := &fakeDoor{}
	g := New(sched, fx, rec, door, nil)
	g.Reset(total, 60)
	rec.Drain()
	return &fixture{gate: g, door: door, rec: rec, clk: clk, sched: sched, fx: fx}
}

func (f *fixture) tick(n int) {
	for i := 0; i < n; i++ {
		f.clk.Advance(time.Second)
		f.sched.Update()
	}
}

func countType(evts []types.Event, typ string) int {
	n := 0
	for _, e := range evts {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func TestCollectTreasure_Messages(t *testing.T) {
	f := newFixture(2)
	require.True(t, f.gate.CollectTreasure())
	require.True(t, f.gate.CollectTreasure())
	assert.False(t, f.gate.CollectTreasure(), "cannot exceed total")

	assert.Equal(t, []string{
		"Treasure found! (1/2)",
		"Treasure found! (2/2)",
		msgAllTreasures,
	}, f.rec.Messages())
	assert.Equal(t, 2, f.gate.State().TreasuresCollected)
}

func TestActivateExit_TreasureGateBoundary(t *testing.T) {
	f := newFixture(3)
	f.gate.CollectTreasure()
	f.gate.CollectTreasure()
	f.rec.Drain()

	assert.False(t, f.gate.ActivateExit())
	assert.Equal(t, []string{"You still need 1 more treasure(s)."}, f.rec.Messages())
	assert.False(t, f.gate.ExitActivated())
	assert.Zero(t, f.door.unlocks)

	f.gate.CollectTreasure()
	f.rec.Drain()
	assert.True(t, f.gate.ActivateExit())
	assert.Contains(t, f.rec.Messages()[0], "Exit activated")
	assert.Equal(t, 1, f.door.unlocks)

	st := f.gate.State()
	assert.True(t, st.ExitActivated)
	assert.True(t, st.TimerRunning)
	assert.Equal(t, 60, st.TimeRemaining)

	assert.False(t, f.gate.ActivateExit(), "activation is one-shot")
}

func TestTriggerExitTimer_NoopWithoutActivationPath(t *testing.T) {
	f := newFixture(1)
	f.gate.TriggerExitTimer()
	assert.False(t, f.gate.State().TimerRunning)
	assert.Zero(t, f.sched.Len())
	assert.Zero(t, f.door.unlocks)
}

func TestCountdown_LosesExactlyOnce(t *testing.T) {
	f := newFixture(1)
	f.gate.CollectTreasure()
	require.True(t, f.gate.ActivateExit())
	f.rec.Drain()

	f.tick(59)
	assert.False(t, f.gate.IsGameOver())
	assert.Equal(t, 1, f.gate.State().TimeRemaining)

	f.tick(1)
	assert.True(t, f.gate.IsGameOver())
	assert.False(t, f.gate.State().Won)
	assert.True(t, f.gate.MovementLocked())

	f.tick(10)
	evts := f.rec.Events()
	assert.Equal(t, 1, countType(evts, events.TypeEndScreen))
	assert.Equal(t, 1, countType(evts, events.TypeRelease))
	// 60 active ticks plus the final inactive update on game over.
	assert.Equal(t, 61, countType(evts, events.TypeTimer))
	assert.Zero(t, f.sched.Len(), "no timers left behind")
}

func TestCountdown_CatchUpAfterStall(t *testing.T) {
	f := newFixture(1)
	f.gate.CollectTreasure()
	f.gate.ActivateExit()

	f.clk.Advance(90 * time.Second)
	f.sched.Update()
	assert.True(t, f.gate.IsGameOver())
	assert.Equal(t, 0, f.gate.State().TimeRemaining)
	assert.Equal(t, 1, countType(f.rec.Events(), events.TypeEndScreen))
}

func TestTerminal_MutuallyExclusive(t *testing.T) {
	f := newFixture(1)
	reverted := 0
	f.fx.Schedule(effects.SpeedMultiplier, time.Minute, func() { reverted++ })

	assert.True(t, f.gate.WinGame())
	assert.False(t, f.gate.LoseGame())
	assert.False(t, f.gate.WinGame())

	st := f.gate.State()
	assert.True(t, st.GameOver)
	assert.True(t, st.Won)
	assert.Equal(t, 1, reverted, "pending effects are reverted on game over")
	assert.False(t, f.gate.CollectTreasure())

	evts := f.rec.Events()
	require.Equal(t, 1, countType(evts, events.TypeEndScreen))
	for _, e := range evts {
		if e.Type == events.TypeEndScreen {
			assert.Equal(t, WinText, e.Data["text"])
		}
	}
}

func TestReset_ClearsEverything(t *testing.T) {
	f := newFixture(1)
	f.gate.CollectTreasure()
	f.gate.ActivateExit()
	f.tick(5)

	f.gate.Reset(3, 30)
	st := f.gate.State()
	assert.Equal(t, 3, st.TotalTreasures)
	assert.Zero(t, st.TreasuresCollected)
	assert.False(t, st.ExitActivated)
	assert.False(t, st.TimerRunning)
	assert.False(t, st.GameOver)
	assert.Zero(t, f.sched.Len(), "countdown stopped")
}
