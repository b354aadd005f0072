// Package progress is the game manager: it owns the progress record, the
// exit countdown and the terminal win and lose transitions.
package progress

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nathoo/runemaze/engine/effects"
	"github.com/nathoo/runemaze/engine/events"
	"github.com/nathoo/runemaze/engine/state"
)

// End screen texts.
const (
	WinText  = "You escaped the maze!"
	LoseText = "Time's up! You are trapped forever."
)

const (
	msgExitActivated = "Exit activated! Reach the door before time runs out!"
	msgAllTreasures  = "All treasures collected! Activate the exit!"
)

// Unlocker is the door as the gate sees it.
type Unlocker interface {
	Unlock() bool
}

// Gate owns the progress record. Every mutation goes through its methods
// and none of them has an effect once the game is over.
type Gate struct {
	sched *effects.Scheduler
	fx    *effects.Engine
	sink  events.Sink
	door  Unlocker
	log   *zap.Logger

	st        state.Progress
	countdown int
	tick      effects.TimerID
}

// New creates a gate. Call Reset before play.
func New(sched *effects.Scheduler, fx *effects.Engine, sink events.Sink, door Unlocker, log *zap.Logger) *Gate {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gate{sched: sched, fx: fx, sink: sink, door: door, log: log}
}

// State returns a copy of the progress record.
func (g *Gate) State() state.Progress { return g.st }

// IsGameOver reports whether a terminal transition has happened.
func (g *Gate) IsGameOver() bool { return g.st.GameOver }

// MovementLocked reports whether player movement is frozen.
func (g *Gate) MovementLocked() bool { return g.st.MovementLocked }

// ExitActivated reports whether the exit mechanism has been used.
func (g *Gate) ExitActivated() bool { return g.st.ExitActivated }

// Reset starts a fresh play-through requiring total treasures and giving
// countdown seconds once the exit is activated.
func (g *Gate) Reset(total, countdown int) {
	g.stopTick()
	if total <= 0 {
		g.log.Warn("total treasures must be positive, using 1", zap.Int("total", total))
		total = 1
	}
	g.countdown = countdown
	g.st = state.NewProgress(total, countdown)
	g.sink.UpdateTimer(0, false)
}

// CollectTreasure records one collected treasure. It reports false when
// the game is over or every treasure is already counted.
func (g *Gate) CollectTreasure() bool {
	if g.st.GameOver {
		return false
	}
	if g.st.TreasuresCollected >= g.st.TotalTreasures {
		g.log.Warn("treasure collected beyond total",
			zap.Int("collected", g.st.TreasuresCollected),
			zap.Int("total", g.st.TotalTreasures))
		return false
	}
	g.st.TreasuresCollected++
	g.sink.ShowMessage(fmt.Sprintf("Treasure found! (%d/%d)", g.st.TreasuresCollected, g.st.TotalTreasures), 0)
	if g.st.TreasuresCollected == g.st.TotalTreasures {
		g.sink.ShowMessage(msgAllTreasures, 0)
	}
	return true
}

// ActivateExit is the exit mechanism's gate. It refuses until every
// treasure is collected and reports whether activation happened.
func (g *Gate) ActivateExit() bool {
	if g.st.GameOver || g.st.ExitActivated {
		return false
	}
	if n := g.st.Missing(); n > 0 {
		g.sink.ShowMessage(fmt.Sprintf("You still need %d more treasure(s).", n), 0)
		return false
	}
	g.TriggerExitTimer()
	g.sink.ShowMessage(msgExitActivated, 0)
	return true
}

// TriggerExitTimer unlocks the door and starts the countdown. It does
// nothing if the exit is already activated or the timer is running.
func (g *Gate) TriggerExitTimer() {
	if g.st.GameOver || g.st.ExitActivated || g.st.TimerRunning {
		return
	}
	if g.st.Missing() > 0 {
		g.log.Warn("exit timer triggered before the treasure gate passed")
		return
	}
	g.st.ExitActivated = true
	g.st.TimerRunning = true
	g.st.TimeRemaining = g.countdown
	g.door.Unlock()

	g.stopTick()
	g.tick = g.sched.Every(time.Second, g.onTick)
	g.sink.UpdateTimer(g.st.TimeRemaining, true)
	g.log.Info("exit timer started", zap.Int("seconds", g.countdown))
}

func (g *Gate) onTick() {
	if !g.st.TimerRunning {
		return
	}
	g.st.TimeRemaining--
	g.sink.UpdateTimer(g.st.TimeRemaining, true)
	if g.st.TimeRemaining <= 0 {
		g.LoseGame()
	}
}

// WinGame ends the game with a win. Only the first terminal call counts.
func (g *Gate) WinGame() bool {
	return g.finish(true, WinText)
}

// LoseGame ends the game with a loss. Only the first terminal call counts.
func (g *Gate) LoseGame() bool {
	return g.finish(false, LoseText)
}

func (g *Gate) finish(won bool, text string) bool {
	if g.st.GameOver {
		g.log.Warn("terminal transition after game over ignored", zap.Bool("won", won))
		return false
	}
	g.stopTick()
	g.st.TimerRunning = false
	g.st.GameOver = true
	g.st.MovementLocked = true
	g.st.Won = won

	g.sink.UpdateTimer(0, false)
	g.sink.ReleaseInput()
	g.fx.CancelAll()
	g.sink.ShowEndScreen(won, text)
	g.log.Info("game over", zap.Bool("won", won), zap.Int("time_remaining", g.st.TimeRemaining))
	return true
}

func (g *Gate) stopTick() {
	if g.tick != 0 {
		g.sched.Stop(g.tick)
		g.tick = 0
	}
}
