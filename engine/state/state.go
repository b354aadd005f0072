// Package state holds the immutable maze definitions and the mutable
// progress record the game manager owns.
package state

import (
	"sort"

	"github.com/nathoo/runemaze/types"
)

// Defs holds the immutable game definitions loaded from Lua.
type Defs struct {
	Game  types.GameDef
	Mazes map[string]types.MazeDef
}

// Maze returns a maze definition by ID.
func (d *Defs) Maze(id string) (types.MazeDef, bool) {
	m, ok := d.Mazes[id]
	return m, ok
}

// MazeIDs returns every maze ID in sorted order.
func (d *Defs) MazeIDs() []string {
	ids := make([]string, 0, len(d.Mazes))
	for id := range d.Mazes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TotalTreasures returns the number of treasures required to open the exit.
func TotalTreasures(m types.MazeDef) int {
	if m.TotalTreasures > 0 {
		return m.TotalTreasures
	}
	return len(m.Treasures)
}

// Progress is the global progress of one play-through.
type Progress struct {
	TreasuresCollected int
	TotalTreasures     int
	ExitActivated      bool
	TimerRunning       bool
	TimeRemaining      int // seconds
	GameOver           bool
	Won                bool
	MovementLocked     bool
}

// NewProgress creates the progress record for a fresh start.
func NewProgress(total, countdown int) Progress {
	return Progress{TotalTreasures: total, TimeRemaining: countdown}
}

// Missing returns how many treasures are still needed.
func (p Progress) Missing() int {
	if n := p.TotalTreasures - p.TreasuresCollected; n > 0 {
		return n
	}
	return 0
}
