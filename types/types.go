// Package types defines the shared data structures for the RuneMaze engine.
// This package contains only type definitions, with no logic or methods.
package types

// Category identifies which manager owns a world entity and which
// interaction handler it dispatches to.
type Category int

const (
	CategoryRune Category = iota
	CategoryDoor
	CategoryTrap
	CategoryTreasure
	CategorySecretWall
	CategoryExitMechanism
	CategoryObstacle // temporary blockers, never an interaction target
)

// Secret feature types accepted in maze data.
const (
	SecretPassThrough = "pass_through"
	SecretBreakable   = "breakable"
	SecretLowWall     = "low_wall"
	SecretQuicksand   = "quicksand"
)

// Tile is a grid coordinate in a maze layout.
type Tile struct {
	X int
	Z int
}

// RuneSpawn places a rune of the given base type on a tile.
type RuneSpawn struct {
	X    int
	Z    int
	Type string // e.g. "rune_flight"
	Trap bool   // forces the disguise
}

// SecretSpawn places a secret feature on a tile.
type SecretSpawn struct {
	X    int
	Z    int
	Type string // one of the Secret* constants
}

// MazeDef is the static data table for one level.
type MazeDef struct {
	ID             string
	TileSize       float64
	Layout         []string // '#' is wall, anything else is floor
	PlayerStart    Tile
	Exit           Tile
	ExitMechanism  Tile
	Runes          []RuneSpawn
	Treasures      []Tile
	Secrets        []SecretSpawn
	TotalTreasures int // 0 means len(Treasures)
	Countdown      int // seconds, 0 means the configured default
}

// GameDef holds game metadata from Lua.
type GameDef struct {
	Title   string
	Author  string
	Version string
	Start   string // starting maze ID
	Intro   string
}

// Event is emitted to the presentation layer.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single text command.
type Result struct {
	Events []Event
	Output []string
}

// Intent is a parsed text command.
type Intent struct {
	Verb   string  // canonical verb: move, turn, look, interact, use, wait, status, map
	Object string  // direction or subject, e.g. "forward", "left", "up"
	Amount float64 // optional numeric argument, 0 when absent
}
