package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/runemaze/engine/runes"
	"github.com/nathoo/runemaze/engine/state"
	"github.com/nathoo/runemaze/engine/world"
	"github.com/nathoo/runemaze/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Secret types a maze may place.
var validSecretTypes = map[string]bool{
	types.SecretPassThrough: true,
	types.SecretBreakable:   true,
	types.SecretLowWall:     true,
	types.SecretQuicksand:   true,
}

// validate checks the compiled defs for consistency. It returns the
// warnings it found and a *ValidationError when there are errors.
func validate(defs *state.Defs) ([]string, error) {
	ve := &ValidationError{}

	if defs.Game.Title == "" {
		ve.Errors = append(ve.Errors, "Game.Title is required")
	}
	if defs.Game.Start != "" {
		if _, ok := defs.Mazes[defs.Game.Start]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"start maze %q not found in defined mazes", defs.Game.Start))
		}
	}

	ids := make([]string, 0, len(defs.Mazes))
	for id := range defs.Mazes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		validateMaze(defs.Mazes[id], ve)
	}

	if len(ve.Errors) > 0 {
		return ve.Warnings, ve
	}
	return ve.Warnings, nil
}

func validateMaze(m types.MazeDef, ve *ValidationError) {
	errorf := func(format string, args ...any) {
		ve.Errors = append(ve.Errors, fmt.Sprintf("maze %q: ", m.ID)+fmt.Sprintf(format, args...))
	}
	warnf := func(format string, args ...any) {
		ve.Warnings = append(ve.Warnings, fmt.Sprintf("maze %q: ", m.ID)+fmt.Sprintf(format, args...))
	}

	if m.TileSize <= 0 {
		errorf("tile_size must be positive, got %v", m.TileSize)
	}
	if len(m.Layout) == 0 {
		errorf("layout is empty")
		return
	}
	grid := world.NewGrid(m.Layout, 1)

	// onFloor reports whether t is inside the layout and not a wall.
	onFloor := func(what string, t types.Tile) bool {
		if t == missingTile {
			errorf("%s is missing", what)
			return false
		}
		if t.X < 0 || t.Z < 0 || t.X >= grid.Width() || t.Z >= grid.Height() {
			errorf("%s (%d,%d) is outside the layout", what, t.X, t.Z)
			return false
		}
		if grid.IsWall(t.X, t.Z) {
			errorf("%s (%d,%d) is inside a wall", what, t.X, t.Z)
			return false
		}
		return true
	}

	onFloor("player_start", m.PlayerStart)
	onFloor("exit", m.Exit)
	onFloor("exit_mechanism", m.ExitMechanism)
	if m.Exit == m.PlayerStart {
		errorf("exit and player_start share tile (%d,%d)", m.Exit.X, m.Exit.Z)
	}

	for i, r := range m.Runes {
		what := fmt.Sprintf("runes[%d]", i+1)
		onFloor(what, types.Tile{X: r.X, Z: r.Z})
		k, err := runes.ParseKind(r.Type)
		if err != nil {
			errorf("%s: %v", what, err)
			continue
		}
		if k.IsTrap() {
			warnf("%s places trap %q directly; it will show as itself", what, r.Type)
		}
	}

	seen := map[types.Tile]bool{}
	for i, t := range m.Treasures {
		onFloor(fmt.Sprintf("treasures[%d]", i+1), t)
		if seen[t] {
			warnf("treasures[%d] duplicates tile (%d,%d)", i+1, t.X, t.Z)
		}
		seen[t] = true
	}

	for i, s := range m.Secrets {
		what := fmt.Sprintf("secrets[%d]", i+1)
		onFloor(what, types.Tile{X: s.X, Z: s.Z})
		if !validSecretTypes[s.Type] {
			errorf("%s: unknown secret type %q", what, s.Type)
		}
	}

	if m.TotalTreasures < 0 {
		errorf("total_treasures must not be negative")
	}
	if m.TotalTreasures > len(m.Treasures) {
		errorf("total_treasures %d exceeds the %d placed", m.TotalTreasures, len(m.Treasures))
	}
	if len(m.Treasures) == 0 && m.TotalTreasures == 0 {
		errorf("no treasures to collect")
	}
	if m.Countdown < 0 {
		errorf("countdown must not be negative")
	}
}
