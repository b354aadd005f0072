package loader

import (
	"strings"
	"testing"

	"github.com/nathoo/runemaze/engine/state"
	"github.com/nathoo/runemaze/types"
)

// validDefs returns a minimal valid Defs for testing.
func validDefs() *state.Defs {
	return &state.Defs{
		Game: types.GameDef{
			Title: "Test",
			Start: "hall",
		},
		Mazes: map[string]types.MazeDef{
			"hall": {
				ID:       "hall",
				TileSize: 3,
				Layout: []string{
					"#######",
					"#S T E#",
					"#e    #",
					"#######",
				},
				PlayerStart:   types.Tile{X: 1, Z: 1},
				Exit:          types.Tile{X: 5, Z: 1},
				ExitMechanism: types.Tile{X: 1, Z: 2},
				Treasures:     []types.Tile{{X: 3, Z: 1}},
			},
		},
	}
}

func validateErrors(t *testing.T, defs *state.Defs) *ValidationError {
	t.Helper()
	_, err := validate(defs)
	if err == nil {
		t.Fatal("expected validation error")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	return ve
}

func TestValidate_ValidDefs(t *testing.T) {
	warnings, err := validate(validDefs())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestValidate_MissingStartMaze(t *testing.T) {
	defs := validDefs()
	defs.Game.Start = "nonexistent"
	assertContains(t, validateErrors(t, defs).Errors, "start maze")
}

func TestValidate_EmptyTitle(t *testing.T) {
	defs := validDefs()
	defs.Game.Title = ""
	assertContains(t, validateErrors(t, defs).Errors, "Title")
}

func TestValidate_MazeProblems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *types.MazeDef)
		want   string
	}{
		{"zero tile size", func(m *types.MazeDef) { m.TileSize = 0 }, "tile_size"},
		{"empty layout", func(m *types.MazeDef) { m.Layout = nil }, "layout is empty"},
		{"start in wall", func(m *types.MazeDef) { m.PlayerStart = types.Tile{X: 0, Z: 0} }, "player_start (0,0) is inside a wall"},
		{"exit missing", func(m *types.MazeDef) { m.Exit = missingTile }, "exit is missing"},
		{"exit on start", func(m *types.MazeDef) { m.Exit = m.PlayerStart }, "share tile"},
		{"treasure outside", func(m *types.MazeDef) { m.Treasures = []types.Tile{{X: 40, Z: 1}} }, "outside the layout"},
		{"unknown rune", func(m *types.MazeDef) {
			m.Runes = []types.RuneSpawn{{X: 2, Z: 1, Type: "rune_luck"}}
		}, "unknown rune kind"},
		{"unknown secret", func(m *types.MazeDef) {
			m.Secrets = []types.SecretSpawn{{X: 2, Z: 1, Type: "hole"}}
		}, "unknown secret type"},
		{"too many required", func(m *types.MazeDef) { m.TotalTreasures = 2 }, "exceeds"},
		{"no treasures", func(m *types.MazeDef) { m.Treasures = nil }, "no treasures"},
		{"negative countdown", func(m *types.MazeDef) { m.Countdown = -1 }, "countdown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs := validDefs()
			m := defs.Mazes["hall"]
			tt.mutate(&m)
			defs.Mazes["hall"] = m
			assertContains(t, validateErrors(t, defs).Errors, tt.want)
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	defs := validDefs()
	m := defs.Mazes["hall"]
	m.Treasures = append(m.Treasures, m.Treasures[0])
	m.Runes = []types.RuneSpawn{{X: 2, Z: 1, Type: "rune_void"}}
	defs.Mazes["hall"] = m

	warnings, err := validate(defs)
	if err != nil {
		t.Fatalf("warnings must not fail validation: %v", err)
	}
	assertContains(t, warnings, "duplicates tile")
	assertContains(t, warnings, "trap")
}

func TestValidationError_Message(t *testing.T) {
	ve := &ValidationError{Errors: []string{"a", "b"}}
	if !strings.Contains(ve.Error(), "2 error(s)") {
		t.Errorf("Error() = %q", ve.Error())
	}
}

func assertContains(t *testing.T, strs []string, substr string) {
	t.Helper()
	for _, s := range strs {
		if strings.Contains(s, substr) {
			return
		}
	}
	t.Errorf("expected one of %v to contain %q", strs, substr)
}
