// Package loader loads Lua maze content into Go structs at load time.
// The Lua VM is discarded after loading — zero Lua at runtime.
package loader

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/runemaze/engine/state"
	"github.com/nathoo/runemaze/engine/world"
	"github.com/nathoo/runemaze/types"
)

// Layout characters that place objects when the maze table omits them.
const (
	charStart     = 'S'
	charExit      = 'E'
	charMechanism = 'e'
)

// missingTile marks a tile that was neither given nor inferable.
var missingTile = types.Tile{X: -1, Z: -1}

// rawMaze holds a maze table before compilation.
type rawMaze struct {
	id    string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	if len(coll.mazes) == 0 {
		return nil, ErrNoMaze
	}

	defs := &state.Defs{
		Game:  compileGame(coll.game),
		Mazes: map[string]types.MazeDef{},
	}
	for _, raw := range coll.mazes {
		if _, dup := defs.Mazes[raw.id]; dup {
			return nil, fmt.Errorf("maze %q defined twice", raw.id)
		}
		m, err := compileMaze(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling maze %s: %w", raw.id, err)
		}
		defs.Mazes[m.ID] = m
	}
	return defs, nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	return types.GameDef{
		Title:   getString(tbl, "title"),
		Author:  getString(tbl, "author"),
		Version: getString(tbl, "version"),
		Start:   getString(tbl, "start"),
		Intro:   getString(tbl, "intro"),
	}
}

// compileMaze compiles a raw maze into a MazeDef. Object tiles missing
// from the table are inferred from the layout.
func compileMaze(raw rawMaze) (types.MazeDef, error) {
	tbl := raw.table
	m := types.MazeDef{
		ID:             raw.id,
		TileSize:       getNumber(tbl, "tile_size"),
		TotalTreasures: getInt(tbl, "total_treasures"),
		Countdown:      getInt(tbl, "countdown"),
	}

	layout, err := compileLayout(getTable(tbl, "layout"))
	if err != nil {
		return m, err
	}
	m.Layout = layout

	objects := []struct {
		key  string
		ch   byte
		dest *types.Tile
	}{
		{"player_start", charStart, &m.PlayerStart},
		{"exit", charExit, &m.Exit},
		{"exit_mechanism", charMechanism, &m.ExitMechanism},
	}
	for _, o := range objects {
		if t := getTable(tbl, o.key); t != nil {
			tile, err := compileTile(t, "")
			if err != nil {
				return m, fmt.Errorf("%s: %w", o.key, err)
			}
			*o.dest = tile
			continue
		}
		*o.dest = findChar(layout, o.ch)
	}

	err = eachEntry(getTable(tbl, "runes"), "runes", func(t *lua.LTable) error {
		if err := checkKind(t, kindRune); err != nil {
			return err
		}
		m.Runes = append(m.Runes, types.RuneSpawn{
			X:    getInt(t, "x"),
			Z:    getInt(t, "z"),
			Type: getString(t, "type"),
			Trap: getBool(t, "trap", false),
		})
		return nil
	})
	if err != nil {
		return m, err
	}

	err = eachEntry(getTable(tbl, "treasures"), "treasures", func(t *lua.LTable) error {
		tile, err := compileTile(t, kindTreasure)
		if err != nil {
			return err
		}
		m.Treasures = append(m.Treasures, tile)
		return nil
	})
	if err != nil {
		return m, err
	}

	err = eachEntry(getTable(tbl, "secrets"), "secrets", func(t *lua.LTable) error {
		if err := checkKind(t, kindSecret); err != nil {
			return err
		}
		m.Secrets = append(m.Secrets, types.SecretSpawn{
			X:    getInt(t, "x"),
			Z:    getInt(t, "z"),
			Type: getString(t, "type"),
		})
		return nil
	})
	return m, err
}

func compileLayout(tbl *lua.LTable) ([]string, error) {
	if tbl == nil {
		return nil, nil
	}
	rows := make([]string, 0, tbl.MaxN())
	for i := 1; i <= tbl.MaxN(); i++ {
		s, ok := tbl.RawGetInt(i).(lua.LString)
		if !ok {
			return nil, fmt.Errorf("layout row %d is not a string", i)
		}
		rows = append(rows, string(s))
	}
	return rows, nil
}

// compileTile reads {x = .., z = ..} or the positional form {x, z}.
// A non-empty kind also accepts tables tagged with it.
func compileTile(tbl *lua.LTable, kind string) (types.Tile, error) {
	if k := getString(tbl, kindField); k != "" && k != kindTile && k != kind {
		return types.Tile{}, fmt.Errorf("expected a tile, got %s", k)
	}
	if tbl.RawGetString("x") != lua.LNil || tbl.RawGetString("z") != lua.LNil {
		return types.Tile{X: getInt(tbl, "x"), Z: getInt(tbl, "z")}, nil
	}
	x, okX := tbl.RawGetInt(1).(lua.LNumber)
	z, okZ := tbl.RawGetInt(2).(lua.LNumber)
	if !okX || !okZ {
		return types.Tile{}, fmt.Errorf("tile needs x and z")
	}
	return types.Tile{X: int(x), Z: int(z)}, nil
}

func checkKind(tbl *lua.LTable, want string) error {
	if k := getString(tbl, kindField); k != "" && k != want {
		return fmt.Errorf("expected %s, got %s", want, k)
	}
	return nil
}

// eachEntry calls fn for every table in an array, in order.
func eachEntry(list *lua.LTable, field string, fn func(*lua.LTable) error) error {
	if list == nil {
		return nil
	}
	for i := 1; i <= list.MaxN(); i++ {
		t, ok := list.RawGetInt(i).(*lua.LTable)
		if !ok {
			return fmt.Errorf("%s[%d] is not a table", field, i)
		}
		if err := fn(t); err != nil {
			return fmt.Errorf("%s[%d]: %w", field, i, err)
		}
	}
	return nil
}

// findChar returns the first tile holding ch, or missingTile.
func findChar(layout []string, ch byte) types.Tile {
	if t, ok := world.NewGrid(layout, 1).Find(ch); ok {
		return t
	}
	return missingTile
}

// sortedLuaFiles returns files with game.lua first, the rest alphabetical.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
