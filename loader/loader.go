package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/nathoo/runemaze/engine/state"
)

// ErrNoMaze is returned when a game directory defines no maze.
var ErrNoMaze = errors.New("no Maze{} definition found")

// collector accumulates Lua definitions during file execution.
type collector struct {
	game  *lua.LTable
	mazes []rawMaze
}

// Load reads all .lua files from dir, compiles them into maze definitions,
// validates them, and returns the immutable Defs. The Lua VM is discarded
// after loading. Validation warnings go to log, which may be nil.
func Load(dir string, log *zap.Logger) (*state.Defs, error) {
	if log == nil {
		log = zap.NewNop()
	}

	// Discover .lua files.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading game directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}

	// Sort: game.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)

	L := newVM()
	defer L.Close()

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		path := filepath.Join(dir, f)
		if err := L.DoFile(path); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	defs, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling maze data: %w", err)
	}

	warnings, err := validate(defs)
	for _, w := range warnings {
		log.Warn("maze data", zap.String("dir", dir), zap.String("warning", w))
	}
	if err != nil {
		return nil, err
	}

	log.Info("mazes loaded",
		zap.String("dir", dir),
		zap.String("title", defs.Game.Title),
		zap.Strings("mazes", defs.MazeIDs()))
	return defs, nil
}

// newVM creates a sandboxed Lua state.
func newVM() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibs(L)
	sandbox(L)
	return L
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// Base library (print, type, tostring, tonumber, pairs, ipairs, etc.)
	lua.OpenBase(L)
	// Table library (table.insert, table.sort, etc.)
	lua.OpenTable(L)
	// String library (string.format, string.rep, etc.)
	lua.OpenString(L)
	// Math library (math.floor, math.max, etc.)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Maze data must not depend on randomness; disguises are rolled by
	// the engine from its own seed.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("random", lua.LNil)
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
