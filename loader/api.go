package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// Spawn kinds tagged onto tables built by the helpers below.
const (
	kindField    = "__kind"
	kindRune     = "rune"
	kindTreasure = "treasure"
	kindSecret   = "secret"
	kindTile     = "tile"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerSpawnHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", start = "maze1", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.game = tbl
		return 0
	}))

	// Maze "id" { ... } — curried: Maze("id") returns a function that takes a table.
	L.SetGlobal("Maze", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.mazes = append(coll.mazes, rawMaze{id: id, table: tbl})
			return 0
		}))
		return 1
	}))
}

func registerSpawnHelpers(L *lua.LState) {
	// Rune { x = 5, z = 1, type = "rune_flight", trap = false }
	L.SetGlobal("Rune", tagger(L, kindRune))

	// Treasure { x = 1, z = 1 }
	L.SetGlobal("Treasure", tagger(L, kindTreasure))

	// Secret { x = 3, z = 2, type = "pass_through" }
	L.SetGlobal("Secret", tagger(L, kindSecret))

	// Tile(x, z) builds a coordinate table.
	L.SetGlobal("Tile", L.NewFunction(func(L *lua.LState) int {
		x := L.CheckInt(1)
		z := L.CheckInt(2)
		tbl := L.NewTable()
		tbl.RawSetString(kindField, lua.LString(kindTile))
		tbl.RawSetString("x", lua.LNumber(x))
		tbl.RawSetString("z", lua.LNumber(z))
		L.Push(tbl)
		return 1
	}))
}

// tagger returns a pass-through constructor that marks its table with kind.
func tagger(L *lua.LState, kind string) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		tbl.RawSetString(kindField, lua.LString(kind))
		L.Push(tbl)
		return 1
	})
}
