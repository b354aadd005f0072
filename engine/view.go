package engine

import (
	"math"

	"github.com/nathoo/runemaze/engine/door"
	"github.com/nathoo/runemaze/engine/world"
	"github.com/nathoo/runemaze/types"
)

// Map glyphs.
const (
	GlyphWall       = '#'
	GlyphFloor      = '.'
	GlyphTreasure   = 'T'
	GlyphRune       = 'R'
	GlyphTrapRune   = '?'
	GlyphMechanism  = 'M'
	GlyphBreakable  = '%'
	GlyphPassage    = '+'
	GlyphLowWall    = '='
	GlyphQuicksand  = '~'
	GlyphObstacle   = 'X'
	GlyphDoorLocked = 'D'
	GlyphDoorShut   = 'd'
	GlyphDoorOpen   = '/'
)

// Dark reports whether the player currently sees nothing.
func (e *Engine) Dark() bool {
	return e.pl.Blind() || e.reg.Blackout()
}

// Render draws the maze top-down, one string per row. It returns nil
// while the player is blind.
func (e *Engine) Render() []string {
	if e.Dark() {
		return nil
	}
	g := e.reg.Grid()
	cells := make([][]byte, g.Height())
	for z := range cells {
		row := make([]byte, g.Width())
		for x := range row {
			if g.IsWall(x, z) {
				row[x] = GlyphWall
			} else {
				row[x] = GlyphFloor
			}
		}
		cells[z] = row
	}

	set := func(t types.Tile, ch byte) {
		if t.Z >= 0 && t.Z < len(cells) && t.X >= 0 && t.X < len(cells[t.Z]) {
			cells[t.Z][t.X] = ch
		}
	}
	for _, ent := range e.reg.Entities() {
		if !e.reg.IsVisible(ent) {
			continue
		}
		if ch, ok := e.glyph(ent); ok {
			set(ent.Tile, ch)
		}
	}
	set(g.TileAt(e.pl.Pos), PlayerGlyph(e.pl.Yaw))

	out := make([]string, len(cells))
	for i, row := range cells {
		out[i] = string(row)
	}
	return out
}

func (e *Engine) glyph(ent *world.Entity) (byte, bool) {
	switch ent.Category {
	case types.CategoryTreasure:
		return GlyphTreasure, true
	case types.CategoryRune:
		if ent.Revealed {
			if rn, ok := e.runes.Rune(ent.ID); ok && rn.Trap {
				return GlyphTrapRune, true
			}
		}
		return GlyphRune, true
	case types.CategoryExitMechanism:
		return GlyphMechanism, true
	case types.CategoryDoor:
		switch e.door.State() {
		case door.Locked:
			return GlyphDoorLocked, true
		case door.Unlocked:
			return GlyphDoorShut, true
		}
		return GlyphDoorOpen, true
	case types.CategoryTrap:
		return GlyphQuicksand, true
	case types.CategoryObstacle:
		return GlyphObstacle, true
	case types.CategorySecretWall:
		switch ent.Name {
		case types.SecretBreakable:
			return GlyphBreakable, true
		case types.SecretLowWall:
			return GlyphLowWall, true
		case types.SecretPassThrough:
			if ent.Revealed {
				return GlyphPassage, true
			}
			return GlyphWall, true
		}
	}
	return 0, false
}

// RuneTints maps the tile of every visible rune to the colour of the kind
// it currently shows. It returns nil while the player is blind.
func (e *Engine) RuneTints() map[types.Tile]string {
	if e.Dark() {
		return nil
	}
	tints := map[types.Tile]string{}
	for _, ent := range e.reg.Entities(types.CategoryRune) {
		if !e.reg.IsVisible(ent) {
			continue
		}
		if info, ok := e.runeInfo(ent); ok {
			tints[ent.Tile] = info.Color
		}
	}
	return tints
}

// PlayerGlyph is an arrow pointing along yaw.
func PlayerGlyph(yaw float64) byte {
	y := math.Mod(yaw, 2*math.Pi)
	if y < 0 {
		y += 2 * math.Pi
	}
	switch int(math.Round(y/(math.Pi/2))) % 4 {
	case 1:
		return '<'
	case 2:
		return 'v'
	case 3:
		return '>'
	}
	return '^'
}

func (e *Engine) mapLines() []string {
	if lines := e.Render(); lines != nil {
		return lines
	}
	return []string{msgDark}
}
