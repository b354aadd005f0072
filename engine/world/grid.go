package world

import (
	"math"

	"github.com/nathoo/runemaze/engine/geom"
	"github.com/nathoo/runemaze/types"
)

// Grid is the static wall layout of a maze. Tile (x, z) is centered on
// world (x*TileSize, z*TileSize).
type Grid struct {
	TileSize float64
	rows     []string
	width    int
}

// NewGrid wraps a layout. Rows shorter than the widest row are padded
// with walls.
func NewGrid(layout []string, tileSize float64) *Grid {
	w := 0
	for _, row := range layout {
		if len(row) > w {
			w = len(row)
		}
	}
	return &Grid{TileSize: tileSize, rows: layout, width: w}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return len(g.rows) }

// At returns the layout character at a tile, '#' outside the layout.
func (g *Grid) At(x, z int) byte {
	if z < 0 || z >= len(g.rows) || x < 0 || x >= len(g.rows[z]) {
		return '#'
	}
	return g.rows[z][x]
}

// IsWall reports whether a tile is solid wall.
func (g *Grid) IsWall(x, z int) bool {
	return g.At(x, z) == '#'
}

// Center returns the world position of a tile center at height y.
func (g *Grid) Center(t types.Tile, y float64) geom.Vec3 {
	return geom.Vec3{X: float64(t.X) * g.TileSize, Y: y, Z: float64(t.Z) * g.TileSize}
}

// TileAt returns the tile containing a world position.
func (g *Grid) TileAt(p geom.Vec3) types.Tile {
	return types.Tile{
		X: int(math.Floor(p.X/g.TileSize + 0.5)),
		Z: int(math.Floor(p.Z/g.TileSize + 0.5)),
	}
}

// TileBox returns the full-height box occupying a tile.
func (g *Grid) TileBox(t types.Tile) geom.AABB {
	h := g.TileSize / 2
	c := g.Center(t, g.TileSize)
	return geom.Box(c, geom.Vec3{X: h, Y: g.TileSize, Z: h})
}

// Walls returns a box for every wall tile.
func (g *Grid) Walls() []geom.AABB {
	var boxes []geom.AABB
	for z := 0; z < g.Height(); z++ {
		for x := 0; x < g.width; x++ {
			if g.IsWall(x, z) {
				boxes = append(boxes, g.TileBox(types.Tile{X: x, Z: z}))
			}
		}
	}
	return boxes
}

// Find returns the first tile holding ch, scanning row by row.
func (g *Grid) Find(ch byte) (types.Tile, bool) {
	for z, row := range g.rows {
		for x := 0; x < len(row); x++ {
			if row[x] == ch {
				return types.Tile{X: x, Z: z}, true
			}
		}
	}
	return types.Tile{}, false
}
