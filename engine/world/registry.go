// Package world holds the maze geometry and every entity placed in it.
// Managers own their entities; the Registry only indexes them for
// raycasts, collision and rendering.
package world

import (
	"errors"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/nathoo/runemaze/engine/geom"
	"github.com/nathoo/runemaze/types"
)

// ErrNotFound is returned for operations on an unregistered entity.
var ErrNotFound = errors.New("entity not found")

// ID is an opaque entity handle.
type ID string

// NewID issues a fresh handle.
func NewID() ID {
	return ID(uuid.NewString())
}

// Entity is a positioned world object.
type Entity struct {
	ID       ID
	Category types.Category
	Name     string // kind within the category, e.g. "breakable"
	Tile     types.Tile
	Pos      geom.Vec3 // center of the interaction volume
	Half     geom.Vec3 // half extents of the interaction volume
	Visible  bool
	Solid    bool // participates in collision
	Revealed bool // highlighted by the vision rune
	Tag      string
}

// Box returns the entity's bounding box.
func (e *Entity) Box() geom.AABB {
	return geom.Box(e.Pos, e.Half)
}

// Hit is a ray intersection with an entity.
type Hit struct {
	Entity *Entity
	Dist   float64
}

// Registry indexes walls and entities.
type Registry struct {
	grid     *Grid
	walls    []geom.AABB
	entities map[ID]*Entity
	order    []ID
	blackout bool
}

// NewRegistry creates a registry over a grid.
func NewRegistry(grid *Grid) *Registry {
	return &Registry{
		grid:     grid,
		walls:    grid.Walls(),
		entities: map[ID]*Entity{},
	}
}

// Grid returns the maze grid.
func (r *Registry) Grid() *Grid { return r.grid }

// Add registers e, assigning an ID if it has none, and returns the ID.
func (r *Registry) Add(e *Entity) ID {
	if e.ID == "" {
		e.ID = NewID()
	}
	if _, exists := r.entities[e.ID]; !exists {
		r.order = append(r.order, e.ID)
	}
	r.entities[e.ID] = e
	return e.ID
}

// Remove unregisters an entity. It reports whether it was registered.
func (r *Registry) Remove(id ID) bool {
	if _, ok := r.entities[id]; !ok {
		return false
	}
	delete(r.entities, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns a registered entity.
func (r *Registry) Get(id ID) (*Entity, bool) {
	e, ok := r.entities[id]
	return e, ok
}

// SetVisible shows or hides an entity.
func (r *Registry) SetVisible(id ID, visible bool) error {
	e, ok := r.entities[id]
	if !ok {
		return ErrNotFound
	}
	e.Visible = visible
	return nil
}

// SetSolid enables or disables collision for an entity.
func (r *Registry) SetSolid(id ID, solid bool) error {
	e, ok := r.entities[id]
	if !ok {
		return ErrNotFound
	}
	e.Solid = solid
	return nil
}

// Entities returns registered entities of the given categories in
// registration order. No categories means all.
func (r *Registry) Entities(cats ...types.Category) []*Entity {
	var out []*Entity
	for _, id := range r.order {
		e := r.entities[id]
		if len(cats) == 0 || hasCategory(cats, e.Category) {
			out = append(out, e)
		}
	}
	return out
}

func hasCategory(cats []types.Category, c types.Category) bool {
	for _, v := range cats {
		if v == c {
			return true
		}
	}
	return false
}

// SetBlackout hides every entity from sight while on.
func (r *Registry) SetBlackout(on bool) { r.blackout = on }

// Blackout reports whether the world is blacked out.
func (r *Registry) Blackout() bool { return r.blackout }

// IsVisible reports whether an entity can currently be seen.
func (r *Registry) IsVisible(e *Entity) bool {
	return e.Visible && !r.blackout
}

// Raycast intersects a ray with the given entities and returns the hits
// within maxDist, nearest first. maxDist <= 0 means unbounded.
func (r *Registry) Raycast(origin, dir geom.Vec3, maxDist float64, candidates []*Entity) []Hit {
	dir = geom.Normalize(dir)
	if dir == (geom.Vec3{}) {
		return nil
	}
	var hits []Hit
	for _, e := range candidates {
		t, ok := geom.RayBox(origin, dir, e.Box())
		if !ok || (maxDist > 0 && t > maxDist) {
			continue
		}
		hits = append(hits, Hit{Entity: e, Dist: t})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Dist < hits[j].Dist })
	return hits
}

// ObstacleDistance returns the distance along dir to the nearest wall or
// solid entity, if any lies within maxDist.
func (r *Registry) ObstacleDistance(origin, dir geom.Vec3, maxDist float64) (float64, bool) {
	dir = geom.Normalize(dir)
	if dir == (geom.Vec3{}) {
		return 0, false
	}
	best := math.Inf(1)
	for _, w := range r.walls {
		if t, ok := geom.RayBox(origin, dir, w); ok && t < best {
			best = t
		}
	}
	for _, e := range r.entities {
		if !e.Solid {
			continue
		}
		if t, ok := geom.RayBox(origin, dir, e.Box()); ok && t < best {
			best = t
		}
	}
	if math.IsInf(best, 1) || best > maxDist {
		return 0, false
	}
	return best, true
}

// Collides reports whether box overlaps a wall or a solid entity.
func (r *Registry) Collides(box geom.AABB) bool {
	for _, w := range r.walls {
		if w.Intersects(box) {
			return true
		}
	}
	return len(r.SolidOverlaps(box)) > 0
}

// SolidOverlaps returns the solid entities overlapping box.
func (r *Registry) SolidOverlaps(box geom.AABB) []*Entity {
	var out []*Entity
	for _, id := range r.order {
		e := r.entities[id]
		if e.Solid && e.Box().Intersects(box) {
			out = append(out, e)
		}
	}
	return out
}

// AddObstacle places a temporary full-height blocker on a tile under tag.
func (r *Registry) AddObstacle(tag string, t types.Tile) ID {
	box := r.grid.TileBox(t)
	return r.Add(&Entity{
		Category: types.CategoryObstacle,
		Name:     tag,
		Tile:     t,
		Pos:      box.Center(),
		Half:     geom.Scale(geom.Sub(box.Max, box.Min), 0.5),
		Visible:  true,
		Solid:    true,
		Tag:      tag,
	})
}

// RemoveTag removes every entity carrying tag and returns how many went.
func (r *Registry) RemoveTag(tag string) int {
	var ids []ID
	for _, id := range r.order {
		if r.entities[id].Tag == tag {
			ids = append(ids, id)
		}
	}
	for _, id := range ids {
		r.Remove(id)
	}
	return len(ids)
}
