// Package player models the player's body: position, facing, movement
// capability and the flags temporary effects toggle on it.
package player

import (
	"math"
	"time"

	"github.com/nathoo/runemaze/config"
	"github.com/nathoo/runemaze/engine/effects"
	"github.com/nathoo/runemaze/engine/geom"
	"github.com/nathoo/runemaze/engine/world"
)

// Collider is the slice of the world registry movement needs.
type Collider interface {
	Collides(box geom.AABB) bool
	SolidOverlaps(box geom.AABB) []*world.Entity
}

// Player is the player's body. Effects change it only through the
// setters below, each of which is idempotent.
type Player struct {
	Pos   geom.Vec3 // eye position
	Yaw   float64   // radians, 0 faces -Z
	Pitch float64   // radians, positive looks up

	baseSpeed float64
	size      float64
	eyeHeight float64

	modifiers map[effects.Kind]float64
	inverted  bool
	stunned   bool
	blind     bool
	strong    bool
	flying    bool
	sink      float64
}

// New places a player at start, standing on the floor.
func New(cfg config.Player, start geom.Vec3) *Player {
	p := &Player{
		baseSpeed: cfg.Speed,
		size:      cfg.Size,
		eyeHeight: cfg.EyeHeight,
		modifiers: map[effects.Kind]float64{},
	}
	p.Pos = geom.Vec3{X: start.X, Y: cfg.EyeHeight, Z: start.Z}
	return p
}

// EyeHeight is the standing eye height above the floor.
func (p *Player) EyeHeight() float64 { return p.eyeHeight }

// Speed is the base speed scaled by every active modifier.
func (p *Player) Speed() float64 {
	s := p.baseSpeed
	for _, m := range p.modifiers {
		s *= m
	}
	return s
}

// BaseSpeed is the unmodified speed.
func (p *Player) BaseSpeed() float64 { return p.baseSpeed }

// SetModifier installs a speed multiplier for kind, replacing any previous one.
func (p *Player) SetModifier(kind effects.Kind, m float64) { p.modifiers[kind] = m }

// ClearModifier removes the multiplier for kind.
func (p *Player) ClearModifier(kind effects.Kind) { delete(p.modifiers, kind) }

// SetInverted reverses movement input while confused.
func (p *Player) SetInverted(on bool) { p.inverted = on }

// Inverted reports whether movement input is reversed.
func (p *Player) Inverted() bool { return p.inverted }

// SetStunned pins the player in place.
func (p *Player) SetStunned(on bool) { p.stunned = on }

// Stunned reports whether movement is locked.
func (p *Player) Stunned() bool { return p.stunned }

// SetBlind takes the player's sight away or gives it back.
func (p *Player) SetBlind(on bool) { p.blind = on }

// Blind reports whether the player sees nothing.
func (p *Player) Blind() bool { return p.blind }

// SetStrong lets the player break weak walls by walking into them.
func (p *Player) SetStrong(on bool) { p.strong = on }

// Strong reports whether the strength rune is in effect.
func (p *Player) Strong() bool { return p.strong }

// Flying reports whether the player is airborne.
func (p *Player) Flying() bool { return p.flying }

// SetSink lowers the eye by depth while standing in quicksand.
func (p *Player) SetSink(depth float64) {
	if p.flying {
		p.sink = depth
		return
	}
	p.Pos.Y += p.sink - depth
	p.sink = depth
}

// Sink is the current quicksand depth.
func (p *Player) Sink() float64 { return p.sink }

// Ascend lifts the player by height and marks it flying. It reports
// false if the player was already flying.
func (p *Player) Ascend(height float64) bool {
	if p.flying {
		return false
	}
	p.flying = true
	p.Pos.Y += height + p.sink
	return true
}

// LandAt puts the player back on the floor at spot.
func (p *Player) LandAt(spot geom.Vec3) {
	p.flying = false
	p.Pos = geom.Vec3{X: spot.X, Y: p.eyeHeight - p.sink, Z: spot.Z}
}

// Reset restores every flag and modifier to the baseline.
func (p *Player) Reset(start geom.Vec3) {
	p.modifiers = map[effects.Kind]float64{}
	p.inverted, p.stunned, p.blind, p.strong, p.flying = false, false, false, false, false
	p.sink = 0
	p.Yaw, p.Pitch = 0, 0
	p.Pos = geom.Vec3{X: start.X, Y: p.eyeHeight, Z: start.Z}
}

// Forward is the horizontal facing direction.
func (p *Player) Forward() geom.Vec3 {
	return geom.Vec3{X: -math.Sin(p.Yaw), Z: -math.Cos(p.Yaw)}
}

// Right is the horizontal strafe direction.
func (p *Player) Right() geom.Vec3 {
	return geom.Vec3{X: math.Cos(p.Yaw), Z: -math.Sin(p.Yaw)}
}

// Aim is the unit look direction including pitch.
func (p *Player) Aim() geom.Vec3 {
	return geom.Direction(p.Yaw, p.Pitch)
}

// Turn rotates the view. Pitch is clamped to straight up/down.
func (p *Player) Turn(dYaw, dPitch float64) {
	p.Yaw = math.Mod(p.Yaw+dYaw, 2*math.Pi)
	p.Pitch = math.Max(-math.Pi/2, math.Min(math.Pi/2, p.Pitch+dPitch))
}

// BoxAt is the collision cube for an eye position.
func (p *Player) BoxAt(pos geom.Vec3) geom.AABB {
	return geom.Cube(pos, p.size)
}

// Box is the current collision cube.
func (p *Player) Box() geom.AABB {
	return p.BoxAt(p.Pos)
}

// Move advances the player along a local input axis (x strafes right,
// z walks forward) for dt, then corrects against collisions one axis at a
// time so the player slides along walls. It returns the solid entities
// that blocked the move.
func (p *Player) Move(x, z float64, dt time.Duration, c Collider) []*world.Entity {
	if p.stunned || (x == 0 && z == 0) {
		return nil
	}
	if p.inverted {
		x, z = -x, -z
	}

	dir := geom.Normalize(geom.Add(geom.Scale(p.Right(), x), geom.Scale(p.Forward(), z)))
	step := geom.Scale(dir, p.Speed()*dt.Seconds())

	var blocked []*world.Entity
	for _, delta := range []geom.Vec3{{X: step.X}, {Z: step.Z}} {
		if delta == (geom.Vec3{}) {
			continue
		}
		next := geom.Add(p.Pos, delta)
		box := p.BoxAt(next)
		if c.Collides(box) {
			blocked = append(blocked, c.SolidOverlaps(box)...)
			continue
		}
		p.Pos = next
	}
	return blocked
}
