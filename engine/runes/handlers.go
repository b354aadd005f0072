package runes

import (
	"math"

	"go.uber.org/zap"

	"github.com/nathoo/runemaze/engine/effects"
	"github.com/nathoo/runemaze/engine/geom"
	"github.com/nathoo/runemaze/types"
)

const (
	tagPathBlock = "pathblock"
	tagDebris    = "debris"
)

var landingDirs = []geom.Vec3{
	{X: 1}, {X: -1}, {Z: 1}, {Z: -1},
	{X: 1, Z: 1}, {X: 1, Z: -1}, {X: -1, Z: 1}, {X: -1, Z: -1},
}

// activate runs a real rune. It reports false when the rune refused to
// fire and should stay equipped.
func (r *Resolver) activate(k Kind) bool {
	switch k {
	case Flight:
		r.flight()
	case Blink:
		return r.blink()
	case Strength:
		r.pl.SetStrong(true)
		r.sink.ShowMessage("The rune glows... ready to break walls!", 0)
		r.fx.Schedule(effects.Strength, r.cfg.Strength.Duration, func() {
			r.pl.SetStrong(false)
			r.sink.ShowMessage("Your strength fades.", 0)
		})
	case Speed:
		r.pl.SetModifier(effects.SpeedMultiplier, r.cfg.Speed.Amount)
		r.sink.ShowMessage("Your legs feel light. Sprint!", 0)
		r.fx.Schedule(effects.SpeedMultiplier, r.cfg.Speed.Duration, func() {
			r.pl.ClearModifier(effects.SpeedMultiplier)
		})
	case Vision:
		r.reveal(true)
		r.sink.ShowMessage("Your eyes sharpen. Hidden things glow.", 0)
		r.fx.Schedule(effects.Reveal, r.cfg.Vision.Duration, func() {
			r.reveal(false)
		})
	default:
		r.log.Error("activate called for a non-real rune", zap.Stringer("kind", k))
		return false
	}
	return true
}

// trigger runs a trap's pickup effect.
func (r *Resolver) trigger(k Kind) {
	switch k {
	case Confusion:
		r.sink.ShowMessage("Your thoughts scramble... Controls reversed!", 0)
		r.pl.SetInverted(true)
		r.fx.Schedule(effects.ControlsInvert, r.cfg.Confusion.Duration, func() {
			r.pl.SetInverted(false)
			r.sink.ShowMessage("Your head clears.", 0)
		})
	case PathBlock:
		r.sink.ShowMessage("The walls shift... A path is blocked.", 0)
		r.reg.RemoveTag(tagPathBlock)
		here := r.reg.Grid().TileAt(r.pl.Pos)
		for _, d := range []types.Tile{{X: 1}, {X: -1}, {Z: 1}, {Z: -1}} {
			r.block(tagPathBlock, types.Tile{X: here.X + d.X, Z: here.Z + d.Z})
		}
		r.fx.Schedule(effects.PathBlock, r.cfg.PathBlock.Duration, func() {
			r.reg.RemoveTag(tagPathBlock)
		})
	case Silence:
		r.sink.SetHUDVisible(false)
		r.fx.Schedule(effects.Silence, r.cfg.Silence.Duration, func() {
			r.sink.SetHUDVisible(true)
			r.sink.ShowMessage("Silence fades...", 0)
		})
	case Gravity:
		r.sink.ShowMessage("A heavy force slams you to the ground!", 0)
		r.pl.SetStunned(true)
		r.fx.Schedule(effects.MovementLock, r.cfg.Gravity.Duration, func() {
			r.pl.SetStunned(false)
		})
	case Void:
		r.sink.ShowMessage("A void swallows your vision!", 0)
		r.reg.SetBlackout(true)
		r.pl.SetBlind(true)
		r.fx.Schedule(effects.Blindness, r.cfg.Void.Duration, func() {
			r.reg.SetBlackout(false)
			r.pl.SetBlind(false)
			r.sink.ShowMessage("Your vision returns.", 0)
		})
	case Collapse:
		r.sink.ShowMessage("The ceiling cracks... Debris falls ahead!", 0)
		r.reg.RemoveTag(tagDebris)
		ahead := geom.Add(r.pl.Pos, geom.Scale(r.pl.Forward(), r.reg.Grid().TileSize))
		r.block(tagDebris, r.reg.Grid().TileAt(ahead))
		r.fx.Schedule(effects.Debris, r.cfg.Collapse.Duration, func() {
			r.reg.RemoveTag(tagDebris)
		})
	default:
		r.log.Error("trigger called for a non-trap rune", zap.Stringer("kind", k))
	}
}

// block drops a temporary obstacle on a floor tile unless it would trap
// the player inside it.
func (r *Resolver) block(tag string, t types.Tile) {
	g := r.reg.Grid()
	if g.IsWall(t.X, t.Z) {
		return
	}
	if g.TileBox(t).Intersects(r.pl.Box()) {
		return
	}
	r.reg.AddObstacle(tag, t)
}

// reveal highlights pass-through walls and disguised runes.
func (r *Resolver) reveal(on bool) {
	for _, e := range r.reg.Entities(types.CategorySecretWall) {
		if e.Name == types.SecretPassThrough {
			e.Revealed = on
		}
	}
	for _, e := range r.reg.Entities(types.CategoryRune) {
		if rn, ok := r.runes[e.ID]; ok && rn.Trap {
			e.Revealed = on
		}
	}
}

// blink moves the player forward, stopping a safety buffer short of the
// nearest obstacle.
func (r *Resolver) blink() bool {
	fwd := r.pl.Forward()
	dist := r.cfg.Blink.MaxDistance
	if d, ok := r.reg.ObstacleDistance(r.pl.Pos, fwd, dist+r.cfg.Blink.SafetyBuffer); ok {
		dist = math.Min(dist, d-r.cfg.Blink.SafetyBuffer)
	}
	for ; dist > 0; dist -= r.cfg.Blink.SafetyBuffer {
		dest := geom.Add(r.pl.Pos, geom.Scale(fwd, dist))
		if !r.reg.Collides(r.pl.BoxAt(dest)) {
			r.pl.Pos = dest
			r.sink.ShowMessage("You blink forward!", 0)
			return true
		}
	}
	r.sink.ShowMessage(msgBlinkFails, 0)
	return false
}

func (r *Resolver) flight() {
	ground := geom.Vec3{X: r.pl.Pos.X, Y: r.pl.EyeHeight() - r.pl.Sink(), Z: r.pl.Pos.Z}
	if r.pl.Ascend(r.cfg.Flight.Height) {
		r.takeoff = ground
		r.sink.ShowMessage("You float above the ground...", 0)
	}
	r.retries = 0
	r.fx.Schedule(effects.Flight, r.cfg.Flight.Duration, r.land)
}

// land brings the player down on the nearest collision-free spot,
// searching outward in eight directions. If there is none it stays aloft
// and tries again shortly, up to MaxRetries times, before dropping back
// to where the flight began.
func (r *Resolver) land() {
	if !r.pl.Flying() {
		return
	}
	if spot, ok := r.landingSpot(); ok {
		r.pl.LandAt(spot)
		r.sink.ShowMessage("Flight fades.", 0)
		return
	}
	if r.retries < r.cfg.Flight.MaxRetries &&
		r.fx.Schedule(effects.Flight, r.cfg.Flight.RetryAfter, r.land) {
		r.retries++
		r.log.Info("no safe landing spot, staying aloft", zap.Int("retry", r.retries))
		return
	}
	r.log.Warn("no safe landing spot, returning to takeoff",
		zap.Float64("x", r.takeoff.X), zap.Float64("z", r.takeoff.Z))
	r.pl.LandAt(r.takeoff)
	r.sink.ShowMessage("Flight fades. You drift back to where you took off.", 0)
}

func (r *Resolver) landingSpot() (geom.Vec3, bool) {
	ground := r.pl.EyeHeight() - r.pl.Sink()
	base := geom.Vec3{X: r.pl.Pos.X, Y: ground, Z: r.pl.Pos.Z}
	if r.safe(base) {
		return base, true
	}
	step := r.cfg.Flight.LandingStep
	for radius := step; radius <= r.cfg.Flight.LandingRadius+1e-9; radius += step {
		for _, d := range landingDirs {
			spot := geom.Add(base, geom.Scale(geom.Normalize(d), radius))
			if r.safe(spot) {
				return spot, true
			}
		}
	}
	return geom.Vec3{}, false
}

// safe reports whether the player can stand at eye: inside the maze and
// clear of every collider.
func (r *Resolver) safe(eye geom.Vec3) bool {
	g := r.reg.Grid()
	t := g.TileAt(eye)
	if g.IsWall(t.X, t.Z) {
		return false
	}
	return !r.reg.Collides(r.pl.BoxAt(eye))
}
