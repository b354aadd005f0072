package engine

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nathoo/runemaze/engine/clock"
	"github.com/nathoo/runemaze/engine/events"
	"github.com/nathoo/runemaze/engine/geom"
	"github.com/nathoo/runemaze/engine/parser"
	"github.com/nathoo/runemaze/engine/runes"
	"github.com/nathoo/runemaze/engine/world"
	"github.com/nathoo/runemaze/types"
)

const (
	msgUnknown  = "I don't understand that."
	msgGameOver = "The game is over. Type /reset to play again."
	msgBlocked  = "Something blocks your way."
	msgDark     = "It is pitch black. You can't see a thing."

	lookStep = 30.0 // degrees per look up/down
	maxWait  = 120  // seconds
)

// Step runs one text command to completion and returns what happened.
// Time only advances when the engine runs on a manual clock.
func (e *Engine) Step(input string) types.Result {
	intent := parser.Parse(input)
	e.log.Debug("step", zap.String("input", input), zap.String("verb", intent.Verb),
		zap.String("object", intent.Object), zap.Float64("amount", intent.Amount))

	var out []string
	over := e.gate.IsGameOver()
	switch intent.Verb {
	case "":
	case "status":
		out = e.StatusLines()
	case "map":
		out = e.mapLines()
	case "look":
		if intent.Object == "" || over {
			out = e.Describe()
			break
		}
		out = e.look(intent)
	default:
		if over {
			out = []string{msgGameOver}
			break
		}
		out = e.act(intent)
	}

	evts := e.Drain()
	lines := append(EventLines(evts), out...)
	return types.Result{Events: evts, Output: lines}
}

func (e *Engine) act(in types.Intent) []string {
	switch in.Verb {
	case "move":
		return e.walk(in)
	case "turn":
		return e.turn(in)
	case "interact":
		e.Interact()
		e.Advance(0)
		return nil
	case "use":
		e.UseRune()
		e.Advance(0)
		return nil
	case "wait":
		secs := in.Amount
		if secs <= 0 {
			secs = 1
		}
		e.run(time.Duration(math.Min(secs, maxWait) * float64(time.Second)))
		return nil
	}
	return []string{msgUnknown}
}

// walk holds the movement input until the requested number of tiles is
// covered, the player is stopped, or the game ends.
func (e *Engine) walk(in types.Intent) []string {
	var x, z float64
	switch in.Object {
	case "forward":
		z = 1
	case "back":
		z = -1
	case "left":
		x = -1
	case "right":
		x = 1
	default:
		return []string{msgUnknown}
	}
	tiles := in.Amount
	if tiles <= 0 {
		tiles = 1
	}
	goal := tiles * e.Maze.TileSize

	e.MoveAxis(x, z)
	defer e.MoveAxis(0, 0)

	dt := e.frameDuration()
	var covered float64
	for covered < goal && !e.gate.IsGameOver() {
		before := e.pl.Pos
		e.Advance(dt)
		d := geom.Len(geom.Flat(geom.Sub(e.pl.Pos, before)))
		if d < 1e-6 {
			if e.pl.Stunned() || e.gate.MovementLocked() {
				break
			}
			if covered == 0 {
				return []string{msgBlocked}
			}
			break
		}
		covered += d
	}
	return nil
}

func (e *Engine) turn(in types.Intent) []string {
	deg := in.Amount
	if deg <= 0 {
		deg = e.Config.Player.TurnStep
	}
	switch in.Object {
	case "left":
	case "right":
		deg = -deg
	case "around":
		deg = 180
	default:
		return []string{msgUnknown}
	}
	e.Turn(deg*math.Pi/180, 0)
	e.Advance(0)
	return []string{fmt.Sprintf("You face %s.", Heading(e.pl.Yaw))}
}

func (e *Engine) look(in types.Intent) []string {
	deg := in.Amount
	if deg <= 0 {
		deg = lookStep
	}
	switch in.Object {
	case "up":
	case "down":
		deg = -deg
	case "ahead", "level", "straight":
		e.Turn(0, -e.pl.Pitch)
		return e.Describe()
	case "left", "right", "around":
		return e.turn(types.Intent{Verb: "turn", Object: in.Object, Amount: in.Amount})
	default:
		return []string{msgUnknown}
	}
	e.Turn(0, deg*math.Pi/180)
	return []string{fmt.Sprintf("You look %s (%.0f degrees).", in.Object, e.pl.Pitch*180/math.Pi)}
}

// run simulates frames until d has elapsed or the game ends.
func (e *Engine) run(d time.Duration) {
	dt := e.frameDuration()
	for elapsed := time.Duration(0); elapsed < d && !e.gate.IsGameOver(); elapsed += dt {
		e.Advance(dt)
	}
}

// Advance moves a manual clock forward by dt and runs one frame. With a
// real clock it only runs the frame.
func (e *Engine) Advance(dt time.Duration) {
	if m, ok := e.clock.(*clock.Manual); ok && dt > 0 {
		m.Advance(dt)
	}
	e.Frame(dt)
}

func (e *Engine) frameDuration() time.Duration {
	fps := e.Config.FrameRate
	if fps <= 0 {
		fps = 30
	}
	return time.Second / time.Duration(fps)
}

// Drain returns and clears the events recorded since the last drain.
func (e *Engine) Drain() []types.Event {
	return e.rec.Drain()
}

// EventLines renders the events a text front end prints.
func EventLines(evts []types.Event) []string {
	var out []string
	for _, ev := range evts {
		switch ev.Type {
		case events.TypeMessage:
			if s, _ := ev.Data["text"].(string); s != "" {
				out = append(out, s)
			}
		case events.TypeEndScreen:
			text, _ := ev.Data["text"].(string)
			out = append(out, "*** "+text+" ***")
		}
	}
	return out
}

// StatusLines summarizes progress, the rune slot and running effects.
func (e *Engine) StatusLines() []string {
	p := e.gate.State()
	slot := "empty"
	if k := e.runes.Equipped(); k != runes.None {
		slot = k.Label()
	}
	lines := []string{
		fmt.Sprintf("Treasures: %d/%d", p.TreasuresCollected, p.TotalTreasures),
		fmt.Sprintf("Rune: %s", slot),
		fmt.Sprintf("Door: %s", e.door.State()),
	}
	if p.TimerRunning {
		lines = append(lines, fmt.Sprintf("Time left: %ds", p.TimeRemaining))
	}
	if fx := e.ActiveEffects(); len(fx) > 0 {
		parts := make([]string, 0, len(fx))
		for _, a := range fx {
			parts = append(parts, fmt.Sprintf("%s %.1fs", a.Kind, a.Remaining.Seconds()))
		}
		lines = append(lines, "Effects: "+strings.Join(parts, ", "))
	}
	if p.GameOver {
		if p.Won {
			lines = append(lines, "You won.")
		} else {
			lines = append(lines, "You lost.")
		}
	}
	return lines
}

// Describe reports the player's heading and what lies ahead.
func (e *Engine) Describe() []string {
	if e.Dark() {
		return []string{msgDark}
	}
	lines := []string{fmt.Sprintf("You face %s.", Heading(e.pl.Yaw))}
	if d, ok := e.reg.ObstacleDistance(e.pl.Pos, e.pl.Forward(), 100); ok {
		lines = append(lines, fmt.Sprintf("A wall is %.1fm ahead.", d))
	}

	var seen, details []string
	for _, ent := range e.reg.Entities() {
		if !e.reg.IsVisible(ent) {
			continue
		}
		name := e.EntityName(ent)
		if name == "" {
			continue
		}
		dist := geom.Dist(geom.Flat(e.pl.Pos), geom.Flat(ent.Pos))
		if dist > e.Config.Interaction.Range*2 {
			continue
		}
		seen = append(seen, fmt.Sprintf("%s %s, %.1fm", name, e.bearing(ent.Pos), dist))
		if info, ok := e.runeInfo(ent); ok && dist <= e.Config.Interaction.Range {
			details = append(details, fmt.Sprintf("%s %s: %s", info.Icon, info.Label, info.Description))
		}
	}
	if len(seen) == 0 {
		lines = append(lines, "Nothing of note nearby.")
	} else {
		lines = append(lines, "Nearby: "+strings.Join(seen, "; "))
	}
	return append(lines, details...)
}

// runeInfo is the catalogue entry a rune entity shows: its disguise, or
// the trap underneath once revealed.
func (e *Engine) runeInfo(ent *world.Entity) (runes.Info, bool) {
	if ent.Category != types.CategoryRune {
		return runes.Info{}, false
	}
	rn, ok := e.runes.Rune(ent.ID)
	if !ok {
		return runes.Info{}, false
	}
	if ent.Revealed && rn.Trap {
		return rn.Effect.Info(), true
	}
	return rn.Visual.Info(), true
}

// EntityName is how an entity reads in text. Empty means it looks like
// plain wall or floor.
func (e *Engine) EntityName(ent *world.Entity) string {
	switch ent.Category {
	case types.CategoryRune:
		rn, ok := e.runes.Rune(ent.ID)
		if !ok {
			return "a rune"
		}
		if ent.Revealed && rn.Trap {
			clue := strings.ToLower(strings.TrimSuffix(rn.Effect.Info().Clue, "."))
			return fmt.Sprintf("a trapped %s (%s)", rn.Visual.Label(), clue)
		}
		return "a " + rn.Visual.Label()
	case types.CategoryDoor:
		return fmt.Sprintf("the exit door (%s)", e.door.State())
	case types.CategoryTreasure:
		return "a treasure"
	case types.CategoryExitMechanism:
		return "the exit mechanism"
	case types.CategoryTrap:
		return "a patch of loose sand"
	case types.CategoryObstacle:
		return "rubble"
	case types.CategorySecretWall:
		switch ent.Name {
		case types.SecretBreakable:
			return "a cracked wall"
		case types.SecretLowWall:
			return "a low wall"
		case types.SecretPassThrough:
			if ent.Revealed {
				return "a shimmering wall"
			}
		}
	}
	return ""
}

// bearing describes where p lies relative to the player's facing.
func (e *Engine) bearing(p geom.Vec3) string {
	to := geom.Normalize(geom.Flat(geom.Sub(p, e.pl.Pos)))
	if to == (geom.Vec3{}) {
		return "here"
	}
	fwd := geom.Dot(to, e.pl.Forward())
	right := geom.Dot(to, e.pl.Right())
	switch {
	case fwd >= math.Cos(math.Pi/4):
		return "ahead"
	case fwd <= -math.Cos(math.Pi/4):
		return "behind"
	case right > 0:
		return "to the right"
	default:
		return "to the left"
	}
}

var compass = []string{"north", "northwest", "west", "southwest", "south", "southeast", "east", "northeast"}

// Heading names the compass direction of a yaw. North is -Z.
func Heading(yaw float64) string {
	y := math.Mod(yaw, 2*math.Pi)
	if y < 0 {
		y += 2 * math.Pi
	}
	i := int(math.Round(y/(math.Pi/4))) % len(compass)
	return compass[i]
}
