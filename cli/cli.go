// Package cli provides the plain text front end: terminal I/O, output
// formatting and meta-command dispatch for the RuneMaze engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/runemaze/engine"
	"github.com/nathoo/runemaze/engine/state"
	"github.com/nathoo/runemaze/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	Defs      *state.Defs
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine, defs *state.Defs) *CLI {
	return &CLI{
		Engine: eng,
		Defs:   defs,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run starts the game loop. It shows the intro, describes the player's
// surroundings, then loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	if c.Defs.Game.Intro != "" {
		c.printLine(c.Defs.Game.Intro)
		c.printLine("")
	}

	result := c.Engine.Step("look")
	c.printResult(result)

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/reset":
		c.Engine.Reset()
		c.lastCmd = ""
		c.printSystem("Maze reset.")
		c.printResult(c.Engine.Step("look"))

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /quit         — Exit game",
		"  /help         — Show this help",
		"  /reset        — Restart the maze",
		"  /state        — Debug: dump current state",
		"  /trace        — Toggle debug trace output",
		"",
		"Game commands:",
		"  forward/back/left/right [n] (w/s/a/d) — Walk n tiles",
		"  turn left/right [deg] (q/tr), turn around",
		"  look                  — Describe your surroundings",
		"  look up/down [deg]    — Tilt your view",
		"  interact (e)          — Take, open or activate what you aim at",
		"  use (r)               — Use the equipped rune",
		"  wait [s] (z)          — Let time pass",
		"  status (i)            — Treasures, rune, door and timer",
		"  map (m)               — Top-down map",
		"  again (g)             — Repeat your last command",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	e := c.Engine
	p := e.Progress()
	pl := e.Player()
	c.printSystem(fmt.Sprintf("Session: %s", e.ID))
	c.printSystem(fmt.Sprintf("Maze: %s", e.Maze.ID))
	c.printSystem(fmt.Sprintf("Seed: %d (rng position %d)", e.RNG.Seed(), e.RNG.Position()))
	c.printSystem(fmt.Sprintf("Position: (%.2f, %.2f, %.2f) facing %s", pl.Pos.X, pl.Pos.Y, pl.Pos.Z, engine.Heading(pl.Yaw)))
	c.printSystem(fmt.Sprintf("Elapsed: %s", e.Elapsed()))
	c.printSystem(fmt.Sprintf("Progress: %+v", p))
	c.printSystem(fmt.Sprintf("Equipped: %s", e.Equipped()))
	for _, a := range e.ActiveEffects() {
		c.printSystem(fmt.Sprintf("Effect: %s (%s left)", a.Kind, a.Remaining))
	}
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Events) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			c.printSystem(fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
		}
	}
	res := c.Engine.LastInteraction()
	if res.Target != nil {
		c.printSystem(fmt.Sprintf("[trace] Last interaction: %s %s at %.2f", res.Outcome, res.Target.Name, res.Dist))
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
