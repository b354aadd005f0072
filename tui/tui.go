package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/nathoo/runemaze/engine"
	"github.com/nathoo/runemaze/engine/state"
	"github.com/nathoo/runemaze/types"
)

const (
	// holdWindow keeps a movement key pressed between terminal key repeats.
	holdWindow = 150 * time.Millisecond
	// maxFrame caps a frame's dt after a stall.
	maxFrame = 250 * time.Millisecond
	turnStep = 15 * math.Pi / 180
	pitchStep = 10 * math.Pi / 180
	logLimit  = 200
)

// frameMsg drives one engine frame.
type frameMsg time.Time

// toast is the message currently shown above the status bar.
type toast struct {
	text  string
	until time.Duration // engine elapsed time it expires at
}

// Model is the Bubble Tea model for the RuneMaze TUI.
type Model struct {
	engine *engine.Engine
	defs   *state.Defs

	keys     keyMap
	help     help.Model
	timer    progress.Model
	viewport viewport.Model
	input    textinput.Model
	history  *History

	hud   hud
	toast toast
	log   []string // message log, unstyled

	width      int
	height     int
	ready      bool
	commanding bool
	trace      bool
	quitting   bool

	lastFrame    time.Time
	moveX, moveZ float64
	heldUntil    time.Duration
}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine, defs *state.Defs) Model {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	bar := progress.New(progress.WithGradient("#FF5F5F", "#FFD75F"), progress.WithoutPercentage())

	return Model{
		engine:  eng,
		defs:    defs,
		keys:    defaultKeyMap(),
		help:    help.New(),
		timer:   bar,
		input:   ti,
		history: NewHistory(100),
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, defs *state.Defs) error {
	m := New(eng, defs)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init absorbs the start-of-game events and starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.initialOutput(), m.nextFrame())
}

func (m Model) initialOutput() tea.Cmd {
	g := m.defs.Game
	lines := []string{fmt.Sprintf("[%s v%s]", g.Title, g.Version)}
	if g.Intro != "" {
		lines = append(lines, g.Intro)
	}
	return func() tea.Msg { return logMsg(lines) }
}

// logMsg appends lines to the message log.
type logMsg []string

func (m Model) nextFrame() tea.Cmd {
	fps := m.engine.Config.FrameRate
	if fps <= 0 {
		fps = 30
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update handles messages (key presses, window resize, frames).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.timer.Width = min(msg.Width-12, 40)
		m.resize()
		return m, nil

	case frameMsg:
		m = m.frame(time.Time(msg))
		return m, m.nextFrame()

	case logMsg:
		m = m.appendLog(msg...)
		return m, nil

	case tea.KeyMsg:
		if m.commanding {
			return m.updateCommand(msg)
		}
		return m.updatePlay(msg)
	}
	return m, nil
}

// frame runs one engine frame with the wall-clock time since the last.
func (m Model) frame(now time.Time) Model {
	var dt time.Duration
	if !m.lastFrame.IsZero() {
		dt = now.Sub(m.lastFrame)
	}
	if dt > maxFrame {
		dt = maxFrame
	}
	m.lastFrame = now

	if m.engine.Elapsed() >= m.heldUntil {
		m.moveX, m.moveZ = 0, 0
	}
	m.engine.MoveAxis(m.moveX, m.moveZ)
	m.engine.Advance(dt)
	return m.absorb(m.engine.Drain())
}

// absorb applies drained engine events to the HUD, toast and log.
func (m Model) absorb(evts []types.Event) Model {
	if msg, ok := m.hud.apply(evts); ok {
		d := msg.d
		if d <= 0 {
			d = m.engine.Config.MessageDuration
		}
		m.toast = toast{text: msg.text, until: m.engine.Elapsed() + d}
	}
	m = m.appendLog(engine.EventLines(evts)...)
	if m.trace {
		for _, ev := range evts {
			m = m.appendLog(fmt.Sprintf("[trace] %s %v", ev.Type, ev.Data))
		}
	}
	return m
}

// updatePlay handles keys while the map has focus.
func (m Model) updatePlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	case key.Matches(msg, k.Command):
		m.commanding = true
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, k.Reset):
		return m.reset(), nil
	}

	if m.hud.ended {
		if msg.String() == "enter" {
			return m.reset(), nil
		}
		return m, nil
	}
	if m.hud.released {
		return m, nil
	}

	switch {
	case key.Matches(msg, k.Forward):
		m.hold(0, 1)
	case key.Matches(msg, k.Back):
		m.hold(0, -1)
	case key.Matches(msg, k.StrafeLeft):
		m.hold(-1, 0)
	case key.Matches(msg, k.StrafeRight):
		m.hold(1, 0)
	case key.Matches(msg, k.TurnLeft):
		m.engine.Turn(turnStep, 0)
	case key.Matches(msg, k.TurnRight):
		m.engine.Turn(-turnStep, 0)
	case key.Matches(msg, k.LookUp):
		m.engine.Turn(0, pitchStep)
	case key.Matches(msg, k.LookDown):
		m.engine.Turn(0, -pitchStep)
	case key.Matches(msg, k.Interact):
		m.engine.Interact()
	case key.Matches(msg, k.Use):
		m.engine.UseRune()
	}
	return m, nil
}

// hold presses a movement axis until the hold window runs out.
func (m *Model) hold(x, z float64) {
	m.moveX, m.moveZ = x, z
	m.heldUntil = m.engine.Elapsed() + holdWindow
}

func (m Model) reset() Model {
	m.engine.Reset()
	m.hud.reset()
	m.toast = toast{}
	m.moveX, m.moveZ = 0, 0
	m.heldUntil = 0
	m = m.appendLog("[Maze reset.]")
	return m.absorb(m.engine.Drain())
}

// updateCommand handles keys while the command line has focus.
func (m Model) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.commanding = false
		m.input.Blur()
		m.history.ResetCursor()
		return m, nil

	case "enter":
		return m.handleEnter()

	case "up":
		if prev, ok := m.history.Prev(); ok {
			m.input.SetValue(prev)
			m.input.CursorEnd()
		}
		return m, nil

	case "down":
		if next, ok := m.history.Next(); ok {
			m.input.SetValue(next)
			m.input.CursorEnd()
		} else {
			m.input.SetValue("")
			m.history.ResetCursor()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleEnter processes the submitted command line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	m.commanding = false
	m.input.Blur()

	if input == "" {
		return m, nil
	}

	cmd, ok := m.history.Resolve(input)
	if !ok {
		return m.appendLog("> "+input, "[Nothing to repeat.]"), nil
	}
	input = cmd

	m = m.appendLog("> " + input)

	if strings.HasPrefix(input, "/") {
		if input == "/reset" {
			return m.reset(), nil
		}
		output, quit := m.handleMeta(input)
		m = m.appendLog(output...)
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	result := m.engine.Step(input)
	m = m.absorb(result.Events)
	m = m.appendLog(stepLines(result)...)
	return m, nil
}

// stepLines drops the event lines Step put ahead of its own output;
// absorb logs those.
func stepLines(r types.Result) []string {
	n := len(engine.EventLines(r.Events))
	if n > len(r.Output) {
		n = len(r.Output)
	}
	return r.Output[n:]
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		return []string{"[Goodbye.]"}, true

	case "/help":
		return cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"[Trace output enabled.]"}, false
		}
		return []string{"[Trace output disabled.]"}, false

	default:
		return []string{fmt.Sprintf("[Unknown command: %s. Type /help for available commands.]", cmd)}, false
	}
}

func cmdHelp() []string {
	return []string{
		"[System: /reset /state /trace /help /quit]",
		"[Commands: look, move forward 2, turn left, look up, interact, use, wait 5, status, map]",
		"[Keys: w/a/s/d move, q/x turn, e interact, r use rune, ? help]",
	}
}

func (m *Model) cmdState() []string {
	p := m.engine.Player().Pos
	out := []string{
		fmt.Sprintf("[Session: %s  Seed: %d]", m.engine.ID, m.engine.RNG.Seed()),
		fmt.Sprintf("[Position: %.1f, %.1f, %.1f  Facing: %s]", p.X, p.Y, p.Z, engine.Heading(m.engine.Player().Yaw)),
	}
	for _, l := range m.engine.StatusLines() {
		out = append(out, "["+l+"]")
	}
	return out
}

// appendLog adds lines to the message log and refreshes the viewport.
func (m Model) appendLog(lines ...string) Model {
	m.log = append(m.log, lines...)
	if len(m.log) > logLimit {
		m.log = m.log[len(m.log)-logLimit:]
	}
	m.refreshViewport()
	return m
}

// mapHeight is the rendered height of the framed map.
func (m Model) mapHeight() int {
	return m.engine.Registry().Grid().Height() + 2
}

// resize lays out the log viewport in the space the map leaves.
func (m *Model) resize() {
	if m.width == 0 {
		return
	}
	// title + map + toast + timer + status + footer
	vpHeight := m.height - m.mapHeight() - 4 - lipgloss.Height(m.help.View(m.keys))
	if vpHeight < 1 {
		vpHeight = 1
	}
	if !m.ready {
		m.viewport = viewport.New(m.width, vpHeight)
		m.viewport.KeyMap = viewportKeyMap()
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}
	m.refreshViewport()
}

// refreshViewport re-wraps and re-styles the log at the current width.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	width := m.width
	if width < 10 {
		width = 10
	}
	styled := make([]string, 0, len(m.log))
	for _, line := range m.log {
		styled = append(styled, renderLineKind(wordWrap(line, width)))
	}
	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries and preserving ANSI escape sequences.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// View renders the map, toast, countdown, log, status bar and footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	if m.hud.ended {
		return m.endScreen()
	}

	title := styleGood.Render(fmt.Sprintf("%s  %s", m.defs.Game.Title, mazeDisplayName(m.engine.Maze.ID)))

	var board string
	if rows := m.engine.Render(); rows != nil {
		board = colorMap(rows, m.engine.RuneTints())
	} else {
		g := m.engine.Registry().Grid()
		board = darkMap(g.Width(), g.Height())
	}

	toastLine := ""
	if m.toast.text != "" && m.engine.Elapsed() < m.toast.until {
		toastLine = renderLineKind(m.toast.text)
	}

	timerLine := ""
	if m.hud.active {
		timerLine = m.timer.ViewAs(m.hud.fraction()) + " " + formatClock(m.hud.seconds)
	}

	status := ""
	if m.hud.visible {
		status = m.renderStatusBar()
	}

	footer := m.help.View(m.keys)
	if m.commanding {
		footer = m.input.View()
	}

	return strings.Join([]string{
		title,
		styleMapFrame.Render(board),
		toastLine,
		timerLine,
		m.viewport.View(),
		status,
		footer,
	}, "\n")
}

// endScreen is the full-screen win or loss panel.
func (m Model) endScreen() string {
	style := styleEndLost
	if m.hud.won {
		style = styleEndWon
	}
	p := m.engine.Progress()
	body := strings.Join([]string{
		m.hud.endText,
		"",
		fmt.Sprintf("Treasures: %d/%d", p.TreasuresCollected, p.TotalTreasures),
		fmt.Sprintf("Time: %s", formatClock(int(m.engine.Elapsed().Seconds()))),
		"",
		"enter: play again   esc: quit",
	}, "\n")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, style.Render(body))
}

// viewportKeyMap returns a viewport keymap bound to scroll keys only;
// the letter and arrow keys drive the player.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("ctrl+f")),
		PageUp:       key.NewBinding(key.WithKeys("ctrl+b")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
