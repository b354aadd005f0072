package tui

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/runemaze/config"
	"github.com/nathoo/runemaze/engine"
	"github.com/nathoo/runemaze/engine/clock"
	"github.com/nathoo/runemaze/engine/events"
	"github.com/nathoo/runemaze/engine/progress"
	"github.com/nathoo/runemaze/engine/state"
	"github.com/nathoo/runemaze/types"
)

func TestMazeDisplayName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"hall", "Hall"},
		{"dark_halls", "Dark Halls"},
		{"maze1", "Maze1"},
		{"the_long_way", "The Long Way"},
	}
	for _, tt := range tests {
		got := mazeDisplayName(tt.id)
		if got != tt.want {
			t.Errorf("mazeDisplayName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{60, "1:00"},
		{119, "1:59"},
		{-3, "0:00"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.secs); got != tt.want {
			t.Errorf("formatClock(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"> move forward", kindInput},
		{"[Maze reset.]", kindSystem},
		{"[trace] message map[text:hi]", kindTrace},
		{"Treasure found! (1/3)", kindGood},
		{"Picked up Speed Rune.", kindGood},
		{"*** You escaped the maze! ***", kindGood},
		{"You still need 2 more treasure(s).", kindError},
		{"The door is locked! Activate the exit mechanism first.", kindError},
		{"That's too far away.", kindError},
		{"No rune equipped!", kindError},
		{"A void swallows your vision!", kindWarning},
		{"Your vision returns.", kindNarration},
		{"", kindNarration},
	}
	for _, tt := range tests {
		got := classifyLine(tt.line)
		if got != tt.want {
			t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"short", 80, "short"},
		{"hello world", 5, "hello\nworld"},
		{"Exit activated! Reach the door before time runs out!", 30,
			"Exit activated! Reach the door\nbefore time runs out!"},
		{"", 80, ""},
		{"a b c d e", 3, "a b\nc d\ne"},
	}
	for _, tt := range tests {
		got := wordWrap(tt.text, tt.width)
		if got != tt.want {
			t.Errorf("wordWrap(%q, %d) =\n  %q\nwant:\n  %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestHUD_Apply(t *testing.T) {
	rec := events.NewRecorder()
	rec.SetHUDVisible(true)
	rec.UpdateEquippedRune("Speed Rune")
	rec.UpdateTimer(30, true)
	rec.UpdateTimer(29, true)
	rec.ShowMessage("first", 0)
	rec.ShowMessage("second", time.Second)

	var h hud
	msg, ok := h.apply(rec.Drain())
	if !ok || msg.text != "second" || msg.d != time.Second {
		t.Errorf("expected newest message 'second' for 1s, got %+v (ok=%v)", msg, ok)
	}
	if !h.visible || h.rune != "Speed Rune" {
		t.Errorf("unexpected hud: %+v", h)
	}
	if h.countdown != 30 || h.seconds != 29 {
		t.Errorf("expected countdown 30 with 29 left, got %d/%d", h.seconds, h.countdown)
	}
	if math.Abs(h.fraction()-29.0/30.0) > 1e-9 {
		t.Errorf("fraction = %v", h.fraction())
	}

	rec.UpdateEquippedRune("")
	rec.UpdateTimer(0, false)
	rec.ShowEndScreen(false, "lost")
	rec.ReleaseInput()
	if _, ok := h.apply(rec.Drain()); ok {
		t.Error("expected no message")
	}
	if h.rune != "" || h.active || !h.ended || h.won || h.endText != "lost" || !h.released {
		t.Errorf("unexpected hud after end: %+v", h)
	}

	h.reset()
	if h.ended || h.visible || h.countdown != 0 {
		t.Errorf("reset left state behind: %+v", h)
	}
}

// testDefs returns a single straight corridor: start, treasure,
// mechanism, door.
func testDefs() *state.Defs {
	return &state.Defs{
		Game: types.GameDef{Title: "Test Maze", Version: "1.0", Start: "hall", Intro: "Welcome."},
		Mazes: map[string]types.MazeDef{
			"hall": {
				ID:       "hall",
				TileSize: 3,
				Layout: []string{
					"#########",
					"#S T M E#",
					"#########",
				},
				PlayerStart:   types.Tile{X: 1, Z: 1},
				Treasures:     []types.Tile{{X: 3, Z: 1}},
				ExitMechanism: types.Tile{X: 5, Z: 1},
				Exit:          types.Tile{X: 7, Z: 1},
				Countdown:     5,
			},
		},
	}
}

var t0 = time.Unix(100, 0)

func testModel(t *testing.T) Model {
	t.Helper()
	defs := testDefs()
	cfg := config.Default()
	cfg.Runes.FakeChanceMin, cfg.Runes.FakeChanceMax = 0, 0
	eng, err := engine.New(defs, "hall", cfg,
		engine.WithClock(clock.NewManual(time.Unix(0, 0))),
		engine.WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	m := update(New(eng, defs), tea.WindowSizeMsg{Width: 80, Height: 30})
	return update(m, frameMsg(t0))
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func command(m Model, input string) Model {
	m = update(m, keyRune(':'))
	m.input.SetValue(input)
	return update(m, tea.KeyMsg{Type: tea.KeyEnter})
}

func logContains(m Model, substr string) bool {
	for _, line := range m.log {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func TestModel_FirstFrame(t *testing.T) {
	m := testModel(t)
	if !m.hud.visible {
		t.Error("expected HUD visible after the first frame")
	}
	if m.toast.text != engine.StartMessage {
		t.Errorf("expected start toast, got %q", m.toast.text)
	}
	bar := m.renderStatusBar()
	for _, want := range []string{"Hall | Treasures: 0/1", "No Rune"} {
		if !strings.Contains(bar, want) {
			t.Errorf("status bar %q missing %q", bar, want)
		}
	}
	if !strings.Contains(m.View(), "Test Maze") {
		t.Error("expected title in view")
	}
}

func TestModel_HeldKeyMovesUntilReleased(t *testing.T) {
	m := testModel(t)
	pl := m.engine.Player()
	startX := pl.Pos.X

	m = update(m, keyRune('w'))
	m = update(m, frameMsg(t0.Add(100*time.Millisecond)))
	m = update(m, frameMsg(t0.Add(200*time.Millisecond)))
	moved := pl.Pos.X
	if math.Abs(moved-(startX+1)) > 1e-6 {
		t.Fatalf("expected two 0.5m steps east, got x=%v from %v", moved, startX)
	}

	m = update(m, frameMsg(t0.Add(300*time.Millisecond)))
	update(m, frameMsg(t0.Add(400*time.Millisecond)))
	if pl.Pos.X != moved {
		t.Errorf("expected the player to stop after the hold window, x=%v", pl.Pos.X)
	}
}

func TestModel_TurnKeys(t *testing.T) {
	m := testModel(t)
	yaw := m.engine.Player().Yaw
	m = update(m, keyRune('q'))
	if got := m.engine.Player().Yaw - yaw; math.Abs(got-turnStep) > 1e-9 {
		t.Errorf("expected a %v turn, got %v", turnStep, got)
	}
	update(m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.engine.Player().Yaw; math.Abs(got-yaw) > 1e-9 {
		t.Errorf("expected to face the start heading again, got %v", got)
	}
}

func TestModel_CommandLine(t *testing.T) {
	m := testModel(t)
	m = update(m, keyRune(':'))
	if !m.commanding {
		t.Fatal("expected command mode")
	}
	m.input.SetValue("status")
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.commanding {
		t.Error("expected command mode to close after enter")
	}
	if !logContains(m, "> status") || !logContains(m, "Treasures: 0/1") {
		t.Errorf("unexpected log: %v", m.log)
	}
}

func TestModel_CommandEscape(t *testing.T) {
	m := testModel(t)
	m = update(m, keyRune(':'))
	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.commanding {
		t.Error("esc should leave command mode")
	}
	if m.quitting {
		t.Error("esc in command mode should not quit")
	}
}

func TestModel_NothingToRepeat(t *testing.T) {
	m := command(testModel(t), "g")
	if !logContains(m, "[Nothing to repeat.]") {
		t.Errorf("unexpected log: %v", m.log)
	}
}

func TestModel_Again(t *testing.T) {
	m := command(testModel(t), "turn left")
	m = command(m, "again")
	n := 0
	for _, line := range m.log {
		if line == "> turn left" {
			n++
		}
	}
	if n != 2 {
		t.Errorf("expected turn left twice, got %d in %v", n, m.log)
	}
}

func TestModel_RecallSkipsRepeat(t *testing.T) {
	m := command(testModel(t), "status")
	m = command(m, "g")
	if !logContains(m, "Treasures: 0/1") {
		t.Errorf("unexpected log: %v", m.log)
	}

	m = update(m, keyRune(':'))
	m = update(m, tea.KeyMsg{Type: tea.KeyUp})
	if got := m.input.Value(); got != "status" {
		t.Errorf("expected up to recall 'status', got %q", got)
	}
}

func TestModel_MetaCommands(t *testing.T) {
	m := command(testModel(t), "/trace")
	if !m.trace || !logContains(m, "[Trace output enabled.]") {
		t.Error("expected trace enabled")
	}
	m = command(m, "/state")
	if !logContains(m, "[Session: "+m.engine.ID) {
		t.Errorf("expected session line, got %v", m.log)
	}
	m = command(m, "/bogus")
	if !logContains(m, "Unknown command: /bogus") {
		t.Error("expected unknown command message")
	}
	m = command(m, "/quit")
	if !m.quitting {
		t.Error("expected quitting after /quit")
	}
	if m.View() != "" {
		t.Error("expected empty view while quitting")
	}
}

func TestModel_CountdownAndLoss(t *testing.T) {
	m := testModel(t)
	for _, cmd := range []string{"w", "e", "w 2", "e"} {
		m = command(m, cmd)
	}
	if !m.hud.active {
		t.Fatal("expected the countdown to be running")
	}
	if bar := m.renderStatusBar(); !strings.Contains(bar, "Time: 0:05") {
		t.Errorf("status bar %q missing countdown", bar)
	}
	if !logContains(m, "Treasure found! (1/1)") {
		t.Errorf("expected treasure message, got %v", m.log)
	}

	m = command(m, "wait 10")
	if !m.hud.ended || m.hud.won {
		t.Fatalf("expected a loss, hud=%+v", m.hud)
	}
	if !strings.Contains(m.View(), progress.LoseText) {
		t.Error("expected the end screen")
	}

	m = update(m, keyRune('w'))
	if m.moveZ != 0 {
		t.Error("movement keys should be ignored after the game ends")
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.hud.ended {
		t.Error("enter should restart")
	}
	if !logContains(m, "[Maze reset.]") || m.engine.Progress().GameOver {
		t.Error("expected a fresh play-through")
	}
	if !m.hud.visible {
		t.Error("expected HUD visible after restart")
	}
}
