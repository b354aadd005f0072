package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nathoo/runemaze/engine/events"
	"github.com/nathoo/runemaze/types"
)

// hud is the front end's view of the sink updates.
type hud struct {
	visible   bool
	rune      string
	seconds   int
	active    bool
	countdown int // seconds at the start of the current countdown
	ended     bool
	won       bool
	endText   string
	released  bool
}

// message is a sink message with its display duration.
type message struct {
	text string
	d    time.Duration
}

// apply folds sink events into the HUD and returns the newest message.
func (h *hud) apply(evts []types.Event) (message, bool) {
	var last message
	var ok bool
	for _, ev := range evts {
		switch ev.Type {
		case events.TypeMessage:
			if s, _ := ev.Data["text"].(string); s != "" {
				d, _ := ev.Data["duration"].(time.Duration)
				last, ok = message{text: s, d: d}, true
			}
		case events.TypeRune:
			h.rune, _ = ev.Data["label"].(string)
		case events.TypeTimer:
			secs, _ := ev.Data["seconds"].(int)
			active, _ := ev.Data["active"].(bool)
			if active && !h.active {
				h.countdown = secs
			}
			h.seconds, h.active = secs, active
		case events.TypeEndScreen:
			h.ended = true
			h.won, _ = ev.Data["won"].(bool)
			h.endText, _ = ev.Data["text"].(string)
		case events.TypeRelease:
			h.released = true
		case events.TypeHUD:
			h.visible, _ = ev.Data["visible"].(bool)
		}
	}
	return last, ok
}

// reset returns the HUD to its pre-game state.
func (h *hud) reset() {
	*h = hud{}
}

// fraction is the share of the countdown still left.
func (h *hud) fraction() float64 {
	if h.countdown <= 0 {
		return 0
	}
	return float64(h.seconds) / float64(h.countdown)
}

var titleCase = cases.Title(language.English)

// mazeDisplayName derives a human-readable name from a maze ID.
// "dark_halls" -> "Dark Halls".
func mazeDisplayName(id string) string {
	return titleCase.String(strings.ReplaceAll(id, "_", " "))
}

// formatClock renders seconds as m:ss.
func formatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// renderStatusBar produces a full-width inverted status line showing
// the maze, treasure count, equipped rune and the countdown.
func (m Model) renderStatusBar() string {
	p := m.engine.Progress()

	left := fmt.Sprintf(" %s | Treasures: %d/%d", mazeDisplayName(m.engine.Maze.ID), p.TreasuresCollected, p.TotalTreasures)

	label := "No Rune"
	if m.hud.rune != "" {
		label = "Rune: " + m.hud.rune
	}
	right := label + " "
	if m.hud.active {
		right = fmt.Sprintf("%s | Time: %s ", label, formatClock(m.hud.seconds))
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
