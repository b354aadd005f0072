// Package events is the engine's outbound presentation channel. Managers
// report through a Sink; front ends implement it or read the events a
// Recorder collected.
package events

import (
	"time"

	"github.com/nathoo/runemaze/types"
)

// Event types emitted by a Recorder.
const (
	TypeMessage   = "message"
	TypeRune      = "equipped_rune"
	TypeTimer     = "timer"
	TypeEndScreen = "end_screen"
	TypeRelease   = "release_input"
	TypeHUD       = "hud_visible"
)

// Sink receives presentation updates. Implementations must not call back
// into the engine.
type Sink interface {
	ShowMessage(text string, d time.Duration) // zero d means the front end's default
	UpdateEquippedRune(label string) // empty means no rune
	UpdateTimer(seconds int, active bool)
	ShowEndScreen(won bool, text string)
	ReleaseInput()
	SetHUDVisible(visible bool)
}

// Recorder is a Sink that stores everything it receives as events.
type Recorder struct {
	events []types.Event
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// ShowMessage records a message event.
func (r *Recorder) ShowMessage(text string, d time.Duration) {
	r.add(TypeMessage, map[string]any{"text": text, "duration": d})
}

// UpdateEquippedRune records the slot's new label.
func (r *Recorder) UpdateEquippedRune(label string) {
	r.add(TypeRune, map[string]any{"label": label})
}

// UpdateTimer records a countdown tick.
func (r *Recorder) UpdateTimer(seconds int, active bool) {
	r.add(TypeTimer, map[string]any{"seconds": seconds, "active": active})
}

// ShowEndScreen records the end of the game.
func (r *Recorder) ShowEndScreen(won bool, text string) {
	r.add(TypeEndScreen, map[string]any{"won": won, "text": text})
}

// ReleaseInput records that input was handed back.
func (r *Recorder) ReleaseInput() {
	r.add(TypeRelease, map[string]any{})
}

// SetHUDVisible records a HUD visibility change.
func (r *Recorder) SetHUDVisible(visible bool) {
	r.add(TypeHUD, map[string]any{"visible": visible})
}

func (r *Recorder) add(typ string, data map[string]any) {
	r.events = append(r.events, types.Event{Type: typ, Data: data})
}

// Events returns everything recorded so far.
func (r *Recorder) Events() []types.Event {
	return r.events
}

// Drain returns and clears the recorded events.
func (r *Recorder) Drain() []types.Event {
	evts := r.events
	r.events = nil
	return evts
}

// Messages returns the text of every recorded message, oldest first.
func (r *Recorder) Messages() []string {
	return Messages(r.events)
}

// Messages extracts message text from a list of events.
func Messages(evts []types.Event) []string {
	var out []string
	for _, e := range evts {
		if e.Type == TypeMessage {
			if s, ok := e.Data["text"].(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

// Fanout forwards every call to each sink in order.
type Fanout []Sink

// ShowMessage forwards to every sink.
func (f Fanout) ShowMessage(text string, d time.Duration) {
	for _, s := range f {
		s.ShowMessage(text, d)
	}
}

// UpdateEquippedRune forwards to every sink.
func (f Fanout) UpdateEquippedRune(label string) {
	for _, s := range f {
		s.UpdateEquippedRune(label)
	}
}

// UpdateTimer forwards to every sink.
func (f Fanout) UpdateTimer(seconds int, active bool) {
	for _, s := range f {
		s.UpdateTimer(seconds, active)
	}
}

// ShowEndScreen forwards to every sink.
func (f Fanout) ShowEndScreen(won bool, text string) {
	for _, s := range f {
		s.ShowEndScreen(won, text)
	}
}

// ReleaseInput forwards to every sink.
func (f Fanout) ReleaseInput() {
	for _, s := range f {
		s.ReleaseInput()
	}
}

// SetHUDVisible forwards to every sink.
func (f Fanout) SetHUDVisible(visible bool) {
	for _, s := range f {
		s.SetHUDVisible(visible)
	}
}

// Nop discards everything.
type Nop struct{}

// ShowMessage does nothing.
func (Nop) ShowMessage(string, time.Duration) {}

// UpdateEquippedRune does nothing.
func (Nop) UpdateEquippedRune(string) {}

// UpdateTimer does nothing.
func (Nop) UpdateTimer(int, bool) {}

// ShowEndScreen does nothing.
func (Nop) ShowEndScreen(bool, string) {}

// ReleaseInput does nothing.
func (Nop) ReleaseInput() {}

// SetHUDVisible does nothing.
func (Nop) SetHUDVisible(bool) {}
