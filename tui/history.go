package tui

import "strings"

// History keeps the commands typed at the ":" prompt, newest last. It
// backs up/down recall and the again/g repeat. Repeat commands are never
// stored themselves, so recall and repeat both land on a real command.
type History struct {
	entries []string
	max     int
	cursor  int // -1 while not recalling
}

// NewHistory creates a history that keeps at most max commands.
func NewHistory(max int) *History {
	return &History{
		entries: make([]string, 0, max),
		max:     max,
		cursor:  -1,
	}
}

// isRepeat reports whether cmd asks for the previous command again.
func isRepeat(cmd string) bool {
	switch strings.ToLower(strings.TrimSpace(cmd)) {
	case "again", "g":
		return true
	}
	return false
}

// Resolve turns a submitted line into the command to run. A repeat
// resolves to the last stored command and reports false when there is
// none; anything else is stored and returned as is. Recall starts over
// from the newest entry either way.
func (h *History) Resolve(input string) (string, bool) {
	h.cursor = -1
	if isRepeat(input) {
		return h.Last()
	}
	h.Push(input)
	return input, true
}

// Push stores cmd. Repeat commands and an immediate duplicate of the
// newest entry are dropped.
func (h *History) Push(cmd string) {
	if cmd == "" || isRepeat(cmd) {
		return
	}
	if last, ok := h.Last(); ok && last == cmd {
		return
	}
	h.entries = append(h.entries, cmd)
	if len(h.entries) > h.max {
		h.entries = h.entries[1:]
	}
}

// Last returns the newest command.
func (h *History) Last() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[len(h.entries)-1], true
}

// Prev steps back to an older command, stopping at the oldest.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.cursor == -1:
		h.cursor = len(h.entries) - 1
	case h.cursor > 0:
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next steps forward to a newer command. Stepping past the newest leaves
// recall and reports false so the prompt can clear.
func (h *History) Next() (string, bool) {
	if h.cursor == -1 {
		return "", false
	}
	if h.cursor++; h.cursor >= len(h.entries) {
		h.cursor = -1
		return "", false
	}
	return h.entries[h.cursor], true
}

// ResetCursor leaves recall.
func (h *History) ResetCursor() {
	h.cursor = -1
}
