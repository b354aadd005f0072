package tui

import "testing"

func TestHistory_PushAndPrev(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("turn left")
	h.Push("interact")

	prev, ok := h.Prev()
	if !ok || prev != "interact" {
		t.Errorf("expected 'interact', got %q (ok=%v)", prev, ok)
	}

	prev, ok = h.Prev()
	if !ok || prev != "turn left" {
		t.Errorf("expected 'turn left', got %q (ok=%v)", prev, ok)
	}

	prev, ok = h.Prev()
	if !ok || prev != "look" {
		t.Errorf("expected 'look', got %q (ok=%v)", prev, ok)
	}

	// At oldest, stays there.
	prev, ok = h.Prev()
	if !ok || prev != "look" {
		t.Errorf("expected 'look' at boundary, got %q (ok=%v)", prev, ok)
	}
}

func TestHistory_Next(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("turn left")

	h.Prev() // "turn left"
	h.Prev() // "look"

	next, ok := h.Next()
	if !ok || next != "turn left" {
		t.Errorf("expected 'turn left', got %q (ok=%v)", next, ok)
	}

	_, ok = h.Next()
	if ok {
		t.Error("expected false when past newest entry")
	}
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(5)
	_, ok := h.Prev()
	if ok {
		t.Error("expected false on empty history")
	}
	_, ok = h.Next()
	if ok {
		t.Error("expected false on empty history")
	}
}

func TestHistory_MaxSize(t *testing.T) {
	h := NewHistory(2)
	h.Push("a")
	h.Push("b")
	h.Push("c") // "a" evicted

	prev, _ := h.Prev()
	if prev != "c" {
		t.Errorf("expected 'c', got %q", prev)
	}
	prev, _ = h.Prev()
	if prev != "b" {
		t.Errorf("expected 'b', got %q", prev)
	}
	// "a" is gone.
	prev, _ = h.Prev()
	if prev != "b" {
		t.Errorf("expected 'b' at boundary, got %q", prev)
	}
}

func TestHistory_NoDuplicates(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("look") // skipped
	h.Push("look") // skipped

	if len(h.entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(h.entries))
	}
}

func TestHistory_ResetCursor(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("turn left")

	h.Prev() // "turn left"
	h.ResetCursor()

	// After reset, Prev starts from the end again.
	prev, ok := h.Prev()
	if !ok || prev != "turn left" {
		t.Errorf("expected 'turn left' after reset, got %q", prev)
	}
}

func TestHistory_RepeatIsNotStored(t *testing.T) {
	h := NewHistory(5)
	h.Push("turn left")
	h.Push("again")
	h.Push("G")

	if len(h.entries) != 1 {
		t.Fatalf("expected only 'turn left', got %v", h.entries)
	}
	last, ok := h.Last()
	if !ok || last != "turn left" {
		t.Errorf("expected last 'turn left', got %q (ok=%v)", last, ok)
	}
}

func TestHistory_Resolve(t *testing.T) {
	h := NewHistory(5)
	if _, ok := h.Resolve("g"); ok {
		t.Error("expected nothing to repeat on empty history")
	}

	cmd, ok := h.Resolve("w 2")
	if !ok || cmd != "w 2" {
		t.Errorf("expected 'w 2' to pass through, got %q (ok=%v)", cmd, ok)
	}

	h.Prev()
	cmd, ok = h.Resolve("again")
	if !ok || cmd != "w 2" {
		t.Errorf("expected again to resolve to 'w 2', got %q (ok=%v)", cmd, ok)
	}
	if h.cursor != -1 {
		t.Error("expected resolve to leave recall")
	}

	prev, _ := h.Prev()
	if prev != "w 2" {
		t.Errorf("expected recall to skip the repeat, got %q", prev)
	}
}
