package effects

import (
	"sort"
	"time"

	"github.com/nathoo/runemaze/engine/clock"
)

// TimerID identifies a scheduled callback. The zero value is never issued.
type TimerID uint64

type timer struct {
	id       TimerID
	due      time.Time
	interval time.Duration // zero for one-shot timers
	fn       func()
	stopped  bool
}

// Scheduler runs deferred callbacks on the caller's goroutine. Nothing
// fires until Update is called, so callbacks are serialized with the rest
// of the frame. Every timer is tracked by handle; Stop and StopAll remove
// them before they can fire.
type Scheduler struct {
	clock  clock.Clock
	timers map[TimerID]*timer
	next   TimerID
}

// NewScheduler creates a scheduler reading time from c.
func NewScheduler(c clock.Clock) *Scheduler {
	return &Scheduler{
		clock:  c,
		timers: map[TimerID]*timer{},
	}
}

// Now returns the scheduler clock's current time.
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// After runs fn once, d from now.
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	return s.add(d, 0, fn)
}

// Every runs fn every interval, starting one interval from now.
func (s *Scheduler) Every(interval time.Duration, fn func()) TimerID {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return s.add(interval, interval, fn)
}

func (s *Scheduler) add(d, interval time.Duration, fn func()) TimerID {
	s.next++
	t := &timer{
		id:       s.next,
		due:      s.clock.Now().Add(d),
		interval: interval,
		fn:       fn,
	}
	s.timers[t.id] = t
	return t.id
}

// Stop cancels a timer. It reports whether the timer was still pending.
func (s *Scheduler) Stop(id TimerID) bool {
	t, ok := s.timers[id]
	if !ok {
		return false
	}
	t.stopped = true
	delete(s.timers, id)
	return true
}

// StopAll cancels every pending timer without running it.
func (s *Scheduler) StopAll() {
	for id, t := range s.timers {
		t.stopped = true
		delete(s.timers, id)
	}
}

// Pending reports whether id is still scheduled.
func (s *Scheduler) Pending(id TimerID) bool {
	_, ok := s.timers[id]
	return ok
}

// Len returns the number of pending timers.
func (s *Scheduler) Len() int {
	return len(s.timers)
}

// Update fires every timer that is due, in due-time order. A repeating
// timer that fell several intervals behind fires once per missed
// interval. Callbacks may add or stop timers; timers added during Update
// wait for the next call.
func (s *Scheduler) Update() {
	now := s.clock.Now()
	horizon := s.next

	for {
		due := s.dueTimers(now, horizon)
		if len(due) == 0 {
			return
		}
		t := due[0]
		if t.interval > 0 {
			t.due = t.due.Add(t.interval)
		} else {
			delete(s.timers, t.id)
		}
		t.fn()
		if t.interval > 0 && t.stopped {
			delete(s.timers, t.id)
		}
	}
}

// dueTimers returns pending timers due at now, earliest first. Ties break
// on creation order. Only timers issued at or before horizon are returned.
func (s *Scheduler) dueTimers(now time.Time, horizon TimerID) []*timer {
	var due []*timer
	for _, t := range s.timers {
		if t.id <= horizon && !t.due.After(now) {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].id < due[j].id
		}
		return due[i].due.Before(due[j].due)
	})
	return due
}
