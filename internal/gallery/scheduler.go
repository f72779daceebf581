package gallery

import (
	"sort"
	"time"
)

// TimerID identifies a scheduled callback. The zero value never refers to a
// live timer.
type TimerID uint64

// Scheduler runs one-shot callbacks after a delay. Implementations must run
// callbacks on the host's event loop, never concurrently with other state
// changes, and Cancel must guarantee a cancelled callback never runs.
type Scheduler interface {
	ScheduleOnce(delay time.Duration, fn func()) TimerID
	Cancel(id TimerID)
}

// ManualScheduler is a Scheduler driven by a virtual clock. Callbacks only
// run inside Advance, in deadline order.
type ManualScheduler struct {
	now    time.Duration
	nextID TimerID
	timers map[TimerID]manualTimer
}

type manualTimer struct {
	id       TimerID
	deadline time.Duration
	fn       func()
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{timers: map[TimerID]manualTimer{}}
}

func (s *ManualScheduler) ScheduleOnce(delay time.Duration, fn func()) TimerID {
	s.nextID++
	id := s.nextID
	s.timers[id] = manualTimer{id: id, deadline: s.now + max(0, delay), fn: fn}
	return id
}

func (s *ManualScheduler) Cancel(id TimerID) {
	delete(s.timers, id)
}

// Now returns the virtual time elapsed since creation.
func (s *ManualScheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of timers that have neither fired nor been
// cancelled.
func (s *ManualScheduler) Pending() int {
	return len(s.timers)
}

// Advance moves the clock forward by d and fires every timer whose deadline
// falls inside the window. Timers scheduled by a callback are honoured if
// they also fall inside the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		due := s.dueBy(target)
		if len(due) == 0 {
			break
		}
		next := due[0]
		delete(s.timers, next.id)
		s.now = next.deadline
		next.fn()
	}
	s.now = target
}

func (s *ManualScheduler) dueBy(target time.Duration) []manualTimer {
	due := make([]manualTimer, 0, len(s.timers))
	for _, t := range s.timers {
		if t.deadline <= target {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline != due[j].deadline {
			return due[i].deadline < due[j].deadline
		}
		return due[i].id < due[j].id
	})
	return due
}
