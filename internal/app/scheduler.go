package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-gallery/internal/gallery"
)

// timerFiredMsg is delivered by tea.Tick when a scheduled timer elapses.
type timerFiredMsg struct {
	id gallery.TimerID
}

// teaScheduler implements gallery.Scheduler on the Bubble Tea event loop.
// Each ScheduleOnce queues a tea.Tick command; Update drains the queue after
// every message. Cancel only forgets the callback, so a cancelled timer's
// tick still arrives and is dropped as stale, the same way superseded render
// requests are dropped by sequence number. Callbacks therefore always run
// inside Update, on the single UI goroutine.
type teaScheduler struct {
	next    gallery.TimerID
	pending map[gallery.TimerID]func()
	queued  []tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{pending: map[gallery.TimerID]func(){}}
}

func (s *teaScheduler) ScheduleOnce(delay time.Duration, fn func()) gallery.TimerID {
	s.next++
	id := s.next
	s.pending[id] = fn
	s.queued = append(s.queued, tea.Tick(delay, func(time.Time) tea.Msg {
		return timerFiredMsg{id: id}
	}))
	return id
}

func (s *teaScheduler) Cancel(id gallery.TimerID) {
	delete(s.pending, id)
}

// fire runs the callback for id if it is still pending and reports whether
// it ran.
func (s *teaScheduler) fire(id gallery.TimerID) bool {
	fn, ok := s.pending[id]
	if !ok {
		return false
	}
	delete(s.pending, id)
	fn()
	return true
}

// drain returns the ticks queued since the last call.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}
