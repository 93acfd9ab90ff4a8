package scheduler

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Token identifies one scheduled task.
type Token string

// Scheduler runs fire-once tasks after a delay. Every task can be
// cancelled by its token until it starts running.
type Scheduler struct {
	clock Clock

	mu    sync.Mutex
	tasks map[Token]*task
}

type task struct {
	timer   Timer
	running bool
}

// New returns a Scheduler on clock. A nil clock means SystemClock.
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{
		clock: clock,
		tasks: make(map[Token]*task),
	}
}

// Schedule runs fn once after delay and returns its token.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) Token {
	tok := Token(uuid.NewString())

	s.mu.Lock()
	defer s.mu.Unlock()

	t := &task{}
	s.tasks[tok] = t
	t.timer = s.clock.AfterFunc(delay, func() {
		if !s.start(tok) {
			return
		}
		defer s.finish(tok)
		fn()
	})
	return tok
}

// Cancel stops a task that has not started. It reports false when the
// task is running, already ran, or was never scheduled.
func (s *Scheduler) Cancel(tok Token) bool {
	s.mu.Lock()
	t, ok := s.tasks[tok]
	if !ok || t.running {
		s.mu.Unlock()
		return false
	}
	delete(s.tasks, tok)
	s.mu.Unlock()

	t.timer.Stop()
	return true
}

// CancelAll stops every task that has not started and returns how many
// were dropped. Running tasks are left to finish.
func (s *Scheduler) CancelAll() int {
	s.mu.Lock()
	var stopped []Timer
	for tok, t := range s.tasks {
		if t.running {
			continue
		}
		delete(s.tasks, tok)
		stopped = append(stopped, t.timer)
	}
	s.mu.Unlock()

	for _, timer := range stopped {
		timer.Stop()
	}
	return len(stopped)
}

// Pending returns the number of tasks that are scheduled or running.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// start marks tok as running; only the caller that flips it may run the task.
func (s *Scheduler) start(tok Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[tok]
	if !ok || t.running {
		return false
	}
	t.running = true
	return true
}

func (s *Scheduler) finish(tok Token) {
	s.mu.Lock()
	delete(s.tasks, tok)
	s.mu.Unlock()
}
