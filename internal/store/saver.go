package store

import (
	"sync"
	"time"
)

const DefaultSaveDebounce = 2 * time.Second

// saver coalesces bursts of changes into one save after a quiet period.
// With a non-positive debounce it only records that a save is pending.
type saver struct {
	debounce time.Duration
	fire     func()

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
}

func newSaver(debounce time.Duration, fire func()) *saver {
	return &saver{debounce: debounce, fire: fire}
}

// Notify marks a save as pending and restarts the quiet period.
func (s *saver) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = true
	if s.debounce <= 0 || s.fire == nil {
		return
	}
	if s.timer == nil {
		s.timer = time.AfterFunc(s.debounce, s.onTimer)
		return
	}
	s.timer.Reset(s.debounce)
}

func (s *saver) onTimer() {
	s.mu.Lock()
	pending := s.pending
	s.mu.Unlock()
	if pending {
		s.fire()
	}
}

// Take clears the pending flag and cancels a scheduled run. It reports whether a
// save was pending.
func (s *saver) Take() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	was := s.pending
	s.pending = false
	return was
}

func (s *saver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *saver) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
}
