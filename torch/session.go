package torch

import "sync"

// Session collects teardown steps acquired during startup and runs them
// exactly once, in reverse acquisition order. Dependent resources are
// registered after the resources they depend on, so they are released
// first.
type Session struct {
	mu      sync.Mutex
	closers []func()
	closed  bool
}

// Defer registers a teardown step.
func (s *Session) Defer(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closers = append(s.closers, fn)
}

// Close runs the registered teardown steps, most recently acquired
// first. Further calls are no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	closers := s.closers
	s.closers = nil
	s.mu.Unlock()

	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
}
