package animation

import "time"

// Session owns the timer handles of one activation. Every handle a
// component creates goes through its Session, so Close is enough to stop
// all of them.
//
// A Session holds at most one outstanding handle per timer name:
// scheduling a name again cancels the previous handle first. One-shot
// handles leave the session when they fire.
type Session struct {
	sched   Scheduler
	handles map[string]Handle
	closed  bool
}

// NewSession returns an open session scheduling on sched.
func NewSession(sched Scheduler) *Session {
	return &Session{
		sched:   sched,
		handles: make(map[string]Handle),
	}
}

// Every schedules fn every interval under name.
// Returns the zero Handle once the session is closed.
func (s *Session) Every(name string, interval time.Duration, fn func()) Handle {
	if s.closed {
		return 0
	}
	s.Cancel(name)
	h := s.sched.Every(interval, fn)
	if h != 0 {
		s.handles[name] = h
	}
	return h
}

// After schedules fn once under name, delay from now.
// Returns the zero Handle once the session is closed.
func (s *Session) After(name string, delay time.Duration, fn func()) Handle {
	if s.closed {
		return 0
	}
	s.Cancel(name)
	var h Handle
	h = s.sched.After(delay, func() {
		if cur, ok := s.handles[name]; ok && cur == h {
			delete(s.handles, name)
		}
		fn()
	})
	if h != 0 {
		s.handles[name] = h
	}
	return h
}

// Cancel stops the timer registered under name, if any.
func (s *Session) Cancel(name string) {
	h, ok := s.handles[name]
	if !ok {
		return
	}
	delete(s.handles, name)
	s.sched.Cancel(h)
}

// Has reports whether a timer is outstanding under name.
func (s *Session) Has(name string) bool {
	_, ok := s.handles[name]
	return ok
}

// Active returns the number of outstanding timers.
func (s *Session) Active() int {
	return len(s.handles)
}

// Now returns the scheduler's current time.
func (s *Session) Now() time.Time {
	return s.sched.Now()
}

// Close cancels every outstanding timer exactly once. Later calls, and any
// scheduling after Close, are no-ops.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for name, h := range s.handles {
		s.sched.Cancel(h)
		delete(s.handles, name)
	}
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	return s.closed
}
