package testing

import (
	"sync"
	"time"

	"github.com/go-drift/reveal/pkg/animation"
)

// FakeScheduler is an animation.Scheduler driven by virtual time.
// Nothing fires until Advance is called.
type FakeScheduler struct {
	clock *FakeClock

	mu     sync.Mutex
	timers map[animation.Handle]*fakeTimer
	nextID animation.Handle
	fired  int
}

type fakeTimer struct {
	due      time.Time
	interval time.Duration // zero for one-shot timers
	fn       func()
}

var _ animation.Scheduler = (*FakeScheduler)(nil)

// NewFakeScheduler returns a scheduler on a fresh FakeClock.
func NewFakeScheduler() *FakeScheduler {
	return NewFakeSchedulerWithClock(NewFakeClock())
}

// NewFakeSchedulerWithClock returns a scheduler reading time from clock.
func NewFakeSchedulerWithClock(clock *FakeClock) *FakeScheduler {
	return &FakeScheduler{
		clock:  clock,
		timers: make(map[animation.Handle]*fakeTimer),
	}
}

// Clock returns the scheduler's clock.
func (s *FakeScheduler) Clock() *FakeClock {
	return s.clock
}

// Now returns the current virtual time.
func (s *FakeScheduler) Now() time.Time {
	return s.clock.Now()
}

// Every schedules fn every interval.
func (s *FakeScheduler) Every(interval time.Duration, fn func()) animation.Handle {
	if interval <= 0 {
		return 0
	}
	return s.schedule(interval, interval, fn)
}

// After schedules fn once, delay from now.
func (s *FakeScheduler) After(delay time.Duration, fn func()) animation.Handle {
	if delay < 0 {
		delay = 0
	}
	return s.schedule(delay, 0, fn)
}

func (s *FakeScheduler) schedule(delay, interval time.Duration, fn func()) animation.Handle {
	if fn == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.timers[s.nextID] = &fakeTimer{
		due:      s.clock.Now().Add(delay),
		interval: interval,
		fn:       fn,
	}
	return s.nextID
}

// Cancel stops h.
func (s *FakeScheduler) Cancel(h animation.Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.timers, h)
}

// Advance moves virtual time forward by d, firing every callback due at or
// before the new time. Callbacks fire in due-time order; ties fire in the
// order their timers were created. Callbacks may schedule or cancel
// timers, and timers they schedule fire within the same Advance if due.
func (s *FakeScheduler) Advance(d time.Duration) {
	target := s.clock.Now().Add(d)
	for s.fireNext(target) {
	}
	s.clock.Set(target)
}

// AdvanceToNext moves time to the earliest pending timer and fires every
// callback due at that instant. Returns false if nothing is pending.
func (s *FakeScheduler) AdvanceToNext() bool {
	s.mu.Lock()
	_, t := s.earliest()
	s.mu.Unlock()
	if t == nil {
		return false
	}
	s.Advance(t.due.Sub(s.clock.Now()))
	return true
}

func (s *FakeScheduler) fireNext(target time.Time) bool {
	s.mu.Lock()
	h, t := s.earliest()
	if t == nil || t.due.After(target) {
		s.mu.Unlock()
		return false
	}
	if t.due.After(s.clock.Now()) {
		s.clock.Set(t.due)
	}
	if t.interval > 0 {
		t.due = t.due.Add(t.interval)
	} else {
		delete(s.timers, h)
	}
	s.fired++
	fn := t.fn
	s.mu.Unlock()

	fn()
	return true
}

// earliest returns the timer due first, ties broken by creation order.
// Callers hold s.mu.
func (s *FakeScheduler) earliest() (animation.Handle, *fakeTimer) {
	var (
		bestID animation.Handle
		best   *fakeTimer
	)
	for id, t := range s.timers {
		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && id < bestID) {
			bestID, best = id, t
		}
	}
	return bestID, best
}

// Pending returns the number of outstanding timers.
func (s *FakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Fired returns the total number of callbacks invoked so far.
func (s *FakeScheduler) Fired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fired
}
