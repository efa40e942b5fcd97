package animation

import (
	"context"
	"sync"
	"time"

	"github.com/go-drift/reveal/pkg/errors"
)

// LoopScheduler is a real-time Scheduler. Timers fire on runtime timer
// goroutines, which only enqueue; every callback runs on the goroutine
// that called Run, one at a time.
//
// Dispatch and Do are safe to call from any goroutine. Every, After and
// Cancel are also goroutine-safe, but components built on them must only
// be touched from the loop.
type LoopScheduler struct {
	clock Clock

	mu      sync.Mutex
	timers  map[Handle]*loopTimer
	nextID  Handle
	queue   []func()
	stopped bool

	wake chan struct{}
	done chan struct{}
}

type loopTimer struct {
	timer    *time.Timer
	interval time.Duration // zero for one-shot timers
	fn       func()
}

// NewLoopScheduler returns a scheduler reading time from clock.
// A nil clock means SystemClock.
func NewLoopScheduler(clock Clock) *LoopScheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &LoopScheduler{
		clock:  clock,
		timers: make(map[Handle]*loopTimer),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Now returns the current time from the scheduler's clock.
func (l *LoopScheduler) Now() time.Time {
	return l.clock.Now()
}

// Every calls fn on the loop every interval until cancelled.
func (l *LoopScheduler) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		return 0
	}
	return l.schedule(interval, interval, fn)
}

// After calls fn on the loop once, delay from now.
func (l *LoopScheduler) After(delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	return l.schedule(delay, 0, fn)
}

func (l *LoopScheduler) schedule(delay, interval time.Duration, fn func()) Handle {
	if fn == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return 0
	}
	l.nextID++
	h := l.nextID
	t := &loopTimer{interval: interval, fn: fn}
	l.timers[h] = t
	// The fire closure takes l.mu, so it cannot observe t before t.timer is set.
	t.timer = time.AfterFunc(delay, func() {
		l.Dispatch(func() { l.fire(h) })
	})
	return h
}

// fire runs on the loop goroutine.
func (l *LoopScheduler) fire(h Handle) {
	l.mu.Lock()
	t, ok := l.timers[h]
	if !ok {
		// Cancelled after the fire was queued.
		l.mu.Unlock()
		return
	}
	if t.interval > 0 {
		t.timer.Reset(t.interval)
	} else {
		delete(l.timers, h)
	}
	l.mu.Unlock()

	l.run(t.fn)
}

// Cancel stops h. A queued firing of h is dropped.
func (l *LoopScheduler) Cancel(h Handle) {
	if h == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if t, ok := l.timers[h]; ok {
		t.timer.Stop()
		delete(l.timers, h)
	}
}

// Pending returns the number of outstanding timers.
func (l *LoopScheduler) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// Dispatch queues fn to run on the loop goroutine and is safe to call from
// any goroutine. Returns false if the scheduler has stopped or fn is nil.
func (l *LoopScheduler) Dispatch(fn func()) bool {
	if fn == nil {
		return false
	}
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Do runs fn on the loop goroutine and waits for it to return.
// Do must not be called from the loop goroutine itself.
func (l *LoopScheduler) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.Dispatch(func() {
		defer close(finished)
		fn()
	}) {
		return errors.ErrStopped
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return errors.ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes queued callbacks until ctx is done, then stops every timer.
// Run must be called at most once.
func (l *LoopScheduler) Run(ctx context.Context) error {
	defer l.shutdown()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.wake:
			for _, fn := range l.drain() {
				if ctx.Err() != nil {
					return nil
				}
				l.run(fn)
			}
		}
	}
}

// Done is closed once Run has returned and all timers are stopped.
func (l *LoopScheduler) Done() <-chan struct{} {
	return l.done
}

func (l *LoopScheduler) drain() []func() {
	l.mu.Lock()
	callbacks := l.queue
	l.queue = nil
	l.mu.Unlock()
	return callbacks
}

func (l *LoopScheduler) run(fn func()) {
	defer errors.Recover("animation.LoopScheduler")
	fn()
}

func (l *LoopScheduler) shutdown() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.stopped = true
	for h, t := range l.timers {
		t.timer.Stop()
		delete(l.timers, h)
	}
	l.queue = nil
	close(l.done)
}
