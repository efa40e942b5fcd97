// Package animation provides the timed state machines that progressively
// disclose content: a character typewriter, a cyclic rotator, an elapsed
// counter, a staggered reveal set and a looping multi-line typist.
//
// # Core Components
//
//   - [Scheduler]: delayed and repeating callbacks with explicit,
//     idempotent cancellation. [LoopScheduler] runs callbacks on a single
//     event-loop goroutine in real time; the testing package provides a
//     virtual-time FakeScheduler.
//
//   - [Session]: owns every handle a component creates, at most one per
//     timer name, and cancels all of them in one Close.
//
//   - [Typewriter], [Rotator], [Counter], [Stagger], [Typist]: independent
//     state machines. Each is started with Activate and stopped with
//     Deactivate, exposes a read-only Snapshot, and notifies listeners
//     after every tick that changed its state.
//
// # Basic Usage
//
//	sched := animation.NewLoopScheduler(nil)
//	go sched.Run(ctx)
//
//	title, err := animation.NewTypewriter("Hello", 150*time.Millisecond)
//	if err != nil {
//	    return err
//	}
//	title.AddListener(func() {
//	    paint(title.Snapshot())
//	})
//	sched.Do(ctx, func() {
//	    title.Activate(sched)
//	    title.Arm()
//	})
//
//	// On unmount
//	sched.Do(ctx, title.Deactivate)
//
// All component methods must be called on the scheduler's loop goroutine
// (inside a callback, Dispatch or Do). Components never lock.
package animation

import "time"

// Handle is an opaque reference to a scheduled timer. The zero Handle
// refers to no timer; cancelling it is a no-op.
type Handle uint64

// Scheduler runs callbacks after a delay or on a fixed interval.
//
// Callbacks run one at a time. Ticks of the same repeating timer are
// strictly ordered and never overlap. Once Cancel returns, the cancelled
// callback never begins, even if its firing was already queued.
type Scheduler interface {
	// Every calls fn every interval until cancelled. A non-positive
	// interval schedules nothing and returns the zero Handle.
	Every(interval time.Duration, fn func()) Handle
	// After calls fn once, delay from now. A negative delay is treated as
	// zero.
	After(delay time.Duration, fn func()) Handle
	// Cancel stops h. Safe on fired, cancelled and zero handles.
	Cancel(h Handle)
	// Now returns the scheduler's current time.
	Now() time.Time
}
