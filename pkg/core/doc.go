// Package core provides the lifecycle and change-notification plumbing
// shared by every timed component and page.
//
// # Lifecycle
//
// A page embeds a Lifecycle and registers one disposer per started
// component. Dispose runs the disposers in reverse order, so a single
// call tears down everything the page started:
//
//	type aboutPage struct {
//	    core.Lifecycle
//	    title *animation.Typewriter
//	}
//
//	func (p *aboutPage) Mount(sched animation.Scheduler) error {
//	    if err := p.Begin(); err != nil {
//	        return err
//	    }
//	    _, err := core.UseComponent(&p.Lifecycle, sched, p.title)
//	    return err
//	}
//
//	func (p *aboutPage) Unmount() { p.Dispose() }
//
// # Notification
//
// Notifier fans a "state changed" signal out to listeners. Components embed
// it and call Notify after each tick that changed their state; renderers
// subscribe with AddListener and repaint from a fresh snapshot.
//
// Nothing in this package is safe for concurrent use. All calls are
// expected on the scheduler's loop goroutine.
package core
