package animation

import (
	"fmt"
	"time"

	"github.com/go-drift/reveal/pkg/errors"
)

// Status represents where a component is in its lifecycle.
//
// The status follows this state machine:
//
//	        Activate()             Arm() / first tick
//	Idle ─────────────► Waiting ─────────────────────► Running
//	                       │                              │
//	                       │        Deactivate()          │ last item
//	                       └──────────► Stopped ◄─────────┤
//	                                                      ▼
//	                                                  Completed
//
// Components without a gate skip Waiting. Components that loop forever
// (Rotator, Counter, Typist) never reach Completed.
type Status int

const (
	// StatusIdle means the component has never been activated.
	StatusIdle Status = iota
	// StatusWaiting means the component is active but gated (an unarmed
	// Typewriter).
	StatusWaiting
	// StatusRunning means timers are driving the component.
	StatusRunning
	// StatusCompleted means the component reached its terminal state and
	// stopped its driving timer.
	StatusCompleted
	// StatusStopped means the component was deactivated before completing.
	StatusStopped
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusWaiting:
		return "waiting"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusStopped:
		return "stopped"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// runner holds the activation plumbing shared by every component.
type runner struct {
	session *Session
	status  Status
}

func (r *runner) begin(op string, sched Scheduler) error {
	if sched == nil {
		return errors.Configf(op, "nil scheduler")
	}
	if r.Active() {
		return errors.Lifecycle(op, errors.ErrAlreadyMounted)
	}
	r.session = NewSession(sched)
	r.status = StatusRunning
	return nil
}

// Deactivate cancels every timer the component owns. No callback of the
// component runs after Deactivate returns. Safe to call more than once.
func (r *runner) Deactivate() {
	if r.session != nil {
		r.session.Close()
	}
	if r.status == StatusRunning || r.status == StatusWaiting {
		r.status = StatusStopped
	}
}

// Active reports whether the component is between Activate and Deactivate.
func (r *runner) Active() bool {
	return r.session != nil && !r.session.Closed()
}

// Pending returns the number of outstanding timers the component owns.
func (r *runner) Pending() int {
	if r.session == nil {
		return 0
	}
	return r.session.Active()
}

// Status returns the component's lifecycle status.
func (r *runner) Status() Status {
	return r.status
}

func validateInterval(op string, d time.Duration) error {
	if d <= 0 {
		return errors.Config(op, errors.ErrNonPositiveInterval)
	}
	return nil
}
