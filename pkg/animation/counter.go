package animation

import (
	"time"

	"github.com/go-drift/reveal/pkg/core"
)

// DefaultCounterInterval is how often a Counter re-reads the clock.
const DefaultCounterInterval = time.Second

const counterTimer = "counter/tick"

// Counter counts whole seconds since activation.
//
// Each tick recomputes the value from the scheduler clock rather than
// adding one, so late ticks never accumulate drift. The value never
// decreases while active and freezes on Deactivate.
type Counter struct {
	core.Notifier
	runner

	interval time.Duration
	start    time.Time
	elapsed  int
}

// CounterSnapshot is the read-only state handed to renderers.
type CounterSnapshot struct {
	Elapsed int `json:"elapsed"`
}

// NewCounter creates a Counter ticking every interval.
func NewCounter(interval time.Duration) (*Counter, error) {
	if err := validateInterval("animation.NewCounter", interval); err != nil {
		return nil, err
	}
	return &Counter{interval: interval}, nil
}

// Activate records the start instant and starts ticking.
func (c *Counter) Activate(sched Scheduler) error {
	if err := c.begin("animation.Counter.Activate", sched); err != nil {
		return err
	}
	c.start = sched.Now()
	c.elapsed = 0
	c.session.Every(counterTimer, c.interval, c.tick)
	return nil
}

func (c *Counter) tick() {
	secs := int(c.session.Now().Sub(c.start) / time.Second)
	if secs > c.elapsed {
		c.elapsed = secs
		c.Notify()
	}
}

// Seconds returns the elapsed whole seconds as of the last tick.
func (c *Counter) Seconds() int {
	return c.elapsed
}

// Start returns the activation instant.
func (c *Counter) Start() time.Time {
	return c.start
}

// Snapshot returns the current state.
func (c *Counter) Snapshot() CounterSnapshot {
	return CounterSnapshot{Elapsed: c.elapsed}
}
