package animation_test

import (
	"testing"
	"time"

	"github.com/go-drift/reveal/pkg/animation"
	"github.com/go-drift/reveal/pkg/errors"
	drifttest "github.com/go-drift/reveal/pkg/testing"
)

func TestCounter_NonDecreasing(t *testing.T) {
	sched := drifttest.NewFakeScheduler()
	c, err := animation.NewCounter(animation.DefaultCounterInterval)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Activate(sched); err != nil {
		t.Fatal(err)
	}

	prev := c.Seconds()
	for i := 0; i < 20; i++ {
		sched.Advance(700 * time.Millisecond)
		got := c.Seconds()
		if got < prev {
			t.Fatalf("counter went backwards: %d -> %d", prev, got)
		}
		prev = got
	}
	// 14s elapsed; the last tick landed at 14s.
	if prev != 14 {
		t.Errorf("Seconds = %d, want 14", prev)
	}
}

func TestCounter_RecomputesFromClock(t *testing.T) {
	sched := drifttest.NewFakeScheduler()
	c, _ := animation.NewCounter(time.Second)
	c.Activate(sched)

	// The clock jumps 2.5s without the timer firing, as when the loop was
	// busy. The next (late) tick must report wall-clock seconds, not 1.
	sched.Clock().Advance(2500 * time.Millisecond)
	sched.Advance(0)

	if c.Seconds() != 2 {
		t.Errorf("Seconds = %d, want 2", c.Seconds())
	}
	if !c.Start().Equal(drifttest.Epoch) {
		t.Errorf("Start = %v, want %v", c.Start(), drifttest.Epoch)
	}
}

func TestCounter_FreezesAfterDeactivate(t *testing.T) {
	sched := drifttest.NewFakeScheduler()
	c, _ := animation.NewCounter(time.Second)
	c.Activate(sched)

	notified := 0
	c.AddListener(func() { notified++ })

	sched.Advance(3 * time.Second)
	if c.Snapshot().Elapsed != 3 || notified != 3 {
		t.Fatalf("Elapsed = %d notified = %d, want 3 3", c.Snapshot().Elapsed, notified)
	}

	c.Deactivate()
	sched.Advance(time.Hour)

	if c.Seconds() != 3 {
		t.Errorf("counter kept counting after deactivation: %d", c.Seconds())
	}
	if notified != 3 {
		t.Errorf("notified after deactivation")
	}
	if c.Status() != animation.StatusStopped {
		t.Errorf("Status = %v", c.Status())
	}
}

func TestCounter_ConfigErrors(t *testing.T) {
	if _, err := animation.NewCounter(0); !errors.Is(err, errors.ErrNonPositiveInterval) {
		t.Errorf("zero interval: got %v", err)
	}
}
