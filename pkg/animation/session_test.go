package animation_test

import (
	"testing"
	"time"

	"github.com/go-drift/reveal/pkg/animation"
	drifttest "github.com/go-drift/reveal/pkg/testing"
)

func TestSession_OneHandlePerName(t *testing.T) {
	sched := drifttest.NewFakeScheduler()
	s := animation.NewSession(sched)

	first, second := 0, 0
	s.Every("tick", 100*time.Millisecond, func() { first++ })
	s.Every("tick", 100*time.Millisecond, func() { second++ })

	if s.Active() != 1 {
		t.Errorf("Active = %d, want 1", s.Active())
	}
	if sched.Pending() != 1 {
		t.Errorf("scheduler Pending = %d, want 1", sched.Pending())
	}

	sched.Advance(300 * time.Millisecond)
	if first != 0 || second != 3 {
		t.Errorf("first=%d second=%d, want 0 3", first, second)
	}
}

func TestSession_OneShotLeavesOnFire(t *testing.T) {
	sched := drifttest.NewFakeScheduler()
	s := animation.NewSession(sched)

	fired := 0
	s.After("once", 50*time.Millisecond, func() { fired++ })
	if !s.Has("once") {
		t.Fatal("expected pending one-shot")
	}

	sched.Advance(50 * time.Millisecond)
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
	if s.Has("once") || s.Active() != 0 {
		t.Error("fired one-shot should leave the session")
	}
}

func TestSession_ReplacedOneShotKeepsNewHandle(t *testing.T) {
	sched := drifttest.NewFakeScheduler()
	s := animation.NewSession(sched)

	s.After("once", 10*time.Millisecond, func() {})
	s.After("once", 20*time.Millisecond, func() {})

	sched.Advance(10 * time.Millisecond)
	if !s.Has("once") {
		t.Error("replacement one-shot should still be pending")
	}
	sched.Advance(10 * time.Millisecond)
	if s.Has("once") {
		t.Error("replacement one-shot should have fired")
	}
}

func TestSession_Close(t *testing.T) {
	sched := drifttest.NewFakeScheduler()
	s := animation.NewSession(sched)

	calls := 0
	s.Every("a", 10*time.Millisecond, func() { calls++ })
	s.After("b", 10*time.Millisecond, func() { calls++ })
	s.After("c", time.Hour, func() { calls++ })

	s.Close()
	s.Close()

	if s.Active() != 0 || sched.Pending() != 0 {
		t.Errorf("Active=%d Pending=%d after Close", s.Active(), sched.Pending())
	}
	if !s.Closed() {
		t.Error("expected Closed")
	}

	sched.Advance(2 * time.Hour)
	if calls != 0 {
		t.Errorf("%d callbacks ran after Close", calls)
	}

	if h := s.Every("late", time.Millisecond, func() { calls++ }); h != 0 {
		t.Error("scheduling after Close should return the zero handle")
	}
	sched.Advance(time.Second)
	if calls != 0 {
		t.Error("scheduling after Close should be a no-op")
	}
}

func TestSession_CancelFromOwnCallback(t *testing.T) {
	sched := drifttest.NewFakeScheduler()
	s := animation.NewSession(sched)

	ticks := 0
	s.Every("self", 10*time.Millisecond, func() {
		ticks++
		if ticks == 2 {
			s.Cancel("self")
		}
	})

	sched.Advance(time.Second)
	if ticks != 2 {
		t.Errorf("ticks = %d, want 2", ticks)
	}
	if sched.Pending() != 0 {
		t.Error("expected no pending timers")
	}
}
