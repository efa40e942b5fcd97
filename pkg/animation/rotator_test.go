package animation_test

import (
	"testing"
	"time"

	"github.com/go-drift/reveal/pkg/animation"
	"github.com/go-drift/reveal/pkg/errors"
	drifttest "github.com/go-drift/reveal/pkg/testing"
)

func TestRotator_IndexAfterKTicks(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		items := make([]int, n)
		for i := range items {
			items[i] = i * 10
		}
		sched := drifttest.NewFakeScheduler()
		r, err := animation.NewRotator(items, 3*time.Second)
		if err != nil {
			t.Fatal(err)
		}
		if err := r.Activate(sched); err != nil {
			t.Fatal(err)
		}

		for k := 0; k <= 3*n+1; k++ {
			if k > 0 {
				sched.Advance(3 * time.Second)
			}
			if r.Index() != k%n {
				t.Errorf("L=%d k=%d: Index = %d, want %d", n, k, r.Index(), k%n)
			}
			if r.Current() != items[k%n] {
				t.Errorf("L=%d k=%d: Current = %d", n, k, r.Current())
			}
		}
		if r.Status() != animation.StatusRunning {
			t.Errorf("rotator should never complete, got %v", r.Status())
		}
	}
}

func TestRotator_SingleItemKeepsTicking(t *testing.T) {
	sched := drifttest.NewFakeScheduler()
	r, _ := animation.NewRotator([]string{"only"}, time.Second)
	r.Activate(sched)

	notified := 0
	r.AddListener(func() { notified++ })
	sched.Advance(5 * time.Second)

	if sched.Fired() != 5 {
		t.Errorf("Fired = %d, want 5", sched.Fired())
	}
	if notified != 0 {
		t.Errorf("no-op ticks should not notify, got %d", notified)
	}
	if r.Snapshot() != (animation.RotatorSnapshot[string]{Index: 0, Item: "only"}) {
		t.Errorf("Snapshot = %+v", r.Snapshot())
	}
}

func TestRotator_CopiesItems(t *testing.T) {
	items := []string{"a", "b"}
	r, _ := animation.NewRotator(items, time.Second)
	items[0] = "z"
	if r.Current() != "a" {
		t.Errorf("rotator should not alias the caller's slice")
	}
	if r.Len() != 2 {
		t.Errorf("Len = %d", r.Len())
	}
}

func TestRotator_Teardown(t *testing.T) {
	sched := drifttest.NewFakeScheduler()
	r, _ := animation.NewRotator([]string{"a", "b", "c"}, time.Second)
	r.Activate(sched)
	sched.Advance(time.Second)

	r.Deactivate()
	sched.Advance(time.Minute)

	if r.Index() != 1 {
		t.Errorf("Index moved after deactivation: %d", r.Index())
	}
	if sched.Pending() != 0 {
		t.Errorf("Pending = %d", sched.Pending())
	}
}

func TestRotator_ConfigErrors(t *testing.T) {
	if _, err := animation.NewRotator([]string{}, time.Second); !errors.Is(err, errors.ErrEmptyItems) {
		t.Errorf("empty items: got %v", err)
	}
	if _, err := animation.NewRotator[string](nil, time.Second); errors.KindOf(err) != errors.KindConfig {
		t.Errorf("nil items: got %v", err)
	}
	if _, err := animation.NewRotator([]string{"a"}, 0); !errors.Is(err, errors.ErrNonPositiveInterval) {
		t.Errorf("zero interval: got %v", err)
	}
}
