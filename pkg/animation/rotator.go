package animation

import (
	"time"

	"github.com/go-drift/reveal/pkg/core"
	"github.com/go-drift/reveal/pkg/errors"
)

const rotatorTimer = "rotator/advance"

// Rotator advances an index through a fixed list every interval, wrapping
// forever. It has no terminal state; Deactivate is the only way to stop it.
type Rotator[T any] struct {
	core.Notifier
	runner

	items    []T
	interval time.Duration
	index    int
}

// RotatorSnapshot is the read-only state handed to renderers.
type RotatorSnapshot[T any] struct {
	Index int `json:"index"`
	Item  T   `json:"item"`
}

// NewRotator creates a Rotator over a copy of items.
func NewRotator[T any](items []T, interval time.Duration) (*Rotator[T], error) {
	if len(items) == 0 {
		return nil, errors.Config("animation.NewRotator", errors.ErrEmptyItems)
	}
	if err := validateInterval("animation.NewRotator", interval); err != nil {
		return nil, err
	}
	return &Rotator[T]{
		items:    append([]T(nil), items...),
		interval: interval,
	}, nil
}

// Activate starts rotating from index 0.
func (r *Rotator[T]) Activate(sched Scheduler) error {
	if err := r.begin("animation.Rotator.Activate", sched); err != nil {
		return err
	}
	r.index = 0
	r.session.Every(rotatorTimer, r.interval, r.tick)
	return nil
}

func (r *Rotator[T]) tick() {
	prev := r.index
	r.index = (r.index + 1) % len(r.items)
	if r.index != prev {
		r.Notify()
	}
}

// Index returns the current index.
func (r *Rotator[T]) Index() int {
	return r.index
}

// Current returns the item at the current index.
func (r *Rotator[T]) Current() T {
	return r.items[r.index]
}

// Len returns the number of items.
func (r *Rotator[T]) Len() int {
	return len(r.items)
}

// Snapshot returns the current state.
func (r *Rotator[T]) Snapshot() RotatorSnapshot[T] {
	return RotatorSnapshot[T]{Index: r.index, Item: r.items[r.index]}
}
