package animation

import (
	"strconv"
	"time"

	"github.com/go-drift/reveal/pkg/core"
	"github.com/go-drift/reveal/pkg/errors"
)

// Stagger marks items visible one by one, item i at i*step after
// activation, then stops.
//
// Each item has its own one-shot timer, so the visible set at elapsed time
// t is exactly {i : i*step <= t}. Item 0 is due immediately and is revealed
// during Activate. Once every item is visible no timers remain.
type Stagger[T any] struct {
	core.Notifier
	runner

	items   []T
	step    time.Duration
	visible []bool
	count   int
}

// StaggerSnapshot is the read-only state handed to renderers.
type StaggerSnapshot struct {
	// Visible lists the visible indexes in ascending order.
	Visible []int `json:"visible"`
	Count   int   `json:"count"`
	Done    bool  `json:"done"`
}

// NewStagger creates a Stagger over a copy of items.
func NewStagger[T any](items []T, step time.Duration) (*Stagger[T], error) {
	if len(items) == 0 {
		return nil, errors.Config("animation.NewStagger", errors.ErrEmptyItems)
	}
	if err := validateInterval("animation.NewStagger", step); err != nil {
		return nil, err
	}
	return &Stagger[T]{
		items: append([]T(nil), items...),
		step:  step,
	}, nil
}

// Activate schedules one reveal per item.
func (s *Stagger[T]) Activate(sched Scheduler) error {
	if err := s.begin("animation.Stagger.Activate", sched); err != nil {
		return err
	}
	s.visible = make([]bool, len(s.items))
	s.count = 0
	for i := 1; i < len(s.items); i++ {
		s.session.After("stagger/"+strconv.Itoa(i), time.Duration(i)*s.step, func() {
			s.reveal(i)
		})
	}
	s.reveal(0)
	return nil
}

func (s *Stagger[T]) reveal(i int) {
	if s.visible[i] {
		return
	}
	s.visible[i] = true
	s.count++
	if s.count == len(s.items) {
		s.status = StatusCompleted
	}
	s.Notify()
}

// IsVisible reports whether item i has been revealed.
func (s *Stagger[T]) IsVisible(i int) bool {
	return i >= 0 && i < len(s.visible) && s.visible[i]
}

// Count returns the number of visible items.
func (s *Stagger[T]) Count() int {
	return s.count
}

// Items returns a copy of the items.
func (s *Stagger[T]) Items() []T {
	return append([]T(nil), s.items...)
}

// Done reports whether every item is visible.
func (s *Stagger[T]) Done() bool {
	return s.count == len(s.items)
}

// Snapshot returns the current state.
func (s *Stagger[T]) Snapshot() StaggerSnapshot {
	visible := make([]int, 0, s.count)
	for i, v := range s.visible {
		if v {
			visible = append(visible, i)
		}
	}
	return StaggerSnapshot{
		Visible: visible,
		Count:   s.count,
		Done:    s.Done(),
	}
}
