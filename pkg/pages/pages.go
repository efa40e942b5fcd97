// Package pages composes animation components into the two disclosure
// pages, About and Technologies.
//
// A page is built from content and Timings, then mounted on a scheduler.
// Mount activates every component through a core.Lifecycle; Unmount
// disposes the lifecycle, which deactivates every component before it
// returns. Pages are single use.
//
// Renderers read pages through Snapshot and subscribe with OnChange. Pointer
// and keyboard input reach the page through Enter, Leave and Move.
package pages

import (
	"fmt"
	"slices"
	"time"

	"github.com/go-drift/reveal/pkg/animation"
	"github.com/go-drift/reveal/pkg/content"
	"github.com/go-drift/reveal/pkg/errors"
	"github.com/go-drift/reveal/pkg/focus"
)

// Page names accepted by New.
const (
	NameAbout        = "about"
	NameTechnologies = "technologies"
)

// Page is a mountable set of timed components.
type Page interface {
	// Name returns the page name.
	Name() string
	// Mount activates every component on sched.
	Mount(sched animation.Scheduler) error
	// Unmount deactivates every component. Safe to call more than once.
	Unmount()
	// Mounted reports whether the page is between Mount and Unmount.
	Mounted() bool
	// OnChange subscribes fn to any state change and returns an
	// unsubscribe function.
	OnChange(fn func()) func()
	// Pending returns the number of outstanding timers across the page.
	Pending() int
	// Enter, Leave and Move drive the page's highlight.
	Enter(i int)
	Leave(i int)
	Move(direction focus.TraversalDirection) bool
	// Snapshot returns the page state as a JSON-encodable value.
	Snapshot() any
}

// Timings holds every interval the pages use.
type Timings struct {
	// Entry delays the about page's fade-in and title. Zero means the
	// default like every other field; use 1ns for an immediate entry.
	Entry time.Duration `yaml:"entry" env:"ENTRY"`
	// Title is the per-character typing interval.
	Title time.Duration `yaml:"title" env:"TITLE"`
	// Caret is the caret blink half-period.
	Caret time.Duration `yaml:"caret" env:"CARET"`
	// Fact is the fact rotation interval.
	Fact time.Duration `yaml:"fact" env:"FACT"`
	// Counter is the time-on-page refresh interval.
	Counter time.Duration `yaml:"counter" env:"COUNTER"`
	// Card is the stagger step between technology cards.
	Card time.Duration `yaml:"card" env:"CARD"`
	// Code is the per-line interval of the code panel.
	Code time.Duration `yaml:"code" env:"CODE"`
	// Columns is the card grid width used for keyboard traversal.
	Columns int `yaml:"columns" env:"COLUMNS"`
}

// DefaultTimings returns the stock timings.
func DefaultTimings() Timings {
	return Timings{
		Entry:   100 * time.Millisecond,
		Title:   150 * time.Millisecond,
		Caret:   animation.DefaultCaretBlink,
		Fact:    3 * time.Second,
		Counter: animation.DefaultCounterInterval,
		Card:    200 * time.Millisecond,
		Code:    time.Second,
		Columns: 3,
	}
}

// WithDefaults fills zero fields from DefaultTimings, Entry included.
func (t Timings) WithDefaults() Timings {
	d := DefaultTimings()
	fill := func(v *time.Duration, def time.Duration) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&t.Entry, d.Entry)
	fill(&t.Title, d.Title)
	fill(&t.Caret, d.Caret)
	fill(&t.Fact, d.Fact)
	fill(&t.Counter, d.Counter)
	fill(&t.Card, d.Card)
	fill(&t.Code, d.Code)
	if t.Columns == 0 {
		t.Columns = d.Columns
	}
	return t
}

// Validate rejects negative entry delays and non-positive intervals.
func (t Timings) Validate() error {
	const op = "pages.Timings.Validate"
	if t.Entry < 0 {
		return errors.Configf(op, "entry delay %v is negative", t.Entry)
	}
	intervals := []struct {
		name string
		d    time.Duration
	}{
		{"title", t.Title},
		{"caret", t.Caret},
		{"fact", t.Fact},
		{"counter", t.Counter},
		{"card", t.Card},
		{"code", t.Code},
	}
	for _, iv := range intervals {
		if iv.d <= 0 {
			return errors.Config(op, fmt.Errorf("%s %v: %w", iv.name, iv.d, errors.ErrNonPositiveInterval))
		}
	}
	if t.Columns < 1 {
		return errors.Configf(op, "columns must be at least 1, got %d", t.Columns)
	}
	return nil
}

// Names returns the page names in navigation order.
func Names() []string {
	return []string{NameAbout, NameTechnologies}
}

// Next returns the page name after name in navigation order, wrapping.
func Next(name string) string {
	names := Names()
	i := slices.Index(names, name)
	return names[(i+1)%len(names)]
}

// New builds the named page. It does not mount it.
func New(name string, c *content.Content, t Timings) (Page, error) {
	switch name {
	case NameAbout:
		p, err := NewAbout(c.About, t)
		if err != nil {
			return nil, err
		}
		return p, nil
	case NameTechnologies:
		p, err := NewTechnologies(c.Technologies, t)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, errors.Configf("pages.New", "unknown page %q (want %v)", name, Names())
	}
}
