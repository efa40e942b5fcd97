package pages

import (
	"github.com/go-drift/reveal/pkg/animation"
	"github.com/go-drift/reveal/pkg/content"
	"github.com/go-drift/reveal/pkg/core"
	"github.com/go-drift/reveal/pkg/focus"
)

const entryTimer = "about/entry"

// About greets the visitor: after the entry delay the page becomes visible
// and the title types itself out, while a fact banner rotates and a counter
// shows the seconds spent on the page.
type About struct {
	life    core.Lifecycle
	changes core.Notifier

	banner    string
	title     *animation.Typewriter
	facts     *animation.Rotator[string]
	counter   *animation.Counter
	highlight *focus.Highlight
	timings   Timings

	entry   *animation.Session
	visible bool
}

// AboutSnapshot is the read-only state of an About page.
type AboutSnapshot struct {
	Visible         bool                              `json:"visible"`
	Title           animation.TypewriterSnapshot      `json:"title"`
	Banner          string                            `json:"banner,omitempty"`
	Fact            animation.RotatorSnapshot[string] `json:"fact"`
	FactHighlighted bool                              `json:"factHighlighted"`
	ElapsedSeconds  int                               `json:"elapsedSeconds"`
}

var _ Page = (*About)(nil)

// NewAbout builds an About page. Zero timings take their defaults.
func NewAbout(c content.About, t Timings) (*About, error) {
	t = t.WithDefaults()
	if err := t.Validate(); err != nil {
		return nil, err
	}

	title, err := animation.NewTypewriter(c.Title, t.Title)
	if err != nil {
		return nil, err
	}
	title.CaretBlink = t.Caret

	facts, err := animation.NewRotator(c.Facts, t.Fact)
	if err != nil {
		return nil, err
	}
	counter, err := animation.NewCounter(t.Counter)
	if err != nil {
		return nil, err
	}

	a := &About{
		banner:    c.Banner,
		title:     title,
		facts:     facts,
		counter:   counter,
		highlight: focus.NewHighlight(1, 1),
		timings:   t,
	}
	a.highlight.AddListener(a.changes.Notify)
	return a, nil
}

// Name returns "about".
func (a *About) Name() string {
	return NameAbout
}

// Mount activates the title, fact banner and counter, and schedules the
// entry transition that reveals the page and arms the title.
func (a *About) Mount(sched animation.Scheduler) error {
	if err := a.life.Begin(); err != nil {
		return err
	}

	for _, c := range []interface {
		core.Component[animation.Scheduler]
		core.Listenable
	}{a.title, a.facts, a.counter} {
		if _, err := core.UseComponent(&a.life, sched, c); err != nil {
			a.life.Dispose()
			return err
		}
		core.UseListenable(&a.life, c, a.changes.Notify)
	}

	a.entry = animation.NewSession(sched)
	a.life.OnDispose(a.entry.Close)
	a.entry.After(entryTimer, a.timings.Entry, a.enter)
	return nil
}

func (a *About) enter() {
	a.visible = true
	a.changes.Notify()
	a.title.Arm()
}

// Unmount deactivates every component.
func (a *About) Unmount() {
	a.life.Dispose()
}

// Mounted reports whether the page is mounted.
func (a *About) Mounted() bool {
	return a.life.Mounted()
}

// OnChange subscribes fn to page changes.
func (a *About) OnChange(fn func()) func() {
	return a.changes.AddListener(fn)
}

// Pending returns the number of outstanding timers.
func (a *About) Pending() int {
	n := a.title.Pending() + a.facts.Pending() + a.counter.Pending()
	if a.entry != nil {
		n += a.entry.Active()
	}
	return n
}

// Enter highlights the fact banner (index 0).
func (a *About) Enter(i int) {
	a.highlight.Enter(i)
}

// Leave clears the banner highlight.
func (a *About) Leave(i int) {
	a.highlight.Leave(i)
}

// Move highlights the banner if nothing is highlighted.
func (a *About) Move(direction focus.TraversalDirection) bool {
	return a.highlight.Move(direction)
}

// Snapshot returns an AboutSnapshot.
func (a *About) Snapshot() any {
	return a.State()
}

// State returns the typed snapshot.
func (a *About) State() AboutSnapshot {
	return AboutSnapshot{
		Visible:         a.visible,
		Title:           a.title.Snapshot(),
		Banner:          a.banner,
		Fact:            a.facts.Snapshot(),
		FactHighlighted: a.highlight.IsHighlighted(0),
		ElapsedSeconds:  a.counter.Seconds(),
	}
}
