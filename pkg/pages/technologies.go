package pages

import (
	"github.com/go-drift/reveal/pkg/animation"
	"github.com/go-drift/reveal/pkg/content"
	"github.com/go-drift/reveal/pkg/core"
	"github.com/go-drift/reveal/pkg/focus"
)

// Technologies reveals the technology cards one after another and loops a
// code listing line by line. Cards can be highlighted by pointer or
// keyboard.
type Technologies struct {
	life    core.Lifecycle
	changes core.Notifier

	heading   string
	cards     *animation.Stagger[content.Technology]
	code      *animation.Typist
	highlight *focus.Highlight
	columns   int
}

// TechnologiesSnapshot is the read-only state of a Technologies page.
type TechnologiesSnapshot struct {
	Heading string                   `json:"heading,omitempty"`
	Columns int                      `json:"columns"`
	Cards   []CardSnapshot           `json:"cards"`
	Code    animation.TypistSnapshot `json:"code"`
}

// CardSnapshot is one card of a TechnologiesSnapshot.
type CardSnapshot struct {
	content.Technology
	Visible     bool `json:"visible"`
	Highlighted bool `json:"highlighted"`
}

var _ Page = (*Technologies)(nil)

// NewTechnologies builds a Technologies page. Zero timings take their
// defaults.
func NewTechnologies(c content.Technologies, t Timings) (*Technologies, error) {
	t = t.WithDefaults()
	if err := t.Validate(); err != nil {
		return nil, err
	}

	cards, err := animation.NewStagger(c.Items, t.Card)
	if err != nil {
		return nil, err
	}
	code, err := animation.NewTypist(c.Code, t.Code)
	if err != nil {
		return nil, err
	}

	p := &Technologies{
		heading:   c.Heading,
		cards:     cards,
		code:      code,
		highlight: focus.NewHighlight(len(c.Items), t.Columns),
		columns:   t.Columns,
	}
	p.highlight.AddListener(p.changes.Notify)
	return p, nil
}

// Name returns "technologies".
func (p *Technologies) Name() string {
	return NameTechnologies
}

// Mount starts the card reveal and the code loop.
func (p *Technologies) Mount(sched animation.Scheduler) error {
	if err := p.life.Begin(); err != nil {
		return err
	}
	// Subscribe before activating so the synchronous first card reaches
	// listeners.
	core.UseListenable(&p.life, p.cards, p.changes.Notify)
	core.UseListenable(&p.life, p.code, p.changes.Notify)

	if _, err := core.UseComponent(&p.life, sched, p.cards); err != nil {
		p.life.Dispose()
		return err
	}
	if _, err := core.UseComponent(&p.life, sched, p.code); err != nil {
		p.life.Dispose()
		return err
	}
	return nil
}

// Unmount deactivates every component.
func (p *Technologies) Unmount() {
	p.life.Dispose()
}

// Mounted reports whether the page is mounted.
func (p *Technologies) Mounted() bool {
	return p.life.Mounted()
}

// OnChange subscribes fn to page changes.
func (p *Technologies) OnChange(fn func()) func() {
	return p.changes.AddListener(fn)
}

// Pending returns the number of outstanding timers.
func (p *Technologies) Pending() int {
	return p.cards.Pending() + p.code.Pending()
}

// Enter highlights card i.
func (p *Technologies) Enter(i int) {
	p.highlight.Enter(i)
}

// Leave clears the highlight if card i holds it.
func (p *Technologies) Leave(i int) {
	p.highlight.Leave(i)
}

// Move walks the highlight across the card grid.
func (p *Technologies) Move(direction focus.TraversalDirection) bool {
	return p.highlight.Move(direction)
}

// Snapshot returns a TechnologiesSnapshot.
func (p *Technologies) Snapshot() any {
	return p.State()
}

// State returns the typed snapshot.
func (p *Technologies) State() TechnologiesSnapshot {
	items := p.cards.Items()
	cards := make([]CardSnapshot, len(items))
	for i, item := range items {
		cards[i] = CardSnapshot{
			Technology:  item,
			Visible:     p.cards.IsVisible(i),
			Highlighted: p.highlight.IsHighlighted(i),
		}
	}
	return TechnologiesSnapshot{
		Heading: p.heading,
		Columns: p.columns,
		Cards:   cards,
		Code:    p.code.Snapshot(),
	}
}
