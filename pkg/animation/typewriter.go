package animation

import (
	"strings"
	"time"

	"github.com/go-drift/reveal/pkg/core"
	"github.com/rivo/uniseg"
)

// DefaultCaretBlink is the caret toggle interval (a 1s on/off cycle).
const DefaultCaretBlink = 500 * time.Millisecond

const (
	typewriterTypeTimer  = "typewriter/type"
	typewriterCaretTimer = "typewriter/caret"
)

// Typewriter reveals a fixed string one character at a time.
//
// A character is a grapheme cluster, so accented letters and emoji appear
// whole. Nothing runs until the Typewriter is both activated and armed;
// arming lets a page hold the title back until its entry transition has
// finished.
//
// While typing, a caret blinks on its own timer. The caret is visible only
// while text remains to be revealed; its blink timer keeps running until
// Deactivate. An empty text never starts the caret.
type Typewriter struct {
	core.Notifier
	runner

	// CaretBlink is the caret toggle interval. Set before Activate.
	CaretBlink time.Duration

	units    []string
	interval time.Duration
	revealed int
	armed    bool
	phase    bool
}

// TypewriterSnapshot is the read-only state handed to renderers.
type TypewriterSnapshot struct {
	// Text is the revealed prefix.
	Text     string `json:"text"`
	Revealed int    `json:"revealed"`
	Len      int    `json:"len"`
	Done     bool   `json:"done"`
	// CaretVisible is true while text remains to be revealed.
	CaretVisible bool `json:"caretVisible"`
	// CaretOn is CaretVisible combined with the blink phase.
	CaretOn bool `json:"caretOn"`
}

// NewTypewriter creates a Typewriter revealing text one character per
// interval. An empty text is complete immediately.
func NewTypewriter(text string, interval time.Duration) (*Typewriter, error) {
	if err := validateInterval("animation.NewTypewriter", interval); err != nil {
		return nil, err
	}
	return &Typewriter{
		CaretBlink: DefaultCaretBlink,
		units:      splitGraphemes(text),
		interval:   interval,
	}, nil
}

// Activate starts the Typewriter on sched. Typing begins immediately if
// the Typewriter is already armed, otherwise on Arm.
func (t *Typewriter) Activate(sched Scheduler) error {
	if err := validateInterval("animation.Typewriter.Activate", t.CaretBlink); err != nil {
		return err
	}
	if err := t.begin("animation.Typewriter.Activate", sched); err != nil {
		return err
	}
	t.revealed = 0
	t.phase = true
	t.status = StatusWaiting
	if t.armed {
		t.start()
	}
	return nil
}

// Arm opens the gate. Arming twice has no further effect.
func (t *Typewriter) Arm() {
	if t.armed {
		return
	}
	t.armed = true
	if t.Active() {
		t.start()
	}
}

// Armed reports whether Arm has been called.
func (t *Typewriter) Armed() bool {
	return t.armed
}

func (t *Typewriter) start() {
	if t.revealed >= len(t.units) {
		t.status = StatusCompleted
		t.Notify()
		return
	}
	t.session.Every(typewriterCaretTimer, t.CaretBlink, t.blink)
	t.status = StatusRunning
	t.session.Every(typewriterTypeTimer, t.interval, t.tick)
}

func (t *Typewriter) tick() {
	if t.revealed < len(t.units) {
		t.revealed++
	}
	if t.revealed == len(t.units) {
		t.session.Cancel(typewriterTypeTimer)
		t.status = StatusCompleted
	}
	t.Notify()
}

func (t *Typewriter) blink() {
	t.phase = !t.phase
	if t.CaretVisible() {
		t.Notify()
	}
}

// Revealed returns the number of characters revealed so far.
func (t *Typewriter) Revealed() int {
	return t.revealed
}

// Len returns the number of characters in the source text.
func (t *Typewriter) Len() int {
	return len(t.units)
}

// Text returns the revealed prefix.
func (t *Typewriter) Text() string {
	return strings.Join(t.units[:t.revealed], "")
}

// Done reports whether the whole text is revealed. An empty text is done
// from the start.
func (t *Typewriter) Done() bool {
	if len(t.units) == 0 {
		return true
	}
	return t.armed && t.revealed == len(t.units)
}

// CaretVisible reports whether the caret should be shown at all.
func (t *Typewriter) CaretVisible() bool {
	return t.revealed < len(t.units)
}

// Snapshot returns the current state.
func (t *Typewriter) Snapshot() TypewriterSnapshot {
	visible := t.CaretVisible()
	return TypewriterSnapshot{
		Text:         t.Text(),
		Revealed:     t.revealed,
		Len:          len(t.units),
		Done:         t.Done(),
		CaretVisible: visible,
		CaretOn:      visible && t.phase,
	}
}

func splitGraphemes(s string) []string {
	var units []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		units = append(units, g.Str())
	}
	return units
}
