package animation

import (
	"strings"
	"time"

	"github.com/go-drift/reveal/pkg/core"
	"github.com/go-drift/reveal/pkg/errors"
)

const typistTimer = "typist/line"

// Typist appends the lines of a script one per tick, then clears and
// starts over, forever.
//
// The tick after the last line is appended clears the text; the first line
// of the next cycle appears one tick later. Deactivate is the only way to
// stop a Typist.
type Typist struct {
	core.Notifier
	runner

	script   []string
	interval time.Duration
	cursor   int
	text     strings.Builder
	cycle    int
}

// TypistSnapshot is the read-only state handed to renderers.
type TypistSnapshot struct {
	// Text is script[0:Cursor], each line followed by "\n".
	Text   string `json:"text"`
	Cursor int    `json:"cursor"`
	Lines  int    `json:"lines"`
	// CursorVisible is true whenever Text is non-empty.
	CursorVisible bool `json:"cursorVisible"`
	// Cycle counts completed restarts.
	Cycle int `json:"cycle"`
}

// NewTypist creates a Typist over a copy of script.
func NewTypist(script []string, interval time.Duration) (*Typist, error) {
	if len(script) == 0 {
		return nil, errors.Config("animation.NewTypist", errors.ErrEmptyItems)
	}
	if err := validateInterval("animation.NewTypist", interval); err != nil {
		return nil, err
	}
	return &Typist{
		script:   append([]string(nil), script...),
		interval: interval,
	}, nil
}

// Activate starts typing from an empty buffer.
func (t *Typist) Activate(sched Scheduler) error {
	if err := t.begin("animation.Typist.Activate", sched); err != nil {
		return err
	}
	t.cursor = 0
	t.cycle = 0
	t.text.Reset()
	t.session.Every(typistTimer, t.interval, t.tick)
	return nil
}

func (t *Typist) tick() {
	if t.cursor < len(t.script) {
		t.text.WriteString(t.script[t.cursor])
		t.text.WriteByte('\n')
		t.cursor++
	} else {
		t.text.Reset()
		t.cursor = 0
		t.cycle++
	}
	t.Notify()
}

// Text returns the accumulated text.
func (t *Typist) Text() string {
	return t.text.String()
}

// Cursor returns the number of lines typed in the current cycle.
func (t *Typist) Cursor() int {
	return t.cursor
}

// Snapshot returns the current state.
func (t *Typist) Snapshot() TypistSnapshot {
	text := t.text.String()
	return TypistSnapshot{
		Text:          text,
		Cursor:        t.cursor,
		Lines:         len(t.script),
		CursorVisible: text != "",
		Cycle:         t.cycle,
	}
}
