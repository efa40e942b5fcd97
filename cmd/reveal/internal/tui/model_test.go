package tui

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/reveal/pkg/animation"
	"github.com/go-drift/reveal/pkg/content"
	"github.com/go-drift/reveal/pkg/pages"
)

const waitTimeout = 2 * time.Second

func startDriver(t *testing.T) *Driver {
	t.Helper()
	loop := animation.NewLoopScheduler(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-loop.Done()
	})

	timings := pages.DefaultTimings()
	timings.Entry = time.Millisecond
	timings.Card = time.Millisecond
	return NewDriver(loop, content.Default(), timings, slog.New(slog.DiscardHandler))
}

// waitFrame receives frames until ok accepts one.
func waitFrame(t *testing.T, d *Driver, ok func(Frame) bool) Frame {
	t.Helper()
	deadline := time.After(waitTimeout)
	for {
		select {
		case f := <-d.Frames():
			if ok(f) {
				return f
			}
		case <-deadline:
			t.Fatal("no matching frame")
			return Frame{}
		}
	}
}

func onPage(name string) func(Frame) bool {
	return func(f Frame) bool { return f.Page == name }
}

func cardHighlighted(i int) func(Frame) bool {
	return func(f Frame) bool {
		s, ok := f.State.(pages.TechnologiesSnapshot)
		return ok && s.Cards[i].Highlighted
	}
}

func TestModel_SwitchAndHover(t *testing.T) {
	d := startDriver(t)
	m := NewModel(d, "")
	if m.Page() != pages.NameAbout {
		t.Fatalf("start page = %q", m.Page())
	}
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init should wait for frames")
	}

	next, cmd := m.Update(frameMsg(waitFrame(t, d, onPage(pages.NameAbout))))
	m = next.(Model)
	if m.frame.Page != pages.NameAbout || cmd == nil {
		t.Fatalf("frame not applied: %+v", m.frame)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.Page() != pages.NameTechnologies {
		t.Fatalf("page after tab = %q", m.Page())
	}

	// A late frame from the old page is ignored.
	next, _ = m.Update(frameMsg{Page: pages.NameAbout})
	m = next.(Model)
	if m.frame.Page != "" {
		t.Errorf("stale frame applied: %+v", m.frame)
	}

	next, _ = m.Update(frameMsg(waitFrame(t, d, onPage(pages.NameTechnologies))))
	m = next.(Model)
	if len(m.regions) != 6 {
		t.Fatalf("got %d regions, want 6", len(m.regions))
	}

	r := m.regions[0]
	next, _ = m.Update(tea.MouseMsg{X: r.minX + 1, Y: r.minY + 1, Action: tea.MouseActionMotion})
	m = next.(Model)
	if m.hovered != 0 {
		t.Errorf("hovered = %d", m.hovered)
	}
	waitFrame(t, d, cardHighlighted(0))

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	waitFrame(t, d, cardHighlighted(3))

	if !d.Input(func(p pages.Page) {}) {
		t.Error("Input rejected on a running loop")
	}
	if err := d.Close(context.Background()); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestModel_Quit(t *testing.T) {
	d := startDriver(t)
	m := NewModel(d, pages.NameTechnologies)

	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("%s: no command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: command does not quit", key)
		}
	}
}

func TestModel_ViewShowsHelp(t *testing.T) {
	d := startDriver(t)
	m := NewModel(d, pages.NameTechnologies)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	if m.width != 120 {
		t.Errorf("width = %d", m.width)
	}
	if view := m.View(); !strings.Contains(view, "tab: next page") {
		t.Errorf("view = %q", view)
	}
}

func TestDriver_UnknownPage(t *testing.T) {
	d := startDriver(t)
	d.Show("contact")
	if err := d.Close(context.Background()); err != nil {
		t.Fatal(err)
	}
	select {
	case f := <-d.Frames():
		t.Errorf("unexpected frame %+v", f)
	default:
	}
}
