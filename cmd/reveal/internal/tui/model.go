package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/reveal/pkg/focus"
	"github.com/go-drift/reveal/pkg/pages"
)

type frameMsg Frame

// waitForFrame blocks on the driver's frame channel and hands the next frame
// to the program.
func waitForFrame(frames <-chan Frame) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-frames
		if !ok {
			return nil
		}
		return frameMsg(f)
	}
}

var arrows = map[string]focus.TraversalDirection{
	"up":    focus.TraversalDirectionUp,
	"down":  focus.TraversalDirectionDown,
	"left":  focus.TraversalDirectionLeft,
	"right": focus.TraversalDirectionRight,
}

// Model is the bubbletea model for the page viewer.
type Model struct {
	driver  *Driver
	page    string
	frame   Frame
	width   int
	height  int
	hovered int
	regions []region
}

// NewModel returns a model that starts on the named page.
func NewModel(driver *Driver, page string) Model {
	if page == "" {
		page = pages.NameAbout
	}
	return Model{driver: driver, page: page, hovered: -1}
}

// Page reports the page the model last asked the driver to show.
func (m Model) Page() string {
	return m.page
}

func (m Model) Init() tea.Cmd {
	m.driver.Show(m.page)
	return waitForFrame(m.driver.Frames())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		// Frames of a page already switched away from are stale.
		if msg.Page == m.page {
			m.frame = Frame(msg)
			_, m.regions = render(m.frame, m.width)
		}
		return m, waitForFrame(m.driver.Frames())

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		_, m.regions = render(m.frame, m.width)
		return m, nil

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.page = pages.Next(m.page)
			m.frame = Frame{}
			m.regions = nil
			m.hovered = -1
			m.driver.Show(m.page)
		case "esc":
			m.hover(-1)
		default:
			if dir, ok := arrows[key]; ok {
				m.driver.Input(func(p pages.Page) { p.Move(dir) })
			}
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			m.hover(hit(m.regions, msg.X, msg.Y))
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) hover(index int) {
	prev := m.hovered
	if index == prev {
		return
	}
	m.hovered = index
	m.driver.Input(func(p pages.Page) {
		if prev >= 0 {
			p.Leave(prev)
		}
		if index >= 0 {
			p.Enter(index)
		}
	})
}

func (m Model) View() string {
	body, _ := render(m.frame, m.width)
	return lipgloss.JoinVertical(lipgloss.Left, body, "", help(m.page))
}
