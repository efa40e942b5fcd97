package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/reveal/pkg/pages"
)

const (
	defaultWidth = 96
	cardHeight   = 6
	cardGap      = 1
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff6b35"))

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#764ba2")).
			Background(lipgloss.Color("#667eea")).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2)

	statsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b4513"))

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#667eea"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	codeStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1e1e1e")).
			Foreground(lipgloss.Color("#00ff00")).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// region is a hoverable rectangle in screen cells, Max exclusive.
type region struct {
	index                  int
	minX, minY, maxX, maxY int
}

func hit(regions []region, x, y int) int {
	for _, r := range regions {
		if x >= r.minX && x < r.maxX && y >= r.minY && y < r.maxY {
			return r.index
		}
	}
	return -1
}

// render draws a frame and reports where its hoverable items landed.
func render(f Frame, width int) (string, []region) {
	if width <= 0 {
		width = defaultWidth
	}
	switch s := f.State.(type) {
	case pages.AboutSnapshot:
		return renderAbout(s, width)
	case pages.TechnologiesSnapshot:
		return renderTechnologies(s, width)
	default:
		return "", nil
	}
}

func renderAbout(s pages.AboutSnapshot, width int) (string, []region) {
	if !s.Visible {
		return "", nil
	}

	title := s.Title.Text
	if s.Title.CaretOn {
		title += "|"
	}
	titleBlock := titleStyle.Render(title)

	style := bannerStyle.Width(min(width, 72) - 2)
	if s.FactHighlighted {
		style = style.
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("#f7931e")).
			Bold(true)
	}
	banner := style.Render(strings.TrimSpace(s.Banner + " " + s.Fact.Item))

	stats := statsStyle.Render(fmt.Sprintf("⏱️ Вы на сайте уже: %d сек", s.ElapsedSeconds))

	bannerTop := lipgloss.Height(titleBlock) + 1
	regions := []region{{
		index: 0,
		minX:  0,
		minY:  bannerTop,
		maxX:  lipgloss.Width(banner),
		maxY:  bannerTop + lipgloss.Height(banner),
	}}
	return lipgloss.JoinVertical(lipgloss.Left, titleBlock, "", banner, "", stats), regions
}

func renderTechnologies(s pages.TechnologiesSnapshot, width int) (string, []region) {
	var blocks []string
	top := 0
	if s.Heading != "" {
		heading := headingStyle.Render(s.Heading)
		blocks = append(blocks, heading, "")
		top = lipgloss.Height(heading) + 1
	}

	columns := max(s.Columns, 1)
	// Each card adds a border on both sides.
	cardWidth := max((width-(columns-1)*cardGap)/columns-2, 16)
	gap := strings.Repeat(" ", cardGap)

	var (
		regions []region
		rows    []string
		row     []string
	)
	y := top
	for i, c := range s.Cards {
		card := renderCard(c, cardWidth)
		x := 0
		for _, prev := range row {
			x += lipgloss.Width(prev) + cardGap
		}
		regions = append(regions, region{
			index: i,
			minX:  x,
			minY:  y,
			maxX:  x + lipgloss.Width(card),
			maxY:  y + lipgloss.Height(card),
		})
		row = append(row, card)
		if len(row) == columns || i == len(s.Cards)-1 {
			joined := joinRow(row, gap)
			rows = append(rows, joined)
			y += lipgloss.Height(joined)
			row = nil
		}
	}
	blocks = append(blocks, lipgloss.JoinVertical(lipgloss.Left, rows...), "")

	code := s.Code.Text
	if s.Code.CursorVisible {
		code += "_"
	}
	panel := codeStyle.Width(min(width, 72)).Render(mutedStyle.Render("📁 models.py") + "\n" + code)
	blocks = append(blocks, panel)

	return lipgloss.JoinVertical(lipgloss.Left, blocks...), regions
}

func joinRow(cards []string, gap string) string {
	parts := make([]string, 0, 2*len(cards))
	for i, c := range cards {
		if i > 0 {
			parts = append(parts, gap)
		}
		parts = append(parts, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderCard(c pages.CardSnapshot, width int) string {
	box := lipgloss.NewStyle().
		Width(width).
		Height(cardHeight).
		Padding(0, 1)

	// Hidden cards keep their slot so the grid does not shift.
	if !c.Visible {
		return box.Border(lipgloss.HiddenBorder()).Render("")
	}

	accent := lipgloss.Color(c.Color)
	box = box.Border(lipgloss.RoundedBorder()).BorderForeground(accent)
	if c.Highlighted {
		box = box.Border(lipgloss.ThickBorder())
	}

	inner := width - 2
	name := lipgloss.NewStyle().Bold(true).Foreground(accent).Render(strings.TrimSpace(c.Icon + " " + c.Name))
	desc := mutedStyle.Width(inner).Render(c.Description)
	level := lipgloss.NewStyle().Foreground(accent).Render(bar(c.Level, inner-5) + fmt.Sprintf(" %3d%%", c.Level))

	return box.Render(lipgloss.JoinVertical(lipgloss.Left, name, desc, level))
}

// bar draws a level meter width cells wide.
func bar(level, width int) string {
	if width < 1 {
		return ""
	}
	level = min(max(level, 0), 100)
	filled := width * level / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func help(page string) string {
	return helpStyle.Render(fmt.Sprintf("%s · tab: next page · ←↑↓→: highlight · q: quit", page))
}
