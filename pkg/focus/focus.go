// Package focus tracks which item of a list or grid is highlighted.
//
// A Highlight holds at most one hovered index. Pointer events drive it
// through Enter and Leave; keyboard traversal drives it through Move. It
// owns no timers and changes only in response to those calls.
package focus

import "github.com/go-drift/reveal/pkg/core"

// TraversalDirection indicates the focus traversal direction.
type TraversalDirection int

const (
	// TraversalDirectionUp moves focus upward.
	TraversalDirectionUp TraversalDirection = iota

	// TraversalDirectionDown moves focus downward.
	TraversalDirectionDown

	// TraversalDirectionLeft moves focus leftward.
	TraversalDirectionLeft

	// TraversalDirectionRight moves focus rightward.
	TraversalDirectionRight
)

// String returns the direction name.
func (d TraversalDirection) String() string {
	switch d {
	case TraversalDirectionUp:
		return "up"
	case TraversalDirectionDown:
		return "down"
	case TraversalDirectionLeft:
		return "left"
	case TraversalDirectionRight:
		return "right"
	default:
		return "unknown"
	}
}

// Highlight tracks the hovered item among count items laid out in rows of
// columns. The zero value tracks an unbounded list with no grid.
type Highlight struct {
	core.Notifier

	count   int
	columns int
	hovered int
	has     bool
}

// HighlightSnapshot is the read-only state handed to renderers.
type HighlightSnapshot struct {
	Hovered int  `json:"hovered"`
	Active  bool `json:"active"`
}

// NewHighlight returns a tracker over count items in rows of columns.
// Columns below 1 are treated as 1.
func NewHighlight(count, columns int) *Highlight {
	if columns < 1 {
		columns = 1
	}
	return &Highlight{count: count, columns: columns}
}

// Enter marks i as hovered. Indexes outside the tracked range are ignored.
func (h *Highlight) Enter(i int) {
	if !h.inRange(i) {
		return
	}
	h.set(i)
}

// Leave clears the highlight if i is the hovered item. A late Leave for an
// item the pointer already moved past is ignored.
func (h *Highlight) Leave(i int) {
	if h.has && h.hovered == i {
		h.Clear()
	}
}

// Clear removes any highlight.
func (h *Highlight) Clear() {
	if !h.has {
		return
	}
	h.has = false
	h.hovered = 0
	h.Notify()
}

// IsHighlighted reports whether i is the hovered item.
func (h *Highlight) IsHighlighted(i int) bool {
	return h.has && h.hovered == i
}

// Hovered returns the hovered index, if any.
func (h *Highlight) Hovered() (int, bool) {
	return h.hovered, h.has
}

// Count returns the number of tracked items, or 0 when unbounded.
func (h *Highlight) Count() int {
	return h.count
}

// Move shifts the highlight one step in direction. Left and right move by
// one item, up and down by one row; moves that would leave the grid are
// dropped. With nothing hovered, Move highlights item 0. Reports whether
// the highlight changed.
func (h *Highlight) Move(direction TraversalDirection) bool {
	if h.count <= 0 {
		return false
	}
	if !h.has {
		h.set(0)
		return true
	}

	columns := h.columns
	if columns < 1 {
		columns = 1
	}
	next := h.hovered
	switch direction {
	case TraversalDirectionLeft:
		next--
	case TraversalDirectionRight:
		next++
	case TraversalDirectionUp:
		next -= columns
	case TraversalDirectionDown:
		next += columns
	}
	if !h.inRange(next) || next == h.hovered {
		return false
	}
	h.set(next)
	return true
}

// Snapshot returns the current state.
func (h *Highlight) Snapshot() HighlightSnapshot {
	return HighlightSnapshot{Hovered: h.hovered, Active: h.has}
}

func (h *Highlight) set(i int) {
	if h.has && h.hovered == i {
		return
	}
	h.hovered = i
	h.has = true
	h.Notify()
}

func (h *Highlight) inRange(i int) bool {
	if i < 0 {
		return false
	}
	return h.count <= 0 || i < h.count
}
