// Package itemlist renders the catalog as a scrollable list with a cursor
// and a marker on the playing item.
package itemlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/reel/internal/catalog"
	"github.com/llehouerou/reel/internal/icons"
	"github.com/llehouerou/reel/internal/keymap"
	"github.com/llehouerou/reel/internal/ui"
	"github.com/llehouerou/reel/internal/ui/cursor"
	"github.com/llehouerou/reel/internal/ui/render"
	"github.com/llehouerou/reel/internal/ui/styles"
)

// Model is the list component. The parent owns playback; the list only
// tracks the cursor and which row is playing.
type Model struct {
	ui.Base
	title       string
	items       []catalog.Item
	cursor      cursor.Cursor
	current     int
	placeholder string
}

// New creates an empty list.
func New(title, placeholder string) Model {
	return Model{
		title:       title,
		cursor:      cursor.New(ui.ScrollMargin),
		current:     catalog.NotFound,
		placeholder: placeholder,
	}
}

// SetItems replaces the rows.
func (m *Model) SetItems(items []catalog.Item) {
	m.items = items
	m.cursor.ClampToBounds(len(items))
	if m.current >= len(items) {
		m.current = catalog.NotFound
	}
}

// Len returns the number of rows.
func (m Model) Len() int {
	return len(m.items)
}

// SetCurrent marks row i as playing; catalog.NotFound clears the marker.
func (m *Model) SetCurrent(i int) {
	m.current = i
}

// Current returns the playing row or catalog.NotFound.
func (m Model) Current() int {
	return m.current
}

// Cursor returns the row under the cursor, or catalog.NotFound when empty.
func (m Model) Cursor() int {
	if len(m.items) == 0 {
		return catalog.NotFound
	}
	return m.cursor.Pos()
}

// HandleAction applies a cursor movement. It reports whether the action
// was a movement.
func (m *Model) HandleAction(a keymap.Action) bool {
	n, h := len(m.items), m.ListHeight(ui.PanelOverhead)
	switch a { //nolint:exhaustive // only cursor actions
	case keymap.ActionMoveUp:
		m.cursor.Move(-1, n, h)
	case keymap.ActionMoveDown:
		m.cursor.Move(1, n, h)
	case keymap.ActionJumpStart:
		m.cursor.JumpStart()
	case keymap.ActionJumpEnd:
		m.cursor.JumpEnd(n, h)
	case keymap.ActionJumpToNow:
		if m.current >= 0 {
			m.cursor.Jump(m.current, n, h)
		}
	default:
		return false
	}
	return true
}

// View renders the list inside a panel of the component's size.
func (m Model) View() string {
	t := styles.T()
	s := t.S()
	width := max(m.Width()-ui.BorderHeight, 0)
	height := m.ListHeight(ui.PanelOverhead)

	var b strings.Builder
	header := render.Row(s.Title.Render(m.title), s.Muted.Render(countLabel(len(m.items))), width)
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(s.Subtle.Render(strings.Repeat("─", width)))

	if len(m.items) == 0 {
		b.WriteString("\n")
		b.WriteString(s.Muted.Render(render.TruncateAndPad("No playable items", width)))
	}

	start, end := m.cursor.VisibleRange(len(m.items), height)
	for i := start; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(m.renderRow(i, width))
	}

	return t.Panel(m.IsFocused()).
		Width(width).
		Height(max(m.Height()-ui.BorderHeight, 0)).
		Render(b.String())
}

func (m Model) renderRow(i, width int) string {
	s := styles.T().S()
	item := m.items[i]

	current := icons.Playing() + " "
	markerWidth := lipgloss.Width(current)
	marker := strings.Repeat(" ", markerWidth)
	if i == m.current {
		marker = current
	}
	name := icons.FormatItem(item.Name)
	style := s.Base
	if item.Name == "" {
		name = m.placeholder
		style = s.Muted
	}
	if i == m.current {
		style = s.Playing
	}
	if i == m.cursor.Pos() && m.IsFocused() {
		style = style.Background(styles.T().BgCursor)
	}

	return style.Render(marker + render.TruncateAndPad(name, max(width-markerWidth, 0)))
}

func countLabel(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}
