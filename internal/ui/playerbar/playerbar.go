// Package playerbar renders the now-playing bar.
package playerbar

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/reel/internal/icons"
	"github.com/llehouerou/reel/internal/ui"
	"github.com/llehouerou/reel/internal/ui/render"
	"github.com/llehouerou/reel/internal/ui/styles"
)

// Height is the rendered height: top border, content, bottom border.
const Height = 3

// State holds everything the bar shows.
type State struct {
	Active bool
	Label  string
	Index  int // 0-based; negative hides the position
	Total  int
}

// Render returns the bar for the given width, or "" when inactive.
func Render(s State, width int) string {
	if !s.Active {
		return ""
	}
	t := styles.T()

	// border (2) + padding (4)
	inner := max(width-6, 0)

	position := ""
	if s.Index >= 0 && s.Total > 0 {
		position = fmt.Sprintf("%d/%d", s.Index+1, s.Total)
	}
	prefix := icons.Playing() + "  "
	labelWidth := max(inner-lipgloss.Width(prefix)-lipgloss.Width(position)-1, ui.MinLabelWidth)
	label := render.Truncate(s.Label, labelWidth)

	left := t.S().Playing.Render(prefix + label)
	line := render.Row(left, t.S().Muted.Render(position), inner)

	return t.Panel(false).Padding(0, 2).Width(max(width-2, 0)).Render(line)
}
