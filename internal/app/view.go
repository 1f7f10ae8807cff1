// internal/app/view.go
package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/reel/internal/ui/playerbar"
	"github.com/llehouerou/reel/internal/ui/render"
	"github.com/llehouerou/reel/internal/ui/styles"
)

// View renders the application UI.
func (m Model) View() string {
	if m.Width == 0 {
		return ""
	}

	parts := []string{m.List.View()}
	if bar := playerbar.Render(m.playerState(), m.Width); bar != "" {
		parts = append(parts, bar)
	}
	if m.StatusMsg != "" {
		parts = append(parts, styles.T().S().Error.Render(render.Truncate(m.StatusMsg, m.Width)))
	}
	parts = append(parts, m.helpView())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) playerState() playerbar.State {
	return playerbar.State{
		Active: m.surface.Active(),
		Label:  m.surface.Label(),
		Index:  m.List.Current(),
		Total:  m.List.Len(),
	}
}

func (m Model) helpView() string {
	return m.help.View(m.helpKeys)
}
