// internal/app/update.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/llehouerou/reel/internal/keymap"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/ui/playerbar"
)

// Update handles messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg.String())

	case EventMsg:
		m.dispatch(msg.Event)
		if msg.Source == NoSource {
			return m, nil
		}
		return m, m.watchSource(msg.Source)

	case SourceClosedMsg:
		m.log.Debug("event source closed", zap.Int("source", msg.Source))
		return m, nil

	case StderrMsg:
		m.StatusMsg = msg.Line
		m.resize()
		return m, m.watchStderr()
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	action := m.Keys.Resolve(key)
	if action == "" {
		return m, nil
	}
	m.StatusMsg = ""

	switch action { //nolint:exhaustive // cursor actions fall through to the list
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	case keymap.ActionSelect:
		if i := m.List.Cursor(); i >= 0 {
			m.dispatch(playback.Event{Kind: playback.EventSelect, Index: i})
		}
	case keymap.ActionPlayAll:
		m.dispatch(playback.Event{Kind: playback.EventPlayAll})
	case keymap.ActionStop:
		m.dispatch(playback.Event{Kind: playback.EventStop})
	case keymap.ActionNextItem:
		m.dispatch(playback.Event{Kind: playback.EventNext})
	case keymap.ActionPrevItem:
		m.dispatch(playback.Event{Kind: playback.EventPrevious})
	default:
		m.List.HandleAction(action)
	}
	m.resize()
	return m, nil
}

// resize gives the list whatever the player bar, status and help leave.
func (m *Model) resize() {
	m.help.Width = m.Width
	used := lipgloss.Height(m.helpView())
	if m.surface.Active() {
		used += playerbar.Height
	}
	if m.StatusMsg != "" {
		used++
	}
	m.List.SetSize(m.Width, max(m.Height-used, 0))
}
