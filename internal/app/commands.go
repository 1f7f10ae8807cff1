package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reel/internal/playback"
)

// waitForChannel creates a command that waits for a value from ch and
// converts it to a message. ok is false once ch is closed.
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

// watchSource waits for the next event of source i.
func (m Model) watchSource(i int) tea.Cmd {
	return waitForChannel(m.sources[i].Events(), func(ev playback.Event, ok bool) tea.Msg {
		if !ok {
			return SourceClosedMsg{Source: i}
		}
		return EventMsg{Event: ev, Source: i}
	})
}

// watchStderr waits for the next captured stderr line.
func (m Model) watchStderr() tea.Cmd {
	return waitForChannel(m.stderr, func(line string, ok bool) tea.Msg {
		if !ok {
			return nil
		}
		return StderrMsg{Line: line}
	})
}
