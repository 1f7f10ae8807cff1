// internal/app/app.go
package app

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/reel/internal/keymap"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/ui"
	"github.com/llehouerou/reel/internal/ui/itemlist"
)

// Options wires a Model to a running session.
type Options struct {
	Session *playback.Session
	Surface *ui.Surface

	// Sources deliver media-end and remote control events.
	Sources []playback.EventSource
	// Stderr carries captured output of audio libraries and mpv. May be nil.
	Stderr <-chan string

	Title       string
	Placeholder string
	Bindings    []keymap.Binding
	// Start, if set, is dispatched once the program runs: play-all, or a
	// select to resume where the last session stopped.
	Start  *playback.Event
	Logger *zap.Logger
}

// Model is the root bubbletea model.
type Model struct {
	session *playback.Session
	surface *ui.Surface
	sources []playback.EventSource
	stderr  <-chan string
	start   *playback.Event
	log     *zap.Logger

	Keys     *keymap.Resolver
	helpKeys keymap.HelpKeys
	help     help.Model
	List     itemlist.Model

	StatusMsg string
	Width     int
	Height    int
}

// New creates the model. The session's controller must use opts.Surface
// as its presentation sink.
func New(opts Options) Model {
	bindings := opts.Bindings
	if bindings == nil {
		bindings = keymap.Bindings
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	placeholder := opts.Placeholder
	if placeholder == "" {
		placeholder = playback.DefaultPlaceholder
	}

	keys := keymap.NewResolver(bindings)
	list := itemlist.New(opts.Title, placeholder)
	list.SetItems(opts.Session.Catalog.Items())
	list.SetFocused(true)

	m := Model{
		session:  opts.Session,
		surface:  opts.Surface,
		sources:  opts.Sources,
		stderr:   opts.Stderr,
		start:    opts.Start,
		log:      log,
		Keys:     keys,
		helpKeys: keymap.NewHelpKeys(keys),
		help:     help.New(),
		List:     list,
	}
	m.syncCurrent()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.sources)+2)
	for i := range m.sources {
		cmds = append(cmds, m.watchSource(i))
	}
	cmds = append(cmds, m.watchStderr())
	if m.start != nil {
		ev := *m.start
		cmds = append(cmds, func() tea.Msg {
			return EventMsg{Event: ev, Source: NoSource}
		})
	}
	return tea.Batch(cmds...)
}

// dispatch runs ev through the controller and brings the list in line.
func (m *Model) dispatch(ev playback.Event) {
	m.log.Debug("dispatch", zap.Stringer("kind", ev.Kind), zap.Int("index", ev.Index))
	m.session.Dispatch(ev)
	m.syncCurrent()
	if ev.Kind != playback.EventStop {
		m.List.HandleAction(keymap.ActionJumpToNow)
	}
	m.resize()
}

func (m *Model) syncCurrent() {
	m.List.SetCurrent(m.session.Controller.Index())
}
