package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// HelpKeys adapts a Resolver to the bubbles help component.
type HelpKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

var _ help.KeyMap = HelpKeys{}

var (
	shortActions = []Action{ActionSelect, ActionPlayAll, ActionNextItem, ActionPrevItem, ActionStop, ActionHelp, ActionQuit}
	helpContexts = []string{"playback", "list", "global"}
)

// NewHelpKeys builds the short and full help views from the resolver's
// current keys.
func NewHelpKeys(r *Resolver) HelpKeys {
	var h HelpKeys
	for _, a := range shortActions {
		if b, ok := r.binding(a); ok {
			h.short = append(h.short, b)
		}
	}
	for _, ctx := range helpContexts {
		var column []key.Binding
		for _, kb := range ByContext(ctx) {
			if b, ok := r.binding(kb.Action); ok {
				column = append(column, b)
			}
		}
		if len(column) > 0 {
			h.full = append(h.full, column)
		}
	}
	return h
}

func (r *Resolver) binding(a Action) (key.Binding, bool) {
	keys := r.KeysFor(a)
	if len(keys) == 0 {
		return key.Binding{}, false
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), strings.ToLower(r.Describe(a))),
	), true
}

// ShortHelp implements help.KeyMap.
func (h HelpKeys) ShortHelp() []key.Binding { return h.short }

// FullHelp implements help.KeyMap.
func (h HelpKeys) FullHelp() [][]key.Binding { return h.full }
