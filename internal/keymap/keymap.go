package keymap

// Binding ties keys to an action. Context groups bindings in the help view.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "list"
}

// Bindings is the default key map.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},

	// Playback
	{ActionSelect, []string{"enter"}, "Play item", "playback"},
	{ActionPlayAll, []string{"a"}, "Play all", "playback"},
	{ActionStop, []string{"s", "esc"}, "Stop", "playback"},
	{ActionNextItem, []string{"n", "pgdown"}, "Next item", "playback"},
	{ActionPrevItem, []string{"p", "pgup"}, "Previous item", "playback"},

	// List
	{ActionMoveUp, []string{"k", "up"}, "Move up", "list"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "list"},
	{ActionJumpStart, []string{"g", "home"}, "First item", "list"},
	{ActionJumpEnd, []string{"G", "end"}, "Last item", "list"},
	{ActionJumpToNow, []string{"."}, "Go to playing item", "list"},
}

// ByContext returns the default bindings of one context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
