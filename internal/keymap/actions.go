// Package keymap defines key bindings and action lookup for the TUI.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionSelect   Action = "select" // enter - play the item under the cursor
	ActionPlayAll  Action = "play_all"
	ActionStop     Action = "stop"
	ActionNextItem Action = "next_item"
	ActionPrevItem Action = "prev_item"

	// List navigation
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionJumpToNow Action = "jump_to_now" // cursor to the playing item
)
