package playback

// State represents the playback state.
type State int

const (
	StateIdle State = iota
	StatePlaying
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePlaying:
		return "Playing"
	default:
		return "Unknown"
	}
}

// IsActive returns true if an item is playing.
func (s State) IsActive() bool {
	return s == StatePlaying
}
