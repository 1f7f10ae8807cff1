package app

import "github.com/llehouerou/reel/internal/playback"

// NoSource marks events that did not come from a watched source.
const NoSource = -1

// EventMsg carries an event from source index Source into Update.
type EventMsg struct {
	Event  playback.Event
	Source int
}

// SourceClosedMsg reports that a source's channel was closed.
type SourceClosedMsg struct {
	Source int
}

// StderrMsg carries one captured stderr line.
type StderrMsg struct {
	Line string
}
