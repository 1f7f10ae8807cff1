package ui

import (
	"sync"

	"github.com/llehouerou/reel/internal/playback"
)

// Surface is the TUI's PresentationSink. The controller writes to it; the
// view reads it on every render.
type Surface struct {
	mu     sync.RWMutex
	label  string
	active bool
}

var _ playback.PresentationSink = (*Surface)(nil)

// NewSurface returns an inactive surface with an empty label.
func NewSurface() *Surface {
	return &Surface{}
}

// SetLabel implements playback.PresentationSink.
func (s *Surface) SetLabel(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.label = text
}

// SetActive implements playback.PresentationSink.
func (s *Surface) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

// Label returns the last label set.
func (s *Surface) Label() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.label
}

// Active reports whether the playing surface is shown.
func (s *Surface) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}
