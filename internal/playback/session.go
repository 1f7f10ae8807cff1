package playback

import (
	"context"

	"github.com/llehouerou/reel/internal/catalog"
)

// Session owns the catalog and the controller of one playback session.
// It is built by the entry point and passed down; there is no global state.
type Session struct {
	Catalog    *catalog.Catalog
	Controller *Controller
}

// NewSession builds a session over cat with the given sinks.
func NewSession(cat *catalog.Catalog, media MediaSink, view PresentationSink, opts ...Option) *Session {
	return &Session{
		Catalog:    cat,
		Controller: NewController(cat, media, view, opts...),
	}
}

// Dispatch applies ev to the session's controller.
func (s *Session) Dispatch(ev Event) {
	Dispatch(s.Controller, ev)
}

// Run wires sources to the controller. See Wire.
func (s *Session) Run(ctx context.Context, sources ...EventSource) error {
	return Wire(ctx, s.Controller, sources...)
}

// Close ends the controller's subscriptions.
func (s *Session) Close() error {
	return s.Controller.Close()
}
