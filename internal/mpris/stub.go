//go:build !linux

package mpris

import (
	"go.uber.org/zap"

	"github.com/llehouerou/reel/internal/playback"
)

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ *playback.Controller, _ *zap.Logger) (*Adapter, error) {
	return &Adapter{}, nil
}

// Events returns nil: no events are ever produced.
func (a *Adapter) Events() <-chan playback.Event {
	return nil
}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
