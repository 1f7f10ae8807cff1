//go:build linux

// Package mpris exposes a playback session on D-Bus so desktop media keys
// and applets can drive it.
package mpris

import (
	"fmt"
	"hash/fnv"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"go.uber.org/zap"

	"github.com/llehouerou/reel/internal/playback"
)

const (
	busName         = "reel"
	eventBufferSize = 16
)

// Adapter publishes MPRIS calls as playback events. It never calls the
// controller's transitions itself: D-Bus methods run on their own goroutines.
type Adapter struct {
	server *server.Server
	events chan playback.Event
	done   chan struct{}
	log    *zap.Logger
}

// New creates and starts an adapter for c.
func New(c *playback.Controller, log *zap.Logger) (*Adapter, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Adapter{
		events: make(chan playback.Event, eventBufferSize),
		done:   make(chan struct{}),
		log:    log,
	}

	player := &playerAdapter{controller: c, emit: a.emit}
	a.server = server.NewServer(busName, &rootAdapter{}, player)

	go func() {
		if err := a.server.Listen(); err != nil {
			log.Warn("mpris server stopped", zap.Error(err))
		}
	}()

	return a, nil
}

// Events returns the events requested over D-Bus.
func (a *Adapter) Events() <-chan playback.Event {
	return a.events
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	select {
	case <-a.done:
		return nil
	default:
	}
	close(a.done)
	return a.server.Stop()
}

func (a *Adapter) emit(ev playback.Event) {
	select {
	case <-a.done:
		return
	default:
	}
	select {
	case a.events <- ev:
	default:
		a.log.Warn("dropping mpris event", zap.Stringer("kind", ev.Kind))
	}
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Reel", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"http", "https", "file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"video/mp4", "video/x-matroska", "video/x-msvideo"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter. Commands are
// emitted as events; properties are read from the controller.
type playerAdapter struct {
	controller *playback.Controller
	emit       func(playback.Event)
}

func (p *playerAdapter) Next() error {
	p.emit(playback.Event{Kind: playback.EventNext})
	return nil
}

func (p *playerAdapter) Previous() error {
	p.emit(playback.Event{Kind: playback.EventPrevious})
	return nil
}

// Pause stops: there is no paused state.
func (p *playerAdapter) Pause() error {
	return p.Stop()
}

func (p *playerAdapter) PlayPause() error {
	if p.controller.State().IsActive() {
		return p.Stop()
	}
	return p.Play()
}

func (p *playerAdapter) Stop() error {
	p.emit(playback.Event{Kind: playback.EventStop})
	return nil
}

// Play starts from the first item when idle.
func (p *playerAdapter) Play() error {
	if p.controller.State().IsActive() {
		return nil
	}
	p.emit(playback.Event{Kind: playback.EventPlayAll})
	return nil
}

func (p *playerAdapter) Seek(_ types.Microseconds) error {
	return nil // Not supported
}

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error {
	return nil // Not supported
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	if p.controller.State().IsActive() {
		return types.PlaybackStatusPlaying, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	item := p.controller.Current()
	if item == nil {
		return types.Metadata{}, nil
	}
	return types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(string(item.ID))),
		Title:   item.Name,
	}, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return 0, nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.controller.HasNext(), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.controller.HasPrevious(), nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return !p.controller.Catalog().IsEmpty(), nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.controller.State().IsActive(), nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
