package cli

import (
	"context"
	"errors"
	"slices"

	"go.uber.org/zap"

	"github.com/llehouerou/reel/internal/config"
	"github.com/llehouerou/reel/internal/errmsg"
	"github.com/llehouerou/reel/internal/mpv"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/player"
)

// mediaBackend is a media sink that also reports natural ends.
type mediaBackend interface {
	playback.MediaSink
	playback.EventSource
	Close() error
}

type beepBackend struct {
	*player.Player
}

func (b beepBackend) Close() error {
	b.Player.Close()
	return nil
}

func startBackend(ctx context.Context, name string, log *zap.Logger) (mediaBackend, error) {
	switch name {
	case config.BackendBeep:
		return beepBackend{player.New(player.WithLogger(log.Named("player")))}, nil
	case config.BackendMPV:
		mc := cfg.Media
		client := mpv.New(mpv.Config{
			Path:           mc.MPVPath,
			Socket:         mc.Socket,
			Spawn:          mc.Spawn,
			ConnectTimeout: mc.ConnectTimeout,
			RequestTimeout: mc.RequestTimeout,
			ExtraArgs:      mc.ExtraArgs,
		}, log.Named("mpv"))
		if err := client.Start(ctx); err != nil {
			return nil, errors.New(errmsg.FormatWith(errmsg.OpMediaConnect, mc.Socket, err))
		}
		return client, nil
	default:
		return nil, errors.New(errmsg.Format(errmsg.OpMediaStart, config.ErrInvalidConfig))
	}
}

// catalogExtensions returns the file extensions a local directory catalog
// keeps for the backend.
func catalogExtensions(backend string) []string {
	if backend == config.BackendBeep {
		return slices.Clone(player.Extensions)
	}
	return cfg.Listing.Extensions
}
