package cli

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/llehouerou/reel/internal/playback"
)

// runHeadless dispatches start and plays until the playlist runs out. It
// also returns when every source is closed or ctx is cancelled.
func runHeadless(ctx context.Context, session *playback.Session, start playback.Event, sources []playback.EventSource, log *zap.Logger) error {
	if session.Catalog.IsEmpty() {
		log.Info("nothing to play")
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sub := session.Controller.Subscribe()
	go stopWhenFinished(ctx, sub, cancel)

	session.Dispatch(start)

	err := session.Run(ctx, sources...)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// stopWhenFinished cancels once playback returns to idle after having
// started.
func stopWhenFinished(ctx context.Context, sub *playback.Subscription, cancel context.CancelFunc) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-sub.StateChanged:
			if e.Previous.IsActive() && !e.Current.IsActive() {
				cancel()
				return
			}
		case <-sub.Done:
			return
		}
	}
}
