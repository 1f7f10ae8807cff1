package cli

import (
	"context"
	"sync"
	"time"

	"github.com/llehouerou/reel/internal/catalog"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/state"
)

// observe feeds item changes from sub to handlers on one goroutine. The
// returned func stops it and waits for the last handler call to return.
func observe(ctx context.Context, sub *playback.Subscription, handlers ...func(playback.ItemChange)) func() {
	if len(handlers) == 0 {
		return func() {}
	}

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	handle := func(e playback.ItemChange) {
		for _, h := range handlers {
			h(e)
		}
	}
	// Changes already buffered when we are told to stop still count.
	drain := func() {
		for {
			select {
			case e := <-sub.ItemChanged:
				handle(e)
			default:
				return
			}
		}
	}
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				drain()
				return
			case <-sub.Done:
				drain()
				return
			case e := <-sub.ItemChanged:
				handle(e)
			}
		}
	}()

	return func() {
		cancel()
		wg.Wait()
	}
}

// recordPlays returns a handler saving every started item to hist.
func recordPlays(hist *state.Manager, source string, cat *catalog.Catalog) func(playback.ItemChange) {
	return func(e playback.ItemChange) {
		if e.Current == nil {
			return
		}
		hist.RecordPlay(state.Play{
			Source: source,
			URL:    e.Current.URL,
			Name:   e.Current.Name,
			Index:  e.Index,
			Count:  cat.Len(),
			At:     time.Now(),
		})
	}
}

// resumeEvent finds the item last played from source. Items are matched by
// URL since IDs do not survive a reload; the remembered position is used
// when the URL is gone and still in range.
func resumeEvent(cat *catalog.Catalog, last *state.SourceState) (playback.Event, bool) {
	if last == nil || cat.IsEmpty() {
		return playback.Event{}, false
	}
	for i, it := range cat.Items() {
		if it.URL == last.URL {
			return playback.Event{Kind: playback.EventSelect, Index: i}, true
		}
	}
	if last.Index >= 0 && last.Index < cat.Len() {
		return playback.Event{Kind: playback.EventSelect, Index: last.Index}, true
	}
	return playback.Event{}, false
}
