package playback

import (
	"context"
	"sync"
)

// EventKind identifies a discrete input of the controller.
type EventKind int

const (
	EventSelect EventKind = iota + 1
	EventNext
	EventPrevious
	EventStop
	EventPlayAll
	EventEnded
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventSelect:
		return "Select"
	case EventNext:
		return "Next"
	case EventPrevious:
		return "Previous"
	case EventStop:
		return "Stop"
	case EventPlayAll:
		return "PlayAll"
	case EventEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// Event is a UI action or media signal. Index is used by EventSelect only.
// URL is set by media sinks on EventEnded to the source that ended; an
// ended event for anything but the current item is stale and dropped. An
// empty URL ends whatever is playing.
type Event struct {
	Kind  EventKind
	Index int
	URL   string
}

// EventSource produces events for the controller.
type EventSource interface {
	Events() <-chan Event
}

// ChanSource adapts a plain channel to EventSource.
type ChanSource <-chan Event

// Events returns the channel.
func (s ChanSource) Events() <-chan Event { return s }

// Dispatch applies ev to c. Unknown kinds are ignored.
func Dispatch(c *Controller, ev Event) {
	switch ev.Kind {
	case EventSelect:
		c.SelectIndex(ev.Index)
	case EventNext:
		c.Next()
	case EventPrevious:
		c.Previous()
	case EventStop:
		c.Stop()
	case EventPlayAll:
		c.PlayAll()
	case EventEnded:
		if ev.URL != "" {
			c.EndedFor(ev.URL)
			return
		}
		c.Ended()
	}
}

// Wire dispatches events from all sources to c, one at a time, until ctx is
// cancelled (returning ctx.Err()) or every source channel is closed
// (returning nil). Nil sources are skipped.
func Wire(ctx context.Context, c *Controller, sources ...EventSource) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	merged := make(chan Event)
	var wg sync.WaitGroup
	for _, src := range sources {
		if src == nil {
			continue
		}
		ch := src.Events()
		if ch == nil {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				var ev Event
				var ok bool
				select {
				case ev, ok = <-ch:
					if !ok {
						return
					}
				case <-ctx.Done():
					return
				}
				select {
				case merged <- ev:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(merged)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-merged:
			if !ok {
				return nil
			}
			Dispatch(c, ev)
		}
	}
}
