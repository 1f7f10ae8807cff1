package notify

import (
	"go.uber.org/zap"

	"github.com/llehouerou/reel/internal/playback"
)

const nowPlayingTimeout = 5000

// NowPlaying keeps a single "now playing" notification in step with the
// controller's current item.
type NowPlaying struct {
	n           Notifier
	source      string
	placeholder string
	log         *zap.Logger
	id          uint32
}

// NewNowPlaying creates a NowPlaying. source is shown as the body.
func NewNowPlaying(n Notifier, source, placeholder string, log *zap.Logger) *NowPlaying {
	if log == nil {
		log = zap.NewNop()
	}
	return &NowPlaying{n: n, source: source, placeholder: placeholder, log: log}
}

// Update replaces the notification with the new item, or closes it when
// playback stopped.
func (p *NowPlaying) Update(e playback.ItemChange) {
	if e.Current == nil {
		if p.id != 0 {
			if err := p.n.Close(p.id); err != nil {
				p.log.Debug("close notification", zap.Error(err))
			}
			p.id = 0
		}
		return
	}

	title := e.Current.Name
	if title == "" {
		title = p.placeholder
	}
	id, err := p.n.Notify(Notification{
		Title:      title,
		Body:       p.source,
		Icon:       "media-playback-start",
		Timeout:    nowPlayingTimeout,
		ReplacesID: p.id,
		Urgency:    UrgencyLow,
	})
	if err != nil {
		p.log.Debug("send notification", zap.Error(err))
		return
	}
	p.id = id
}
