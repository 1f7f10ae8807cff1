// Package player plays audio sources through the system speaker.
package player

import (
	"context"
	"io"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep/v2"
	"go.uber.org/zap"

	"github.com/llehouerou/reel/internal/playback"
)

const (
	eventBufferSize = 16
	resampleQuality = 4
)

// Player is a MediaSink that decodes audio with beep. Sources load in the
// background; a source replaced before it finishes loading is discarded.
type Player struct {
	mu     sync.Mutex
	out    output
	client *http.Client
	log    *zap.Logger

	rate        beep.SampleRate
	initialized bool

	// gen identifies the current source. Callbacks of older streams compare
	// against it without taking mu, since they run under the speaker lock.
	gen     atomic.Uint64
	cancel  context.CancelFunc
	playing bool
	ctrl    *beep.Ctrl
	stream  beep.StreamSeekCloser
	body    io.Closer

	events chan playback.Event
}

var _ playback.MediaSink = (*Player)(nil)

// Option configures a Player.
type Option func(*Player)

// WithHTTPClient sets the client used for http(s) sources.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Player) { p.client = c }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(p *Player) { p.log = log }
}

func withOutput(out output) Option {
	return func(p *Player) { p.out = out }
}

// New creates a player.
func New(opts ...Option) *Player {
	p := &Player{
		out:    speakerOutput{},
		client: http.DefaultClient,
		log:    zap.NewNop(),
		events: make(chan playback.Event, eventBufferSize),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Events returns the natural-end events of played sources.
func (p *Player) Events() <-chan playback.Event {
	return p.events
}

// SetSource starts loading url, paused until Play. An empty url stops playback.
func (p *Player) SetSource(url string) {
	g := p.gen.Add(1)

	p.mu.Lock()
	p.stopLocked()
	p.playing = false
	var ctx context.Context
	if url != "" {
		ctx, p.cancel = context.WithCancel(context.Background())
	}
	p.mu.Unlock()

	if url == "" {
		return
	}
	go p.load(ctx, g, url)
}

// Play unpauses the current source, or marks it to start once loaded.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = true
	if p.ctrl != nil {
		p.out.Lock()
		p.ctrl.Paused = false
		p.out.Unlock()
	}
}

// Close stops playback.
func (p *Player) Close() {
	p.SetSource("")
}

func (p *Player) load(ctx context.Context, g uint64, url string) {
	rc, ext, err := p.source(ctx, url)
	if err != nil {
		if ctx.Err() == nil {
			p.log.Warn("open audio source", zap.String("url", url), zap.Error(err))
		}
		return
	}
	stream, format, err := decode(rc, ext)
	if err != nil {
		rc.Close()
		p.log.Warn("decode audio source", zap.String("url", url), zap.Error(err))
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen.Load() != g {
		stream.Close()
		rc.Close()
		return
	}

	if !p.initialized {
		if err := p.out.Init(format.SampleRate); err != nil {
			stream.Close()
			rc.Close()
			p.log.Error("init speaker", zap.Error(err))
			return
		}
		p.rate = format.SampleRate
		p.initialized = true
	}

	var s beep.Streamer = stream
	if format.SampleRate != p.rate {
		s = beep.Resample(resampleQuality, format.SampleRate, p.rate, stream)
	}

	p.stream = stream
	p.body = rc
	p.ctrl = &beep.Ctrl{Streamer: s, Paused: !p.playing}
	p.out.Play(beep.Seq(p.ctrl, beep.Callback(func() { p.finished(g, url) })))
	p.log.Debug("audio source loaded", zap.String("url", url), zap.Int("rate", int(format.SampleRate)))
}

// finished runs on the speaker goroutine. The event names url so that one
// still queued when the next source is set is dropped by the controller.
func (p *Player) finished(g uint64, url string) {
	if p.gen.Load() != g {
		return
	}
	select {
	case p.events <- playback.Event{Kind: playback.EventEnded, URL: url}:
	default:
		p.log.Warn("dropping ended event")
	}
}

func (p *Player) stopLocked() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	if p.ctrl == nil {
		return
	}
	// A detached ctrl ends its sequence if the device still holds it.
	p.out.Lock()
	p.ctrl.Streamer = nil
	p.out.Unlock()
	p.out.Clear()
	p.stream.Close()
	p.body.Close()
	p.ctrl = nil
	p.stream = nil
	p.body = nil
}
