package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/reel/internal/catalog"
	"github.com/llehouerou/reel/internal/config"
	"github.com/llehouerou/reel/internal/errmsg"
	"github.com/llehouerou/reel/internal/mpris"
	"github.com/llehouerou/reel/internal/notify"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/state"
	"github.com/llehouerou/reel/internal/stderr"
	"github.com/llehouerou/reel/internal/ui"
)

var (
	playHeadless bool
	playBackend  string
	playAutoplay bool
	playResume   bool
)

var playCmd = &cobra.Command{
	Use:   "play <source>",
	Short: "Play the media links of a listing",
	Long: `Build a playlist from <source> and play it.

<source> is an http(s) URL of a directory listing page, a local HTML file or
a local directory. Items play in page order; when one ends the next starts.

Keyboard shortcuts:
  enter        Play item under cursor
  a            Play all
  n, pgdown    Next item
  p, pgup      Previous item
  s, esc       Stop
  j/k, g/G     Move cursor
  .            Jump to playing item
  ?            Help
  q, ctrl+c    Quit

With --headless there is no interface: reel plays everything once and exits.
With --resume playback starts at the item this source last played.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&playHeadless, "headless", false, "play without the terminal interface")
	playCmd.Flags().StringVar(&playBackend, "backend", "", "media backend: mpv or beep (default: media.backend from config)")
	playCmd.Flags().BoolVar(&playAutoplay, "autoplay", false, "start playing the first item right away")
	playCmd.Flags().BoolVar(&playResume, "resume", false, "start at the item last played from this source")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	source := args[0]
	backend := playBackend
	if backend == "" {
		backend = cfg.Media.Backend
	}
	if backend != config.BackendMPV && backend != config.BackendBeep {
		return fmt.Errorf("%w: --backend %q", config.ErrInvalidConfig, backend)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Capture before the audio device or mpv can write to the terminal.
	var capture *stderr.Capture
	if !playHeadless {
		c, err := stderr.Start()
		if err == nil {
			capture = c
			defer capture.Stop()
		}
	}

	log, err := newLogger(playHeadless)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	loader := catalog.NewLoader(
		catalog.WithExtensions(catalogExtensions(backend)),
		catalog.WithLogger(log.Named("catalog")),
	)
	cat, err := loader.Load(ctx, source)
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpCatalogLoad, source, err))
	}
	log.Info("playlist loaded", zap.String("source", source), zap.Int("items", cat.Len()))

	var hist *state.Manager
	if cfg.History.Enabled {
		h, err := state.Open(cfg.History.File, log.Named("history"))
		if err != nil {
			log.Warn(errmsg.FormatWith(errmsg.OpHistoryOpen, cfg.History.File, err))
		} else {
			hist = h
			defer hist.Close()
		}
	}
	start := startEvent(cat, hist, source, log)

	media, err := startBackend(ctx, backend, log)
	if err != nil {
		return err
	}
	defer media.Close()

	var (
		sink    playback.MediaSink = media
		view    playback.PresentationSink
		surface *ui.Surface
	)
	if playHeadless {
		logSink := playback.NewLogSink(log.Named("now-playing"))
		sink = playback.TeeMedia(media, logSink)
		view = logSink
	} else {
		surface = ui.NewSurface()
		view = surface
	}

	session := playback.NewSession(cat, sink, view,
		playback.WithPlaceholder(cfg.Placeholder),
		playback.WithLogger(log.Named("playback")),
	)
	defer session.Close()

	var handlers []func(playback.ItemChange)
	if hist != nil {
		handlers = append(handlers, recordPlays(hist, source, cat))
	}
	if cfg.Notify {
		handlers = append(handlers, notify.NewNowPlaying(notify.New(), source, cfg.Placeholder, log.Named("notify")).Update)
	}
	stopObserving := observe(ctx, session.Controller.Subscribe(), handlers...)
	defer stopObserving()

	sources := []playback.EventSource{media}
	if cfg.MPRIS {
		adapter, err := mpris.New(session.Controller, log.Named("mpris"))
		if err != nil {
			log.Warn(errmsg.Format(errmsg.OpMPRISStart, err))
		} else {
			defer adapter.Close()
			if adapter.Events() != nil {
				sources = append(sources, adapter)
			}
		}
	}

	if playHeadless {
		if start == nil {
			start = &playback.Event{Kind: playback.EventPlayAll}
		}
		return runHeadless(ctx, session, *start, sources, log)
	}
	return runTUI(ctx, tuiOptions{
		session: session,
		surface: surface,
		sources: sources,
		capture: capture,
		title:   source,
		start:   start,
		log:     log,
	})
}

// startEvent picks what plays first: the resumed item, play-all with
// --autoplay, or nothing.
func startEvent(cat *catalog.Catalog, hist *state.Manager, source string, log *zap.Logger) *playback.Event {
	if playResume && hist != nil {
		last, err := hist.Last(source)
		if err != nil {
			log.Warn(errmsg.Format(errmsg.OpHistoryRead, err))
		}
		if ev, ok := resumeEvent(cat, last); ok {
			log.Info("resuming", zap.Int("index", ev.Index))
			return &ev
		}
	}
	if playAutoplay || playResume {
		return &playback.Event{Kind: playback.EventPlayAll}
	}
	return nil
}
