package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/reel/internal/app"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/stderr"
	"github.com/llehouerou/reel/internal/ui"
)

type tuiOptions struct {
	session *playback.Session
	surface *ui.Surface
	sources []playback.EventSource
	capture *stderr.Capture
	title   string
	start   *playback.Event
	log     *zap.Logger
}

func runTUI(ctx context.Context, opts tuiOptions) error {
	var lines <-chan string
	if opts.capture != nil {
		lines = opts.capture.Lines()
	}

	model := app.New(app.Options{
		Session:     opts.session,
		Surface:     opts.surface,
		Sources:     opts.sources,
		Stderr:      lines,
		Title:       opts.title,
		Placeholder: cfg.Placeholder,
		Start:       opts.start,
		Logger:      opts.log.Named("tui"),
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
