// Package logging builds the application logger.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Options selects where log lines go.
type Options struct {
	Level   string // debug, info, warn, error
	File    string // empty disables file output
	Console bool   // also write to stderr
	Verbose bool   // forces debug level
}

// New returns a JSON logger writing to the configured outputs. With no
// output configured it returns a no-op logger.
func New(opts Options) (*zap.Logger, error) {
	level := opts.Level
	if opts.Verbose {
		level = "debug"
	}
	if level == "" {
		level = "info"
	}
	atom, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	var outputs []string
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		outputs = append(outputs, opts.File)
	}
	if opts.Console {
		outputs = append(outputs, "stderr")
	}
	if len(outputs) == 0 {
		return zap.NewNop(), nil
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = atom
	cfg.OutputPaths = outputs
	cfg.ErrorOutputPaths = outputs
	cfg.DisableStacktrace = !opts.Verbose

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}
