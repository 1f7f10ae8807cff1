package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/reel/internal/icons"
)

const appName = "reel"

// Media backends.
const (
	BackendMPV  = "mpv"
	BackendBeep = "beep"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Placeholder string `koanf:"placeholder"` // label for items without a name
	MPRIS       bool   `koanf:"mpris"`
	Notify      bool   `koanf:"notify"` // desktop "now playing" notifications
	Icons       string `koanf:"icons"`  // nerd, unicode or none

	Media   MediaConfig   `koanf:"media"`
	Listing ListingConfig `koanf:"listing"`
	Log     LogConfig     `koanf:"log"`
	History HistoryConfig `koanf:"history"`
}

// MediaConfig selects and configures the media backend.
type MediaConfig struct {
	Backend        string        `koanf:"backend"`  // "mpv" or "beep"
	MPVPath        string        `koanf:"mpv_path"` // mpv executable
	Socket         string        `koanf:"socket"`   // mpv IPC socket
	Spawn          bool          `koanf:"spawn"`    // start mpv, or connect to a running one
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	ExtraArgs      []string      `koanf:"extra_args"`
}

// ListingConfig configures `reel serve` and local directory catalogs.
type ListingConfig struct {
	Addr       string   `koanf:"addr"`
	Extensions []string `koanf:"extensions"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `koanf:"level"`
	File  string `koanf:"file"`
}

// HistoryConfig configures the play history used by --resume.
type HistoryConfig struct {
	Enabled bool   `koanf:"enabled"`
	File    string `koanf:"file"`
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		Placeholder: "Noname",
		MPRIS:       true,
		Notify:      false,
		Icons:       "unicode",
		Media: MediaConfig{
			Backend:        BackendMPV,
			MPVPath:        "mpv",
			Socket:         filepath.Join(runtimeDir(), appName, "mpv.sock"),
			Spawn:          true,
			ConnectTimeout: 5 * time.Second,
			RequestTimeout: 3 * time.Second,
		},
		Listing: ListingConfig{
			Addr:       ":8080",
			Extensions: []string{".mp4", ".mkv", ".avi"},
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(xdg.StateHome, appName, appName+".log"),
		},
		History: HistoryConfig{
			Enabled: true,
			File:    filepath.Join(xdg.DataHome, appName, appName+".db"),
		},
	}
}

// Load reads the config files on top of the defaults. explicit, if set, is
// loaded last and must exist.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}
	if explicit != "" {
		path := expandPath(explicit)
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	// Decoding over a non-empty slice keeps its extra elements.
	if k.Exists("listing.extensions") {
		cfg.Listing.Extensions = k.Strings("listing.extensions")
	}

	cfg.Media.MPVPath = expandPath(cfg.Media.MPVPath)
	cfg.Media.Socket = expandPath(cfg.Media.Socket)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.History.File = expandPath(cfg.History.File)

	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !slices.Contains([]string{BackendMPV, BackendBeep}, c.Media.Backend) {
		return fmt.Errorf("%w: media.backend %q (want %q or %q)", ErrInvalidConfig, c.Media.Backend, BackendMPV, BackendBeep)
	}
	if c.Media.ConnectTimeout <= 0 {
		return fmt.Errorf("%w: media.connect_timeout must be positive", ErrInvalidConfig)
	}
	if c.Media.RequestTimeout <= 0 {
		return fmt.Errorf("%w: media.request_timeout must be positive", ErrInvalidConfig)
	}
	if c.Media.Backend == BackendMPV && c.Media.Socket == "" {
		return fmt.Errorf("%w: media.socket is empty", ErrInvalidConfig)
	}
	if !icons.Valid(c.Icons) {
		return fmt.Errorf("%w: icons %q (want nerd, unicode or none)", ErrInvalidConfig, c.Icons)
	}
	if c.History.Enabled && c.History.File == "" {
		return fmt.Errorf("%w: history.file is empty", ErrInvalidConfig)
	}
	for _, ext := range c.Listing.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%w: listing.extensions entry %q must start with a dot", ErrInvalidConfig, ext)
		}
	}
	return nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/reel/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

// runtimeDir falls back to the temp dir when XDG_RUNTIME_DIR is unset.
func runtimeDir() string {
	if os.Getenv("XDG_RUNTIME_DIR") == "" {
		return os.TempDir()
	}
	return xdg.RuntimeDir
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
