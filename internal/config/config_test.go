//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde expands to home", "~/videos", filepath.Join(home, "videos")},
		{"tilde with nested path", "~/run/reel/mpv.sock", filepath.Join(home, "run", "reel", "mpv.sock")},
		{"absolute path unchanged", "/usr/bin/mpv", "/usr/bin/mpv"},
		{"relative path unchanged", "bin/mpv", "bin/mpv"},
		{"empty string unchanged", "", ""},
		{"tilde only", "~", home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) != 2 {
		t.Fatalf("getConfigPaths() returned %d paths, want 2", len(paths))
	}
	if filepath.Base(filepath.Dir(paths[0])) != appName {
		t.Errorf("first config path = %q, want it under a %q directory", paths[0], appName)
	}
	if lastPath := paths[len(paths)-1]; lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Placeholder != "Noname" {
		t.Errorf("Placeholder = %q, want Noname", cfg.Placeholder)
	}
	if cfg.Media.Backend != BackendMPV || !cfg.Media.Spawn {
		t.Errorf("Media = %+v, want spawned mpv", cfg.Media)
	}
	if cfg.Listing.Addr != ":8080" {
		t.Errorf("Listing.Addr = %q, want :8080", cfg.Listing.Addr)
	}
	if !cfg.MPRIS {
		t.Error("MPRIS should be enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoad_NoFilesGivesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Media.RequestTimeout != 3*time.Second {
		t.Errorf("RequestTimeout = %v, want 3s", cfg.Media.RequestTimeout)
	}
}

func TestLoad_ExplicitFileOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "custom.toml")
	content := `
placeholder = "(untitled)"
mpris = false
notify = true

[media]
backend = "beep"
connect_timeout = "750ms"
extra_args = ["--fs", "--mute=yes"]

[listing]
extensions = [".webm"]

[log]
level = "debug"

[history]
file = "~/reel-history.db"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Placeholder != "(untitled)" {
		t.Errorf("Placeholder = %q", cfg.Placeholder)
	}
	if cfg.MPRIS {
		t.Error("MPRIS = true, want false")
	}
	if cfg.Media.Backend != BackendBeep {
		t.Errorf("Backend = %q, want beep", cfg.Media.Backend)
	}
	if cfg.Media.ConnectTimeout != 750*time.Millisecond {
		t.Errorf("ConnectTimeout = %v, want 750ms", cfg.Media.ConnectTimeout)
	}
	if cfg.Media.RequestTimeout != 3*time.Second {
		t.Errorf("RequestTimeout = %v, want default 3s", cfg.Media.RequestTimeout)
	}
	if len(cfg.Media.ExtraArgs) != 2 || cfg.Media.ExtraArgs[1] != "--mute=yes" {
		t.Errorf("ExtraArgs = %v", cfg.Media.ExtraArgs)
	}
	if len(cfg.Listing.Extensions) != 1 || cfg.Listing.Extensions[0] != ".webm" {
		t.Errorf("Extensions = %v", cfg.Listing.Extensions)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if !cfg.Notify {
		t.Error("Notify = false, want true")
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled should keep its default")
	}
	if cfg.History.File == "~/reel-history.db" || filepath.Base(cfg.History.File) != "reel-history.db" {
		t.Errorf("History.File = %q, want it expanded", cfg.History.File)
	}
}

func TestLoad_LocalFileIsRead(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`[listing]
addr = "127.0.0.1:9000"
`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Listing.Addr != "127.0.0.1:9000" {
		t.Errorf("Listing.Addr = %q", cfg.Listing.Addr)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("Load() with a missing explicit file should fail")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("placeholder = ["), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load() with invalid TOML should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"beep backend", func(c *Config) { c.Media.Backend = BackendBeep }, true},
		{"unknown backend", func(c *Config) { c.Media.Backend = "vlc" }, false},
		{"zero connect timeout", func(c *Config) { c.Media.ConnectTimeout = 0 }, false},
		{"negative request timeout", func(c *Config) { c.Media.RequestTimeout = -time.Second }, false},
		{"empty socket with mpv", func(c *Config) { c.Media.Socket = "" }, false},
		{"empty socket with beep", func(c *Config) {
			c.Media.Backend = BackendBeep
			c.Media.Socket = ""
		}, true},
		{"extension without dot", func(c *Config) { c.Listing.Extensions = []string{"mp4"} }, false},
		{"bare dot extension", func(c *Config) { c.Listing.Extensions = []string{"."} }, false},
		{"no extensions", func(c *Config) { c.Listing.Extensions = nil }, true},
		{"nerd icons", func(c *Config) { c.Icons = "nerd" }, true},
		{"unknown icons", func(c *Config) { c.Icons = "emoji" }, false},
		{"history without file", func(c *Config) { c.History.File = "" }, false},
		{"history disabled without file", func(c *Config) {
			c.History.Enabled = false
			c.History.File = ""
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
