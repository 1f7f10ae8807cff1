// Package cli implements the reel command line.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/reel/internal/config"
	"github.com/llehouerou/reel/internal/errmsg"
	"github.com/llehouerou/reel/internal/icons"
	"github.com/llehouerou/reel/internal/logging"
)

var (
	cfgFile string
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "reel",
	Short: "Play the media links of a directory listing in order",
	Long: `Reel reads a directory listing page (or a local directory), builds a
playlist of its media links and plays them one after another through mpv or
the built-in audio player.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/reel/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	icons.Init(cfg.Icons)
	return nil
}

// newLogger builds the logger from config. console adds stderr output,
// which the TUI must not use.
func newLogger(console bool) (*zap.Logger, error) {
	log, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Console: console,
		Verbose: verbose,
	})
	if err != nil {
		return nil, errors.New(errmsg.Format(errmsg.OpLogOpen, err))
	}
	return log, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
