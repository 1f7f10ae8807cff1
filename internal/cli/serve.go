package cli

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/llehouerou/reel/internal/errmsg"
	"github.com/llehouerou/reel/internal/listing"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve [dir]",
	Short: "Serve a directory as a listing reel can play",
	Long: `Serve a directory tree over HTTP. Directories render as listing pages
whose media links reel play understands; files are served with range
support. Prometheus metrics are exposed on /_reel/metrics.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: listing.addr from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	addr := serveAddr
	if addr == "" {
		addr = cfg.Listing.Addr
	}

	log, err := newLogger(true)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	srv, err := listing.NewServer(dir,
		listing.WithExtensions(cfg.Listing.Extensions),
		listing.WithLogger(log.Named("listing")),
	)
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpListingRun, dir, err))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpListingRun, addr, err))
	}
	return nil
}
