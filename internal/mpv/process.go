package mpv

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const (
	dialRetryInterval = 50 * time.Millisecond
	quitGracePeriod   = 2 * time.Second
)

// Args returns the command line used to spawn mpv.
func (cfg Config) Args() []string {
	args := []string{
		"--idle",
		"--force-window",
		"--input-ipc-server=" + cfg.Socket,
	}
	return append(args, cfg.ExtraArgs...)
}

func (c *Client) spawn() error {
	if err := os.MkdirAll(filepath.Dir(c.cfg.Socket), 0o700); err != nil {
		return fmt.Errorf("create socket directory: %w", err)
	}
	if err := os.Remove(c.cfg.Socket); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stale socket: %w", err)
	}

	path := c.cfg.Path
	if path == "" {
		path = "mpv"
	}
	cmd := exec.Command(path, c.cfg.Args()...)
	// Picked up by the stderr capture while the TUI runs.
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", path, err)
	}
	c.proc = cmd
	c.log.Info("mpv started", zap.Int("pid", cmd.Process.Pid), zap.String("socket", c.cfg.Socket))
	return nil
}

// dial retries until the socket accepts a connection, the timeout expires
// or ctx is done.
func dial(ctx context.Context, socket string, timeout time.Duration) (net.Conn, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var d net.Dialer
	ticker := time.NewTicker(dialRetryInterval)
	defer ticker.Stop()
	for {
		conn, err := d.DialContext(ctx, "unix", socket)
		if err == nil {
			return conn, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w (last error: %w)", ctx.Err(), err)
		case <-ticker.C:
		}
	}
}

func (c *Client) kill() {
	if c.proc == nil {
		return
	}
	_ = c.proc.Process.Kill()
	_ = c.proc.Wait()
	c.proc = nil
}

// reap waits for a spawned mpv to exit after quit, killing it if it lingers.
func (c *Client) reap() {
	if c.proc == nil {
		return
	}
	exited := make(chan struct{})
	go func() {
		_ = c.proc.Wait()
		close(exited)
	}()
	select {
	case <-exited:
	case <-time.After(quitGracePeriod):
		_ = c.proc.Process.Kill()
		<-exited
	}
	c.log.Info("mpv stopped")
	c.proc = nil
}
