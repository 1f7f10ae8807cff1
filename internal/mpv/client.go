// Package mpv drives an mpv process over its JSON IPC socket and reports
// the natural end of each file as a playback event.
package mpv

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/reel/internal/playback"
)

const eventBufferSize = 16

// Config describes how to reach mpv.
type Config struct {
	Path           string // mpv executable
	Socket         string
	Spawn          bool
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
	ExtraArgs      []string
}

// Client is a MediaSink backed by mpv.
type Client struct {
	cfg Config
	log *zap.Logger

	proc *exec.Cmd
	conn net.Conn

	writeMu sync.Mutex
	mu      sync.Mutex
	nextID  int
	pending map[int]chan message
	// fire-and-forget requests, by id, for logging failed replies
	sent map[int]string

	// end-of-file tracking, see handleEvent
	active        bool
	pendingStarts int
	url           string // last loaded

	events    chan playback.Event
	done      chan struct{}
	closeOnce sync.Once
}

var _ playback.MediaSink = (*Client)(nil)

// New creates a client. Call Start to connect.
func New(cfg Config, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		cfg:     cfg,
		log:     log,
		nextID:  1,
		pending: make(map[int]chan message),
		sent:    make(map[int]string),
		events:  make(chan playback.Event, eventBufferSize),
		done:    make(chan struct{}),
	}
}

// NewWithConn creates a client over an established connection and starts
// reading from it.
func NewWithConn(conn net.Conn, cfg Config, log *zap.Logger) *Client {
	c := New(cfg, log)
	c.conn = conn
	go c.readLoop()
	return c
}

// Start spawns mpv if configured to, then connects to its socket.
func (c *Client) Start(ctx context.Context) error {
	if c.cfg.Spawn {
		if err := c.spawn(); err != nil {
			return err
		}
	}

	conn, err := dial(ctx, c.cfg.Socket, c.cfg.ConnectTimeout)
	if err != nil {
		c.kill()
		return fmt.Errorf("connect to mpv socket %s: %w", c.cfg.Socket, err)
	}
	c.conn = conn
	c.log.Info("connected to mpv", zap.String("socket", c.cfg.Socket))

	go c.readLoop()
	return nil
}

// Events returns the natural-end events of played files. The channel is
// closed when the connection ends.
func (c *Client) Events() <-chan playback.Event {
	return c.events
}

// SetSource loads url, replacing the current file. An empty url stops playback.
func (c *Client) SetSource(url string) {
	c.mu.Lock()
	c.url = url
	if url == "" {
		c.active = false
	} else {
		c.active = true
		c.pendingStarts++
	}
	c.mu.Unlock()

	if url == "" {
		c.send("stop")
		return
	}
	c.send("loadfile", url, "replace")
}

// Play unpauses playback.
func (c *Client) Play() {
	c.send("set_property", "pause", false)
}

// Command sends a command and waits for its reply, bounded by the request timeout.
func (c *Client) Command(ctx context.Context, args ...any) (json.RawMessage, error) {
	if c.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.RequestTimeout)
		defer cancel()
	}

	reply := make(chan message, 1)
	id := c.register(func(id int) { c.pending[id] = reply })
	defer c.unregister(id)

	if err := c.write(id, args); err != nil {
		return nil, err
	}

	select {
	case m, ok := <-reply:
		if !ok {
			return nil, ErrNotConnected
		}
		if !m.success() {
			return nil, fmt.Errorf("%w: %v: %s", ErrCommandFailed, args[0], m.Error)
		}
		return m.Data, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// send writes a command without waiting for the reply. Failures are logged
// when the reply arrives.
func (c *Client) send(args ...any) {
	name := fmt.Sprint(args[0])
	id := c.register(func(id int) { c.sent[id] = name })
	if err := c.write(id, args); err != nil {
		c.unregister(id)
		c.log.Warn("mpv command not sent", zap.String("command", name), zap.Error(err))
	}
}

func (c *Client) register(add func(id int)) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	add(id)
	return id
}

func (c *Client) unregister(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, id)
	delete(c.sent, id)
}

func (c *Client) write(id int, args []any) error {
	if c.conn == nil {
		return ErrNotConnected
	}
	line, err := encodeCommand(id, args)
	if err != nil {
		return fmt.Errorf("encode command: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.cfg.RequestTimeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.RequestTimeout))
	}
	if _, err := c.conn.Write(line); err != nil {
		return fmt.Errorf("write command: %w", err)
	}
	return nil
}

func (c *Client) readLoop() {
	defer c.shutdown()

	r := bufio.NewReader(c.conn)
	for {
		line, err := r.ReadBytes('\n')
		if len(line) > 1 {
			c.handleLine(line)
		}
		if err != nil {
			select {
			case <-c.done:
			default:
				c.log.Warn("mpv connection closed", zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) handleLine(line []byte) {
	var m message
	if err := json.Unmarshal(line, &m); err != nil {
		c.log.Debug("unparseable mpv message", zap.ByteString("line", line), zap.Error(err))
		return
	}
	if m.isEvent() {
		c.handleEvent(m)
		return
	}
	c.handleReply(m)
}

func (c *Client) handleReply(m message) {
	c.mu.Lock()
	reply, waiting := c.pending[m.RequestID]
	name, sent := c.sent[m.RequestID]
	delete(c.pending, m.RequestID)
	delete(c.sent, m.RequestID)
	c.mu.Unlock()

	switch {
	case waiting:
		reply <- m
	case sent && !m.success():
		c.log.Warn("mpv command failed", zap.String("command", name), zap.String("error", m.Error))
	}
}

// handleEvent forwards end-of-file only for the most recently loaded file:
// an eof that belongs to a file replaced by a later loadfile, or that follows
// a stop, is dropped. Forwarded events carry the file's URL so the
// controller can still drop them if a new selection lands while they wait
// in the channel.
func (c *Client) handleEvent(m message) {
	switch m.Event {
	case eventStartFile:
		c.mu.Lock()
		if c.pendingStarts > 0 {
			c.pendingStarts--
		}
		c.mu.Unlock()
	case eventEndFile:
		c.mu.Lock()
		current := c.active && c.pendingStarts == 0
		url := c.url
		c.mu.Unlock()
		if m.Reason != reasonEOF || !current {
			c.log.Debug("file ended", zap.String("reason", m.Reason), zap.Bool("current", current))
			return
		}
		select {
		case c.events <- playback.Event{Kind: playback.EventEnded, URL: url}:
		case <-c.done:
		}
	}
}

// shutdown fails all waiting requests and closes the events channel.
func (c *Client) shutdown() {
	c.mu.Lock()
	for id, reply := range c.pending {
		close(reply)
		delete(c.pending, id)
	}
	c.mu.Unlock()
	close(c.events)
}

// Close disconnects from mpv and stops the process if it was spawned.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		if c.proc != nil && c.conn != nil {
			c.send("quit")
		}
		close(c.done)
		if c.conn != nil {
			err = c.conn.Close()
		}
		c.reap()
	})
	return err
}
