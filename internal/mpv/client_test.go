package mpv

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/llehouerou/reel/internal/catalog"
	"github.com/llehouerou/reel/internal/playback"
)

const waitTimeout = 2 * time.Second

// fakeMPV is the mpv side of a net.Pipe.
type fakeMPV struct {
	t    *testing.T
	conn net.Conn
	cmds chan commandPayload
}

func newFakeMPV(t *testing.T) (*Client, *fakeMPV) {
	t.Helper()
	clientConn, peerConn := net.Pipe()
	f := &fakeMPV{t: t, conn: peerConn, cmds: make(chan commandPayload, 16)}
	go f.readLoop()

	c := NewWithConn(clientConn, Config{RequestTimeout: waitTimeout}, zap.NewNop())
	t.Cleanup(func() {
		_ = c.Close()
		_ = peerConn.Close()
	})
	return c, f
}

func (f *fakeMPV) readLoop() {
	r := bufio.NewReader(f.conn)
	for {
		line, err := r.ReadBytes('\n')
		if err != nil {
			close(f.cmds)
			return
		}
		var p commandPayload
		if err := json.Unmarshal(line, &p); err == nil {
			f.cmds <- p
		}
	}
}

func (f *fakeMPV) next() commandPayload {
	f.t.Helper()
	select {
	case p := <-f.cmds:
		return p
	case <-time.After(waitTimeout):
		f.t.Fatal("timed out waiting for command")
		return commandPayload{}
	}
}

func (f *fakeMPV) writeJSON(v any) {
	f.t.Helper()
	b, err := json.Marshal(v)
	require.NoError(f.t, err)
	_, err = f.conn.Write(append(b, '\n'))
	require.NoError(f.t, err)
}

func (f *fakeMPV) reply(id int, result string, data any) {
	f.writeJSON(map[string]any{"request_id": id, "error": result, "data": data})
}

func (f *fakeMPV) event(name, reason string) {
	m := map[string]any{"event": name}
	if reason != "" {
		m["reason"] = reason
	}
	f.writeJSON(m)
}

// sync performs a request round trip so that every message written before
// it has been handled by the client.
func (f *fakeMPV) sync(c *Client) {
	f.t.Helper()
	done := make(chan error, 1)
	go func() {
		_, err := c.Command(context.Background(), "get_property", "idle-active")
		done <- err
	}()
	p := f.next()
	f.reply(p.RequestID, resultSuccess, true)
	require.NoError(f.t, <-done)
}

func expectNoEvent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case ev := <-c.Events():
		t.Fatalf("unexpected event %v", ev.Kind)
	default:
	}
}

func expectEnded(t *testing.T, c *Client) {
	t.Helper()
	select {
	case ev := <-c.Events():
		assert.Equal(t, playback.EventEnded, ev.Kind)
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for ended event")
	}
}

func TestClient_SetSourceAndPlay(t *testing.T) {
	c, f := newFakeMPV(t)

	c.SetSource("http://h/a.mp4")
	c.Play()

	load := f.next()
	assert.Equal(t, []any{"loadfile", "http://h/a.mp4", "replace"}, load.Command)
	play := f.next()
	assert.Equal(t, []any{"set_property", "pause", false}, play.Command)
	assert.Greater(t, play.RequestID, load.RequestID)
}

func TestClient_ClearSourceStops(t *testing.T) {
	c, f := newFakeMPV(t)

	c.SetSource("")

	assert.Equal(t, []any{"stop"}, f.next().Command)
}

func TestClient_Command(t *testing.T) {
	c, f := newFakeMPV(t)

	type result struct {
		data json.RawMessage
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := c.Command(context.Background(), "get_property", "volume")
		done <- result{data, err}
	}()
	p := f.next()
	f.reply(p.RequestID, resultSuccess, 42)

	r := <-done
	require.NoError(t, r.err)
	assert.JSONEq(t, "42", string(r.data))
}

func TestClient_CommandFailure(t *testing.T) {
	c, f := newFakeMPV(t)

	done := make(chan error, 1)
	go func() {
		_, err := c.Command(context.Background(), "get_property", "nope")
		done <- err
	}()
	p := f.next()
	f.reply(p.RequestID, "property not found", nil)

	if err := <-done; !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("err = %v, want ErrCommandFailed", err)
	}
}

func TestClient_CommandFailsWhenConnectionCloses(t *testing.T) {
	c, f := newFakeMPV(t)

	done := make(chan error, 1)
	go func() {
		_, err := c.Command(context.Background(), "get_property", "pause")
		done <- err
	}()
	f.next()
	require.NoError(t, f.conn.Close())

	if err := <-done; !errors.Is(err, ErrNotConnected) {
		t.Fatalf("err = %v, want ErrNotConnected", err)
	}
}

func TestClient_EndedOnEOF(t *testing.T) {
	c, f := newFakeMPV(t)
	c.SetSource("http://h/a.mp4")
	f.next()

	f.event(eventStartFile, "")
	f.event(eventEndFile, reasonEOF)

	expectEnded(t, c)
}

func TestClient_IgnoresNonEOFEnd(t *testing.T) {
	for _, reason := range []string{"stop", "quit", "error", "redirect"} {
		t.Run(reason, func(t *testing.T) {
			c, f := newFakeMPV(t)
			c.SetSource("http://h/a.mp4")
			f.next()

			f.event(eventStartFile, "")
			f.event(eventEndFile, reason)
			f.sync(c)

			expectNoEvent(t, c)
		})
	}
}

func TestClient_IgnoresEOFOfReplacedFile(t *testing.T) {
	c, f := newFakeMPV(t)
	c.SetSource("http://h/a.mp4")
	f.next()
	f.event(eventStartFile, "")

	// a.mp4 reaches its end while b.mp4 is being loaded.
	c.SetSource("http://h/b.mp4")
	f.next()
	f.event(eventEndFile, reasonEOF)
	f.sync(c)
	expectNoEvent(t, c)

	f.event(eventStartFile, "")
	f.event(eventEndFile, reasonEOF)
	expectEnded(t, c)
}

func TestClient_IgnoresEOFAfterStop(t *testing.T) {
	c, f := newFakeMPV(t)
	c.SetSource("http://h/a.mp4")
	f.next()
	f.event(eventStartFile, "")

	c.SetSource("")
	f.next()
	f.event(eventEndFile, reasonEOF)
	f.sync(c)

	expectNoEvent(t, c)
}

func TestClient_EventsClosedWithConnection(t *testing.T) {
	c, f := newFakeMPV(t)

	require.NoError(t, f.conn.Close())

	select {
	case _, ok := <-c.Events():
		assert.False(t, ok)
	case <-time.After(waitTimeout):
		t.Fatal("events channel not closed")
	}
}

func TestClient_NotConnected(t *testing.T) {
	c := New(Config{}, nil)

	_, err := c.Command(context.Background(), "stop")

	if !errors.Is(err, ErrNotConnected) {
		t.Fatalf("err = %v, want ErrNotConnected", err)
	}
	// Sink methods never fail loudly.
	c.SetSource("http://h/a.mp4")
	c.Play()
}

func TestConfig_Args(t *testing.T) {
	cfg := Config{Socket: "/run/reel/mpv.sock", ExtraArgs: []string{"--fs"}}

	assert.Equal(t, []string{
		"--idle",
		"--force-window",
		"--input-ipc-server=/run/reel/mpv.sock",
		"--fs",
	}, cfg.Args())
}

func TestStart_ConnectTimeout(t *testing.T) {
	c := New(Config{
		Socket:         filepath.Join(t.TempDir(), "missing.sock"),
		ConnectTimeout: 100 * time.Millisecond,
	}, nil)

	err := c.Start(context.Background())

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want DeadlineExceeded", err)
	}
}

func TestStart_ConnectsToListener(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "mpv.sock")
	ln, err := net.Listen("unix", socket)
	require.NoError(t, err)
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			accepted <- conn
		}
	}()

	c := New(Config{Socket: socket, ConnectTimeout: waitTimeout}, nil)
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	select {
	case conn := <-accepted:
		conn.Close()
	case <-time.After(waitTimeout):
		t.Fatal("listener never accepted")
	}
}

type nopView struct{}

func (nopView) SetLabel(string) {}
func (nopView) SetActive(bool)  {}

func TestClient_QueuedEOFDoesNotSkipNewSelection(t *testing.T) {
	c, f := newFakeMPV(t)
	cat := catalog.New(
		catalog.Entry{Name: "A", URL: "http://h/a.mp4"},
		catalog.Entry{Name: "B", URL: "http://h/b.mp4"},
		catalog.Entry{Name: "C", URL: "http://h/c.mp4"},
	)
	ctrl := playback.NewController(cat, c, nopView{})

	ctrl.SelectIndex(0)
	f.next() // loadfile
	f.next() // pause false
	f.event(eventStartFile, "")
	f.event(eventEndFile, reasonEOF)
	f.sync(c)

	// The eof of a.mp4 is queued; the user picks b.mp4 before it is handled.
	ctrl.SelectIndex(1)
	f.next()
	f.next()
	f.event(eventStartFile, "")

	select {
	case ev := <-c.Events():
		assert.Equal(t, "http://h/a.mp4", ev.URL)
		playback.Dispatch(ctrl, ev)
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for ended event")
	}
	assert.Equal(t, 1, ctrl.Index(), "end of a.mp4 must not move past b.mp4")

	f.event(eventEndFile, reasonEOF)
	select {
	case ev := <-c.Events():
		playback.Dispatch(ctrl, ev)
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for ended event")
	}
	assert.Equal(t, 2, ctrl.Index())
}
