//go:build unix

package stderr

import (
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func TestCapture_ForwardsLines(t *testing.T) {
	c, err := Start()
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer c.Stop()

	// Write through the raw descriptor like a C library would.
	if _, err := unix.Write(2, []byte("ALSA lib pcm.c: underrun\n\n   \n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case line := <-c.Lines():
		if line != "ALSA lib pcm.c: underrun" {
			t.Errorf("line = %q", line)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for captured line")
	}
}

func TestCapture_StopClosesLines(t *testing.T) {
	c, err := Start()
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	c.Stop()
	c.Stop()

	for range c.Lines() {
	}
}
