//go:build !unix

package stderr

import "os"

// Capture is a no-op outside unix systems.
type Capture struct{}

// Start is a no-op outside unix systems.
func Start() (*Capture, error) {
	return &Capture{}, nil
}

// Lines returns nil; receiving from it blocks forever.
func (*Capture) Lines() <-chan string { return nil }

// WriteOriginal writes to stderr.
func (*Capture) WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop is a no-op.
func (*Capture) Stop() {}
