// Package errmsg formats errors shown to the user in the status line and on
// the command line.
package errmsg

import "fmt"

// Op names something the user asked for that can fail.
type Op string

const (
	// Catalog
	OpCatalogLoad Op = "load playlist"

	// Media backends
	OpMediaStart   Op = "start media backend"
	OpMediaConnect Op = "connect to mpv"

	// Surfaces
	OpMPRISStart Op = "register media controls"
	OpListingRun Op = "serve directory listing"

	// History
	OpHistoryOpen Op = "open play history"
	OpHistoryRead Op = "read play history"

	// Startup
	OpConfigLoad Op = "load config"
	OpLogOpen    Op = "open log file"
)

// Format returns "Failed to <op>: <err>", or "" for a nil error.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith adds the object the operation worked on, usually a URL or path.
func FormatWith(op Op, subject string, err error) string {
	if err == nil {
		return ""
	}
	if subject == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, subject, err)
}
