package mpv

import (
	"encoding/json"
	"errors"
)

var (
	// ErrCommandFailed is returned when mpv answers with an error other than "success".
	ErrCommandFailed = errors.New("mpv command failed")

	// ErrNotConnected is returned when no connection to mpv is open.
	ErrNotConnected = errors.New("not connected to mpv")
)

const (
	resultSuccess = "success"

	eventStartFile = "start-file"
	eventEndFile   = "end-file"

	reasonEOF = "eof"
)

// commandPayload is one request line sent to mpv.
type commandPayload struct {
	Command   []any `json:"command"`
	RequestID int   `json:"request_id"`
}

// message is one line received from mpv: either a reply (RequestID set) or
// an event (Event set).
type message struct {
	Error     string          `json:"error"`
	Data      json.RawMessage `json:"data"`
	RequestID int             `json:"request_id"`
	Event     string          `json:"event"`
	Reason    string          `json:"reason"`
}

func (m message) isEvent() bool {
	return m.Event != ""
}

func (m message) success() bool {
	return m.Error == resultSuccess
}

func encodeCommand(id int, args []any) ([]byte, error) {
	b, err := json.Marshal(commandPayload{Command: args, RequestID: id})
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
