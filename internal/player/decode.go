package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
	extOGG  = ".ogg"
)

// Extensions lists the formats the player can decode.
var Extensions = []string{extMP3, extFLAC, extWAV, extOGG}

// ErrUnsupportedFormat is returned for sources with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// source returns the reader behind a URL: an HTTP(S) body, or a local file
// for file:// URLs and plain paths. It also returns the lowercased extension.
func (p *Player) source(ctx context.Context, raw string) (io.ReadCloser, string, error) {
	u, err := url.Parse(raw)
	if err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return p.fetch(ctx, u)
		case "file":
			return openFile(u.Path)
		}
	}
	return openFile(raw)
}

func (p *Player) fetch(ctx context.Context, u *url.URL) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, "", fmt.Errorf("fetch %s: %s", u, resp.Status)
	}
	return resp.Body, strings.ToLower(path.Ext(u.Path)), nil
}

func openFile(name string) (io.ReadCloser, string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, "", err
	}
	return f, strings.ToLower(filepath.Ext(name)), nil
}

func decode(rc io.ReadCloser, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext {
	case extMP3:
		return mp3.Decode(rc)
	case extFLAC:
		return flac.Decode(rc)
	case extWAV:
		return wav.Decode(rc)
	case extOGG:
		return vorbis.Decode(rc)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
