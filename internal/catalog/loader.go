package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/reel/internal/listing"
)

var (
	// ErrUnsupportedSource is returned for sources that are neither an
	// http(s) URL, a local HTML file nor a local directory.
	ErrUnsupportedSource = errors.New("unsupported playlist source")

	// ErrHTTPStatus is returned when a listing page answers with a non-2xx status.
	ErrHTTPStatus = errors.New("unexpected HTTP status")
)

const defaultFetchTimeout = 30 * time.Second

// Loader fetches listing markup and turns it into a catalog.
type Loader struct {
	client     *http.Client
	extensions []string
	log        *zap.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithHTTPClient sets the client used for http(s) sources.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *Loader) { l.client = c }
}

// WithExtensions sets the media extensions used when rendering a local directory.
func WithExtensions(exts []string) LoaderOption {
	return func(l *Loader) { l.extensions = exts }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) LoaderOption {
	return func(l *Loader) { l.log = log }
}

// NewLoader creates a loader with sensible defaults.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		client:     &http.Client{Timeout: defaultFetchTimeout},
		extensions: listing.DefaultExtensions,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load builds a catalog from source, which is an http(s) URL of a listing
// page, a local HTML file, or a local directory.
func (l *Loader) Load(ctx context.Context, source string) (*Catalog, error) {
	if u, err := url.Parse(source); err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l.loadURL(ctx, u)
		case "file":
			return l.loadPath(u.Path)
		}
	}
	return l.loadPath(source)
}

func (l *Loader) loadURL(ctx context.Context, u *url.URL) (*Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: %w: %s", u, ErrHTTPStatus, resp.Status)
	}

	// Redirects (e.g. to add a trailing slash) change the base for relative hrefs.
	base := resp.Request.URL
	cat, err := ParseReader(resp.Body, base)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", u, err)
	}
	l.log.Debug("catalog loaded",
		zap.String("url", base.String()),
		zap.Int("items", cat.Len()))
	return cat, nil
}

func (l *Loader) loadPath(path string) (*Catalog, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, path)
		}
		return nil, err
	}

	if info.IsDir() {
		return l.loadDir(abs)
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cat, err := ParseReader(f, fileURL(abs, false))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", abs, err)
	}
	l.log.Debug("catalog loaded", zap.String("file", abs), zap.Int("items", cat.Len()))
	return cat, nil
}

// loadDir renders the directory with the listing templates and parses the
// result, so local directories and served ones yield the same catalog.
func (l *Loader) loadDir(dir string) (*Catalog, error) {
	entries, err := listing.ReadDir(dir, l.extensions)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var buf bytes.Buffer
	if err := listing.Render(&buf, "/", entries); err != nil {
		return nil, fmt.Errorf("render %s: %w", dir, err)
	}
	cat, err := ParseReader(&buf, fileURL(dir, true))
	if err != nil {
		return nil, err
	}
	l.log.Debug("catalog loaded", zap.String("dir", dir), zap.Int("items", cat.Len()))
	return cat, nil
}

func fileURL(path string, dir bool) *url.URL {
	p := filepath.ToSlash(path)
	if dir && !strings.HasSuffix(p, "/") {
		p += "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return &url.URL{Scheme: "file", Path: p}
}
