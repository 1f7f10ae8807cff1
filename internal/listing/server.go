package listing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// InternalPrefix holds the server's own endpoints. A served entry with this
// name at the root is shadowed by them.
const InternalPrefix = "/_reel"

// Server serves a directory tree, rendering directories as listings.
type Server struct {
	root       string
	extensions []string
	log        *zap.Logger
	registry   *prometheus.Registry
	metrics    *metrics
	router     *mux.Router
}

// Option configures a Server.
type Option func(*Server)

// WithExtensions sets the extensions rendered as playable entries.
func WithExtensions(exts []string) Option {
	return func(s *Server) { s.extensions = exts }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) { s.log = log }
}

// NewServer creates a server rooted at root, which must be a directory.
func NewServer(root string, opts ...Option) (*Server, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", abs)
	}

	s := &Server{
		root:       abs,
		extensions: DefaultExtensions,
		log:        zap.NewNop(),
		registry:   prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics = newMetrics(s.registry)
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.instrument)

	internal := r.PathPrefix(InternalPrefix + "/").Subrouter()
	internal.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).
		Methods(http.MethodGet).Name("metrics")
	internal.HandleFunc("/healthz", s.handleHealth).
		Methods(http.MethodGet, http.MethodHead).Name("healthz")
	r.PathPrefix("/").HandlerFunc(s.handlePath).
		Methods(http.MethodGet, http.MethodHead).Name("path")
	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listing server started", zap.String("addr", addr), zap.String("root", s.root))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("listing server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	local, ok := s.resolve(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	info, err := os.Stat(local)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if info.IsDir() {
		if !strings.HasSuffix(r.URL.Path, "/") {
			http.Redirect(w, r, r.URL.Path+"/", http.StatusMovedPermanently)
			return
		}
		s.serveListing(w, r, local)
		return
	}

	if !info.Mode().IsRegular() {
		http.NotFound(w, r)
		return
	}
	f, err := os.Open(local)
	if err != nil {
		s.log.Warn("open file", zap.String("path", local), zap.Error(err))
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (s *Server) serveListing(w http.ResponseWriter, r *http.Request, dir string) {
	entries, err := ReadDir(dir, s.extensions)
	if err != nil {
		s.log.Warn("read directory", zap.String("path", dir), zap.Error(err))
		http.Error(w, "cannot read directory", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := Render(&buf, r.URL.Path, entries); err != nil {
		s.log.Error("render listing", zap.String("path", dir), zap.Error(err))
		http.Error(w, "cannot render listing", http.StatusInternalServerError)
		return
	}
	s.metrics.listingEntries.Observe(float64(len(entries)))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if r.Method == http.MethodHead {
		return
	}
	_, _ = buf.WriteTo(w)
}

// resolve maps a URL path to a local path under the root. Paths that would
// leave the root, including through symlinks, are rejected.
func (s *Server) resolve(urlPath string) (string, bool) {
	clean := path.Clean("/" + urlPath)
	local := filepath.Join(s.root, filepath.FromSlash(clean))

	real, err := filepath.EvalSymlinks(local)
	if err != nil {
		return "", false
	}
	rootReal, err := filepath.EvalSymlinks(s.root)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(rootReal, real)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return local, true
}
