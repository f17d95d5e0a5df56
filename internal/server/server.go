// Package server serves an encrypted gallery: the encoded files, a password form,
// and the decoded gallery page rendered after a successful unlock.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/idelchi/photolock/internal/config"
	"github.com/idelchi/photolock/internal/gallery"
	"github.com/idelchi/photolock/internal/logging"
)

const (
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 60 * time.Second

	// maxFormBytes bounds the unlock request body.
	maxFormBytes = 64 * 1024

	// defaultShutdownTimeout applies when the configuration leaves it unset.
	defaultShutdownTimeout = 30 * time.Second
)

// Server is the gallery web surface.
type Server struct {
	cfg     config.Server
	loader  *gallery.Loader
	files   fs.FS
	log     *logging.Logger
	metrics *metrics
	limiter *clientLimiter
	now     func() time.Time

	// Title is shown on the gallery page.
	Title string
}

// New returns a Server decoding with loader and serving the encoded files of files.
func New(cfg config.Server, loader *gallery.Loader, files fs.FS, log *logging.Logger) *Server {
	return &Server{
		cfg:     cfg,
		loader:  loader,
		files:   files,
		log:     log,
		metrics: newMetrics(),
		limiter: newClientLimiter(cfg.UnlockRPS, cfg.UnlockBurst, defaultIdleTTL),
		now:     time.Now,
		Title:   "Photo Gallery",
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.Use(loggerMiddleware(s.log))

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.Handle("/unlock", s.rateLimitMiddleware(http.HandlerFunc(s.handleUnlock))).Methods(http.MethodPost)
	r.HandleFunc("/encrypted/{file:.+}", s.handleEncrypted).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return r
}

// Run serves on the configured address until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}

	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		s.log.Infof("Serving gallery on %s", ln.Addr())

		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	s.log.Infof("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.log.Infof("Server exited")

	return nil
}
