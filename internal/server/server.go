// Package server exposes the chat analysis pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ccollicutt/chatlens/pkg/config"
	"github.com/ccollicutt/chatlens/pkg/stats"
)

const (
	// MaxUploadBytes caps the size of an uploaded chat export.
	MaxUploadBytes = 32 << 20 // 32 MiB

	shutdownGrace = 10 * time.Second
)

// Server wraps an http.Server with the analysis dependencies.
type Server struct {
	addr     string
	cfg      *config.Config
	analyzer *stats.Analyzer
	log      zerolog.Logger
	srv      *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger replaces the default stderr logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// New creates a Server listening on addr, using cfg for analysis tuning.
func New(addr string, cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	stopwords, err := stats.LoadStopwords(cfg.StopwordsFile)
	if err != nil {
		return nil, err
	}

	s := &Server{
		addr: addr,
		cfg:  cfg,
		analyzer: stats.NewAnalyzer(
			stats.WithSentinelAuthor(cfg.SentinelAuthor),
			stats.WithMediaMarkers(cfg.MediaMarkers),
			stats.WithStopwords(stopwords),
		),
		log: zerolog.New(os.Stderr).With().Timestamp().Str("component", "server").Logger(),
	}
	for _, o := range opts {
		o(s)
	}

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Addr returns the listening address.
func (s *Server) Addr() string { return s.addr }

// Handler returns the root handler, for tests.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// Run starts the server and blocks until ctx is cancelled or the
// listener fails. Shutdown drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.addr).Msg("listening")
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
