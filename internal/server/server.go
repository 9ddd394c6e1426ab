// Package server exposes exploration sessions over HTTP and websockets.
//
// Each session owns one [explore.Explorer]. Clients create a session from a
// seed sense (or a word), read snapshots, and expand nodes either with a
// POST request or by sending an "activate" message over the session's
// websocket. Every expansion is broadcast to all websocket subscribers of the
// session as node and edge events.
//
// Routes:
//
//	POST   /api/sessions                             create a session
//	GET    /api/sessions/{id}                        snapshot
//	DELETE /api/sessions/{id}                        end a session
//	POST   /api/sessions/{id}/nodes/{sense}/expand   expand one node
//	GET    /api/sessions/{id}/ws                     event stream
//	GET    /health
//	GET    /metrics                                  when a metrics handler is configured
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/lexgraph/pkg/explore"
	"github.com/matzehuels/lexgraph/pkg/lexicon"
)

// Config configures a [Server].
type Config struct {
	// Explore holds the options every new session is created with.
	// Its Logger is replaced by the server's logger when nil.
	Explore explore.Options

	// Logger receives request and session logs. Nil discards.
	Logger *log.Logger

	// Metrics is mounted at /metrics when non-nil.
	Metrics http.Handler

	// ShutdownTimeout bounds graceful shutdown in ListenAndServe.
	// Zero means 10 seconds.
	ShutdownTimeout time.Duration
}

// Server is the HTTP front end for exploration sessions.
type Server struct {
	db       lexicon.Database
	cfg      Config
	logger   *log.Logger
	sessions *sessionStore
	upgrader websocket.Upgrader
}

// New creates a server reading from db.
func New(db lexicon.Database, cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Explore.Logger == nil {
		cfg.Explore.Logger = cfg.Logger
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return &Server{
		db:       db,
		cfg:      cfg,
		logger:   cfg.Logger,
		sessions: newSessionStore(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/health", s.health)
	if s.cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.cfg.Metrics)
	}

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Post("/nodes/{senseID}/expand", s.expandNode)
			r.Get("/ws", s.stream)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully and closes all sessions.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.sessions.closeAll()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int { return s.sessions.len() }
