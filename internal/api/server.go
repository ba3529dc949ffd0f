// Package api serves a read-only JSON view of the monitoring session.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	pderrors "github.com/rileyhilliard/pingdeck/internal/errors"
	"github.com/rileyhilliard/pingdeck/internal/logger"
	"github.com/rileyhilliard/pingdeck/internal/stats"
	"github.com/rileyhilliard/pingdeck/internal/supervisor"
)

// ShutdownTimeout bounds graceful shutdown of the HTTP server.
const ShutdownTimeout = 2 * time.Second

// Session is the state the API reports on. *supervisor.Supervisor satisfies it.
type Session interface {
	Hosts() []supervisor.Host
	Running() int
	Paused() bool
	Store() *stats.Store
}

// Server is the status API.
type Server struct {
	addr    string
	echo    *echo.Echo
	session Session
	log     logger.Logger
}

// New builds a server for session listening on addr.
func New(addr string, session Session, log logger.Logger) *Server {
	if log == nil {
		log = logger.Noop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		addr:    addr,
		echo:    e,
		session: session,
		log:     log,
	}

	e.Use(requestLogger(log))
	e.Use(recoverer(log))

	api := e.Group("/api")
	api.GET("/health", s.getHealth)
	api.GET("/hosts", s.listHosts)
	api.GET("/hosts/:addr", s.getHost)

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("status API listening on http://%s", s.addr)
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return pderrors.WrapWithCode(err, pderrors.ErrAPI,
				"Status API failed on "+s.addr,
				"Pick another address with --listen, or leave it empty to disable the API")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.log.Warn("status API shutdown: %v", err)
		}
		return nil
	})

	return g.Wait()
}
