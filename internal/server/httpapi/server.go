// Package httpapi exposes the development server's REST surface: JWT auth,
// agents, conversations and messages under /api, shaped the way the Meggy
// client expects (DRF-style field errors and paginated envelopes).
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/meggy/internal/logging"
	"github.com/dmitrijs2005/meggy/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	address string
	logger  logging.Logger
	users   *services.UserService
	agents  *services.AgentService
	convs   *services.ConversationService
	router  chi.Router
}

func NewServer(address string, l logging.Logger, us *services.UserService, as *services.AgentService, cs *services.ConversationService) *Server {
	s := &Server{
		address: address,
		logger:  l.With("module", "http_server"),
		users:   us,
		agents:  as,
		convs:   cs,
	}
	s.router = s.routes()
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
