// ABOUTME: HTTP server wiring for relaygate's health and admin API routes
// ABOUTME: Seeds request contexts with the AdminConfig and store via BaseContext

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/relayforge/relaygate/internal/auth"
	"github.com/relayforge/relaygate/internal/config"
	"github.com/relayforge/relaygate/internal/store"
)

// Server hosts the relaygate HTTP API. All /api/v1/admin routes are gated by
// the admin guard; /health is open.
type Server struct {
	cfg        *config.Config
	adminCfg   *auth.AdminConfig
	store      store.Store
	logger     *slog.Logger
	mux        *http.ServeMux
	httpServer *http.Server
}

// New builds a Server with all routes registered. The AdminConfig and store
// are the process-wide collaborators the guard reads back out of each
// request's context.
func New(cfg *config.Config, adminCfg *auth.AdminConfig, st store.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:      cfg,
		adminCfg: adminCfg,
		store:    st,
		logger:   logger.With("component", "server"),
	}

	mux := http.NewServeMux()

	// Health endpoint - no auth required
	mux.HandleFunc("/health", s.handleHealth)

	// Admin API - every route behind the guard
	requireAdmin := auth.RequireAdmin(logger)
	mux.Handle("/api/v1/admin/allowed", requireAdmin(http.HandlerFunc(s.handleListAllowed)))
	mux.Handle("/api/v1/admin/allow", requireAdmin(http.HandlerFunc(s.handleAllow)))
	mux.Handle("/api/v1/admin/disallow", requireAdmin(http.HandlerFunc(s.handleDisallow)))
	mux.Handle("/api/v1/admin/blocked", requireAdmin(http.HandlerFunc(s.handleListBlocked)))
	mux.Handle("/api/v1/admin/block", requireAdmin(http.HandlerFunc(s.handleBlock)))
	mux.Handle("/api/v1/admin/unblock", requireAdmin(http.HandlerFunc(s.handleUnblock)))
	mux.Handle("/api/v1/admin/connected", requireAdmin(http.HandlerFunc(s.handleConnected)))
	mux.Handle("/api/v1/admin/stats", requireAdmin(http.HandlerFunc(s.handleStats)))

	s.mux = mux
	s.httpServer = &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// BaseContext returns the context every request derives from, carrying the
// process-wide AdminConfig and store handle for the guard to look up.
func (s *Server) BaseContext() context.Context {
	ctx := auth.WithAdminConfig(context.Background(), s.adminCfg)
	return auth.WithStore(ctx, s.store)
}

// Handler exposes the route mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails. Returns nil on graceful shutdown.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listening on HTTP address: %w", err)
	}

	s.httpServer.BaseContext = func(net.Listener) context.Context {
		return s.BaseContext()
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		s.logger.Info("http server stopped")
		return nil
	case err := <-errCh:
		return err
	}
}
