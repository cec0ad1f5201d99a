package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JonnyWalker81/librarium/backend/api"
	"github.com/JonnyWalker81/librarium/backend/internal/config"
	"github.com/JonnyWalker81/librarium/backend/internal/logger"
	"github.com/JonnyWalker81/librarium/backend/internal/schema"
)

var errValidationWithoutContract = errors.New("request validation is enabled but no contract is loaded")

// LoadContract loads the configured contract, or the embedded one when no
// location is configured.
func LoadContract(ctx context.Context, location string) (*schema.Contract, error) {
	if location == "" {
		return schema.LoadData(ctx, api.Contract, api.ContractSource)
	}
	return schema.Load(ctx, location)
}

// Server is the librarium HTTP server.
type Server struct {
	http            *http.Server
	shutdownTimeout time.Duration
}

// New creates a server listening on the configured port.
func New(cfg *config.Config, handler http.Handler) *Server {
	return &Server{
		http: &http.Server{
			Addr:              net.JoinHostPort("", cfg.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		shutdownTimeout: cfg.Server.ShutdownTimeout,
	}
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server listening", logger.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		logger.Info("shutting down server", logger.Duration("timeout", s.shutdownTimeout))
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}
