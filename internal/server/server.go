package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"chickey-pos/internal/logger"
)

type Server struct {
	http *http.Server
	lg   *logger.Logger
}

func New(addr string, h http.Handler, lg *logger.Logger) *Server {
	return &Server{http: &http.Server{Addr: addr, Handler: h}, lg: lg}
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.http.ListenAndServe() }()

	select {
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.http.Shutdown(sctx); err != nil {
			s.lg.Error("shutdown_failed", err, nil)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
