package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/zanemountcastle/vibe-trading/internal/infra"
)

const shutdownTimeout = 5 * time.Second

// Server wraps the HTTP listener with request logging and graceful
// shutdown.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a Server on the given port. The port is resolved once at
// startup and passed by value; there is no ambient default.
func New(port int, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           withAccessLog(handler),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: slog.Default().With("module", "server"),
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests. A bad
// request never terminates the listener; only a listen failure returns an
// error.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Mock API server listening", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	snap := infra.GlobalMetrics.Snapshot()
	s.logger.Info("Server stopped",
		slog.Uint64("requests", snap.RequestsTotal),
		slog.Uint64("fixtures_served", snap.FixturesServed),
		slog.Uint64("quotes_generated", snap.QuotesGenerated),
		slog.Uint64("not_found", snap.NotFoundTotal))

	return <-errCh
}

func withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("Request handled",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("elapsed", time.Since(start)))
	})
}
