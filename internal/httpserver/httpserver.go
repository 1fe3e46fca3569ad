package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Run maps the routes and serves until ctx is cancelled, then shuts the listener down gracefully.
// Background services (webhook consumer, scheduler, NATS) are owned by the caller.
func (srv *HTTPServer) Run(ctx context.Context) error {
	srv.mapHandlers()

	srv.srv = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", srv.host, srv.port),
		Handler:           srv.gin,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	srv.logger.Infof(ctx, "HTTP server started on %s", srv.srv.Addr)

	select {
	case err := <-errCh:
		if err != nil {
			srv.logger.Errorf(ctx, "internal.httpserver.Run.ListenAndServe: %v", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	srv.logger.Info(context.Background(), "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.srv.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(shutdownCtx, "internal.httpserver.Run.Shutdown: %v", err)
		return err
	}
	return nil
}
