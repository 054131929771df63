// Command imgkitd serves the imgkit operations over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogpu/imgkit"
	"github.com/gogpu/imgkit/internal/api"
	"github.com/gogpu/imgkit/internal/config"
	"github.com/gogpu/imgkit/surface"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	imgkit.SetLogger(logger)

	var fopts []surface.FactoryOption
	if cfg.Backend != "" {
		fopts = append(fopts, surface.WithBackend(cfg.Backend))
	}
	factory, err := surface.NewFactory(fopts...)
	if err != nil {
		log.Fatalf("Failed to create surface factory: %v", err)
	}
	defer factory.Close()

	m, err := imgkit.NewManipulator(
		imgkit.WithSurfaceFactory(factory),
		imgkit.WithMaxSourceBytes(cfg.MaxSourceBytes),
	)
	if err != nil {
		log.Fatalf("Failed to create manipulator: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewServer(m, cfg.MaxBodyBytes, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Addr, "backend", factory.Backend())
		errCh <- srv.ListenAndServe()
	}()

	if err := serve(ctx, srv, errCh, 15*time.Second); err != nil {
		logger.Error("server stopped", "error", err)
		factory.Close()
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// serve blocks until ctx is done or the server fails, then shuts srv down
// and waits for in-flight requests up to timeout.
func serve(ctx context.Context, srv *http.Server, errCh <-chan error, timeout time.Duration) error {
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
