package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sulaimaniyah/undangan"
	"github.com/sulaimaniyah/undangan/internal/presentation/tui"
)

// ServeOptions configures the HTTP server command.
type ServeOptions struct {
	Options
	Addr  string
	Quiet bool
}

// Serve runs the invitation server until SIGINT or SIGTERM, then drains
// in-flight requests and persists live sessions.
func Serve(opts ServeOptions, out io.Writer) error {
	cfg, err := LoadConfig(opts.Options)
	if err != nil {
		return err
	}
	if opts.Addr != "" {
		cfg.Server.Addr = opts.Addr
	}
	logger, err := CreateLogger(cfg.Log)
	if err != nil {
		return err
	}

	app, err := undangan.New(cfg, undangan.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("error initializing undangan: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("closing application failed", "error", err)
		}
	}()

	if !opts.Quiet {
		tui.PrintBanner(out)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "version", undangan.Version)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-sigCtx.Done():
		logger.Info("shutting down", "signal", sigCtx.Signal())

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", cfg.Server.ShutdownTimeout, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("server stopped gracefully")
		return nil
	}
}
