package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/platfix/platfix/internal/render"
	"github.com/platfix/platfix/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve starts the HTTP server and blocks until SIGINT or SIGTERM, then drains in-flight requests.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	httpServer, err := r.buildServer(cmd.Int("port"), cmd.String("env"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Info("starting server", "addr", httpServer.Addr, "env", r.config.Server.Env, "api", r.api.BaseURL())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	select {
	case err, ok := <-serverErrors:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	r.logger.Info("shutting down", "timeout", r.config.Server.ShutdownTimeout.Duration)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), r.config.Server.ShutdownTimeout.Duration)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	r.logger.Info("server stopped")
	return nil
}

// buildServer applies command overrides, validates the config and wires the handler.
//
// The asset manifest is only read outside development.
func (r *Runner) buildServer(port int, env string) (*http.Server, error) {
	if port > 0 {
		r.config.Server.Port = port
	}
	if env != "" {
		r.config.Server.Env = env
	}
	if err := r.config.Validate(); err != nil {
		return nil, err
	}

	var manifest render.Manifest
	if !r.config.IsDevelopment() {
		m, err := render.LoadManifest(r.config.Server.ManifestPath)
		if err != nil {
			return nil, err
		}
		if m == nil {
			r.logger.Warn("asset manifest not found, using default asset paths", "path", r.config.Server.ManifestPath)
		}
		manifest = m
	}

	srv, err := server.New(server.Options{
		Config:   r.config,
		Service:  r.service,
		Logger:   r.logger,
		Manifest: manifest,
	})
	if err != nil {
		return nil, err
	}

	return srv.HTTPServer(r.config), nil
}
