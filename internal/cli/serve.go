package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/hwidmann/rootline/pkg/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		backend   string
		redisAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chart layout HTTP API",
		Long: `Run the chart layout HTTP API.

The API accepts the same options as the CLI with the tree inlined in
the request body:

  POST /v1/layout   compute chart geometry, returns layout JSON
  POST /v1/render   run the full pipeline, returns the artifact bytes
  GET  /healthz     liveness check

Layouts and artifacts are cached in process memory by default. Use
--cache-backend redis with --redis-addr to share the cache across
replicas, file to reuse the CLI's on-disk cache, or none (or --no-cache)
to disable caching.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if noCache {
				backend = BackendNone
			}
			return c.runServe(cmd.Context(), addr, backend, redisAddr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")
	cmd.Flags().StringVar(&backend, "cache-backend", BackendMemory, "cache backend: file, memory, redis, none")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "localhost:6379", "redis address for --cache-backend redis")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe starts the HTTP server and blocks until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, backend, redisAddr string) error {
	runner, err := c.newRunnerWithBackend(ctx, backend, redisAddr)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(runner, c.Logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr, "cache", backend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		c.Logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
