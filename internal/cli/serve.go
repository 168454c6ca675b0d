package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aretw0/antoine"
	httpAdapter "github.com/aretw0/antoine/pkg/adapters/http"
	"github.com/aretw0/antoine/pkg/adapters/mcp"
)

// shutdownTimeout bounds graceful shutdown of the HTTP server.
const shutdownTimeout = 5 * time.Second

// ServeOptions configure the dashboard server.
type ServeOptions struct {
	// Addr overrides the configured listen address.
	Addr string
	// Watch reloads the table on change and notifies /events subscribers.
	Watch bool
	// PurgeCache drops cached dashboards from Redis before serving.
	PurgeCache bool
	// Stdout receives human-readable status lines.
	Stdout io.Writer
}

// RunServe serves the dashboard until ctx is cancelled.
func RunServe(ctx context.Context, rt *Runtime, opts ServeOptions) error {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	addr := opts.Addr
	if addr == "" {
		addr = rt.Config.Addr()
	}

	if opts.PurgeCache {
		if rt.Redis == nil {
			rt.Logger.Warn("--purge-cache ignored: the redis cache backend is not active")
		} else {
			n, err := rt.Redis.Purge(ctx)
			if err != nil {
				return fmt.Errorf("failed to purge cache: %w", err)
			}
			printSystemMessage(stdout, "Purged %d cached dashboards.", n)
		}
	}

	var serverOpts []httpAdapter.Option
	serverOpts = append(serverOpts, httpAdapter.WithLogger(rt.Logger))
	if rt.Metrics != nil {
		serverOpts = append(serverOpts, httpAdapter.WithMetrics(rt.Metrics))
	}
	server, err := httpAdapter.NewServer(rt.Engine, serverOpts...)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if opts.Watch {
		go func() {
			err := WatchAndReload(ctx, rt.Engine, rt.Logger, func(event string) {
				printSystemMessage(stdout, "Change detected in '%s', table reloaded.", event)
				server.Notify(event)
			})
			if err != nil {
				rt.Logger.Warn("Hot reload disabled", "err", err)
			}
		}()
	}

	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(stdout, "Antoine %s serving '%s' on http://%s", antoine.Version, rt.Config.Table, displayAddr(addr))
		rt.Logger.Info("HTTP server listening", "addr", addr, "table", rt.Config.Table)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		printSystemMessage(stdout, "Shutting down...")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			rt.Logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		printSystemMessage(stdout, "Antoine server stopped gracefully")
		return nil
	}
}

// RunMCP serves the engine as MCP tools over stdio or SSE.
func RunMCP(ctx context.Context, rt *Runtime, transport string, port int) error {
	srv := mcp.NewServer(rt.Engine)
	switch transport {
	case "stdio":
		rt.Logger.Info("Starting Antoine MCP Server (Stdio)")
		return srv.ServeStdio()
	case "sse":
		rt.Logger.Info("Starting Antoine MCP Server (SSE)", "port", port)
		if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		rt.Logger.Info("MCP Server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport %q (supported: stdio, sse)", transport)
	}
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
