package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ersonp/qdrant-admin/internal/infrastructure/config"
	"github.com/ersonp/qdrant-admin/internal/infrastructure/mcp"
)

func newServeCmd() *cobra.Command {
	var (
		transport string
		addr      string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		Long: "Serves the Qdrant admin tools over MCP. The streamable-http and sse transports also expose " +
			"/status and /metrics; stdio speaks the protocol on stdin and stdout.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), transport, addr)
		},
	}

	cmd.Flags().StringVarP(&transport, "transport", "t", "", "Transport: streamable-http, sse or stdio (default from config)")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address for HTTP transports (default from config)")

	return cmd
}

func runServe(ctx context.Context, transport, addr string) error {
	return withDeps(ctx, func(d *Deps) error {
		serverCfg := d.Config.Server
		if transport != "" {
			serverCfg.Transport = transport
		}
		if addr != "" {
			serverCfg.Addr = addr
		}

		mcpServer := mcp.NewServer(d.Handlers, version)

		if serverCfg.Transport == config.TransportStdio {
			log.Info().Msg("Serving MCP over stdio")
			if err := server.ServeStdio(mcpServer); err != nil {
				return fmt.Errorf("serving stdio: %w", err)
			}
			return nil
		}

		httpServer, err := mcp.NewHTTPServer(mcpServer, serverCfg, d.Handlers.Status)
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- httpServer.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info().Msg("Shutting down MCP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return <-errCh
	})
}
