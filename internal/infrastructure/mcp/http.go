package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/ersonp/qdrant-admin/internal/application/handlers"
	"github.com/ersonp/qdrant-admin/internal/domain/services"
	"github.com/ersonp/qdrant-admin/internal/infrastructure/config"
)

// Per-call destination headers.
const (
	HeaderQdrantURL    = "X-Qdrant-Url"
	HeaderQdrantAPIKey = "X-Qdrant-Api-Key"
)

// DestinationContext copies the destination headers of r into ctx so the
// connection registry resolves that destination for the call.
func DestinationContext(ctx context.Context, r *http.Request) context.Context {
	o := services.DestinationOverride{
		URL: strings.TrimSpace(r.Header.Get(HeaderQdrantURL)),
	}
	if values, ok := r.Header[http.CanonicalHeaderKey(HeaderQdrantAPIKey)]; ok && len(values) > 0 {
		o.APIKey = values[0]
		o.APIKeySet = true
	}
	if o.URL == "" && !o.APIKeySet {
		return ctx
	}
	return services.WithDestination(ctx, o)
}

// HTTPServer serves the MCP endpoint next to /status and /metrics.
type HTTPServer struct {
	srv       *http.Server
	transport interface {
		Shutdown(ctx context.Context) error
	}
}

// NewHTTPServer builds the HTTP server for the streamable-http or sse
// transport.
func NewHTTPServer(mcpServer *server.MCPServer, cfg config.ServerConfig, status *handlers.StatusHandler) (*HTTPServer, error) {
	mux := http.NewServeMux()
	out := &HTTPServer{
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	switch cfg.Transport {
	case config.TransportStreamableHTTP:
		endpoint := cfg.Endpoint
		if endpoint == "" {
			endpoint = "/mcp"
		}
		streamable := server.NewStreamableHTTPServer(mcpServer,
			server.WithEndpointPath(endpoint),
			server.WithHTTPContextFunc(DestinationContext),
			server.WithStreamableHTTPServer(out.srv),
		)
		mux.Handle(endpoint, streamable)
		out.transport = streamable
	case config.TransportSSE:
		sse := server.NewSSEServer(mcpServer,
			server.WithSSEContextFunc(DestinationContext),
			server.WithUseFullURLForMessageEndpoint(false),
			server.WithHTTPServer(out.srv),
		)
		mux.Handle(sse.CompleteSsePath(), sse)
		mux.Handle(sse.CompleteMessagePath(), sse)
		out.transport = sse
	default:
		return nil, fmt.Errorf("transport %q is not served over HTTP", cfg.Transport)
	}

	mux.Handle("/status", StatusHandler(status))
	mux.Handle("/metrics", promhttp.Handler())

	return out, nil
}

// Handler returns the root HTTP handler.
func (s *HTTPServer) Handler() http.Handler {
	return s.srv.Handler
}

// ListenAndServe serves until Shutdown. It returns nil after a clean shutdown.
func (s *HTTPServer) ListenAndServe() error {
	log.Info().Str("addr", s.srv.Addr).Msg("Starting MCP server")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving http: %w", err)
	}
	return nil
}

// Shutdown closes MCP sessions and stops the HTTP server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.transport.Shutdown(ctx)
}

// StatusHandler serves the health report as JSON. It answers 200 when the
// backend is reachable and 503 otherwise.
func StatusHandler(status *handlers.StatusHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		report := status.Handle(DestinationContext(r.Context(), r))

		code := http.StatusOK
		if !report.BackendAvailable {
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		if err := json.NewEncoder(w).Encode(report); err != nil {
			log.Error().Err(err).Msg("writing status response")
		}
	})
}
