package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tool call outcomes used as metric labels.
const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

var (
	toolCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qadmin_tool_calls_total",
			Help: "Total number of MCP tool calls by tool and outcome",
		},
		[]string{"tool", "outcome"},
	)
	toolDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "qadmin_tool_duration_seconds",
			Help:    "Duration of MCP tool calls in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		},
		[]string{"tool"},
	)
)

var tracer = otel.Tracer("qadmin/mcp")

func init() {
	prometheus.MustRegister(toolCalls, toolDuration)
}

// instrument wraps every tool call in a span, records metrics and logs the
// outcome.
func instrument(next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tool := request.Params.Name
		ctx, span := tracer.Start(ctx, "tool "+tool, trace.WithAttributes(
			attribute.String("mcp.tool.name", tool),
		))
		defer span.End()

		start := time.Now()
		result, err := next(ctx, request)
		elapsed := time.Since(start)

		outcome := outcomeOK
		switch {
		case err != nil:
			outcome = outcomeError
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case result != nil && result.IsError:
			outcome = outcomeError
			span.SetStatus(codes.Error, "tool returned an error result")
		}

		toolCalls.WithLabelValues(tool, outcome).Inc()
		toolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())

		event := log.Debug()
		if outcome == outcomeError {
			event = log.Warn()
			if err != nil {
				event = event.Err(err)
			} else if msg := resultText(result); msg != "" {
				event = event.Str("result", msg)
			}
		}
		event.Str("tool", tool).Dur("duration", elapsed).Str("outcome", outcome).Msg("tool call")

		return result, err
	}
}

// resultText returns the first text content of a result.
func resultText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}
	for _, c := range result.Content {
		if text, ok := mcp.AsTextContent(c); ok {
			return text.Text
		}
	}
	return ""
}
