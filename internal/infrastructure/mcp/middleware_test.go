package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrument_CountsOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		tool    string
		result  *mcp.CallToolResult
		err     error
		outcome string
	}{
		{"text result", "mw_ok", mcp.NewToolResultText("done"), nil, outcomeOK},
		{"error result", "mw_tool_error", mcp.NewToolResultError("bad input"), nil, outcomeError},
		{"handler error", "mw_handler_error", nil, errors.New("boom"), outcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			handler := instrument(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				called = true
				return tt.result, tt.err
			})

			before := testutil.ToFloat64(toolCalls.WithLabelValues(tt.tool, tt.outcome))
			result, err := handler(t.Context(), callRequest(tt.tool, nil))

			require.True(t, called)
			assert.Equal(t, tt.result, result)
			assert.Equal(t, tt.err, err)
			assert.Equal(t, before+1, testutil.ToFloat64(toolCalls.WithLabelValues(tt.tool, tt.outcome)))
		})
	}
}

func TestResultText(t *testing.T) {
	assert.Equal(t, "", resultText(nil))
	assert.Equal(t, "", resultText(&mcp.CallToolResult{}))
	assert.Equal(t, "hello", resultText(mcp.NewToolResultText("hello")))
}
