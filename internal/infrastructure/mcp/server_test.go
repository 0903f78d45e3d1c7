package mcp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestNewServer_RegistersTools(t *testing.T) {
	s := NewServer(newTestEnv().handlers, "test")

	tools := s.ListTools()
	want := []string{
		"list_collections", "get_collection", "create_collection", "delete_collection",
		"create_snapshot", "list_snapshots", "delete_snapshot", "recover_from_snapshot",
		"get_points", "delete_points", "search_points", "upsert_points", "status",
	}
	assert.Len(t, tools, len(want))
	for _, name := range want {
		assert.Contains(t, tools, name)
	}
}

func TestNewServer_Annotations(t *testing.T) {
	s := NewServer(newTestEnv().handlers, "test")

	tests := []struct {
		tool        string
		readOnly    bool
		destructive bool
	}{
		{"list_collections", true, false},
		{"get_points", true, false},
		{"status", true, false},
		{"create_collection", false, false},
		{"upsert_points", false, false},
		{"delete_collection", false, true},
		{"delete_snapshot", false, true},
		{"recover_from_snapshot", false, true},
		{"delete_points", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			st := s.GetTool(tt.tool)
			require.NotNil(t, st)

			ann := st.Tool.Annotations
			assert.NotEmpty(t, ann.Title)
			require.NotNil(t, ann.ReadOnlyHint)
			assert.Equal(t, tt.readOnly, *ann.ReadOnlyHint)
			if !tt.readOnly {
				require.NotNil(t, ann.DestructiveHint)
				assert.Equal(t, tt.destructive, *ann.DestructiveHint)
			}
		})
	}
}

func TestNewServer_RequiredArguments(t *testing.T) {
	s := NewServer(newTestEnv().handlers, "test")

	tests := []struct {
		tool     string
		required []string
	}{
		{"create_collection", []string{"name", "vector_size"}},
		{"recover_from_snapshot", []string{"collection_name", "snapshot_name"}},
		{"upsert_points", []string{"collection_name", "points"}},
		{"search_points", []string{"collection_name", "query_text"}},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			st := s.GetTool(tt.tool)
			require.NotNil(t, st)
			assert.ElementsMatch(t, tt.required, st.Tool.InputSchema.Required)
		})
	}
}

func TestNewServer_HandleToolCall(t *testing.T) {
	env := newTestEnv()
	env.backend.Collections = []string{"docs"}
	s := NewServer(env.handlers, "test")

	call := func(t *testing.T, name string, args map[string]any) gjson.Result {
		t.Helper()
		msg, err := json.Marshal(map[string]any{
			"jsonrpc": "2.0",
			"id":      1,
			"method":  "tools/call",
			"params":  map[string]any{"name": name, "arguments": args},
		})
		require.NoError(t, err)

		resp := s.HandleMessage(t.Context(), msg)
		data, err := json.Marshal(resp)
		require.NoError(t, err)
		return gjson.ParseBytes(data)
	}

	t.Run("success", func(t *testing.T) {
		res := call(t, "list_collections", nil)
		assert.False(t, res.Get("result.isError").Bool())
		assert.JSONEq(t, `["docs"]`, res.Get("result.content.0.text").String())
	})

	t.Run("refusal is not an error", func(t *testing.T) {
		res := call(t, "delete_collection", map[string]any{"name": "docs"})
		assert.False(t, res.Get("result.isError").Bool())
		assert.Contains(t, res.Get("result.content.0.text").String(), "not confirmed")
		assert.Equal(t, 0, env.backend.DeleteCollectionCallCount)
	})

	t.Run("invalid arguments are tool errors", func(t *testing.T) {
		res := call(t, "create_collection", map[string]any{"name": "docs", "vector_size": -3})
		assert.True(t, res.Get("result.isError").Bool())
	})

	t.Run("unknown tool", func(t *testing.T) {
		res := call(t, "drop_everything", nil)
		assert.True(t, res.Get("error").Exists())
	})
}

func TestNewServer_ArgumentSchemas(t *testing.T) {
	s := NewServer(newTestEnv().handlers, "test")

	schemaOf := func(tool string) string {
		st := s.GetTool(tool)
		require.NotNil(t, st)
		data, err := json.Marshal(st.Tool)
		require.NoError(t, err)
		return string(data)
	}

	recoverSchema := schemaOf("recover_from_snapshot")
	assert.Contains(t, gjson.Get(recoverSchema, "inputSchema.properties.snapshot_name.description").String(), "file://")

	deleteSchema := schemaOf("delete_points")
	assert.Equal(t, int64(1<<53-1), gjson.Get(deleteSchema, "inputSchema.properties.ids.items.anyOf.0.maximum").Int())
	assert.Equal(t, "string", gjson.Get(deleteSchema, "inputSchema.properties.ids.items.anyOf.1.type").String())
}
