// Package mcp exposes the admin handlers as MCP tools.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ersonp/qdrant-admin/internal/application/handlers"
)

// ServerName is the MCP implementation name reported to clients.
const ServerName = "Qdrant Admin MCP"

const instructions = "This is an MCP server for Qdrant administration. " +
	"It provides tools to manage collections, snapshots and points of a Qdrant vector database. " +
	"Destructive tools require confirm=true."

// Handlers groups the application handlers the tools call.
type Handlers struct {
	Collections *handlers.CollectionHandler
	Snapshots   *handlers.SnapshotHandler
	Points      *handlers.PointsHandler
	Status      *handlers.StatusHandler
}

// NewServer creates and configures a new MCP server with all admin tools
// registered.
func NewServer(h Handlers, version string) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(instructions),
		server.WithToolHandlerMiddleware(instrument),
	)

	tools := NewToolHandlers(h)
	registerTools(s, tools)
	return s
}

func registerTools(s *server.MCPServer, t *ToolHandlers) {
	// Collections
	s.AddTool(mcp.NewTool("list_collections",
		mcp.WithDescription("List all collections in the Qdrant database"),
		mcp.WithTitleAnnotation("List Collections"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	), t.ListCollections)

	s.AddTool(mcp.NewTool("get_collection",
		mcp.WithDescription("Get status, point counts, segment count and vector configuration of a collection"),
		mcp.WithTitleAnnotation("Get Collection"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the collection"),
		),
	), t.GetCollection)

	s.AddTool(mcp.NewTool("create_collection",
		mcp.WithDescription("Create a new collection with a single vector space"),
		mcp.WithTitleAnnotation("Create Collection"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the collection to create"),
		),
		mcp.WithNumber("vector_size",
			mcp.Required(),
			mcp.Min(1),
			mcp.Description("Size of the vector (dimensionality)"),
		),
		mcp.WithString("distance",
			mcp.Enum("Cosine", "Euclid", "Dot", "Manhattan"),
			mcp.DefaultString("Cosine"),
			mcp.Description("Distance metric to use for similarity search"),
		),
	), t.CreateCollection)

	s.AddTool(mcp.NewTool("delete_collection",
		mcp.WithDescription("Permanently delete a collection and all its data. Requires confirm=true"),
		mcp.WithTitleAnnotation("Delete Collection"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the collection to delete"),
		),
		confirmArg("Confirmation flag - must be set to true to proceed with deletion"),
	), t.DeleteCollection)

	// Snapshots
	s.AddTool(mcp.NewTool("create_snapshot",
		mcp.WithDescription("Create a point-in-time snapshot of a collection for backup or restoration"),
		mcp.WithTitleAnnotation("Create Snapshot"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
		collectionArg("Name of the collection to snapshot"),
	), t.CreateSnapshot)

	s.AddTool(mcp.NewTool("list_snapshots",
		mcp.WithDescription("List all snapshots of a collection"),
		mcp.WithTitleAnnotation("List Snapshots"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		collectionArg("Name of the collection"),
	), t.ListSnapshots)

	s.AddTool(mcp.NewTool("delete_snapshot",
		mcp.WithDescription("Delete a snapshot of a collection. Requires confirm=true"),
		mcp.WithTitleAnnotation("Delete Snapshot"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		collectionArg("Name of the collection"),
		mcp.WithString("snapshot_name",
			mcp.Required(),
			mcp.Description("Name of the snapshot to delete"),
		),
		confirmArg("Confirmation flag - must be set to true to proceed with deletion"),
	), t.DeleteSnapshot)

	s.AddTool(mcp.NewTool("recover_from_snapshot",
		mcp.WithDescription("Replace all data of a collection with the state captured in a snapshot. Requires confirm=true"),
		mcp.WithTitleAnnotation("Recover from Snapshot"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		collectionArg("Name of the collection to recover"),
		mcp.WithString("snapshot_name",
			mcp.Required(),
			mcp.Description("Name of the snapshot to restore from, or a full location such as "+
				"file:///qdrant/snapshots/<collection>/<name>. A bare name is downloaded from the configured "+
				"Qdrant URL, which the Qdrant server itself must be able to reach; behind a proxy or a "+
				"remapped port use the file:// form"),
		),
		confirmArg("Confirmation flag - must be set to true to proceed with recovery"),
	), t.RecoverFromSnapshot)

	// Points
	s.AddTool(mcp.NewTool("get_points",
		mcp.WithDescription("Retrieve points by id with their payload and vector. Missing ids are omitted"),
		mcp.WithTitleAnnotation("Get Points"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		collectionArg("Name of the collection"),
		idsArg("List of point ids (unsigned integers or UUID strings)"),
	), t.GetPoints)

	s.AddTool(mcp.NewTool("delete_points",
		mcp.WithDescription("Delete points by id"),
		mcp.WithTitleAnnotation("Delete Points"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		collectionArg("Name of the collection"),
		idsArg("List of point ids to delete"),
	), t.DeletePoints)

	s.AddTool(mcp.NewTool("search_points",
		mcp.WithDescription("Search for points similar to a text query. The text is embedded with the selected model"),
		mcp.WithTitleAnnotation("Search Points"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		collectionArg("Name of the collection"),
		mcp.WithString("query_text",
			mcp.Required(),
			mcp.Description("Text to search for"),
		),
		mcp.WithNumber("limit",
			mcp.Min(1),
			mcp.DefaultNumber(10),
			mcp.Description("Maximum number of results"),
		),
		mcp.WithNumber("score_threshold",
			mcp.Description("Minimum score a result must reach"),
		),
		modelArg(),
	), t.SearchPoints)

	s.AddTool(mcp.NewTool("upsert_points",
		mcp.WithDescription("Insert or update points. Points with text and no vector are embedded in one batch; "+
			"the text is stored in the payload under \"text\". Points with neither vector nor text are skipped and reported in dropped_ids"),
		mcp.WithTitleAnnotation("Upsert Points"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
		collectionArg("Name of the collection"),
		mcp.WithArray("points",
			mcp.Required(),
			mcp.Description("Points to write, each with id and optional vector, text and payload"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":      pointIDSchema,
					"vector":  map[string]any{"type": "array", "items": map[string]any{"type": "number"}},
					"text":    map[string]any{"type": "string"},
					"payload": map[string]any{"type": "object"},
				},
				"required": []string{"id"},
			}),
		),
		modelArg(),
	), t.UpsertPoints)

	// Health
	s.AddTool(mcp.NewTool("status",
		mcp.WithDescription("Check Qdrant availability and round-trip latency"),
		mcp.WithTitleAnnotation("Status"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	), t.Status)
}

var pointIDSchema = map[string]any{
	"anyOf": []any{
		map[string]any{"type": "integer", "minimum": 0, "maximum": 1<<53 - 1},
		map[string]any{"type": "string", "description": "UUID or decimal integer; use this form for ids of 2^53 and above"},
	},
}

func collectionArg(desc string) mcp.ToolOption {
	return mcp.WithString("collection_name", mcp.Required(), mcp.Description(desc))
}

func confirmArg(desc string) mcp.ToolOption {
	return mcp.WithBoolean("confirm", mcp.DefaultBool(false), mcp.Description(desc))
}

func idsArg(desc string) mcp.ToolOption {
	return mcp.WithArray("ids", mcp.Required(), mcp.Description(desc), mcp.Items(pointIDSchema))
}

func modelArg() mcp.ToolOption {
	return mcp.WithString("embedding_model",
		mcp.Description("Embedding model name; defaults to the configured model"),
	)
}
