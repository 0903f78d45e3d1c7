package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ersonp/qdrant-admin/internal/application/handlers"
)

// ToolHandlers implements the MCP tool handler functions over the
// application handlers.
type ToolHandlers struct {
	h Handlers
}

// NewToolHandlers creates a new ToolHandlers.
func NewToolHandlers(h Handlers) *ToolHandlers {
	return &ToolHandlers{h: h}
}

// ListCollections returns all collection names.
func (t *ToolHandlers) ListCollections(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := t.h.Collections.List(ctx)
	if err != nil {
		return failure("list collections", err), nil
	}
	return jsonResult(names)
}

// GetCollection returns a collection summary.
func (t *ToolHandlers) GetCollection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}

	view, err := t.h.Collections.Get(ctx, name)
	if err != nil {
		return failure("get collection", err), nil
	}
	return jsonResult(view)
}

// CreateCollection creates a collection.
func (t *ToolHandlers) CreateCollection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}
	size, err := requireInt(request, "vector_size")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	msg, err := t.h.Collections.Create(ctx, handlers.CreateCollectionArgs{
		Name:       name,
		VectorSize: size,
		Distance:   request.GetString("distance", ""),
	})
	if err != nil {
		return failure("create collection", err), nil
	}
	return mcp.NewToolResultText(msg), nil
}

// DeleteCollection deletes a collection when confirmed.
func (t *ToolHandlers) DeleteCollection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}

	msg, err := t.h.Collections.Delete(ctx, name, request.GetBool("confirm", false))
	if err != nil {
		return failure("delete collection", err), nil
	}
	return mcp.NewToolResultText(msg), nil
}

// CreateSnapshot snapshots a collection.
func (t *ToolHandlers) CreateSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	collection, err := request.RequireString("collection_name")
	if err != nil {
		return mcp.NewToolResultError("collection_name is required"), nil
	}

	msg, err := t.h.Snapshots.Create(ctx, collection)
	if err != nil {
		return failure("create snapshot", err), nil
	}
	return mcp.NewToolResultText(msg), nil
}

// ListSnapshots returns snapshot names of a collection.
func (t *ToolHandlers) ListSnapshots(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	collection, err := request.RequireString("collection_name")
	if err != nil {
		return mcp.NewToolResultError("collection_name is required"), nil
	}

	names, err := t.h.Snapshots.List(ctx, collection)
	if err != nil {
		return failure("list snapshots", err), nil
	}
	return jsonResult(names)
}

// DeleteSnapshot deletes a snapshot when confirmed.
func (t *ToolHandlers) DeleteSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	collection, snapshot, errResult := snapshotArgs(request)
	if errResult != nil {
		return errResult, nil
	}

	msg, err := t.h.Snapshots.Delete(ctx, collection, snapshot, request.GetBool("confirm", false))
	if err != nil {
		return failure("delete snapshot", err), nil
	}
	return mcp.NewToolResultText(msg), nil
}

// RecoverFromSnapshot restores a collection when confirmed.
func (t *ToolHandlers) RecoverFromSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	collection, snapshot, errResult := snapshotArgs(request)
	if errResult != nil {
		return errResult, nil
	}

	msg, err := t.h.Snapshots.Recover(ctx, collection, snapshot, request.GetBool("confirm", false))
	if err != nil {
		return failure("recover from snapshot", err), nil
	}
	return mcp.NewToolResultText(msg), nil
}

// GetPoints retrieves points by id.
func (t *ToolHandlers) GetPoints(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	collection, ids, errResult := idsArgs(request)
	if errResult != nil {
		return errResult, nil
	}

	points, err := t.h.Points.Get(ctx, collection, ids)
	if err != nil {
		return failure("get points", err), nil
	}
	return jsonResult(points)
}

// DeletePoints deletes points by id.
func (t *ToolHandlers) DeletePoints(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	collection, ids, errResult := idsArgs(request)
	if errResult != nil {
		return errResult, nil
	}

	res, err := t.h.Points.Delete(ctx, collection, ids)
	if err != nil {
		return failure("delete points", err), nil
	}
	return jsonResult(res)
}

// SearchPoints runs a text similarity search.
func (t *ToolHandlers) SearchPoints(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	collection, err := request.RequireString("collection_name")
	if err != nil {
		return mcp.NewToolResultError("collection_name is required"), nil
	}
	query, err := request.RequireString("query_text")
	if err != nil {
		return mcp.NewToolResultError("query_text is required"), nil
	}

	args := handlers.SearchArgs{
		Collection: collection,
		Query:      query,
		Model:      request.GetString("embedding_model", ""),
	}
	if _, ok := request.GetArguments()["limit"]; ok {
		limit, err := requireInt(request, "limit")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if limit < 1 {
			return mcp.NewToolResultError("limit must be at least 1"), nil
		}
		args.Limit = int(limit)
	}
	if raw, ok := request.GetArguments()["score_threshold"]; ok && raw != nil {
		threshold, err := request.RequireFloat("score_threshold")
		if err != nil {
			return mcp.NewToolResultError("score_threshold must be a number"), nil
		}
		args.ScoreThreshold = &threshold
	}

	hits, err := t.h.Points.Search(ctx, args)
	if err != nil {
		return failure("search points", err), nil
	}
	return jsonResult(hits)
}

// UpsertPoints writes points, embedding text where no vector is given.
func (t *ToolHandlers) UpsertPoints(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	collection, err := request.RequireString("collection_name")
	if err != nil {
		return mcp.NewToolResultError("collection_name is required"), nil
	}
	points, ok := request.GetArguments()["points"].([]any)
	if !ok {
		return mcp.NewToolResultError("points must be a list of objects"), nil
	}

	res, err := t.h.Points.Upsert(ctx, handlers.UpsertArgs{
		Collection: collection,
		Points:     points,
		Model:      request.GetString("embedding_model", ""),
	})
	if err != nil {
		return failure("upsert points", err), nil
	}
	return jsonResult(res)
}

// Status reports backend availability. Backend failures are part of the
// report, not tool errors.
func (t *ToolHandlers) Status(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(t.h.Status.Handle(ctx))
}

func snapshotArgs(request mcp.CallToolRequest) (string, string, *mcp.CallToolResult) {
	collection, err := request.RequireString("collection_name")
	if err != nil {
		return "", "", mcp.NewToolResultError("collection_name is required")
	}
	snapshot, err := request.RequireString("snapshot_name")
	if err != nil {
		return "", "", mcp.NewToolResultError("snapshot_name is required")
	}
	return collection, snapshot, nil
}

func idsArgs(request mcp.CallToolRequest) (string, []any, *mcp.CallToolResult) {
	collection, err := request.RequireString("collection_name")
	if err != nil {
		return "", nil, mcp.NewToolResultError("collection_name is required")
	}
	ids, ok := request.GetArguments()["ids"].([]any)
	if !ok {
		return "", nil, mcp.NewToolResultError("ids must be a list of point ids")
	}
	return collection, ids, nil
}

// requireInt reads a whole-number argument. JSON numbers arrive as float64.
func requireInt(request mcp.CallToolRequest, key string) (int64, error) {
	f, err := request.RequireFloat(key)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s must be an integer, got %v", key, f)
	}
	return int64(f), nil
}

func failure(action string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", action, err))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
