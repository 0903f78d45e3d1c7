package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
	"github.com/ersonp/qdrant-admin/internal/domain/services"
)

// PointsHandler handles point reads, writes and search.
type PointsHandler struct {
	pointsService *services.PointsService
}

// NewPointsHandler creates a new points handler.
func NewPointsHandler(pointsService *services.PointsService) *PointsHandler {
	return &PointsHandler{
		pointsService: pointsService,
	}
}

// UpsertArgs are the upsert_points inputs. Points holds decoded JSON objects
// with id, and optionally vector, text and payload.
type UpsertArgs struct {
	Collection string
	Points     []any
	Model      string
}

// SearchArgs are the search_points inputs. Limit zero means the default.
type SearchArgs struct {
	Collection     string
	Query          string
	Limit          int
	ScoreThreshold *float64
	Model          string
}

// Upsert decodes the points and writes them in one batch.
func (h *PointsHandler) Upsert(ctx context.Context, args UpsertArgs) (*entities.UpsertResult, error) {
	if err := requireName("collection_name", args.Collection); err != nil {
		return nil, err
	}

	points, err := DecodePoints(args.Points)
	if err != nil {
		return nil, err
	}

	res, err := h.pointsService.Upsert(ctx, args.Collection, points, args.Model)
	if err != nil {
		return nil, fmt.Errorf("upserting points: %w", err)
	}
	return &res, nil
}

// Get retrieves points by id. Ids the backend does not have are absent.
func (h *PointsHandler) Get(ctx context.Context, collection string, rawIDs []any) ([]entities.RetrievedPoint, error) {
	ids, err := h.decodeIDs(collection, rawIDs)
	if err != nil {
		return nil, err
	}

	points, err := h.pointsService.Get(ctx, collection, ids)
	if err != nil {
		return nil, fmt.Errorf("getting points: %w", err)
	}
	return points, nil
}

// Delete deletes points by id.
func (h *PointsHandler) Delete(ctx context.Context, collection string, rawIDs []any) (*entities.OperationResult, error) {
	ids, err := h.decodeIDs(collection, rawIDs)
	if err != nil {
		return nil, err
	}

	res, err := h.pointsService.Delete(ctx, collection, ids)
	if err != nil {
		return nil, fmt.Errorf("deleting points: %w", err)
	}
	return &res, nil
}

// Search embeds the query text and returns the nearest points.
func (h *PointsHandler) Search(ctx context.Context, args SearchArgs) ([]entities.ScoredPoint, error) {
	if err := requireName("collection_name", args.Collection); err != nil {
		return nil, err
	}
	if args.Query == "" {
		return nil, fmt.Errorf("%w: query_text is required", entities.ErrInvalidArgument)
	}
	if args.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", entities.ErrInvalidArgument, args.Limit)
	}

	req := services.SearchRequest{
		Collection: args.Collection,
		Query:      args.Query,
		Limit:      args.Limit,
		Model:      args.Model,
	}
	if args.ScoreThreshold != nil {
		threshold := float32(*args.ScoreThreshold)
		req.ScoreThreshold = &threshold
	}

	hits, err := h.pointsService.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("searching points: %w", err)
	}
	return hits, nil
}

func (h *PointsHandler) decodeIDs(collection string, rawIDs []any) ([]entities.PointID, error) {
	if err := requireName("collection_name", collection); err != nil {
		return nil, err
	}
	if len(rawIDs) == 0 {
		return nil, fmt.Errorf("%w: ids must not be empty", entities.ErrInvalidArgument)
	}
	return entities.ParsePointIDs(rawIDs)
}

// DecodePoints converts decoded JSON point objects into Points. Each object
// needs an id; vector must be a list of numbers, text a string and payload an
// object. Objects with neither vector nor text are kept so the pipeline can
// report them as dropped.
func DecodePoints(raw []any) ([]entities.Point, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: points must not be empty", entities.ErrInvalidArgument)
	}

	points := make([]entities.Point, 0, len(raw))
	for i, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: points[%d] must be an object", entities.ErrInvalidArgument, i)
		}

		p, err := decodePoint(obj)
		if err != nil {
			return nil, fmt.Errorf("points[%d]: %w", i, err)
		}
		points = append(points, p)
	}
	return points, nil
}

func decodePoint(obj map[string]any) (entities.Point, error) {
	id, err := entities.ParsePointID(obj["id"])
	if err != nil {
		return entities.Point{}, err
	}
	p := entities.Point{ID: id}

	if raw, ok := obj["vector"]; ok && raw != nil {
		vec, err := decodeVector(raw)
		if err != nil {
			return entities.Point{}, err
		}
		p.Vector = vec
	}

	if raw, ok := obj["text"]; ok && raw != nil {
		text, ok := raw.(string)
		if !ok {
			return entities.Point{}, fmt.Errorf("%w: text must be a string", entities.ErrInvalidArgument)
		}
		p.Text = &text
	}

	if raw, ok := obj["payload"]; ok && raw != nil {
		payload, ok := raw.(map[string]any)
		if !ok {
			return entities.Point{}, fmt.Errorf("%w: payload must be an object", entities.ErrInvalidArgument)
		}
		p.Payload = payload
	}

	return p, nil
}

func decodeVector(raw any) ([]float32, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: vector must be a list of numbers", entities.ErrInvalidArgument)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: vector must not be empty", entities.ErrInvalidArgument)
	}

	vec := make([]float32, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case float64:
			vec[i] = float32(v)
		case json.Number:
			f, err := v.Float64()
			if err != nil {
				return nil, fmt.Errorf("%w: vector[%d] is not a number", entities.ErrInvalidArgument, i)
			}
			vec[i] = float32(f)
		case int:
			vec[i] = float32(v)
		default:
			return nil, fmt.Errorf("%w: vector[%d] is not a number", entities.ErrInvalidArgument, i)
		}
	}
	return vec, nil
}
