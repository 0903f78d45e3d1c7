package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
	"github.com/ersonp/qdrant-admin/internal/domain/ports"
)

// DefaultSearchLimit is the default number of results to return.
const DefaultSearchLimit = 10

// PointsService embeds text on demand and runs point operations against the backend.
type PointsService struct {
	resolver   Resolver
	embeddings *EmbeddingProvider
	audit      ports.AuditLog
}

// NewPointsService creates a new points service. audit may be nil.
func NewPointsService(resolver Resolver, embeddings *EmbeddingProvider, audit ports.AuditLog) *PointsService {
	return &PointsService{
		resolver:   resolver,
		embeddings: embeddings,
		audit:      audit,
	}
}

// Upsert fills missing vectors from text with a single embedding call, copies
// each point's text into its payload, and writes the batch in one backend call.
// Points with neither vector nor text are excluded and reported in DroppedIDs.
func (s *PointsService) Upsert(ctx context.Context, collection string, points []entities.Point, model string) (entities.UpsertResult, error) {
	batch := make([]entities.Point, len(points))
	copy(batch, points)

	var texts []string
	var positions []int
	for i, p := range batch {
		if !p.HasVector() && p.HasText() {
			texts = append(texts, *p.Text)
			positions = append(positions, i)
		}
	}

	if len(texts) > 0 {
		vectors, err := s.embeddings.Embed(ctx, model, texts)
		if err != nil {
			return entities.UpsertResult{}, err
		}
		for j, pos := range positions {
			batch[pos].Vector = vectors[j]
		}
	}

	toWrite := make([]entities.Point, 0, len(batch))
	var dropped []entities.PointID
	for _, p := range batch {
		if p.HasText() {
			payload := make(map[string]any, len(p.Payload)+1)
			for k, v := range p.Payload {
				payload[k] = v
			}
			payload[entities.TextPayloadKey] = *p.Text
			p.Payload = payload
		}
		if !p.HasVector() {
			dropped = append(dropped, p.ID)
			continue
		}
		toWrite = append(toWrite, p)
	}

	if len(dropped) > 0 {
		droppedPoints.Add(float64(len(dropped)))
		log.Warn().Str("collection", collection).Int("dropped", len(dropped)).
			Msg("points without vector or text excluded from upsert")
	}

	if len(toWrite) == 0 {
		return entities.UpsertResult{
			Status:     entities.StatusNoPointsToUpsert,
			DroppedIDs: dropped,
		}, nil
	}

	backend, err := s.resolver.Resolve(ctx)
	if err != nil {
		return entities.UpsertResult{}, err
	}

	res, err := backend.Upsert(ctx, collection, toWrite)
	if err != nil {
		return entities.UpsertResult{}, fmt.Errorf("upserting points: %w", err)
	}

	recordAudit(ctx, s.audit, "upsert_points", collection, entities.OutcomeCompleted, map[string]any{
		"upserted": len(toWrite),
		"dropped":  len(dropped),
		"embedded": len(texts),
	})

	return entities.UpsertResult{
		OperationID: res.OperationID,
		Status:      res.Status,
		Upserted:    len(toWrite),
		DroppedIDs:  dropped,
	}, nil
}

// Get retrieves points by id with payload and vector. Ids the backend does not
// have are absent from the result.
func (s *PointsService) Get(ctx context.Context, collection string, ids []entities.PointID) ([]entities.RetrievedPoint, error) {
	backend, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	points, err := backend.Retrieve(ctx, collection, ids)
	if err != nil {
		return nil, fmt.Errorf("retrieving points: %w", err)
	}
	if points == nil {
		points = []entities.RetrievedPoint{}
	}
	return points, nil
}

// Delete removes points by id in one call. Unknown ids are not an error.
func (s *PointsService) Delete(ctx context.Context, collection string, ids []entities.PointID) (entities.OperationResult, error) {
	backend, err := s.resolver.Resolve(ctx)
	if err != nil {
		return entities.OperationResult{}, err
	}

	res, err := backend.DeletePoints(ctx, collection, ids)
	if err != nil {
		return entities.OperationResult{}, fmt.Errorf("deleting points: %w", err)
	}

	recordAudit(ctx, s.audit, "delete_points", collection, entities.OutcomeCompleted, map[string]any{
		"count": len(ids),
	})
	return res, nil
}

// SearchRequest holds the parameters of a text search.
type SearchRequest struct {
	Collection     string
	Query          string
	Limit          int
	ScoreThreshold *float32
	Model          string
}

// Search embeds the query text and runs one nearest-neighbor query. Results keep
// backend order.
func (s *PointsService) Search(ctx context.Context, req SearchRequest) ([]entities.ScoredPoint, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	vectors, err := s.embeddings.Embed(ctx, req.Model, []string{req.Query})
	if err != nil {
		return nil, fmt.Errorf("generating query embedding: %w", err)
	}

	backend, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	hits, err := backend.Query(ctx, req.Collection, vectors[0], uint64(limit), req.ScoreThreshold)
	if err != nil {
		return nil, fmt.Errorf("querying points: %w", err)
	}
	if hits == nil {
		hits = []entities.ScoredPoint{}
	}
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}
