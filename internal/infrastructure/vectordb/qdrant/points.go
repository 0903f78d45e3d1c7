package qdrant

import (
	"context"
	"fmt"
	"strings"

	pb "github.com/qdrant/go-client/qdrant"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
)

// Upsert writes the batch in one call and waits for it to be applied.
func (r *Repository) Upsert(ctx context.Context, collection string, points []entities.Point) (entities.OperationResult, error) {
	structs := make([]*pb.PointStruct, 0, len(points))
	for _, p := range points {
		payload, err := toPayload(p.Payload)
		if err != nil {
			return entities.OperationResult{}, fmt.Errorf("point %s: %w", p.ID, err)
		}

		structs = append(structs, &pb.PointStruct{
			Id: toPointID(p.ID),
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{
					Vector: &pb.Vector{
						Data: p.Vector,
					},
				},
			},
			Payload: payload,
		})
	}

	resp, err := r.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: collection,
		Wait:           pb.PtrOf(true),
		Points:         structs,
	})
	if err != nil {
		return entities.OperationResult{}, fmt.Errorf("upserting points: %w", mapError(err))
	}

	return toOperationResult(resp.GetResult()), nil
}

// Retrieve returns the requested points with payload and vectors. Missing ids
// are absent from the result.
func (r *Repository) Retrieve(ctx context.Context, collection string, ids []entities.PointID) ([]entities.RetrievedPoint, error) {
	resp, err := r.points.Get(ctx, &pb.GetPoints{
		CollectionName: collection,
		Ids:            toPointIDs(ids),
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
		WithVectors: &pb.WithVectorsSelector{
			SelectorOptions: &pb.WithVectorsSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("getting points: %w", mapError(err))
	}

	points := make([]entities.RetrievedPoint, 0, len(resp.GetResult()))
	for _, p := range resp.GetResult() {
		points = append(points, entities.RetrievedPoint{
			ID:      fromPointID(p.GetId()),
			Payload: fromPayload(p.GetPayload()),
			Vector:  fromVectors(p.GetVectors()),
		})
	}
	return points, nil
}

// DeletePoints deletes by id and waits for the operation to be applied.
func (r *Repository) DeletePoints(ctx context.Context, collection string, ids []entities.PointID) (entities.OperationResult, error) {
	resp, err := r.points.Delete(ctx, &pb.DeletePoints{
		CollectionName: collection,
		Wait:           pb.PtrOf(true),
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Points{
				Points: &pb.PointsIdsList{
					Ids: toPointIDs(ids),
				},
			},
		},
	})
	if err != nil {
		return entities.OperationResult{}, fmt.Errorf("deleting points: %w", mapError(err))
	}

	return toOperationResult(resp.GetResult()), nil
}

// Query runs one nearest-neighbor query and keeps the backend's order.
func (r *Repository) Query(ctx context.Context, collection string, vector []float32, limit uint64, scoreThreshold *float32) ([]entities.ScoredPoint, error) {
	resp, err := r.points.Query(ctx, &pb.QueryPoints{
		CollectionName: collection,
		Query:          pb.NewQuery(vector...),
		Limit:          pb.PtrOf(limit),
		ScoreThreshold: scoreThreshold,
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("querying points: %w", mapError(err))
	}

	hits := make([]entities.ScoredPoint, 0, len(resp.GetResult()))
	for _, p := range resp.GetResult() {
		hits = append(hits, entities.ScoredPoint{
			ID:      fromPointID(p.GetId()),
			Score:   p.GetScore(),
			Payload: fromPayload(p.GetPayload()),
			Version: p.GetVersion(),
		})
	}
	return hits, nil
}

func toOperationResult(res *pb.UpdateResult) entities.OperationResult {
	out := entities.OperationResult{
		Status: strings.ToLower(res.GetStatus().String()),
	}
	if res != nil && res.OperationId != nil {
		id := res.GetOperationId()
		out.OperationID = &id
	}
	return out
}
