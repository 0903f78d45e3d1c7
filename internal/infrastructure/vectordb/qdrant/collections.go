package qdrant

import (
	"context"
	"fmt"
	"strings"

	pb "github.com/qdrant/go-client/qdrant"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
)

// ListCollections returns collection names in backend order.
func (r *Repository) ListCollections(ctx context.Context) ([]string, error) {
	resp, err := r.collections.List(ctx, &pb.ListCollectionsRequest{})
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", mapError(err))
	}

	names := make([]string, 0, len(resp.GetCollections()))
	for _, c := range resp.GetCollections() {
		names = append(names, c.GetName())
	}
	return names, nil
}

// GetCollection returns status, counts and vector configuration.
func (r *Repository) GetCollection(ctx context.Context, name string) (entities.CollectionInfo, error) {
	resp, err := r.collections.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: name,
	})
	if err != nil {
		return entities.CollectionInfo{}, fmt.Errorf("getting collection info: %w", mapError(err))
	}

	return collectionInfo(name, resp.GetResult()), nil
}

// CreateCollection creates a collection with a single unnamed vector space.
func (r *Repository) CreateCollection(ctx context.Context, spec entities.CollectionSpec) error {
	distance, err := toDistance(spec.Distance)
	if err != nil {
		return err
	}

	_, err = r.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: spec.Name,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     spec.VectorSize,
					Distance: distance,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("creating collection: %w", mapError(err))
	}

	return nil
}

// DeleteCollection removes the collection and all its data.
func (r *Repository) DeleteCollection(ctx context.Context, name string) error {
	_, err := r.collections.Delete(ctx, &pb.DeleteCollection{
		CollectionName: name,
	})
	if err != nil {
		return fmt.Errorf("deleting collection: %w", mapError(err))
	}

	return nil
}

func collectionInfo(name string, info *pb.CollectionInfo) entities.CollectionInfo {
	out := entities.CollectionInfo{
		Name:                name,
		Status:              strings.ToLower(info.GetStatus().String()),
		PointsCount:         info.GetPointsCount(),
		IndexedVectorsCount: info.GetIndexedVectorsCount(),
		SegmentsCount:       info.GetSegmentsCount(),
	}

	vectors := info.GetConfig().GetParams().GetVectorsConfig()
	if params := vectors.GetParams(); params != nil {
		out.Vector = &entities.VectorParams{
			Size:     params.GetSize(),
			Distance: fromDistance(params.GetDistance()),
		}
		return out
	}

	if named := vectors.GetParamsMap().GetMap(); len(named) > 0 {
		out.NamedVectors = make(map[string]entities.VectorParams, len(named))
		for vecName, params := range named {
			out.NamedVectors[vecName] = entities.VectorParams{
				Size:     params.GetSize(),
				Distance: fromDistance(params.GetDistance()),
			}
		}
	}
	return out
}

func toDistance(d entities.Distance) (pb.Distance, error) {
	switch d {
	case entities.DistanceCosine:
		return pb.Distance_Cosine, nil
	case entities.DistanceEuclid:
		return pb.Distance_Euclid, nil
	case entities.DistanceDot:
		return pb.Distance_Dot, nil
	case entities.DistanceManhattan:
		return pb.Distance_Manhattan, nil
	default:
		return pb.Distance_UnknownDistance, fmt.Errorf("%w: unknown distance %q", entities.ErrInvalidArgument, d)
	}
}

func fromDistance(d pb.Distance) entities.Distance {
	switch d {
	case pb.Distance_Cosine:
		return entities.DistanceCosine
	case pb.Distance_Euclid:
		return entities.DistanceEuclid
	case pb.Distance_Dot:
		return entities.DistanceDot
	case pb.Distance_Manhattan:
		return entities.DistanceManhattan
	default:
		return entities.Distance(d.String())
	}
}
