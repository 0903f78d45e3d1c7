package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
	"github.com/ersonp/qdrant-admin/internal/domain/services"
)

// CollectionHandler handles collection administration.
type CollectionHandler struct {
	collectionService *services.CollectionService
}

// NewCollectionHandler creates a new collection handler.
func NewCollectionHandler(collectionService *services.CollectionService) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
	}
}

// CollectionView is the get_collection result. VectorSize and Distance are set
// for a single unnamed vector config, NamedVectors otherwise.
type CollectionView struct {
	Name                string                           `json:"name"`
	Status              string                           `json:"status"`
	PointsCount         uint64                           `json:"points_count"`
	IndexedVectorsCount uint64                           `json:"indexed_vectors_count"`
	SegmentsCount       uint64                           `json:"segments_count"`
	VectorSize          *uint64                          `json:"vector_size,omitempty"`
	Distance            entities.Distance                `json:"distance,omitempty"`
	NamedVectors        map[string]entities.VectorParams `json:"named_vectors,omitempty"`
}

// CreateCollectionArgs are the create_collection inputs. An empty Distance
// means Cosine.
type CreateCollectionArgs struct {
	Name       string
	VectorSize int64
	Distance   string
}

// List returns collection names in backend order.
func (h *CollectionHandler) List(ctx context.Context) ([]string, error) {
	names, err := h.collectionService.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	return names, nil
}

// Get returns the collection summary.
func (h *CollectionHandler) Get(ctx context.Context, name string) (*CollectionView, error) {
	if err := requireName("name", name); err != nil {
		return nil, err
	}

	info, err := h.collectionService.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("getting collection: %w", err)
	}

	view := &CollectionView{
		Name:                info.Name,
		Status:              info.Status,
		PointsCount:         info.PointsCount,
		IndexedVectorsCount: info.IndexedVectorsCount,
		SegmentsCount:       info.SegmentsCount,
		NamedVectors:        info.NamedVectors,
	}
	if info.Vector != nil {
		size := info.Vector.Size
		view.VectorSize = &size
		view.Distance = info.Vector.Distance
	}
	return view, nil
}

// Create validates the arguments and creates the collection.
func (h *CollectionHandler) Create(ctx context.Context, args CreateCollectionArgs) (string, error) {
	distance := entities.DistanceCosine
	if args.Distance != "" {
		d, err := entities.ParseDistance(args.Distance)
		if err != nil {
			return "", err
		}
		distance = d
	}
	if args.VectorSize < 1 {
		return "", fmt.Errorf("%w: vector_size must be at least 1, got %d", entities.ErrInvalidArgument, args.VectorSize)
	}

	msg, err := h.collectionService.Create(ctx, entities.CollectionSpec{
		Name:       args.Name,
		VectorSize: uint64(args.VectorSize),
		Distance:   distance,
	})
	if err != nil {
		return "", fmt.Errorf("creating collection: %w", err)
	}
	return msg, nil
}

// Delete deletes the collection when confirm is set and returns the
// confirmation or refusal message.
func (h *CollectionHandler) Delete(ctx context.Context, name string, confirm bool) (string, error) {
	if err := requireName("name", name); err != nil {
		return "", err
	}

	res, err := h.collectionService.Delete(ctx, name, confirm)
	if err != nil {
		return "", fmt.Errorf("deleting collection: %w", err)
	}
	return res.Message, nil
}
