// Package ports defines interfaces for external service communication.
package ports

import (
	"context"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
)

// CollectionManager handles collection lifecycle operations on the backend.
type CollectionManager interface {
	// ListCollections returns collection names in backend order.
	ListCollections(ctx context.Context) ([]string, error)

	// GetCollection returns status, counts and vector configuration.
	GetCollection(ctx context.Context, name string) (entities.CollectionInfo, error)

	// CreateCollection creates a collection with a single unnamed vector space.
	CreateCollection(ctx context.Context, spec entities.CollectionSpec) error

	// DeleteCollection removes the collection and all its data.
	DeleteCollection(ctx context.Context, name string) error
}

// SnapshotManager handles collection snapshots.
type SnapshotManager interface {
	CreateSnapshot(ctx context.Context, collection string) (entities.Snapshot, error)
	ListSnapshots(ctx context.Context, collection string) ([]entities.Snapshot, error)
	DeleteSnapshot(ctx context.Context, collection, snapshot string) error

	// RecoverSnapshot replaces the collection's data with the snapshot's captured state.
	RecoverSnapshot(ctx context.Context, collection, snapshot string) error
}

// PointStore handles point data operations.
type PointStore interface {
	// Upsert writes the batch in one backend call. Every point must carry a vector.
	Upsert(ctx context.Context, collection string, points []entities.Point) (entities.OperationResult, error)

	// Retrieve returns the points the backend has; missing ids are absent.
	Retrieve(ctx context.Context, collection string, ids []entities.PointID) ([]entities.RetrievedPoint, error)

	// DeletePoints deletes by id in one call.
	DeletePoints(ctx context.Context, collection string, ids []entities.PointID) (entities.OperationResult, error)

	// Query runs one nearest-neighbor query. A nil threshold means no threshold.
	Query(ctx context.Context, collection string, vector []float32, limit uint64, scoreThreshold *float32) ([]entities.ScoredPoint, error)
}

// Backend is a live connection to one vector database destination.
type Backend interface {
	CollectionManager
	SnapshotManager
	PointStore

	// Close releases the underlying connection.
	Close() error
}
