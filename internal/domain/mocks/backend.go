// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"sync"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
)

// Backend is a mock implementation of ports.Backend.
type Backend struct {
	mu sync.Mutex

	Collections []string
	Info        entities.CollectionInfo
	Snapshots   []entities.Snapshot
	Points      []entities.RetrievedPoint
	QueryResult []entities.ScoredPoint
	OpResult    entities.OperationResult
	Err         error

	// Call tracking
	ListCollectionsCallCount  int
	CreateCollectionCallCount int
	DeleteCollectionCallCount int
	CreateSnapshotCallCount   int
	DeleteSnapshotCallCount   int
	RecoverSnapshotCallCount  int
	UpsertCallCount           int
	UpsertLastPoints          []entities.Point
	RetrieveCallCount         int
	DeletePointsCallCount     int
	DeletePointsLastIDs       []entities.PointID
	QueryCallCount            int
	QueryLastLimit            uint64
	QueryLastThreshold        *float32
	CloseCallCount            int
	LastCreateSpec            entities.CollectionSpec
}

// ListCollections returns the configured collection names.
func (m *Backend) ListCollections(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCollectionsCallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Collections, nil
}

// GetCollection returns the configured info under the requested name.
func (m *Backend) GetCollection(ctx context.Context, name string) (entities.CollectionInfo, error) {
	if m.Err != nil {
		return entities.CollectionInfo{}, m.Err
	}
	info := m.Info
	info.Name = name
	return info, nil
}

// CreateCollection records the spec.
func (m *Backend) CreateCollection(ctx context.Context, spec entities.CollectionSpec) error {
	m.CreateCollectionCallCount++
	m.LastCreateSpec = spec
	return m.Err
}

// DeleteCollection counts deletions.
func (m *Backend) DeleteCollection(ctx context.Context, name string) error {
	m.DeleteCollectionCallCount++
	return m.Err
}

// CreateSnapshot returns a snapshot named after the collection.
func (m *Backend) CreateSnapshot(ctx context.Context, collection string) (entities.Snapshot, error) {
	m.CreateSnapshotCallCount++
	if m.Err != nil {
		return entities.Snapshot{}, m.Err
	}
	return entities.Snapshot{Name: collection + "-snapshot.snapshot"}, nil
}

// ListSnapshots returns the configured snapshots.
func (m *Backend) ListSnapshots(ctx context.Context, collection string) ([]entities.Snapshot, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Snapshots, nil
}

// DeleteSnapshot counts deletions.
func (m *Backend) DeleteSnapshot(ctx context.Context, collection, snapshot string) error {
	m.DeleteSnapshotCallCount++
	return m.Err
}

// RecoverSnapshot counts recoveries.
func (m *Backend) RecoverSnapshot(ctx context.Context, collection, snapshot string) error {
	m.RecoverSnapshotCallCount++
	return m.Err
}

// Upsert records the batch.
func (m *Backend) Upsert(ctx context.Context, collection string, points []entities.Point) (entities.OperationResult, error) {
	m.UpsertCallCount++
	m.UpsertLastPoints = points
	if m.Err != nil {
		return entities.OperationResult{}, m.Err
	}
	return m.OpResult, nil
}

// Retrieve returns the stored points whose ids were requested, in storage order.
func (m *Backend) Retrieve(ctx context.Context, collection string, ids []entities.PointID) ([]entities.RetrievedPoint, error) {
	m.RetrieveCallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	wanted := make(map[entities.PointID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var found []entities.RetrievedPoint
	for _, p := range m.Points {
		if wanted[p.ID] {
			found = append(found, p)
		}
	}
	return found, nil
}

// DeletePoints records the ids.
func (m *Backend) DeletePoints(ctx context.Context, collection string, ids []entities.PointID) (entities.OperationResult, error) {
	m.DeletePointsCallCount++
	m.DeletePointsLastIDs = ids
	if m.Err != nil {
		return entities.OperationResult{}, m.Err
	}
	return m.OpResult, nil
}

// Query returns at most limit configured results.
func (m *Backend) Query(ctx context.Context, collection string, vector []float32, limit uint64, scoreThreshold *float32) ([]entities.ScoredPoint, error) {
	m.QueryCallCount++
	m.QueryLastLimit = limit
	m.QueryLastThreshold = scoreThreshold
	if m.Err != nil {
		return nil, m.Err
	}
	if limit < uint64(len(m.QueryResult)) {
		return m.QueryResult[:limit], nil
	}
	return m.QueryResult, nil
}

// Close counts closes.
func (m *Backend) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCallCount++
	return nil
}

// Closes returns the close count under the lock.
func (m *Backend) Closes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CloseCallCount
}
