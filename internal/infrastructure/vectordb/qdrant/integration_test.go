package qdrant

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
	"github.com/ersonp/qdrant-admin/internal/domain/ports"
)

const (
	testQdrantURL  = "http://localhost:6333"
	testGRPCPort   = 6334
	testVectorSize = 4
)

// integrationRepo connects to a live Qdrant and creates a fresh collection
// that is dropped when the test ends. It skips unless INTEGRATION_TEST=1.
func integrationRepo(t *testing.T) (*Repository, string) {
	t.Helper()
	if os.Getenv("INTEGRATION_TEST") != "1" {
		t.Skip("set INTEGRATION_TEST=1 to run against a live Qdrant")
	}

	url := os.Getenv("QDRANT_URL")
	if url == "" {
		url = testQdrantURL
	}
	repo, err := NewRepository(ports.Destination{URL: url, APIKey: os.Getenv("QDRANT_API_KEY")}, testGRPCPort)
	require.NoError(t, err)

	name := "qadmin_it_" + strings.ReplaceAll(uuid.NewString()[:8], "-", "")
	require.NoError(t, repo.CreateCollection(t.Context(), entities.CollectionSpec{
		Name:       name,
		VectorSize: testVectorSize,
		Distance:   entities.DistanceCosine,
	}))

	t.Cleanup(func() {
		_ = repo.DeleteCollection(context.Background(), name)
		_ = repo.Close()
	})
	return repo, name
}

func TestIntegration_CollectionLifecycle(t *testing.T) {
	repo, name := integrationRepo(t)
	ctx := t.Context()

	names, err := repo.ListCollections(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, name)

	info, err := repo.GetCollection(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, name, info.Name)
	require.NotNil(t, info.Vector)
	assert.Equal(t, uint64(testVectorSize), info.Vector.Size)
	assert.Equal(t, entities.DistanceCosine, info.Vector.Distance)

	_, err = repo.GetCollection(ctx, name+"_missing")
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestIntegration_PointsRoundTrip(t *testing.T) {
	repo, name := integrationRepo(t)
	ctx := t.Context()

	uuidID := entities.NewUUIDID(uuid.NewString())
	points := []entities.Point{
		{ID: entities.NewNumericID(1), Vector: []float32{1, 0, 0, 0}, Payload: map[string]any{"text": "one", "rank": 1.0}},
		{ID: uuidID, Vector: []float32{0, 1, 0, 0}, Payload: map[string]any{"tags": []any{"a", "b"}}},
	}

	res, err := repo.Upsert(ctx, name, points)
	require.NoError(t, err)
	assert.Equal(t, "completed", res.Status)

	got, err := repo.Retrieve(ctx, name, []entities.PointID{entities.NewNumericID(1), entities.NewNumericID(99), uuidID})
	require.NoError(t, err)
	require.Len(t, got, 2)

	byID := map[entities.PointID]entities.RetrievedPoint{}
	for _, p := range got {
		byID[p.ID] = p
	}
	assert.Equal(t, "one", byID[entities.NewNumericID(1)].Payload["text"])
	assert.Equal(t, int64(1), byID[entities.NewNumericID(1)].Payload["rank"])
	assert.Equal(t, []any{"a", "b"}, byID[uuidID].Payload["tags"])
	assert.NotNil(t, byID[uuidID].Vector)

	hits, err := repo.Query(ctx, name, []float32{1, 0, 0, 0}, 1, nil)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, entities.NewNumericID(1), hits[0].ID)

	threshold := float32(0.99)
	hits, err = repo.Query(ctx, name, []float32{0, 0, 1, 0}, 10, &threshold)
	require.NoError(t, err)
	assert.Empty(t, hits)

	_, err = repo.DeletePoints(ctx, name, []entities.PointID{entities.NewNumericID(1), entities.NewNumericID(42)})
	require.NoError(t, err)

	got, err = repo.Retrieve(ctx, name, []entities.PointID{entities.NewNumericID(1)})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIntegration_SnapshotLifecycle(t *testing.T) {
	repo, name := integrationRepo(t)
	ctx := t.Context()

	_, err := repo.Upsert(ctx, name, []entities.Point{
		{ID: entities.NewNumericID(7), Vector: []float32{1, 1, 0, 0}},
	})
	require.NoError(t, err)

	snap, err := repo.CreateSnapshot(ctx, name)
	require.NoError(t, err)
	require.NotEmpty(t, snap.Name)

	snaps, err := repo.ListSnapshots(ctx, name)
	require.NoError(t, err)
	var names []string
	for _, s := range snaps {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, snap.Name)

	_, err = repo.DeletePoints(ctx, name, []entities.PointID{entities.NewNumericID(7)})
	require.NoError(t, err)

	require.NoError(t, repo.RecoverSnapshot(ctx, name, snap.Name))

	got, err := repo.Retrieve(ctx, name, []entities.PointID{entities.NewNumericID(7)})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	require.NoError(t, repo.DeleteSnapshot(ctx, name, snap.Name))
	err = repo.RecoverSnapshot(ctx, name, "missing.snapshot")
	assert.Error(t, err)
}
