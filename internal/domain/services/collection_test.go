package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
	"github.com/ersonp/qdrant-admin/internal/domain/mocks"
)

func TestCollectionService_List(t *testing.T) {
	backend := &mocks.Backend{Collections: []string{"a", "b"}}
	svc := NewCollectionService(&staticResolver{backend: backend}, NewGuard(nil))

	names, err := svc.List(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestCollectionService_Create(t *testing.T) {
	tests := []struct {
		name    string
		spec    entities.CollectionSpec
		wantErr bool
	}{
		{
			name: "valid",
			spec: entities.CollectionSpec{Name: "docs", VectorSize: 384, Distance: entities.DistanceCosine},
		},
		{
			name:    "zero vector size",
			spec:    entities.CollectionSpec{Name: "docs", VectorSize: 0, Distance: entities.DistanceCosine},
			wantErr: true,
		},
		{
			name:    "unknown distance",
			spec:    entities.CollectionSpec{Name: "docs", VectorSize: 4, Distance: "Hamming"},
			wantErr: true,
		},
		{
			name:    "empty name",
			spec:    entities.CollectionSpec{VectorSize: 4, Distance: entities.DistanceDot},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &mocks.Backend{}
			svc := NewCollectionService(&staticResolver{backend: backend}, NewGuard(nil))

			msg, err := svc.Create(t.Context(), tt.spec)

			if tt.wantErr {
				require.ErrorIs(t, err, entities.ErrInvalidArgument)
				assert.Equal(t, 0, backend.CreateCollectionCallCount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Collection 'docs' created successfully with vector size 384 and Cosine distance metric", msg)
			assert.Equal(t, tt.spec, backend.LastCreateSpec)
		})
	}
}

func TestCollectionService_Delete(t *testing.T) {
	t.Run("not confirmed", func(t *testing.T) {
		backend := &mocks.Backend{}
		resolver := &staticResolver{backend: backend}
		svc := NewCollectionService(resolver, NewGuard(nil))

		res, err := svc.Delete(t.Context(), "docs", false)
		require.NoError(t, err)

		assert.False(t, res.Completed)
		assert.Contains(t, res.Message, "docs")
		assert.Equal(t, 0, backend.DeleteCollectionCallCount)
		assert.Equal(t, 0, resolver.calls)
	})

	t.Run("confirmed", func(t *testing.T) {
		backend := &mocks.Backend{}
		svc := NewCollectionService(&staticResolver{backend: backend}, NewGuard(nil))

		res, err := svc.Delete(t.Context(), "docs", true)
		require.NoError(t, err)

		assert.True(t, res.Completed)
		assert.Equal(t, "Collection 'docs' has been permanently deleted", res.Message)
		assert.Equal(t, 1, backend.DeleteCollectionCallCount)
	})

	t.Run("not found propagates", func(t *testing.T) {
		backend := &mocks.Backend{Err: entities.ErrNotFound}
		svc := NewCollectionService(&staticResolver{backend: backend}, NewGuard(nil))

		_, err := svc.Delete(t.Context(), "docs", true)
		require.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestCollectionService_Get(t *testing.T) {
	backend := &mocks.Backend{Info: entities.CollectionInfo{
		Status:      "green",
		PointsCount: 10,
		Vector:      &entities.VectorParams{Size: 4, Distance: entities.DistanceDot},
	}}
	svc := NewCollectionService(&staticResolver{backend: backend}, NewGuard(nil))

	info, err := svc.Get(t.Context(), "docs")
	require.NoError(t, err)
	assert.Equal(t, "docs", info.Name)
	assert.Equal(t, uint64(10), info.PointsCount)
}
