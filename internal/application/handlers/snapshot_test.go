package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
)

func TestSnapshotHandler_Create(t *testing.T) {
	env := newTestEnv()

	msg, err := env.snapshots().Create(t.Context(), "docs")
	require.NoError(t, err)
	assert.Equal(t, "Snapshot 'docs-snapshot.snapshot' created successfully for collection 'docs'", msg)
}

func TestSnapshotHandler_List(t *testing.T) {
	env := newTestEnv()
	env.backend.Snapshots = []entities.Snapshot{{Name: "s1"}, {Name: "s2"}}

	names, err := env.snapshots().List(t.Context(), "docs")
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, names)
}

func TestSnapshotHandler_RequiresNames(t *testing.T) {
	h := newTestEnv().snapshots()

	_, err := h.Create(t.Context(), "")
	assert.ErrorIs(t, err, entities.ErrInvalidArgument)

	_, err = h.Delete(t.Context(), "docs", "", true)
	assert.ErrorIs(t, err, entities.ErrInvalidArgument)

	_, err = h.Recover(t.Context(), "", "s1", true)
	assert.ErrorIs(t, err, entities.ErrInvalidArgument)
}

func TestSnapshotHandler_Guarded(t *testing.T) {
	env := newTestEnv()
	h := env.snapshots()

	msg, err := h.Delete(t.Context(), "docs", "s1", false)
	require.NoError(t, err)
	assert.Contains(t, msg, "not confirmed")

	msg, err = h.Recover(t.Context(), "docs", "s1", false)
	require.NoError(t, err)
	assert.Contains(t, msg, "not confirmed")

	assert.Equal(t, 0, env.backend.DeleteSnapshotCallCount)
	assert.Equal(t, 0, env.backend.RecoverSnapshotCallCount)

	_, err = h.Delete(t.Context(), "docs", "s1", true)
	require.NoError(t, err)
	_, err = h.Recover(t.Context(), "docs", "s1", true)
	require.NoError(t, err)

	assert.Equal(t, 1, env.backend.DeleteSnapshotCallCount)
	assert.Equal(t, 1, env.backend.RecoverSnapshotCallCount)
	assert.Len(t, env.audit.Entries, 4)
}
