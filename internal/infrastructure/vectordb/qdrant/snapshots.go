package qdrant

import (
	"context"
	"fmt"
	"time"

	pb "github.com/qdrant/go-client/qdrant"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
)

// CreateSnapshot takes a snapshot of the collection.
func (r *Repository) CreateSnapshot(ctx context.Context, collection string) (entities.Snapshot, error) {
	resp, err := r.snapshots.Create(ctx, &pb.CreateSnapshotRequest{
		CollectionName: collection,
	})
	if err != nil {
		return entities.Snapshot{}, fmt.Errorf("creating snapshot: %w", mapError(err))
	}

	return toSnapshot(resp.GetSnapshotDescription()), nil
}

// ListSnapshots returns the collection's snapshots.
func (r *Repository) ListSnapshots(ctx context.Context, collection string) ([]entities.Snapshot, error) {
	resp, err := r.snapshots.List(ctx, &pb.ListSnapshotsRequest{
		CollectionName: collection,
	})
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", mapError(err))
	}

	snaps := make([]entities.Snapshot, 0, len(resp.GetSnapshotDescriptions()))
	for _, d := range resp.GetSnapshotDescriptions() {
		snaps = append(snaps, toSnapshot(d))
	}
	return snaps, nil
}

// DeleteSnapshot deletes one snapshot file.
func (r *Repository) DeleteSnapshot(ctx context.Context, collection, snapshot string) error {
	_, err := r.snapshots.Delete(ctx, &pb.DeleteSnapshotRequest{
		CollectionName: collection,
		SnapshotName:   snapshot,
	})
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", mapError(err))
	}
	return nil
}

// RecoverSnapshot restores the collection from a snapshot. Qdrant exposes
// recovery on the REST API only.
func (r *Repository) RecoverSnapshot(ctx context.Context, collection, snapshot string) error {
	if err := r.rest.recoverSnapshot(ctx, collection, snapshot); err != nil {
		return fmt.Errorf("recovering snapshot: %w", err)
	}
	return nil
}

func toSnapshot(d *pb.SnapshotDescription) entities.Snapshot {
	snap := entities.Snapshot{
		Name: d.GetName(),
		Size: d.GetSize(),
	}
	if ts := d.GetCreationTime(); ts != nil {
		snap.CreatedAt = ts.AsTime().UTC().Format(time.RFC3339)
	}
	return snap
}
