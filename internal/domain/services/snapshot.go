package services

import (
	"context"
	"fmt"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
)

// SnapshotService handles collection snapshots.
type SnapshotService struct {
	resolver Resolver
	guard    *Guard
}

// NewSnapshotService creates a new snapshot service.
func NewSnapshotService(resolver Resolver, guard *Guard) *SnapshotService {
	return &SnapshotService{
		resolver: resolver,
		guard:    guard,
	}
}

// Create takes a snapshot and returns its name.
func (s *SnapshotService) Create(ctx context.Context, collection string) (string, error) {
	backend, err := s.resolver.Resolve(ctx)
	if err != nil {
		return "", err
	}

	snap, err := backend.CreateSnapshot(ctx, collection)
	if err != nil {
		return "", fmt.Errorf("creating snapshot of %s: %w", collection, err)
	}
	return snap.Name, nil
}

// List returns snapshot names for the collection.
func (s *SnapshotService) List(ctx context.Context, collection string) ([]string, error) {
	backend, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	snaps, err := backend.ListSnapshots(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots of %s: %w", collection, err)
	}
	return snapshotNames(snaps), nil
}

// Delete removes a snapshot when confirm is set.
func (s *SnapshotService) Delete(ctx context.Context, collection, snapshot string, confirm bool) (GuardResult, error) {
	req := DestructiveRequest{
		Action:      "delete_snapshot",
		Target:      collection + "/" + snapshot,
		Description: fmt.Sprintf("Deletion of snapshot '%s'", snapshot),
		Confirm:     confirm,
	}

	return s.guard.Run(ctx, req, func(ctx context.Context) (string, error) {
		backend, err := s.resolver.Resolve(ctx)
		if err != nil {
			return "", err
		}
		if err := backend.DeleteSnapshot(ctx, collection, snapshot); err != nil {
			return "", fmt.Errorf("deleting snapshot %s: %w", snapshot, err)
		}
		return fmt.Sprintf("Snapshot '%s' deleted successfully from collection '%s'", snapshot, collection), nil
	})
}

// Recover restores the collection from a snapshot when confirm is set. All data
// written after the snapshot was taken is lost.
func (s *SnapshotService) Recover(ctx context.Context, collection, snapshot string, confirm bool) (GuardResult, error) {
	req := DestructiveRequest{
		Action:      "recover_from_snapshot",
		Target:      collection + "/" + snapshot,
		Description: fmt.Sprintf("Recovery of collection '%s' from snapshot '%s'", collection, snapshot),
		Confirm:     confirm,
	}

	return s.guard.Run(ctx, req, func(ctx context.Context) (string, error) {
		backend, err := s.resolver.Resolve(ctx)
		if err != nil {
			return "", err
		}
		if err := backend.RecoverSnapshot(ctx, collection, snapshot); err != nil {
			return "", fmt.Errorf("recovering %s from snapshot %s: %w", collection, snapshot, err)
		}
		return fmt.Sprintf("Collection '%s' successfully recovered from snapshot '%s'", collection, snapshot), nil
	})
}

func snapshotNames(snaps []entities.Snapshot) []string {
	names := make([]string, 0, len(snaps))
	for _, s := range snaps {
		names = append(names, s.Name)
	}
	return names
}
