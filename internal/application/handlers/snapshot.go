package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
	"github.com/ersonp/qdrant-admin/internal/domain/services"
)

// SnapshotHandler handles collection snapshots.
type SnapshotHandler struct {
	snapshotService *services.SnapshotService
}

// NewSnapshotHandler creates a new snapshot handler.
func NewSnapshotHandler(snapshotService *services.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: snapshotService,
	}
}

// Create snapshots the collection and returns a message naming the snapshot.
func (h *SnapshotHandler) Create(ctx context.Context, collection string) (string, error) {
	if err := requireName("collection_name", collection); err != nil {
		return "", err
	}

	name, err := h.snapshotService.Create(ctx, collection)
	if err != nil {
		return "", fmt.Errorf("creating snapshot: %w", err)
	}
	return fmt.Sprintf("Snapshot '%s' created successfully for collection '%s'", name, collection), nil
}

// List returns snapshot names in backend order.
func (h *SnapshotHandler) List(ctx context.Context, collection string) ([]string, error) {
	if err := requireName("collection_name", collection); err != nil {
		return nil, err
	}

	names, err := h.snapshotService.List(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	return names, nil
}

// Delete deletes the snapshot when confirm is set.
func (h *SnapshotHandler) Delete(ctx context.Context, collection, snapshot string, confirm bool) (string, error) {
	if err := requireNames(collection, snapshot); err != nil {
		return "", err
	}

	res, err := h.snapshotService.Delete(ctx, collection, snapshot, confirm)
	if err != nil {
		return "", fmt.Errorf("deleting snapshot: %w", err)
	}
	return res.Message, nil
}

// Recover restores the collection from the snapshot when confirm is set.
func (h *SnapshotHandler) Recover(ctx context.Context, collection, snapshot string, confirm bool) (string, error) {
	if err := requireNames(collection, snapshot); err != nil {
		return "", err
	}

	res, err := h.snapshotService.Recover(ctx, collection, snapshot, confirm)
	if err != nil {
		return "", fmt.Errorf("recovering snapshot: %w", err)
	}
	return res.Message, nil
}

func requireNames(collection, snapshot string) error {
	if err := requireName("collection_name", collection); err != nil {
		return err
	}
	return requireName("snapshot_name", snapshot)
}

func requireName(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", entities.ErrInvalidArgument, field)
	}
	return nil
}
