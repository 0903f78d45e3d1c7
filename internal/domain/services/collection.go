package services

import (
	"context"
	"fmt"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
)

// CollectionService handles collection administration.
type CollectionService struct {
	resolver Resolver
	guard    *Guard
}

// NewCollectionService creates a new collection service.
func NewCollectionService(resolver Resolver, guard *Guard) *CollectionService {
	return &CollectionService{
		resolver: resolver,
		guard:    guard,
	}
}

// List returns collection names.
func (s *CollectionService) List(ctx context.Context) ([]string, error) {
	backend, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	names, err := backend.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Get returns collection status, counts and vector configuration.
func (s *CollectionService) Get(ctx context.Context, name string) (entities.CollectionInfo, error) {
	backend, err := s.resolver.Resolve(ctx)
	if err != nil {
		return entities.CollectionInfo{}, err
	}

	info, err := backend.GetCollection(ctx, name)
	if err != nil {
		return entities.CollectionInfo{}, fmt.Errorf("getting collection %s: %w", name, err)
	}
	return info, nil
}

// Create validates the spec and creates the collection.
func (s *CollectionService) Create(ctx context.Context, spec entities.CollectionSpec) (string, error) {
	if err := spec.Validate(); err != nil {
		return "", err
	}

	backend, err := s.resolver.Resolve(ctx)
	if err != nil {
		return "", err
	}

	if err := backend.CreateCollection(ctx, spec); err != nil {
		return "", fmt.Errorf("creating collection %s: %w", spec.Name, err)
	}

	return fmt.Sprintf(
		"Collection '%s' created successfully with vector size %d and %s distance metric",
		spec.Name, spec.VectorSize, spec.Distance,
	), nil
}

// Delete removes the collection when confirm is set.
func (s *CollectionService) Delete(ctx context.Context, name string, confirm bool) (GuardResult, error) {
	req := DestructiveRequest{
		Action:      "delete_collection",
		Target:      name,
		Description: fmt.Sprintf("Deletion of collection '%s'", name),
		Confirm:     confirm,
	}

	return s.guard.Run(ctx, req, func(ctx context.Context) (string, error) {
		backend, err := s.resolver.Resolve(ctx)
		if err != nil {
			return "", err
		}
		if err := backend.DeleteCollection(ctx, name); err != nil {
			return "", fmt.Errorf("deleting collection %s: %w", name, err)
		}
		return fmt.Sprintf("Collection '%s' has been permanently deleted", name), nil
	})
}
