package handlers

import (
	"github.com/ersonp/qdrant-admin/internal/domain/mocks"
	"github.com/ersonp/qdrant-admin/internal/domain/ports"
	"github.com/ersonp/qdrant-admin/internal/domain/services"
)

// testEnv wires real services over mocks.
type testEnv struct {
	backend  *mocks.Backend
	embedder *mocks.Embedder
	audit    *mocks.AuditLog
	registry *services.ConnectionRegistry
}

func newTestEnv() *testEnv {
	env := &testEnv{
		backend:  &mocks.Backend{},
		embedder: &mocks.Embedder{EmbeddingResult: []float32{0.1, 0.2}},
		audit:    &mocks.AuditLog{},
	}
	env.registry = services.NewConnectionRegistry(
		ports.ConnectorFunc(func(ports.Destination) (ports.Backend, error) { return env.backend, nil }),
		ports.Destination{URL: "http://localhost:6333"},
	)
	return env
}

func (e *testEnv) collections() *CollectionHandler {
	return NewCollectionHandler(services.NewCollectionService(e.registry, services.NewGuard(e.audit)))
}

func (e *testEnv) snapshots() *SnapshotHandler {
	return NewSnapshotHandler(services.NewSnapshotService(e.registry, services.NewGuard(e.audit)))
}

func (e *testEnv) points() *PointsHandler {
	factory := ports.EmbedderFactoryFunc(func(string) (ports.Embedder, error) { return e.embedder, nil })
	provider := services.NewEmbeddingProvider(factory, "test-model")
	return NewPointsHandler(services.NewPointsService(e.registry, provider, e.audit))
}

func (e *testEnv) status() *StatusHandler {
	return NewStatusHandler(services.NewHealthService(e.registry))
}
