package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ersonp/qdrant-admin/internal/application/handlers"
	"github.com/ersonp/qdrant-admin/internal/domain/mocks"
	"github.com/ersonp/qdrant-admin/internal/domain/ports"
	"github.com/ersonp/qdrant-admin/internal/domain/services"
)

type testEnv struct {
	backend  *mocks.Backend
	embedder *mocks.Embedder
	audit    *mocks.AuditLog
	dests    []ports.Destination
	handlers Handlers
}

func newTestEnv() *testEnv {
	env := &testEnv{
		backend:  &mocks.Backend{},
		embedder: &mocks.Embedder{EmbeddingResult: []float32{0.1, 0.2}},
		audit:    &mocks.AuditLog{},
	}

	registry := services.NewConnectionRegistry(
		ports.ConnectorFunc(func(dest ports.Destination) (ports.Backend, error) {
			env.dests = append(env.dests, dest)
			return env.backend, nil
		}),
		ports.Destination{URL: "http://default:6333"},
	)
	factory := ports.EmbedderFactoryFunc(func(string) (ports.Embedder, error) { return env.embedder, nil })
	guard := services.NewGuard(env.audit)

	env.handlers = Handlers{
		Collections: handlers.NewCollectionHandler(services.NewCollectionService(registry, guard)),
		Snapshots:   handlers.NewSnapshotHandler(services.NewSnapshotService(registry, guard)),
		Points: handlers.NewPointsHandler(services.NewPointsService(
			registry, services.NewEmbeddingProvider(factory, "test-model"), env.audit)),
		Status: handlers.NewStatusHandler(services.NewHealthService(registry)),
	}
	return env
}

func (e *testEnv) tools() *ToolHandlers {
	return NewToolHandlers(e.handlers)
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
}

func textOf(r *mcp.CallToolResult) string {
	return resultText(r)
}
