package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ersonp/qdrant-admin/internal/application/handlers"
	"github.com/ersonp/qdrant-admin/internal/domain/ports"
	"github.com/ersonp/qdrant-admin/internal/domain/services"
	"github.com/ersonp/qdrant-admin/internal/infrastructure/config"
	embedder "github.com/ersonp/qdrant-admin/internal/infrastructure/embedder/openai"
	"github.com/ersonp/qdrant-admin/internal/infrastructure/logger"
	"github.com/ersonp/qdrant-admin/internal/infrastructure/mcp"
	"github.com/ersonp/qdrant-admin/internal/infrastructure/relationaldb/sqlite"
	"github.com/ersonp/qdrant-admin/internal/infrastructure/vectordb/qdrant"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config   *config.Config
	Handlers mcp.Handlers
	Audit    *handlers.AuditHandler
}

// basePath returns the directory holding .qadmin.
func basePath() (string, error) {
	if globalDir != "" {
		return globalDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return cwd, nil
}

// loadConfig loads and validates config, then initializes logging.
func loadConfig() (*config.Config, error) {
	dir, err := basePath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if globalDest != "" {
		cfg.Qdrant.URL = globalDest
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := logger.Init(cfg); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return cfg, nil
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It closes cached connections and the audit database afterwards.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var auditLog ports.AuditLog
	if cfg.Audit.Path != "" {
		repo, err := sqlite.NewRepository(cfg.Audit)
		if err != nil {
			return fmt.Errorf("opening audit log: %w", err)
		}
		defer repo.Close()

		if err := repo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensuring audit schema: %w", err)
		}
		// Assigned only when non-nil so a disabled log stays an untyped nil.
		auditLog = repo
	}

	registry := services.NewConnectionRegistry(
		qdrant.NewConnector(cfg.Qdrant),
		ports.Destination{URL: cfg.Qdrant.URL, APIKey: cfg.Qdrant.APIKey},
	)
	defer registry.Close()

	embeddings := services.NewEmbeddingProvider(embedder.NewFactory(cfg.Embedder), cfg.Embedder.Model)
	guard := services.NewGuard(auditLog)

	deps := &Deps{
		Config: cfg,
		Handlers: mcp.Handlers{
			Collections: handlers.NewCollectionHandler(services.NewCollectionService(registry, guard)),
			Snapshots:   handlers.NewSnapshotHandler(services.NewSnapshotService(registry, guard)),
			Points:      handlers.NewPointsHandler(services.NewPointsService(registry, embeddings, auditLog)),
			Status:      handlers.NewStatusHandler(services.NewHealthService(registry)),
		},
		Audit: handlers.NewAuditHandler(auditLog),
	}

	return fn(deps)
}

// openAuditStore adapts the SQLite repository to the init handler.
func openAuditStore(cfg config.AuditConfig) (handlers.AuditStore, error) {
	return sqlite.NewRepository(cfg)
}
