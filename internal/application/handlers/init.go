// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/qdrant-admin/internal/infrastructure/config"
)

// AuditStore is an audit database that can create its own schema.
type AuditStore interface {
	EnsureSchema(ctx context.Context) error
	Close() error
}

// AuditOpener opens the audit database described by cfg.
type AuditOpener func(cfg config.AuditConfig) (AuditStore, error)

// InitHandler handles workspace initialization.
type InitHandler struct {
	openAudit AuditOpener
}

// NewInitHandler creates a new init handler. openAudit may be nil to skip
// creating the audit database.
func NewInitHandler(openAudit AuditOpener) *InitHandler {
	return &InitHandler{
		openAudit: openAudit,
	}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath string
	AuditPath  string
	QdrantURL  string
}

// Handle writes the default config under basePath and prepares the audit
// database.
func (h *InitHandler) Handle(ctx context.Context, basePath string) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("qadmin already initialized in %s", basePath)
	}

	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if h.openAudit != nil && cfg.Audit.Path != "" {
		store, err := h.openAudit(cfg.Audit)
		if err != nil {
			return nil, fmt.Errorf("opening audit log: %w", err)
		}
		defer func() { _ = store.Close() }()

		if err := store.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("creating audit schema: %w", err)
		}
	}

	return &InitResult{
		ConfigPath: config.ConfigFilePath(basePath),
		AuditPath:  cfg.Audit.Path,
		QdrantURL:  cfg.Qdrant.URL,
	}, nil
}
