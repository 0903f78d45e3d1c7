package ports

import (
	"context"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
)

// AuditLog records administrative actions.
type AuditLog interface {
	// LogAction logs an action to the audit log.
	LogAction(ctx context.Context, action, target, outcome string, details map[string]any) error

	// FindRecent lists the newest entries, optionally restricted to one action.
	FindRecent(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error)
}
