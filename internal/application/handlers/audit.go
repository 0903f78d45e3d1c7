package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
	"github.com/ersonp/qdrant-admin/internal/domain/ports"
)

// AuditHandler reads the audit log.
type AuditHandler struct {
	auditLog ports.AuditLog
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(auditLog ports.AuditLog) *AuditHandler {
	return &AuditHandler{
		auditLog: auditLog,
	}
}

// Recent returns the newest entries, optionally filtered by action.
func (h *AuditHandler) Recent(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	if h.auditLog == nil {
		return nil, errors.New("audit log is disabled")
	}

	entries, err := h.auditLog.FindRecent(ctx, action, limit)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	return entries, nil
}
