package mocks

import (
	"context"
	"sync"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
)

// AuditLog is an in-memory implementation of ports.AuditLog.
type AuditLog struct {
	mu      sync.Mutex
	Entries []entities.AuditEntry
	Err     error
}

// LogAction appends an entry.
func (m *AuditLog) LogAction(ctx context.Context, action, target, outcome string, details map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Entries = append(m.Entries, entities.AuditEntry{
		ID:      int64(len(m.Entries) + 1),
		Action:  action,
		Target:  target,
		Outcome: outcome,
		Details: details,
	})
	return nil
}

// FindRecent returns entries newest first.
func (m *AuditLog) FindRecent(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []entities.AuditEntry
	for i := len(m.Entries) - 1; i >= 0 && len(out) < limit; i-- {
		if action == "" || m.Entries[i].Action == action {
			out = append(out, m.Entries[i])
		}
	}
	return out, nil
}
