package handlers

import (
	"context"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
	"github.com/ersonp/qdrant-admin/internal/domain/services"
)

// StatusHandler reports backend health.
type StatusHandler struct {
	healthService *services.HealthService
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(healthService *services.HealthService) *StatusHandler {
	return &StatusHandler{
		healthService: healthService,
	}
}

// Handle runs the health check. It never fails; backend errors are reported in
// the result.
func (h *StatusHandler) Handle(ctx context.Context) entities.HealthReport {
	return h.healthService.Check(ctx)
}
