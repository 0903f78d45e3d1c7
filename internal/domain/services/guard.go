package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ersonp/qdrant-admin/internal/domain/entities"
	"github.com/ersonp/qdrant-admin/internal/domain/ports"
)

// DestructiveRequest describes an irreversible operation awaiting confirmation.
type DestructiveRequest struct {
	// Action is the operation name recorded in the audit log.
	Action string
	// Target names what the operation destroys, e.g. "my_collection".
	Target string
	// Description is the human phrasing of the operation, e.g.
	// "Deletion of collection 'my_collection'".
	Description string
	Confirm     bool
}

// GuardResult is the outcome of a guarded operation.
type GuardResult struct {
	Completed bool   `json:"completed"`
	Message   string `json:"message"`
}

// Guard blocks destructive operations unless they are explicitly confirmed.
type Guard struct {
	audit ports.AuditLog
}

// NewGuard creates a guard. audit may be nil.
func NewGuard(audit ports.AuditLog) *Guard {
	return &Guard{audit: audit}
}

// Run performs the action only when req.Confirm is set. Without confirmation it
// returns a refusal naming the target and makes no backend call.
func (g *Guard) Run(ctx context.Context, req DestructiveRequest, perform func(ctx context.Context) (string, error)) (GuardResult, error) {
	if !req.Confirm {
		log.Warn().Str("action", req.Action).Str("target", req.Target).Msg("destructive operation not confirmed")
		guardedOperations.WithLabelValues(req.Action, entities.OutcomeRefused).Inc()
		recordAudit(ctx, g.audit, req.Action, req.Target, entities.OutcomeRefused, nil)

		return GuardResult{
			Completed: false,
			Message: fmt.Sprintf(
				"%s not confirmed. Set confirm=true to proceed with this destructive operation.",
				req.Description,
			),
		}, nil
	}

	msg, err := perform(ctx)
	if err != nil {
		guardedOperations.WithLabelValues(req.Action, entities.OutcomeFailed).Inc()
		recordAudit(ctx, g.audit, req.Action, req.Target, entities.OutcomeFailed, map[string]any{"error": err.Error()})
		return GuardResult{}, err
	}

	guardedOperations.WithLabelValues(req.Action, entities.OutcomeCompleted).Inc()
	recordAudit(ctx, g.audit, req.Action, req.Target, entities.OutcomeCompleted, nil)
	log.Info().Str("action", req.Action).Str("target", req.Target).Msg("destructive operation completed")

	return GuardResult{Completed: true, Message: msg}, nil
}

// recordAudit writes an audit entry. Failures are logged and never surface to the caller.
func recordAudit(ctx context.Context, audit ports.AuditLog, action, target, outcome string, details map[string]any) {
	if audit == nil {
		return
	}
	if err := audit.LogAction(ctx, action, target, outcome, details); err != nil {
		log.Warn().Err(err).Str("action", action).Msg("writing audit entry")
	}
}
