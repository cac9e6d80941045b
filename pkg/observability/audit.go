package observability

import (
	"context"
	"log/slog"

	"github.com/sulaimaniyah/undangan/pkg/domain"
)

// AuditHooks logs every lifecycle event at debug level, except outcomes
// which are logged at info.
func AuditHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.DebugContext(ctx, "view_transition", "session_id", e.SessionID, "from", e.From, "to", e.To)
		},
		OnAdvance: func(ctx context.Context, e *domain.AdvanceEvent) {
			logger.DebugContext(ctx, "advance", "session_id", e.SessionID, "section", e.Target)
		},
		OnSubmit: func(ctx context.Context, e *domain.SubmitEvent) {
			logger.DebugContext(ctx, "rsvp_submit", "session_id", e.SessionID, "attending", e.Attending)
		},
		OnOutcome: func(ctx context.Context, e *domain.OutcomeEvent) {
			logger.InfoContext(ctx, "rsvp_outcome", "session_id", e.SessionID, "succeeded", e.Succeeded, "duration", e.Duration)
		},
		OnReveal: func(ctx context.Context, e *domain.RevealEvent) {
			logger.DebugContext(ctx, "section_reveal", "session_id", e.SessionID, "section", e.Section)
		},
	}
}
