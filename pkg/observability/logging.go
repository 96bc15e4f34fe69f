package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/seqline/pkg/domain"
)

// LogHooks returns lifecycle hooks that write every event to logger at Info level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLifeline: func(ctx context.Context, e *domain.LifelineEvent) {
			logger.InfoContext(ctx, "lifeline_"+string(e.Type),
				"diagram", e.Diagram,
				"participant", e.Participant,
				"direction", e.Direction.String(),
				"side_level", e.SideLevel,
				"thread", e.Thread,
				"y", e.Y,
			)
		},
		OnMessage: func(ctx context.Context, e *domain.MessageEvent) {
			logger.InfoContext(ctx, "message",
				"diagram", e.Diagram,
				"from", e.Message.From,
				"to", e.Message.To,
				"kind", e.Message.Kind,
				"y", e.Y,
			)
		},
	}
}
