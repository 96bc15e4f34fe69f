package runtime

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/seqline/pkg/domain"
)

// Engine interprets scenarios. It is stateless between renders and safe for concurrent use:
// every call to Render works on its own canvas.
type Engine struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	config domain.Config
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used for per-event debug output.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability callbacks.
// Hooks registered by several options are all called, in registration order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithConfig sets the base geometry. Non-zero fields of a scenario's config take precedence.
func WithConfig(cfg domain.Config) EngineOption {
	return func(e *Engine) {
		e.config = cfg.Merge(domain.DefaultConfig())
	}
}

// NewEngine creates an interpreter.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
		config: domain.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the base geometry of the engine.
func (e *Engine) Config() domain.Config {
	return e.config
}

// Render runs every message of the scenario and returns the resulting layout.
// The first invalid message aborts the render.
func (e *Engine) Render(ctx context.Context, sc *domain.Scenario) (*domain.Layout, error) {
	s, err := e.newSession(sc)
	if err != nil {
		return nil, err
	}
	for i, msg := range sc.Messages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.process(ctx, msg); err != nil {
			return nil, &MessageError{Index: i, Message: msg, Err: err}
		}
	}
	if err := s.finish(ctx); err != nil {
		return nil, err
	}
	e.logger.Debug("Scenario rendered",
		"diagram", sc.Name,
		"participants", len(sc.Participants),
		"messages", len(sc.Messages),
		"height", s.canvas.VerticalPosition())
	return s.layout(), nil
}
