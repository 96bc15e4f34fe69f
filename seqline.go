package seqline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/seqline/internal/compiler"
	"github.com/aretw0/seqline/internal/logging"
	"github.com/aretw0/seqline/internal/runtime"
	"github.com/aretw0/seqline/pkg/domain"
	"github.com/aretw0/seqline/pkg/ports"
)

// Version is the release of the library, overridden at build time with -ldflags.
var Version = "dev"

// ValidationError lists every problem of a scenario document.
type ValidationError = compiler.ValidationError

// MessageError reports the scenario message that made a render fail.
type MessageError = runtime.MessageError

// Engine is the high-level entry point of the library.
// It parses scenario documents and turns scenarios into layouts.
type Engine struct {
	runtime *runtime.Engine
	parser  *compiler.Parser
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	config  domain.Config
}

var _ ports.Renderer = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks. Hooks from several options are all called.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithConfig sets the geometry used for fields a scenario does not override.
func WithConfig(cfg domain.Config) Option {
	return func(e *Engine) {
		e.config = cfg
	}
}

// New initializes an Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{
		parser: compiler.NewParser(),
		config: domain.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime, which would overwrite its default)
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	eng.runtime = runtime.NewEngine(
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithConfig(eng.config),
	)
	return eng
}

// Config returns the base geometry of the engine.
func (e *Engine) Config() domain.Config {
	return e.runtime.Config()
}

// Parse decodes and validates a scenario document.
func (e *Engine) Parse(data []byte) (*domain.Scenario, error) {
	return e.parser.Parse(data)
}

// Render interprets a scenario and returns its layout.
func (e *Engine) Render(ctx context.Context, sc *domain.Scenario) (*domain.Layout, error) {
	layout, err := e.runtime.Render(ctx, sc)
	if err != nil {
		e.logger.Debug("Render failed", "diagram", sc.Name, "error", err)
		return nil, err
	}
	return layout, nil
}

// RenderBytes parses a scenario document and renders it.
func (e *Engine) RenderBytes(ctx context.Context, data []byte) (*domain.Layout, error) {
	sc, err := e.Parse(data)
	if err != nil {
		return nil, err
	}
	return e.Render(ctx, sc)
}

// RenderFile reads, parses and renders a scenario file.
func (e *Engine) RenderFile(ctx context.Context, path string) (*domain.Layout, error) {
	sc, err := e.parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	layout, err := e.Render(ctx, sc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return layout, nil
}
