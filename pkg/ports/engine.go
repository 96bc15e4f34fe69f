package ports

import (
	"context"

	"github.com/aretw0/seqline/pkg/domain"
)

// Renderer interprets a scenario into a layout without keeping state between calls.
// This is the interface used by adapters (HTTP, MCP) that render per request.
type Renderer interface {
	Render(ctx context.Context, scenario *domain.Scenario) (*domain.Layout, error)
}
