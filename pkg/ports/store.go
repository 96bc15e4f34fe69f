package ports

import (
	"context"

	"github.com/aretw0/seqline/pkg/domain"
)

// LayoutStore defines the interface for persisting rendered layouts.
type LayoutStore interface {
	// Save persists the layout under the given ID, replacing any previous one.
	Save(ctx context.Context, id string, layout *domain.Layout) error

	// Load retrieves the layout for a given ID.
	// Returns domain.ErrLayoutNotFound if the layout does not exist.
	Load(ctx context.Context, id string) (*domain.Layout, error)

	// Delete removes the layout for a given ID.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of every stored layout.
	List(ctx context.Context) ([]string, error)
}
