package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/seqline/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractLayout(name string) *domain.Layout {
	return &domain.Layout{
		Name:   name,
		Config: domain.DefaultConfig(),
		Participants: []domain.ParticipantLayout{
			{
				Name:     "server",
				Type:     "Server",
				Position: 0,
				Head:     domain.Segment{ID: 0, Kind: domain.SegmentBox, Owner: "server", Height: 30, Visible: true},
				Views: []domain.Segment{
					{ID: 1, Kind: domain.SegmentLine, Owner: "server", Top: 30, Height: 40, Width: 1, Visible: true, MainLine: true},
				},
				Alive: true,
			},
		},
		Height: 70,
	}
}

// RunLayoutStoreContract runs a suite of tests to verify that a LayoutStore implementation
// adheres to the defined interface contract.
func RunLayoutStoreContract(t *testing.T, store LayoutStore) {
	ctx := context.Background()
	layoutID := "contract-test-layout-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		layout := contractLayout(layoutID)

		err := store.Save(ctx, layoutID, layout)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, layoutID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, layout.Name, loaded.Name)
		assert.Equal(t, layout.Height, loaded.Height)
		require.Len(t, loaded.Participants, 1)
		assert.Equal(t, layout.Participants[0].Views, loaded.Participants[0].Views)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+layoutID)
		assert.ErrorIs(t, err, domain.ErrLayoutNotFound)
	})

	t.Run("Save Isolates Caller Mutations", func(t *testing.T) {
		layout := contractLayout(layoutID)
		require.NoError(t, store.Save(ctx, layoutID, layout))

		layout.Participants[0].Views[0].Height = 999

		loaded, err := store.Load(ctx, layoutID)
		require.NoError(t, err)
		assert.Equal(t, 40, loaded.Participants[0].Views[0].Height)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, layoutID, contractLayout(layoutID))
		require.NoError(t, err)

		err = store.Delete(ctx, layoutID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, layoutID)
		assert.ErrorIs(t, err, domain.ErrLayoutNotFound, "Load after Delete should return ErrLayoutNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := layoutID + "-1"
		id2 := layoutID + "-2"
		_ = store.Save(ctx, id1, contractLayout(id1))
		_ = store.Save(ctx, id2, contractLayout(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
