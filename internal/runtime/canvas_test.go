package runtime_test

import (
	"testing"

	"github.com/aretw0/seqline/internal/runtime"
	"github.com/aretw0/seqline/pkg/domain"
	"github.com/aretw0/seqline/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.Diagram = (*runtime.Canvas)(nil)

func TestCanvas_DeclareKeepsOrder(t *testing.T) {
	c := runtime.NewCanvas(domain.DefaultConfig())
	_, err := c.Declare(domain.Participant{Name: "a", Type: "A", Alive: true})
	require.NoError(t, err)
	_, err = c.Declare(domain.Participant{Name: "b", Type: "B", Alive: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, c.Participants())
	assert.Equal(t, 1, c.PositionOf("b"))
	assert.Equal(t, -1, c.PositionOf("nobody"))
	assert.Equal(t, 2, c.NumberOfLifelines())

	id, ok := c.RootAt(1)
	require.True(t, ok)
	assert.Equal(t, "b", c.Arena().Lifeline(id).Name())

	_, ok = c.RootAt(2)
	assert.False(t, ok)
}

func TestCanvas_DeclareRejectsDuplicatesAndBlankNames(t *testing.T) {
	c := runtime.NewCanvas(domain.DefaultConfig())
	_, err := c.Declare(domain.Participant{Name: "a", Type: "A"})
	require.NoError(t, err)

	_, err = c.Declare(domain.Participant{Name: "a", Type: "A"})
	assert.Error(t, err)

	_, err = c.Declare(domain.Participant{Type: "A"})
	assert.Error(t, err)
}

func TestCanvas_HeadsStartAtMargin(t *testing.T) {
	cfg := domain.DefaultConfig()
	c := runtime.NewCanvas(cfg)
	l, err := c.Declare(domain.Participant{Name: "a", Type: "A", Alive: true})
	require.NoError(t, err)

	head, ok := l.Head()
	require.True(t, ok)
	assert.Equal(t, cfg.Margin, head.Top)
	assert.Equal(t, cfg.Margin, c.VerticalPosition())
}

func TestCanvas_AdvanceExtendsOpenViews(t *testing.T) {
	c := runtime.NewCanvas(domain.DefaultConfig())
	l, err := c.Declare(domain.Participant{Name: "a", Type: "A", Alive: true})
	require.NoError(t, err)

	c.Advance(100)
	assert.Equal(t, 120, c.VerticalPosition())
	assert.Equal(t, 120, l.View().Bottom())

	c.Advance(0)
	c.Advance(-5)
	assert.Equal(t, 120, c.VerticalPosition())

	c.ExtendLifelines(10)
	assert.Equal(t, 130, c.VerticalPosition())
	assert.Equal(t, 130, l.View().Bottom())
}

func TestCanvas_RemoveLifelineKeepsPosition(t *testing.T) {
	c := runtime.NewCanvas(domain.DefaultConfig())
	_, _ = c.Declare(domain.Participant{Name: "a", Type: "A"})
	_, _ = c.Declare(domain.Participant{Name: "b", Type: "B"})

	c.RemoveLifeline("a")
	assert.False(t, c.IsLive("a"))
	assert.Equal(t, 0, c.PositionOf("a"))

	_, err := c.Lookup("a")
	assert.ErrorIs(t, err, domain.ErrUnknownParticipant)

	root, ok := c.Root("a")
	require.True(t, ok)
	assert.Equal(t, "a", root.Name())
}

func TestCanvas_ExtrasAreCopied(t *testing.T) {
	c := runtime.NewCanvas(domain.DefaultConfig())
	c.AddExtra(domain.Segment{Kind: domain.SegmentCross, Top: 5})

	extras := c.Extras()
	require.Len(t, extras, 1)
	extras[0].Top = 99
	assert.Equal(t, 5, c.Extras()[0].Top)
}
