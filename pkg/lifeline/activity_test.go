package lifeline_test

import (
	"testing"

	"github.com/aretw0/seqline/pkg/domain"
	"github.com/aretw0/seqline/pkg/lifeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeParticipants() (*fakeDiagram, *lifeline.Lifeline, *lifeline.Lifeline, *lifeline.Lifeline) {
	d := newFakeDiagram()
	a := d.add("a", "A")
	b := d.add("b", "B")
	c := d.add("c", "C")
	return d, a, b, c
}

func TestAddActivity_Direction(t *testing.T) {
	tests := []struct {
		name string
		run  func(d *fakeDiagram, a, b, c *lifeline.Lifeline) *lifeline.Lifeline
		want domain.Direction
	}{
		{
			name: "no caller",
			run: func(d *fakeDiagram, a, b, c *lifeline.Lifeline) *lifeline.Lifeline {
				return b.AddActivity(d, nil, 0)
			},
			want: domain.DirectionRight,
		},
		{
			name: "self call from root",
			run: func(d *fakeDiagram, a, b, c *lifeline.Lifeline) *lifeline.Lifeline {
				return b.AddActivity(d, b, 0)
			},
			want: domain.DirectionRight,
		},
		{
			name: "self call from left sub on root takes caller side",
			run: func(d *fakeDiagram, a, b, c *lifeline.Lifeline) *lifeline.Lifeline {
				left := b.AddActivity(d, a, 0)
				return b.AddActivity(d, left, 0)
			},
			want: domain.DirectionLeft,
		},
		{
			name: "self call from right sub on root takes caller side",
			run: func(d *fakeDiagram, a, b, c *lifeline.Lifeline) *lifeline.Lifeline {
				right := b.AddActivity(d, c, 0)
				return b.AddActivity(d, right, 0)
			},
			want: domain.DirectionRight,
		},
		{
			name: "self call from left sub on right sub keeps callee side",
			run: func(d *fakeDiagram, a, b, c *lifeline.Lifeline) *lifeline.Lifeline {
				left := b.AddActivity(d, a, 0)
				right := b.AddActivity(d, c, 0)
				return right.AddActivity(d, left, 0)
			},
			want: domain.DirectionRight,
		},
		{
			name: "self call from right sub on left sub keeps callee side",
			run: func(d *fakeDiagram, a, b, c *lifeline.Lifeline) *lifeline.Lifeline {
				left := b.AddActivity(d, a, 0)
				right := b.AddActivity(d, c, 0)
				return left.AddActivity(d, right, 0)
			},
			want: domain.DirectionLeft,
		},
		{
			name: "caller on the left",
			run: func(d *fakeDiagram, a, b, c *lifeline.Lifeline) *lifeline.Lifeline {
				return b.AddActivity(d, a, 0)
			},
			want: domain.DirectionLeft,
		},
		{
			name: "caller on the right",
			run: func(d *fakeDiagram, a, b, c *lifeline.Lifeline) *lifeline.Lifeline {
				return b.AddActivity(d, c, 0)
			},
			want: domain.DirectionRight,
		},
		{
			name: "caller sub lifeline uses participant position",
			run: func(d *fakeDiagram, a, b, c *lifeline.Lifeline) *lifeline.Lifeline {
				cSub := c.AddActivity(d, c, 0)
				return b.AddActivity(d, cSub, 0)
			},
			want: domain.DirectionRight,
		},
		{
			name: "sub callee with caller on the left",
			run: func(d *fakeDiagram, a, b, c *lifeline.Lifeline) *lifeline.Lifeline {
				right := b.AddActivity(d, c, 0)
				return right.AddActivity(d, a, 0)
			},
			want: domain.DirectionLeft,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, a, b, c := threeParticipants()
			got := tt.run(d, a, b, c)
			assert.Equal(t, tt.want, got.Direction())
			assert.Same(t, b, got.Root())
			assert.False(t, got.IsActive())
			assert.True(t, got.IsAlive())
		})
	}
}

func TestAddActivity_ReentrantChain(t *testing.T) {
	d := newFakeDiagram()
	l0 := d.add("obj", "Obj")

	l1 := l0.AddActivity(d, nil, 1)
	assert.Equal(t, domain.DirectionRight, l1.Direction())
	assert.Equal(t, 1, l1.SideLevel())
	assert.Equal(t, 1, l1.Level())
	assert.False(t, l1.IsActive())
	assert.Same(t, l0, l1.Parent())
	assert.Same(t, l1, l0.RightChild())

	l1.SetActive(d, true)
	l2 := l1.AddActivity(d, l1, 1)
	assert.Equal(t, domain.DirectionRight, l2.Direction())
	assert.Equal(t, 2, l2.SideLevel())
	assert.Equal(t, 2, l2.Level())
	assert.Same(t, l1, l2.Parent())
	assert.Same(t, l2, l1.RightChild())
	assert.Nil(t, l2.RightChild())

	assert.Equal(t, []*lifeline.Lifeline{l0, l1, l2}, l0.AllLifelines())
}

func TestAddActivity_AppendsAtEndOfChain(t *testing.T) {
	d, a, b, _ := threeParticipants()

	// both created from the root, the second one still goes below the first
	first := b.AddActivity(d, a, 0)
	second := b.AddActivity(d, a, 0)

	assert.Same(t, first, b.LeftChild())
	assert.Same(t, second, first.LeftChild())
	assert.Same(t, first, second.Parent())
	assert.Equal(t, 2, second.SideLevel())
	assert.Nil(t, b.RightChild())
}

func TestAddActivity_LevelCountsBothSides(t *testing.T) {
	d, a, b, c := threeParticipants()

	left := b.AddActivity(d, a, 0)
	right := b.AddActivity(d, c, 0)
	deeper := b.AddActivity(d, c, 0)

	assert.Equal(t, 1, left.Level())
	assert.Equal(t, 2, right.Level())
	assert.Equal(t, 3, deeper.Level())
	assert.Equal(t, 1, right.SideLevel())
	assert.Equal(t, 2, deeper.SideLevel())
}

func TestWidthRule(t *testing.T) {
	d := newFakeDiagram()
	d.cfg.MainLifelineWidth = 10
	d.cfg.SubLifelineWidth = 4
	root := d.add("obj", "Obj")

	bar := root.SetActive(d, true)
	assert.Equal(t, 10, bar.Width)

	l1 := root.AddActivity(d, root, 0)
	l2 := l1.AddActivity(d, l1, 0)
	l3 := l2.AddActivity(d, l2, 0)
	for _, l := range []*lifeline.Lifeline{l1, l2, l3} {
		assert.Equal(t, 4, l.View().Width, "side level %d", l.SideLevel())
		assert.Equal(t, domain.SegmentBar, l.View().Kind)
	}
	require.Equal(t, 3, l3.SideLevel())
}
