package lifeline_test

import (
	"math/rand"
	"testing"

	"github.com/aretw0/seqline/pkg/domain"
	"github.com/aretw0/seqline/pkg/lifeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(lines []*lifeline.Lifeline) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Name())
	}
	return out
}

func TestAllLifelines_Order(t *testing.T) {
	d, a, b, c := threeParticipants()
	r1 := b.AddActivity(d, c, 0)
	l1 := b.AddActivity(d, a, 0)
	r2 := b.AddActivity(d, c, 0)
	l2 := b.AddActivity(d, a, 0)

	assert.Equal(t, []*lifeline.Lifeline{b, l1, l2, r1, r2}, b.AllLifelines())
	// from a sub lifeline only its own chain below it is listed
	assert.Equal(t, []*lifeline.Lifeline{r1, r2}, r1.AllLifelines())
}

func TestUniqueThread(t *testing.T) {
	t.Run("no active lifeline", func(t *testing.T) {
		d := newFakeDiagram()
		root := d.add("obj", "Obj")
		root.AddActivity(d, nil, 4)
		assert.Equal(t, -1, root.UniqueThread())
	})

	t.Run("all active share a thread", func(t *testing.T) {
		d := newFakeDiagram()
		root := d.add("obj", "Obj")
		root.SetThread(2)
		root.SetActive(d, true)
		sub := root.AddActivity(d, root, 2)
		sub.SetActive(d, true)
		inactive := root.AddActivity(d, root, 7)
		require.False(t, inactive.IsActive())

		assert.Equal(t, 2, root.UniqueThread())
	})

	t.Run("active lifelines in different threads", func(t *testing.T) {
		d := newFakeDiagram()
		root := d.add("obj", "Obj")
		root.SetActive(d, true)
		sub := root.AddActivity(d, root, 3)
		sub.SetActive(d, true)

		assert.Equal(t, -1, root.UniqueThread())
	})

	t.Run("only a sub lifeline is active", func(t *testing.T) {
		d := newFakeDiagram()
		root := d.add("obj", "Obj")
		sub := root.AddActivity(d, nil, 5)
		sub.SetActive(d, true)

		assert.Equal(t, 5, root.UniqueThread())
	})

	// -1 is both a thread id and the sentinel: a lifeline running in thread -1 is skipped.
	t.Run("negative thread id is indistinguishable from the sentinel", func(t *testing.T) {
		d := newFakeDiagram()
		root := d.add("obj", "Obj")
		root.SetThread(-1)
		root.SetActive(d, true)
		assert.Equal(t, -1, root.UniqueThread())

		sub := root.AddActivity(d, root, 5)
		sub.SetActive(d, true)
		assert.Equal(t, 5, root.UniqueThread())
	})
}

func TestCallLevel(t *testing.T) {
	d := newFakeDiagram()
	root := d.add("obj", "Obj")
	s1 := root.AddActivity(d, nil, 0)
	s2 := root.AddActivity(d, nil, 1)
	s3 := root.AddActivity(d, nil, 0)

	assert.Equal(t, 2, root.CallLevel())
	assert.Equal(t, 2, s1.CallLevel())
	assert.Equal(t, 0, s2.CallLevel())
	assert.Equal(t, 2, s3.CallLevel())
}

func TestLeftmostRightmost(t *testing.T) {
	d, a, b, c := threeParticipants()
	assert.Same(t, b, b.Leftmost())
	assert.Same(t, b, b.Rightmost())

	l1 := b.AddActivity(d, a, 0)
	l2 := b.AddActivity(d, a, 0)
	r1 := b.AddActivity(d, c, 0)

	assert.Same(t, l2, b.Leftmost())
	assert.Same(t, r1, b.Rightmost())
	assert.Same(t, l2, r1.Leftmost(), "walks from the root")
	assert.Same(t, r1, l1.Rightmost(), "walks from the root")
}

func TestLastInThread(t *testing.T) {
	d, a, b, c := threeParticipants()
	l1 := b.AddActivity(d, a, 1)
	r1 := b.AddActivity(d, c, 1)
	b.AddActivity(d, c, 2)

	assert.Same(t, r1, b.LastInThread(1))
	assert.Same(t, b, b.LastInThread(0))
	assert.Nil(t, b.LastInThread(9))

	require.NoError(t, r1.Dispose(d))
	assert.Same(t, l1, b.LastInThread(1))
}

func TestNeighbours(t *testing.T) {
	d, a, b, c := threeParticipants()
	b.AddActivity(d, a, 0)
	l2 := b.AddActivity(d, a, 0)
	r1 := b.AddActivity(d, c, 0)

	assert.Same(t, l2, a.RightNeighbour(d))
	assert.Same(t, r1, c.LeftNeighbour(d))
	assert.Nil(t, a.LeftNeighbour(d))
	assert.Nil(t, c.RightNeighbour(d))

	// sub lifelines look at their participant's position
	assert.Same(t, c, l2.RightNeighbour(d))
	assert.Same(t, a, r1.LeftNeighbour(d))

	sub := a.AddActivity(d, nil, 0)
	assert.Same(t, sub, b.LeftNeighbour(d))
}

func TestAllViews_StretchesMainLine(t *testing.T) {
	d := newFakeDiagram()
	root := d.add("obj", "Obj")
	d.advance(50)
	root.SetActive(d, true)
	sub := root.AddActivity(d, root, 0)
	sub.SetActive(d, true)
	d.advance(80)
	sub.Finish(d)
	require.NoError(t, sub.Dispose(d))
	root.Finish(d)
	d.advance(100)

	views := root.AllViews()
	require.Len(t, views, 4)

	var lines, mains int
	for _, v := range views {
		if v.Kind == domain.SegmentLine {
			lines++
		}
		if v.MainLine {
			mains++
		}
	}
	assert.Equal(t, 2, lines)
	assert.Equal(t, 1, mains)

	main := views[0]
	assert.True(t, main.MainLine)
	assert.Equal(t, 30, main.Top)
	assert.Equal(t, 100, main.Bottom())

	assert.Equal(t, domain.SegmentBar, views[1].Kind)
	assert.Equal(t, domain.SegmentBar, views[2].Kind)
	assert.Equal(t, 1, views[2].SideLevel)
	assert.Equal(t, domain.DirectionRight, views[2].Direction)
	assert.Equal(t, 50, views[2].Top)
	assert.Equal(t, 80, views[2].Bottom())

	// sub lifelines report their family's views
	assert.Equal(t, views, sub.AllViews())
}

// checkChains walks both chains of root and verifies they are simple lists whose parent links
// point backwards, and that they contain exactly the live sub lifelines.
func checkChains(t *testing.T, root *lifeline.Lifeline, subs []*lifeline.Lifeline) {
	t.Helper()
	seen := map[*lifeline.Lifeline]bool{}
	walk := func(next func(*lifeline.Lifeline) *lifeline.Lifeline, dir domain.Direction) {
		prev := root
		for l := next(root); l != nil; l = next(l) {
			require.False(t, seen[l], "cycle or shared node at %v", l.ID())
			seen[l] = true
			assert.Same(t, prev, l.Parent())
			assert.Equal(t, dir, l.Direction())
			assert.False(t, l.IsDisposed())
			prev = l
		}
	}
	walk((*lifeline.Lifeline).LeftChild, domain.DirectionLeft)
	walk((*lifeline.Lifeline).RightChild, domain.DirectionRight)

	for _, s := range subs {
		assert.Equal(t, !s.IsDisposed(), seen[s], "lifeline %d reachable iff not disposed", s.ID())
	}
}

func TestDispose_KeepsChainsSimple(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	d, a, b, c := threeParticipants()
	var subs []*lifeline.Lifeline
	var live []*lifeline.Lifeline

	for step := 0; step < 200; step++ {
		if len(live) > 0 && rng.Intn(3) == 0 {
			i := rng.Intn(len(live))
			require.NoError(t, live[i].Dispose(d))
			live = append(live[:i], live[i+1:]...)
		} else {
			var caller *lifeline.Lifeline
			switch rng.Intn(4) {
			case 0:
				caller = a
			case 1:
				caller = c
			case 2:
				if len(live) > 0 {
					caller = live[rng.Intn(len(live))]
				}
			}
			callee := b
			if len(live) > 0 && rng.Intn(2) == 0 {
				callee = live[rng.Intn(len(live))]
			}
			s := callee.AddActivity(d, caller, rng.Intn(3))
			subs = append(subs, s)
			live = append(live, s)
		}
		checkChains(t, b, subs)
	}
	assert.Len(t, b.AllLifelines(), len(live)+1)
}
