package lifeline

import (
	"math"

	"github.com/aretw0/seqline/pkg/domain"
	"github.com/aretw0/seqline/pkg/ports"
)

// AllLifelines returns l, then its whole left chain, then its whole right chain.
// Called on a root this is the full family. The order carries no other meaning.
func (l *Lifeline) AllLifelines() []*Lifeline {
	list := []*Lifeline{l}
	for line := l.LeftChild(); line != nil; line = line.LeftChild() {
		list = append(list, line)
	}
	for line := l.RightChild(); line != nil; line = line.RightChild() {
		list = append(list, line)
	}
	return list
}

// UniqueThread returns the thread shared by every active lifeline in AllLifelines, or -1 if
// active lifelines disagree or none is active.
//
// -1 doubles as a sentinel, so a family running only in thread -1 is indistinguishable from
// one with no unique thread.
func (l *Lifeline) UniqueThread() int {
	t := -1
	for _, line := range l.AllLifelines() {
		if !line.IsActive() {
			continue
		}
		if t == -1 {
			t = line.Thread()
		} else if t != line.Thread() {
			return -1
		}
	}
	return t
}

// CallLevel counts the other lifelines of the family that run in the same thread as l.
func (l *Lifeline) CallLevel() int {
	n := 0
	for _, line := range l.Root().AllLifelines() {
		if line != l && line.Thread() == l.Thread() {
			n++
		}
	}
	return n
}

// Leftmost returns the last lifeline of the root's left chain (the root if the chain is empty).
func (l *Lifeline) Leftmost() *Lifeline {
	left := l.Root()
	for left.LeftChild() != nil {
		left = left.LeftChild()
	}
	return left
}

// Rightmost returns the last lifeline of the root's right chain (the root if the chain is empty).
func (l *Lifeline) Rightmost() *Lifeline {
	right := l.Root()
	for right.RightChild() != nil {
		right = right.RightChild()
	}
	return right
}

// LastInThread returns the most deeply nested lifeline in AllLifelines running in thread,
// or nil.
func (l *Lifeline) LastInThread(thread int) *Lifeline {
	var last *Lifeline
	for _, line := range l.AllLifelines() {
		if line.Thread() == thread && (last == nil || line.Level() > last.Level()) {
			last = line
		}
	}
	return last
}

// RightNeighbour returns the innermost left activation of the participant displayed right of
// l's participant, or nil if l's participant is the rightmost one.
func (l *Lifeline) RightNeighbour(d ports.Diagram) *Lifeline {
	pos := l.Position(d)
	if pos < 0 || pos >= d.NumberOfLifelines()-1 {
		return nil
	}
	right := l.neighbourRoot(d, pos+1)
	if right == nil {
		return nil
	}
	for right.LeftChild() != nil {
		right = right.LeftChild()
	}
	return right
}

// LeftNeighbour returns the innermost right activation of the participant displayed left of
// l's participant, or nil if l's participant is the leftmost one.
func (l *Lifeline) LeftNeighbour(d ports.Diagram) *Lifeline {
	pos := l.Position(d)
	if pos <= 0 {
		return nil
	}
	left := l.neighbourRoot(d, pos-1)
	if left == nil {
		return nil
	}
	for left.RightChild() != nil {
		left = left.RightChild()
	}
	return left
}

func (l *Lifeline) neighbourRoot(d ports.Diagram, pos int) *Lifeline {
	id, ok := d.RootAt(pos)
	if !ok {
		return nil
	}
	return l.arena.Lifeline(id)
}

// AllViews returns every drawable ever used by the family of l, in registration order.
//
// The first line of the family is flagged as the main line and stretched over the union of
// all line extents, so the trunk of the lifeline is drawn as one piece.
func (l *Lifeline) AllViews() []domain.Segment {
	a := l.arena
	root := &a.records[l.rec().root]

	lineTop, lineBottom := math.MaxInt, -1
	main := domain.NoSegment
	for _, id := range root.allViews {
		s := a.segments[id]
		if s.Kind != domain.SegmentLine {
			continue
		}
		if main == domain.NoSegment {
			main = id
			a.segments[id].MainLine = true
		}
		lineTop = min(lineTop, s.Top)
		lineBottom = max(lineBottom, s.Bottom())
	}
	if main != domain.NoSegment {
		m := a.segments[main].WithTop(lineTop)
		a.segments[main] = m.WithBottom(lineBottom)
	}

	views := make([]domain.Segment, 0, len(root.allViews))
	for _, id := range root.allViews {
		views = append(views, a.segments[id])
	}
	return views
}
