package lifeline

import (
	"github.com/aretw0/seqline/pkg/domain"
	"github.com/aretw0/seqline/pkg/ports"
)

// crossGap is the distance between the last activity and an automatic destruction cross.
const crossGap = 6

// GiveBirth is called when the object is created by a 'new' message.
// Head and view become visible.
func (l *Lifeline) GiveBirth() {
	r := l.rec()
	r.alive = true
	if r.head != domain.NoSegment {
		l.arena.segments[r.head].Visible = true
	}
	l.arena.segments[r.view].Visible = true
}

// Place moves the head of a root to top and restarts the current view right below it, with
// zero height. Objects created in the middle of a diagram are placed where the creating
// message arrives. Sub lifelines have no head and are left alone.
func (l *Lifeline) Place(top int) {
	r := l.rec()
	if !l.IsRoot() || r.head == domain.NoSegment {
		return
	}
	a := l.arena
	head := &a.segments[r.head]
	*head = head.WithTop(top)
	v := &a.segments[r.view]
	*v = v.WithTop(head.Bottom()).WithHeight(0)
}

// SetActive changes the active flag and returns the resulting view.
// Setting the current value again changes nothing.
//
// A root swaps its drawable: a bar while active, a line while inactive, the new one starting
// where the previous one ended. A sub lifeline keeps its bar; when it becomes active the bar
// is pinned below the parent's current view with zero height.
func (l *Lifeline) SetActive(d ports.Diagram, active bool) domain.Segment {
	r := l.rec()
	if r.active == active {
		return l.View()
	}
	r.active = active
	a := l.arena

	if !l.IsRoot() {
		if active {
			parent := a.segments[a.records[r.parent].view]
			v := &a.segments[r.view]
			*v = v.WithTop(parent.Bottom()).WithHeight(0)
			if !r.registered {
				r.registered = true
				l.addView(r.view)
			}
		}
		return l.View()
	}

	y := a.segments[r.view].Bottom()
	visible := a.segments[r.view].Visible
	if active {
		r.view = a.newSegment(l, domain.SegmentBar, l.drawableWidth(d.Config()))
	} else {
		r.view = a.newSegment(l, domain.SegmentLine, 1)
		r.lastLine = r.view
	}
	v := &a.segments[r.view]
	v.Top = y
	v.Visible = visible
	l.addView(r.view)
	return *v
}

// Finish ends the activity: the lifeline becomes inactive and the root remembers how far
// down the diagram the activity reached.
func (l *Lifeline) Finish(d ports.Diagram) {
	l.SetActive(d, false)
	l.Root().SetRectangleBottom(d.VerticalPosition())
}

// Terminate ends the life of the object. Auto-destroying lifelines get a cross a little
// below their last activity; the diagram is extended if the cross would not fit.
func (l *Lifeline) Terminate(d ports.Diagram) error {
	r := l.rec()
	if !r.alive {
		return &domain.TerminateError{Name: r.name, Err: domain.ErrNotAlive}
	}
	a := l.arena
	target := r.lastLine
	if target == domain.NoSegment {
		target = r.view
	}
	if l.IsAutoDestroy() {
		bottom := max(r.rectangleBottom, d.VerticalPosition()) + crossGap
		cross := l.newCross(d)
		if y := bottom + cross.Height; y > d.VerticalPosition() {
			d.ExtendLifelines(y - d.VerticalPosition())
		}
		cross.Top = bottom
		a.segments[cross.ID] = cross
		r.cross = cross.ID
		d.AddExtra(cross)
		a.segments[target] = a.segments[target].WithBottom(bottom)
	}
	r.alive = false
	return nil
}

// Destroy removes the participant from the diagram's live set and puts a cross at the
// current cursor. Alive and active flags are left to the caller.
func (l *Lifeline) Destroy(d ports.Diagram) {
	d.RemoveLifeline(l.Name())
	cross := l.newCross(d)
	cross.Top = d.VerticalPosition()
	l.arena.segments[cross.ID] = cross
	l.rec().cross = cross.ID
	d.AddExtra(cross)
}

// Dispose takes a finished sub lifeline out of its side chain, linking its parent to its
// child, and records the current cursor on the root.
func (l *Lifeline) Dispose(d ports.Diagram) error {
	r := l.rec()
	if r.active {
		return &domain.DisposeError{Name: r.name, Err: domain.ErrStillActive}
	}
	if l.IsRoot() {
		return &domain.DisposeError{Name: r.name, Err: domain.ErrCannotDisposeRoot}
	}
	if r.disposed {
		return &domain.DisposeError{Name: r.name, Err: domain.ErrAlreadyDisposed}
	}
	recs := l.arena.records
	switch r.direction {
	case domain.DirectionLeft:
		recs[r.parent].left = r.left
		if r.left != None {
			recs[r.left].parent = r.parent
		}
	case domain.DirectionRight:
		recs[r.parent].right = r.right
		if r.right != None {
			recs[r.right].parent = r.parent
		}
	default:
		return &domain.DisposeError{Name: r.name, Err: domain.ErrInconsistentDirection}
	}
	r.parent, r.left, r.right = None, None, None
	r.disposed = true
	l.Root().SetRectangleBottom(d.VerticalPosition())
	return nil
}

func (l *Lifeline) newCross(d ports.Diagram) domain.Segment {
	size := d.Config().CrossSize
	id := l.arena.addSegment(domain.Segment{
		Kind:    domain.SegmentCross,
		Owner:   l.Name(),
		Width:   size,
		Height:  size,
		Visible: true,
	})
	return l.arena.segments[id]
}
