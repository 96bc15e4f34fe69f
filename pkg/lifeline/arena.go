package lifeline

import (
	"github.com/aretw0/seqline/pkg/domain"
	"github.com/aretw0/seqline/pkg/ports"
)

// None is the null reference for tree links.
const None domain.LifelineID = -1

type record struct {
	name      string
	typ       string
	label     string
	direction domain.Direction
	flags     domain.Flags

	root   domain.LifelineID
	parent domain.LifelineID
	left   domain.LifelineID
	right  domain.LifelineID

	level     int
	sideLevel int

	active    bool
	alive     bool
	destroyed bool
	disposed  bool
	thread    int

	view            domain.SegmentID
	head            domain.SegmentID
	cross           domain.SegmentID
	lastLine        domain.SegmentID
	rectangleBottom int

	// root only
	allViews []domain.SegmentID
	// sub lifelines register their bar on first activation
	registered bool

	nameRegion domain.Region
}

// Arena owns every lifeline record and every segment of one diagram.
type Arena struct {
	records  []record
	handles  []*Lifeline
	segments []domain.Segment
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Len returns the number of lifelines ever created in the arena, disposed ones included.
func (a *Arena) Len() int {
	return len(a.records)
}

// Lifeline returns the handle for id, or nil if id is unknown.
func (a *Arena) Lifeline(id domain.LifelineID) *Lifeline {
	if id < 0 || int(id) >= len(a.handles) {
		return nil
	}
	return a.handles[id]
}

// Roots returns the root lifelines in creation order.
func (a *Arena) Roots() []*Lifeline {
	var roots []*Lifeline
	for i := range a.records {
		if a.records[i].root == domain.LifelineID(i) {
			roots = append(roots, a.handles[i])
		}
	}
	return roots
}

// Segment returns a copy of the segment with the given id.
func (a *Arena) Segment(id domain.SegmentID) (domain.Segment, bool) {
	if id < 0 || int(id) >= len(a.segments) {
		return domain.Segment{}, false
	}
	return a.segments[id], true
}

// NewRoot creates the root lifeline of a participant.
//
// Actors and process participants start active with a bar; every other participant starts
// inactive with a line. The head is placed at the current vertical cursor and the view starts
// right below it. Head and view are only visible if the participant is alive.
func (a *Arena) NewRoot(d ports.Diagram, p domain.Participant) *Lifeline {
	id := domain.LifelineID(len(a.records))
	a.records = append(a.records, record{
		name:      p.Name,
		typ:       p.Type,
		label:     p.Label,
		direction: domain.DirectionCenter,
		flags:     p.Flags,
		root:      id,
		parent:    None,
		left:      None,
		right:     None,
		alive:     p.Alive,
		view:      domain.NoSegment,
		head:      domain.NoSegment,
		cross:     domain.NoSegment,
		lastLine:  domain.NoSegment,
		allViews:  []domain.SegmentID{},

		nameRegion: p.Region,
	})
	l := &Lifeline{arena: a, id: id}
	a.handles = append(a.handles, l)

	cfg := d.Config()
	r := l.rec()
	head := domain.Segment{
		Kind:       domain.SegmentBox,
		Owner:      p.Name,
		Label:      p.DisplayLabel(),
		Top:        d.VerticalPosition(),
		Height:     cfg.HeadHeight,
		Anonymous:  p.Flags.Has(domain.FlagAnonymous),
		Underlined: !p.Flags.Has(domain.FlagRole),
	}
	switch {
	case p.IsActor():
		head.Kind = domain.SegmentFigure
		head.Height = cfg.FigureHeight
		r.view = a.newSegment(l, domain.SegmentBar, l.drawableWidth(cfg))
		r.active = true
	case p.Flags.Has(domain.FlagProcess):
		r.view = a.newSegment(l, domain.SegmentBar, l.drawableWidth(cfg))
		r.active = true
	default:
		r.view = a.newSegment(l, domain.SegmentLine, 1)
		r.active = false
	}
	head.Visible = p.Alive
	r.head = a.addSegment(head)

	v := &a.segments[r.view]
	v.Top = head.Bottom()
	v.Visible = p.Alive
	l.addView(r.view)
	return l
}

// newSub creates a sub lifeline under root. Placement in the side chain is done here, the
// bar is pre-created and its top is fixed on the first activation.
func (a *Arena) newSub(cfg domain.Config, root *Lifeline, dir domain.Direction, thread int) *Lifeline {
	rr := root.rec()
	level := len(root.AllLifelines())
	id := domain.LifelineID(len(a.records))
	a.records = append(a.records, record{
		name:      rr.name,
		typ:       rr.typ,
		label:     rr.label,
		direction: dir,
		flags: rr.flags.
			Without(domain.FlagAutoDestroy).
			Without(domain.FlagThread).
			Without(domain.FlagProcess),
		root:       root.id,
		parent:     root.id,
		left:       None,
		right:      None,
		level:      level,
		alive:      true,
		thread:     thread,
		view:       domain.NoSegment,
		head:       domain.NoSegment,
		cross:      domain.NoSegment,
		lastLine:   domain.NoSegment,
		nameRegion: rr.nameRegion,
	})
	l := &Lifeline{arena: a, id: id}
	a.handles = append(a.handles, l)

	// walk to the end of the chosen chain
	parent := root.id
	if dir == domain.DirectionLeft {
		for a.records[parent].left != None {
			parent = a.records[parent].left
		}
		a.records[parent].left = id
	} else {
		for a.records[parent].right != None {
			parent = a.records[parent].right
		}
		a.records[parent].right = id
	}

	r := l.rec()
	r.parent = parent
	r.sideLevel = a.records[parent].sideLevel + 1
	r.view = a.newSegment(l, domain.SegmentBar, l.drawableWidth(cfg))
	return l
}

func (a *Arena) addSegment(s domain.Segment) domain.SegmentID {
	id := domain.SegmentID(len(a.segments))
	s.ID = id
	a.segments = append(a.segments, s)
	return id
}

func (a *Arena) newSegment(l *Lifeline, kind domain.SegmentKind, width int) domain.SegmentID {
	r := l.rec()
	return a.addSegment(domain.Segment{
		Kind:      kind,
		Owner:     r.name,
		Direction: r.direction,
		SideLevel: r.sideLevel,
		Thread:    r.thread,
		Width:     width,
		Visible:   true,
	})
}

// ExtendTo grows every open view up to bottom. A view is open if it is the current view of
// an alive root, or the bar of an active sub lifeline. Views already below bottom are kept.
func (a *Arena) ExtendTo(bottom int) {
	for i := range a.records {
		r := &a.records[i]
		if r.disposed || r.destroyed || !a.records[r.root].alive {
			continue
		}
		isRoot := r.root == domain.LifelineID(i)
		if !isRoot && !r.active {
			continue
		}
		if isRoot && !r.alive {
			continue
		}
		v := &a.segments[r.view]
		if v.Bottom() < bottom {
			*v = v.WithBottom(bottom)
		}
	}
}
