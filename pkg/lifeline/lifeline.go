package lifeline

import (
	"strings"

	"github.com/aretw0/seqline/pkg/domain"
	"github.com/aretw0/seqline/pkg/ports"
)

// Lifeline is a handle on one activation segment of a participant.
//
// A root lifeline stands for the participant's base timeline; every other lifeline stands for
// a nested activation that started while the participant was already active. Handles are
// unique per record, so two handles are the same lifeline iff they are equal pointers.
type Lifeline struct {
	arena *Arena
	id    domain.LifelineID
}

func (l *Lifeline) rec() *record {
	return &l.arena.records[l.id]
}

func (l *Lifeline) handle(id domain.LifelineID) *Lifeline {
	if id == None {
		return nil
	}
	return l.arena.handles[id]
}

// ID returns the arena index of the lifeline.
func (l *Lifeline) ID() domain.LifelineID { return l.id }

// Arena returns the arena that owns the lifeline.
func (l *Lifeline) Arena() *Arena { return l.arena }

// Name returns the participant name.
func (l *Lifeline) Name() string { return l.rec().name }

// Type returns the participant type.
func (l *Lifeline) Type() string { return l.rec().typ }

// Label returns the explicit label of the participant (may be empty).
func (l *Lifeline) Label() string { return l.rec().label }

// Direction returns DirectionCenter for roots, otherwise the side the lifeline branches to.
func (l *Lifeline) Direction() domain.Direction { return l.rec().direction }

// Root returns the root lifeline of the participant. Root().Root() == Root().
func (l *Lifeline) Root() *Lifeline { return l.handle(l.rec().root) }

// IsRoot reports whether l is the root of its participant.
func (l *Lifeline) IsRoot() bool { return l.rec().root == l.id }

// Parent returns the lifeline this one nests under, nil for roots and disposed lifelines.
func (l *Lifeline) Parent() *Lifeline { return l.handle(l.rec().parent) }

// LeftChild returns the next lifeline of the left chain, or nil.
func (l *Lifeline) LeftChild() *Lifeline { return l.handle(l.rec().left) }

// RightChild returns the next lifeline of the right chain, or nil.
func (l *Lifeline) RightChild() *Lifeline { return l.handle(l.rec().right) }

// Level returns the number of lifelines of the family at the time l was created.
func (l *Lifeline) Level() int { return l.rec().level }

// SideLevel returns 0 for roots, otherwise the depth of l in its side chain.
func (l *Lifeline) SideLevel() int { return l.rec().sideLevel }

// IsActive reports whether the participant can currently send messages from this lifeline.
func (l *Lifeline) IsActive() bool { return l.rec().active }

// IsAlive reports whether the object has been created and is visible.
func (l *Lifeline) IsAlive() bool { return l.rec().alive }

// IsDisposed reports whether l has been taken out of its side chain.
func (l *Lifeline) IsDisposed() bool { return l.rec().disposed }

// SetDestroyed records that the object has been torn down.
func (l *Lifeline) SetDestroyed(destroyed bool) { l.rec().destroyed = destroyed }

// IsDestroyed reports whether the object has been torn down.
func (l *Lifeline) IsDestroyed() bool { return l.rec().destroyed }

// Thread returns the thread of the activity this lifeline represents.
func (l *Lifeline) Thread() int { return l.rec().thread }

// SetThread changes the thread of the activity this lifeline represents.
func (l *Lifeline) SetThread(thread int) {
	r := l.rec()
	r.thread = thread
	l.arena.segments[r.view].Thread = thread
}

// SetNameRegion records where the participant name appears in the source text.
func (l *Lifeline) SetNameRegion(region domain.Region) { l.rec().nameRegion = region }

// NameRegion returns the source region of the participant name.
func (l *Lifeline) NameRegion() domain.Region { return l.rec().nameRegion }

// Flags returns the participant flags. Sub lifelines never carry AutoDestroy, Thread or Process.
func (l *Lifeline) Flags() domain.Flags { return l.rec().flags }

// Is reports whether the lifeline carries flag.
func (l *Lifeline) Is(flag domain.Flag) bool { return l.rec().flags.Has(flag) }

func (l *Lifeline) HasThread() bool     { return l.Is(domain.FlagThread) }
func (l *Lifeline) IsAnonymous() bool   { return l.Is(domain.FlagAnonymous) }
func (l *Lifeline) IsExternal() bool    { return l.Is(domain.FlagExternal) }
func (l *Lifeline) IsVariable() bool    { return l.Is(domain.FlagVariable) }
func (l *Lifeline) IsAutoDestroy() bool { return l.Is(domain.FlagAutoDestroy) }

// IsAlwaysActive reports whether the participant never becomes inactive (actors, processes).
func (l *Lifeline) IsAlwaysActive() bool {
	return l.rec().typ == domain.ActorType || l.Is(domain.FlagProcess)
}

// Position returns the horizontal index of the participant in d.
func (l *Lifeline) Position(d ports.Diagram) int {
	return d.PositionOf(l.rec().name)
}

// View returns the current drawable: a bar while active, a line while an inactive root.
func (l *Lifeline) View() domain.Segment {
	return l.arena.segments[l.rec().view]
}

// Head returns the participant head. Only roots have one.
func (l *Lifeline) Head() (domain.Segment, bool) {
	return l.arena.Segment(l.rec().head)
}

// Cross returns the destruction marker, if any.
func (l *Lifeline) Cross() (domain.Segment, bool) {
	return l.arena.Segment(l.rec().cross)
}

// LastLine returns the line most recently created for a root, if any.
func (l *Lifeline) LastLine() (domain.Segment, bool) {
	return l.arena.Segment(l.rec().lastLine)
}

// RectangleBottom returns the high-water mark of finished activities of the family.
func (l *Lifeline) RectangleBottom() int { return l.rec().rectangleBottom }

// SetRectangleBottom raises the high-water mark to bottom; it never goes down.
func (l *Lifeline) SetRectangleBottom(bottom int) {
	r := l.rec()
	r.rectangleBottom = max(r.rectangleBottom, bottom)
}

// Compare orders lifelines by participant name.
func (l *Lifeline) Compare(other *Lifeline) int {
	return strings.Compare(l.rec().name, other.rec().name)
}

// String renders the lifeline the way it is declared: [/]name:type ["label"] [flags].
func (l *Lifeline) String() string {
	r := l.rec()
	var sb strings.Builder
	if !r.alive {
		sb.WriteString("/")
	}
	sb.WriteString(r.name)
	sb.WriteString(":")
	sb.WriteString(r.typ)
	if r.label != "" {
		sb.WriteString(" \"" + r.label + "\"")
	}
	if r.flags.Len() > 0 {
		sb.WriteString(" [" + r.flags.String() + "]")
	}
	return sb.String()
}

func (l *Lifeline) drawableWidth(cfg domain.Config) int {
	if l.rec().sideLevel == 0 {
		return cfg.MainLifelineWidth
	}
	return cfg.SubLifelineWidth
}

func (l *Lifeline) addView(id domain.SegmentID) {
	root := &l.arena.records[l.rec().root]
	root.allViews = append(root.allViews, id)
}
