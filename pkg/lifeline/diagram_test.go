package lifeline_test

import (
	"slices"

	"github.com/aretw0/seqline/pkg/domain"
	"github.com/aretw0/seqline/pkg/lifeline"
)

// fakeDiagram is a minimal ports.Diagram backed by a slice of participant names.
type fakeDiagram struct {
	arena    *lifeline.Arena
	order    []string
	roots    map[string]domain.LifelineID
	removed  []string
	extras   []domain.Segment
	extended []int
	cursor   int
	cfg      domain.Config
}

func newFakeDiagram() *fakeDiagram {
	return &fakeDiagram{
		arena: lifeline.NewArena(),
		roots: map[string]domain.LifelineID{},
		cfg:   domain.DefaultConfig(),
	}
}

// add declares a participant of the given type at the next position.
func (d *fakeDiagram) add(name, typ string, flags ...domain.Flag) *lifeline.Lifeline {
	return d.addParticipant(domain.Participant{Name: name, Type: typ, Alive: true, Flags: domain.NewFlags(flags...)})
}

func (d *fakeDiagram) addParticipant(p domain.Participant) *lifeline.Lifeline {
	l := d.arena.NewRoot(d, p)
	d.order = append(d.order, p.Name)
	d.roots[p.Name] = l.ID()
	return l
}

// advance moves the cursor down and grows the open views, like a renderer would.
func (d *fakeDiagram) advance(to int) {
	d.cursor = to
	d.arena.ExtendTo(to)
}

func (d *fakeDiagram) VerticalPosition() int { return d.cursor }

func (d *fakeDiagram) PositionOf(name string) int { return slices.Index(d.order, name) }

func (d *fakeDiagram) RootAt(pos int) (domain.LifelineID, bool) {
	if pos < 0 || pos >= len(d.order) {
		return 0, false
	}
	id, ok := d.roots[d.order[pos]]
	return id, ok
}

func (d *fakeDiagram) NumberOfLifelines() int { return len(d.order) }

func (d *fakeDiagram) Config() domain.Config { return d.cfg }

func (d *fakeDiagram) RemoveLifeline(name string) { d.removed = append(d.removed, name) }

func (d *fakeDiagram) AddExtra(seg domain.Segment) { d.extras = append(d.extras, seg) }

func (d *fakeDiagram) ExtendLifelines(amount int) {
	d.extended = append(d.extended, amount)
	d.advance(d.cursor + amount)
}
