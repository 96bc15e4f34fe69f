package runtime

import (
	"fmt"
	"slices"

	"github.com/aretw0/seqline/pkg/domain"
	"github.com/aretw0/seqline/pkg/lifeline"
)

// Canvas is the diagram a scenario is drawn on. It implements ports.Diagram.
//
// Participants keep their horizontal position for the whole render, even after they have
// been removed from the live set by a destroy message.
type Canvas struct {
	arena  *lifeline.Arena
	cfg    domain.Config
	order  []string
	roots  map[string]domain.LifelineID
	live   map[string]bool
	extras []domain.Segment
	cursor int
}

// NewCanvas creates an empty canvas with the cursor at the top margin.
func NewCanvas(cfg domain.Config) *Canvas {
	return &Canvas{
		arena:  lifeline.NewArena(),
		cfg:    cfg,
		roots:  make(map[string]domain.LifelineID),
		live:   make(map[string]bool),
		cursor: cfg.Margin,
	}
}

// Declare adds a participant to the right of the existing ones and creates its root lifeline.
func (c *Canvas) Declare(p domain.Participant) (*lifeline.Lifeline, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("participant at position %d has no name", len(c.order))
	}
	if _, ok := c.roots[p.Name]; ok {
		return nil, fmt.Errorf("participant %q declared twice", p.Name)
	}
	l := c.arena.NewRoot(c, p)
	c.order = append(c.order, p.Name)
	c.roots[p.Name] = l.ID()
	c.live[p.Name] = true
	return l, nil
}

// Root returns the root lifeline of a participant, destroyed or not.
func (c *Canvas) Root(name string) (*lifeline.Lifeline, bool) {
	id, ok := c.roots[name]
	if !ok {
		return nil, false
	}
	return c.arena.Lifeline(id), true
}

// Lookup returns the root lifeline of a participant that is still part of the diagram.
func (c *Canvas) Lookup(name string) (*lifeline.Lifeline, error) {
	l, ok := c.Root(name)
	if !ok || !c.live[name] {
		return nil, fmt.Errorf("%q: %w", name, domain.ErrUnknownParticipant)
	}
	return l, nil
}

// Participants returns the participant names in horizontal order.
func (c *Canvas) Participants() []string {
	return slices.Clone(c.order)
}

// IsLive reports whether the participant has not been removed from the diagram.
func (c *Canvas) IsLive(name string) bool {
	return c.live[name]
}

// Arena returns the arena holding every lifeline of the canvas.
func (c *Canvas) Arena() *lifeline.Arena {
	return c.arena
}

// Extras returns a copy of the drawables that do not belong to a lifeline view.
func (c *Canvas) Extras() []domain.Segment {
	return slices.Clone(c.extras)
}

// Advance moves the cursor down by dy and stretches every open lifeline to it.
func (c *Canvas) Advance(dy int) {
	if dy <= 0 {
		return
	}
	c.cursor += dy
	c.arena.ExtendTo(c.cursor)
}

// VerticalPosition implements ports.Diagram.
func (c *Canvas) VerticalPosition() int { return c.cursor }

// PositionOf implements ports.Diagram.
func (c *Canvas) PositionOf(name string) int { return slices.Index(c.order, name) }

// RootAt implements ports.Diagram.
func (c *Canvas) RootAt(pos int) (domain.LifelineID, bool) {
	if pos < 0 || pos >= len(c.order) {
		return lifeline.None, false
	}
	return c.roots[c.order[pos]], true
}

// NumberOfLifelines implements ports.Diagram.
func (c *Canvas) NumberOfLifelines() int { return len(c.order) }

// Config implements ports.Diagram.
func (c *Canvas) Config() domain.Config { return c.cfg }

// RemoveLifeline implements ports.Diagram. The position of the participant is kept.
func (c *Canvas) RemoveLifeline(name string) { delete(c.live, name) }

// AddExtra implements ports.Diagram.
func (c *Canvas) AddExtra(seg domain.Segment) { c.extras = append(c.extras, seg) }

// ExtendLifelines implements ports.Diagram.
func (c *Canvas) ExtendLifelines(amount int) { c.Advance(amount) }
