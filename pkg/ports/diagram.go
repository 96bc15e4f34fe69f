package ports

import "github.com/aretw0/seqline/pkg/domain"

// Diagram is the capability a lifeline needs from the diagram it belongs to.
// It is passed explicitly to every lifeline operation that reads the vertical cursor,
// the participant order or the width configuration.
type Diagram interface {
	// VerticalPosition returns the current vertical cursor. It only grows.
	VerticalPosition() int

	// PositionOf returns the horizontal index of the named participant, or -1.
	PositionOf(name string) int

	// RootAt returns the root lifeline of the participant at the given index.
	RootAt(pos int) (domain.LifelineID, bool)

	// NumberOfLifelines returns the number of participants in the diagram.
	NumberOfLifelines() int

	// Config returns the geometry settings.
	Config() domain.Config

	// RemoveLifeline drops the named participant from the set of live participants.
	RemoveLifeline(name string)

	// AddExtra registers a drawable that does not belong to a lifeline view (crosses).
	AddExtra(seg domain.Segment)

	// ExtendLifelines grows the diagram (and every open lifeline) by amount.
	ExtendLifelines(amount int)
}
