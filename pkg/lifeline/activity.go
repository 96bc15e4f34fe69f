package lifeline

import (
	"github.com/aretw0/seqline/pkg/domain"
	"github.com/aretw0/seqline/pkg/ports"
)

// AddActivity creates a nested activation of l's participant, started by caller in thread.
// caller is nil when the message comes from outside the diagram.
//
// The new lifeline is appended at the end of the root's left or right chain. It is alive
// but not active; its bar gets its top on the first SetActive(true).
func (l *Lifeline) AddActivity(d ports.Diagram, caller *Lifeline, thread int) *Lifeline {
	dir := l.branchDirection(d, caller)
	return l.arena.newSub(d.Config(), l.Root(), dir, thread)
}

// branchDirection decides on which side of the root the callee's next activation goes.
func (l *Lifeline) branchDirection(d ports.Diagram, caller *Lifeline) domain.Direction {
	if caller == nil {
		return domain.DirectionRight
	}
	if caller.Name() == l.Name() {
		switch {
		case caller.Direction() == domain.DirectionCenter:
			return domain.DirectionRight
		case l.Direction() == domain.DirectionCenter:
			return caller.Direction()
		default:
			return l.Direction()
		}
	}
	if caller.Position(d) < l.Position(d) {
		return domain.DirectionLeft
	}
	return domain.DirectionRight
}
