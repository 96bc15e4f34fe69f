/*
Package lifeline implements the activation and branching engine of a sequence diagram.

For every participant there is one root Lifeline. When a participant that is already active
receives another message, AddActivity creates a nested Lifeline and appends it to the left or
right side chain of the root, depending on where the caller sits. Each chain is a singly linked
list, so overlapping activations of the same object can be drawn as separate, offset bars.

All lifelines of a diagram live in one Arena. Tree links are stored as IDs into the arena, and
geometry is kept in a segment table owned by the arena; callers only ever see copies
(domain.Segment values).

The diagram context (ports.Diagram) is passed explicitly to every operation that needs the
vertical cursor, the participant order or the width configuration.

An Arena is not safe for concurrent use. It belongs to one diagram session.
*/
package lifeline
