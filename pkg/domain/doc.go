/*
Package domain contains the core domain models of the seqline engine.

It defines the vocabulary shared by the lifeline core, the interpreter, the renderers and the
adapters: participants and their flags, the geometry descriptors (segments) produced for every
activation, scenarios (the event stream) and layouts (the rendered result). This package is
kept pure and free of I/O, following the same hexagonal split as the rest of the module.

# Key Entities

  - Participant: an object or actor that owns a lifeline.
  - Segment: an immutable geometry descriptor (bar, line, head box, figure, cross).
  - Scenario: the ordered list of messages exchanged between participants.
  - Layout: the computed diagram, ready to be drawn or persisted.
*/
package domain
