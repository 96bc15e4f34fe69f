/*
Package ports defines the driven ports (interfaces) of the seqline engine.

These interfaces decouple the lifeline core from the diagram that owns it and the
interpreter from the places where rendered layouts end up.

# Key Interfaces

  - Diagram: the diagram context a lifeline consults (vertical cursor, participant order,
    widths, extras sink).
  - LayoutStore: persists rendered layouts (memory or Redis).
  - Renderer: the stateless render entry point used by transport adapters.
*/
package ports
