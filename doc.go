/*
Package seqline lays out UML sequence diagrams.

A scenario lists participants and the messages they exchange. The engine replays the messages
and keeps, for every participant, a tree of activations: a participant that is called again
while it is already busy gets a nested activation bar, offset to the left or right depending
on where the caller sits. The result is a Layout of positioned segments (heads, bars, lines,
crosses) and arrows that renderers draw as SVG or export to Mermaid.

# Usage

	eng := seqline.New()
	layout, err := eng.RenderFile(ctx, "login.yaml")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(layout.Height)

Scenario documents are YAML:

	name: login
	participants:
	  - {name: user, type: Actor}
	  - {name: server, type: Server}
	messages:
	  - {from: user, to: server, text: login()}
	  - {kind: return}

# Packages

  - pkg/lifeline: the activation engine working on a single participant family.
  - pkg/domain: scenarios, layouts, segments, errors and lifecycle hooks.
  - pkg/ports: interfaces for diagrams, renderers and layout stores.
  - pkg/adapters: memory and Redis stores, the HTTP API and the MCP tool.
  - pkg/observability: Prometheus metrics and logging hooks.
*/
package seqline
