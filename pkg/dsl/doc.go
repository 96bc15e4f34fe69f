/*
Package dsl provides a Go DSL for building sequence diagram scenarios in code.

It is the typed alternative to YAML scenario files, useful for generated diagrams, unit
tests and IDE autocompletion.

Example usage:

	b := dsl.New("login")
	b.Actor("user")
	b.Participant("server", "Server")
	b.Participant("session", "Session").Unborn().Flag(domain.FlagAutoDestroy)

	b.Call("user", "server", "login()").
		Create("server", "session", "new").
		Return().
		Return()

	sc, err := b.Build()
	// ... pass sc to seqline.Engine.Render
*/
package dsl
