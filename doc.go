// Package cabsl implements an option execution engine: a runtime for
// composing hierarchical finite state machines ("options") into a dynamic
// activation tree, executed once per control cycle.
//
// A host behavior embeds an Engine value, registers option bodies with
// Register, and drives cycles with BeginFrame, Execute and EndFrame.
package cabsl
