package cabsl

import "fmt"

// Engine is the per-behavior-instance outer loop surface. A host behavior
// embeds Engine by value; embedding promotes CABSL so the behavior
// satisfies Behavior without any boilerplate.
//
// An Engine must not be shared across goroutines: at most one cycle may be
// in flight against a given Engine at a time, mirroring the single
// behavior-instance-per-thread affinity the engine this is ported from
// relies on. Separate Engine values are fully independent and may run on
// separate goroutines concurrently; they only ever share the read-only,
// process-wide option registry.
type Engine struct {
	currentCycle  Cycle
	previousCycle Cycle
	depth         int

	graph *ActivationGraph

	definitionsInitialized bool
	publishedStateKind     StateKind

	contexts map[string]*Context
}

// CABSL returns the receiver itself. Its purpose is to let a struct that
// embeds Engine by value satisfy the Behavior interface through method
// promotion, without requiring the embedder to write any code.
func (e *Engine) CABSL() *Engine { return e }

// Behavior is implemented by any host struct that embeds Engine.
type Behavior interface {
	CABSL() *Engine
}

// Graph returns the current cycle's activation graph, readable after any
// Execute call and before EndFrame.
func (e *Engine) Graph() []ActivationGraphNode {
	if e.graph == nil {
		return nil
	}
	return e.graph.Nodes
}

// Depth returns the current option nesting depth. Zero outside of any
// Execute call.
func (e *Engine) Depth() int { return e.depth }

// BeginFrame starts a new control cycle. On the very first call against a
// given Engine it also runs every registered definitions-initializer, in
// registration order; a failure there (e.g. a missing or malformed
// definitions file) is fatal for the cycle and is returned to the caller.
func BeginFrame(b Behavior, cycle Cycle) error {
	e := b.CABSL()
	if e.contexts == nil {
		e.contexts = make(map[string]*Context)
		e.previousCycle = noFrame
	}
	e.currentCycle = cycle
	if e.graph == nil {
		e.graph = newActivationGraph()
	} else {
		e.graph.reset()
	}

	if !e.definitionsInitialized {
		inits := registry.snapshotInitializers()
		for _, init := range inits {
			if err := init(e); err != nil {
				return fmt.Errorf("cabsl: definitions initialization failed: %w", err)
			}
		}
		e.definitionsInitialized = true
	}
	return nil
}

// Execute invokes a root option by name. It may be called any number of
// times between BeginFrame and EndFrame to run several independent root
// options in the same cycle; an unknown name is a silent no-op that
// returns false.
func Execute(b Behavior, rootName string) bool {
	return Invoke(b, rootName, false)
}

// EndFrame closes the current cycle. It asserts that every ExecutionScope
// opened during the cycle was also closed (depth back to zero) — a
// violation means an option body failed to let its scope close on every
// exit path.
func EndFrame(b Behavior) error {
	e := b.CABSL()
	e.previousCycle = e.currentCycle
	assertf(e.depth == 0, "end_frame called with non-zero depth %d", e.depth)
	return nil
}
