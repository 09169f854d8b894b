package cabsl

import (
	"fmt"
	"reflect"
)

// Scope is constructed once every time an option body is entered and
// closed once every time it exits. Every option body method must construct
// one via newScope and close it with defer, immediately — that deferred
// close is what the re-entry detection, activation-graph emission, and
// parent/child state-kind handoff all depend on running on every exit path,
// including early returns.
type Scope struct {
	e          *Engine
	ctx        *Context
	name       string
	fromSelect bool
}

// NewScope opens an ExecutionScope for option name against b's Engine.
// Every option body calls this first and defers Close immediately:
//
//	func (b *MyBehavior) GoTo(x, y int) {
//		s := cabsl.NewScope(b, "GoTo")
//		defer s.Close()
//		...
//	}
//
// Direct option-to-option calls (ordinary Go method calls within an action
// block) always go through NewScope with fromSelect left false, as do root
// options run through Execute; only the probes SelectOption makes through
// Invoke pass fromSelect = true.
func NewScope(b Behavior, name string) *Scope {
	return newScope(b, name, false)
}

func newScope(b Behavior, name string, fromSelect bool) *Scope {
	e := b.CABSL()
	ctx := e.context(name)
	now := e.currentCycle
	prev := e.previousCycle

	if ctx.lastActiveCycle != prev && ctx.lastActiveCycle != now {
		ctx.optionStartCycle = now
		ctx.stateStartCycle = now
		ctx.stateID = 0
		ctx.stateName = ""
		ctx.stateKind = Initial
	}
	if ctx.lastSelectedCycle != prev && ctx.lastSelectedCycle != now {
		ctx.lastSubStateKind = Normal
	}

	ctx.addedToGraph = false
	ctx.transitionFired = false
	ctx.hasCommonTransition = false
	ctx.argStrings = ctx.argStrings[:0]

	e.depth++
	return &Scope{e: e, ctx: ctx, name: name, fromSelect: fromSelect}
}

// close releases the scope. See the destruction contract in the package's
// design notes: graph emission and last_active_cycle update are skipped
// only for a SelectOption probe that ended in the initial state; the
// option's own state kind is always published to whichever scope closes
// next (its parent, by LIFO nesting), after first handing the prior
// published value down as this option's own last_sub_state_kind.
func (s *Scope) close() {
	ctx, e := s.ctx, s.e
	s.tryEmit()
	ctx.lastSelectedCycle = e.currentCycle
	e.depth--

	ctx.lastSubStateKind = e.publishedStateKind
	e.publishedStateKind = ctx.stateKind
}

// Close is the exported form of close, for option bodies that hold their
// Scope through a named variable and defer its release explicitly.
func (s *Scope) Close() { s.close() }

// Action marks the point in an option body where transition logic has
// settled this cycle's state and control passes to that state's action,
// mirroring the original's `action` macro: its first effect is to append
// this option's node to the activation graph immediately, so a parent's
// node is recorded before any sub-option its action goes on to invoke
// (depth-first pre-order, per the activation graph's ordering guarantee).
//
// Only option bodies whose action section invokes another option (by name
// or by direct call) need to call this explicitly, and must call it before
// that invocation; bodies with no sub-option call can omit it; Close emits
// the node as an idempotent fallback either way. tryEmit's fromSelect/
// Initial check makes an early call here exactly as safe as the fallback
// at Close for a SelectOption probe that goes on to decline.
func (s *Scope) Action() { s.tryEmit() }

// tryEmit appends the graph node for the scope's current, fully-resolved
// state, unless this is a SelectOption probe that ended in its initial
// state (in which case it leaves no trace, per the select_option
// contract). Safe to call more than once per scope: emitGraphNode is
// idempotent via the addedToGraph latch.
func (s *Scope) tryEmit() {
	if s.fromSelect && s.ctx.stateKind == Initial {
		return
	}
	s.emitGraphNode()
	s.ctx.lastActiveCycle = s.e.currentCycle
}

// StateID returns the currently selected state's id; 0 is always the
// initial state.
func (s *Scope) StateID() int { return s.ctx.stateID }

// StateKind returns the currently selected state's kind.
func (s *Scope) StateKind() StateKind { return s.ctx.stateKind }

// OptionTime is the number of cycles since this option last transitioned
// out of (and has remained out of) inactivity into its current activation.
func (s *Scope) OptionTime() int { return int(s.e.currentCycle - s.ctx.optionStartCycle) }

// StateTime is the number of cycles since the currently selected state was
// entered.
func (s *Scope) StateTime() int { return int(s.e.currentCycle - s.ctx.stateStartCycle) }

// ActionDone reports whether the last sub-option this option invoked ended
// its previous execution in a Target state.
func (s *Scope) ActionDone() bool { return s.ctx.lastSubStateKind == Target }

// ActionAborted reports whether the last sub-option this option invoked
// ended its previous execution in an Aborted state.
func (s *Scope) ActionAborted() bool { return s.ctx.lastSubStateKind == Aborted }

// SetCommonTransition records that this option declares a common
// transition block, evaluated before any per-state transition. Option
// bodies with a common_transition equivalent call this once, at the top of
// the body, before running that decision procedure.
func (s *Scope) SetCommonTransition() { s.ctx.hasCommonTransition = true }

// Goto changes the current state. It is a no-op beyond latching
// transitionFired if id is already the current state (a self-transition).
// Calling Goto more than once in the same cycle for the same option is a
// programmer error (at most one transition per option per cycle) and is
// caught by an assertion.
func (s *Scope) Goto(id int, name string, kind StateKind) {
	ctx := s.ctx
	assertf(!ctx.transitionFired, "option %q: more than one transition in one cycle", s.name)
	ctx.transitionFired = true
	if id != ctx.stateID {
		ctx.stateID = id
		ctx.stateName = name
		ctx.stateKind = kind
		ctx.stateStartCycle = s.e.currentCycle
	}
}

// AddArgument records a human-readable "name = value" rendering of value
// for the activation graph, unless value's type makes rendering
// meaningless (functions, channels, unsafe pointers), in which case it is
// silently skipped — a diagnostics-only omission, never a control-flow
// error.
func (s *Scope) AddArgument(name string, value any) {
	if !representable(value) {
		return
	}
	s.ctx.argStrings = append(s.ctx.argStrings, fmt.Sprintf("%s = %v", name, value))
}

func representable(v any) bool {
	if v == nil {
		return true
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return false
	default:
		return true
	}
}

// emitGraphNode appends this option's node to the engine's activation
// graph, unless it was already appended this cycle.
func (s *Scope) emitGraphNode() {
	ctx := s.ctx
	if ctx.addedToGraph || s.e.graph == nil {
		return
	}
	s.e.graph.append(ActivationGraphNode{
		Option:     s.name,
		Depth:      s.e.depth,
		State:      ctx.stateName,
		OptionTime: s.OptionTime(),
		StateTime:  s.StateTime(),
		Args:       append([]string(nil), ctx.argStrings...),
	})
	ctx.addedToGraph = true
}
