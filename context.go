package cabsl

// Context holds the per-option state that persists across cycles: the
// currently selected state, the timestamps used to derive option_time and
// state_time, the per-cycle latches ExecutionScope manages, and the owned
// defs/vars storage handles.
//
// A Context is created lazily, keyed by option name, the first time that
// option is entered on a given Engine; it is never shared between Engines.
type Context struct {
	name string

	stateID   int
	stateName string
	stateKind StateKind

	lastSubStateKind StateKind

	lastActiveCycle   Cycle
	lastSelectedCycle Cycle
	optionStartCycle  Cycle
	stateStartCycle   Cycle

	addedToGraph        bool
	transitionFired     bool
	hasCommonTransition bool

	argStrings []string

	defs any
	vars any
}

func newContext(name string) *Context {
	return &Context{
		name:              name,
		stateKind:         Initial,
		lastActiveCycle:   noCycle,
		lastSelectedCycle: noCycle,
	}
}

// context returns this option's Context, creating it on first access.
func (e *Engine) context(name string) *Context {
	if e.contexts == nil {
		e.contexts = make(map[string]*Context)
	}
	ctx, ok := e.contexts[name]
	if !ok {
		ctx = newContext(name)
		e.contexts[name] = ctx
	}
	return ctx
}
