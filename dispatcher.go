package cabsl

// Invoke resolves name against the registry and, if found, runs that
// option body once. It returns false if name is unknown, or if the option
// body ran but ended its execution still in its initial state.
//
// fromSelect marks a SelectOption probe: a probe that ends in the initial
// state is excluded from the activation graph and does not update
// last_active_cycle, per the select_option contract.
func Invoke(b Behavior, name string, fromSelect bool) bool {
	d, ok := registry.lookup(name)
	if !ok {
		return false
	}
	return d.invoke(b, fromSelect)
}

// SelectOption tries each name in order, as a probe, until one ends in a
// non-initial state; that option is the one considered selected and its
// invocation becomes the only one of the group recorded in the activation
// graph. Every option that declined (stayed in its initial state) leaves
// no trace. If every option declines, SelectOption returns false and
// nothing this cycle was selected.
func SelectOption(b Behavior, names []string) bool {
	for _, name := range names {
		if Invoke(b, name, true) {
			return true
		}
	}
	return false
}
