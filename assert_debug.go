//go:build !cabsl_release

package cabsl

import "fmt"

// assertf checks a programmer invariant. In debug builds (the default) a
// failed assertion is fatal: option bodies that double-transition or leave
// a scope open at EndFrame are bugs, not runtime conditions to recover
// from.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		msg := fmt.Sprintf(format, args...)
		logger.Error().Str("kind", "assertion").Msg(msg)
		panic("cabsl: " + msg)
	}
}
