//go:build cabsl_release

package cabsl

import "fmt"

// assertf in release builds logs and continues; the resulting engine state
// is undefined per spec but does not crash the host.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		logger.Warn().Str("kind", "assertion").Msg(fmt.Sprintf(format, args...))
	}
}
