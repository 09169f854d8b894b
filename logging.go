package cabsl

import (
	"os"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
	With().
	Timestamp().
	Str("component", "cabsl").
	Logger()

// SetLogger replaces the logger cabsl reports failed assertions through.
// Definitions-load failures are not logged; BeginFrame returns them to the
// caller. Hosts embedding cabsl into a larger logging setup call this once
// at startup.
func SetLogger(l zerolog.Logger) {
	logger = l
}
