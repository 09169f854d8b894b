package cabsl

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RegisterDefinitions declares that option name owns a constant-definitions
// struct of type T. It registers a definitions-initializer that allocates
// the struct and, if fromFile is true, populates it by decoding
// "<name>.cfg" — one "field: value" pair per line, the restricted subset of
// YAML mapping syntax the definitions-file format uses. An unknown field
// name or a missing file is a fatal error on the first BeginFrame of the
// owning Engine.
//
// T's fields must carry `yaml:"..."` tags matching the declared constant
// names.
func RegisterDefinitions[T any](name string, fromFile bool) {
	RegisterInitializer(func(e *Engine) error {
		ctx := e.context(name)
		if ctx.defs != nil {
			return nil
		}
		d := new(T)
		if fromFile {
			if err := loadDefsFile(name, d); err != nil {
				return fmt.Errorf("loading definitions for %q: %w", name, err)
			}
		}
		ctx.defs = d
		return nil
	})
}

func loadDefsFile(name string, out any) error {
	path := name + ".cfg"
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// Defs returns this option's definitions struct, as allocated by the
// RegisterDefinitions[T] initializer that ran at the owning Engine's first
// BeginFrame. If no definitions were registered for this option under type
// T — a programmer error, not a runtime condition — the assertion fails: a
// panic in debug builds, a logged warning and a nil result under the
// cabsl_release build tag.
func Defs[T any](s *Scope) *T {
	d, ok := s.ctx.defs.(*T)
	if !ok {
		assertf(false, "option %q: no definitions of type %T registered", s.name, d)
	}
	return d
}

// Vars returns this option's state-variables struct, allocating it (via
// defaults) on first use and resetting it to defaults whenever the option
// re-enters its initial state at option_time == 0.
func Vars[T any](s *Scope, defaults func() T) *T {
	ctx := s.ctx
	v, ok := ctx.vars.(*T)
	if !ok {
		d := defaults()
		v = &d
		ctx.vars = v
		return v
	}
	if ctx.stateKind == Initial && s.OptionTime() == 0 {
		*v = defaults()
	}
	return v
}
