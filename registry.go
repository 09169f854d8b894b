package cabsl

import "sync"

type initializerFunc func(e *Engine) error

type descriptor struct {
	name   string
	invoke func(b Behavior, fromSelect bool) bool
}

// optionRegistry is the process-wide, read-only-after-warmup catalogue of
// known options. It is populated by init-time Register/RegisterDefinitions
// calls, which in Go happen before any Engine can run. The mutex guards
// registration and is also taken by every lookup and initializer snapshot.
type optionRegistry struct {
	mu           sync.Mutex
	descriptors  map[string]*descriptor
	initializers []initializerFunc
}

var registry = &optionRegistry{descriptors: map[string]*descriptor{}}

func (r *optionRegistry) snapshotInitializers() []initializerFunc {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]initializerFunc, len(r.initializers))
	copy(out, r.initializers)
	return out
}

func (r *optionRegistry) lookup(name string) (*descriptor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.descriptors[name]
	return d, ok
}

// Register declares an option body under name. B is the concrete behavior
// type the option is written against; any Behavior value passed to Invoke
// that is not a B is simply ignored by this descriptor (so the same name
// can only ever resolve against the one behavior type it was registered
// for). Re-registering the same name is idempotent: the first registration
// wins and later ones are ignored, since Go function values carry no
// identity to compare for conflict detection the way the original's
// pointer-based descriptors could.
//
// body receives the ExecutionScope already opened for this invocation; it
// must not open a second one for the same name — only options invoked
// directly (ordinary Go method calls, never by name) open their own scope
// via NewScope.
func Register[B Behavior](name string, body func(b B, s *Scope)) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, exists := registry.descriptors[name]; exists {
		return
	}
	registry.descriptors[name] = &descriptor{
		name: name,
		invoke: func(b Behavior, fromSelect bool) bool {
			typed, ok := b.(B)
			if !ok {
				return false
			}
			s := newScope(b, name, fromSelect)
			defer s.Close()
			body(typed, s)
			return s.ctx.stateKind != Initial
		},
	}
}

// RegisterInitializer appends a definitions-initializer to the ordered
// list Engine runs once, at the first BeginFrame of every Engine instance.
func RegisterInitializer(fn func(e *Engine) error) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.initializers = append(registry.initializers, fn)
}
