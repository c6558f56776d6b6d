package pattern

import (
	"sync"

	"github.com/fasthttp/pattern/segment"
)

type (
	// Modifier is a named typed-capture rule, see segment.Modifier.
	Modifier = segment.Modifier

	// Formatter validates and transforms a captured value, see segment.Formatter.
	Formatter = segment.Formatter
)

// Static returns a Modifier.RegExp generator for a constant expression.
func Static(src string) func(args []string) (string, error) {
	return segment.Static(src)
}

// Registry maps modifier names to modifiers. The built-in modifiers are
// always present and cannot be redefined.
//
// Register custom modifiers during startup, before patterns using them are
// compiled; lookups are safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	custom map[string]Modifier
}

// NewRegistry returns a registry holding only the built-in modifiers.
func NewRegistry() *Registry {
	return &Registry{
		custom: make(map[string]Modifier),
	}
}

// Add registers a custom modifier. Adding an existing custom name replaces it.
func (r *Registry) Add(name string, m Modifier) error {
	switch {
	case !segment.IsIdent(name):
		return ErrInvalidModifierName
	case IsBuiltinModifier(name):
		return ErrReservedModifier
	}

	r.mu.Lock()
	r.custom[name] = m
	r.mu.Unlock()

	return nil
}

// Modifier implements segment.Lookup.
func (r *Registry) Modifier(name string) (Modifier, bool) {
	if m, ok := builtinModifiers[name]; ok {
		return m, true
	}

	r.mu.RLock()
	m, ok := r.custom[name]
	r.mu.RUnlock()

	return m, ok
}

// Names returns the custom modifier names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.custom))
	for name := range r.custom {
		names = append(names, name)
	}

	return names
}

// IsBuiltinModifier reports whether name is one of the reserved built-ins.
func IsBuiltinModifier(name string) bool {
	_, ok := builtinModifiers[name]
	return ok
}
