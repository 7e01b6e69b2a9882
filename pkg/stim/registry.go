package stim

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Factory constructs a stimulus from a file path.
type Factory func(filename string) Stim

// TypeNotFoundError is returned by Resolve when no registered stimulus
// type matches the requested name. Key holds the normalized lookup key.
type TypeNotFoundError struct {
	Key string
}

func (e *TypeNotFoundError) Error() string {
	return fmt.Sprintf("stim: no stimulus type matches %q (case-insensitive)", e.Key)
}

// CanonicalName normalizes a loose type name to its registry key:
// lower-cased, underscores stripped, with a "stim" suffix appended if not
// already present. "Image", "image_stim" and "IMAGESTIM" all canonicalize
// to "imagestim".
func CanonicalName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "_", "")
	if !strings.HasSuffix(name, "stim") {
		name += "stim"
	}
	return name
}

// Registry maps canonical stimulus type names to factories.
// The zero value is not usable; use NewRegistry.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under the canonical form of name. Canonical
// names must be globally unique: registering a name that canonicalizes to
// an already-registered key returns an error.
func (r *Registry) Register(name string, f Factory) error {
	key := CanonicalName(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[key]; ok {
		return fmt.Errorf("stim: type %q already registered", key)
	}
	r.factories[key] = f
	return nil
}

// MustRegister is like Register but panics on conflict. Intended for
// init-time registration of concrete stimulus types.
func (r *Registry) MustRegister(name string, f Factory) {
	if err := r.Register(name, f); err != nil {
		panic(err)
	}
}

// Resolve returns the factory registered under the canonical form of name.
// It returns a *TypeNotFoundError carrying the normalized key when no
// registered type matches.
func (r *Registry) Resolve(name string) (Factory, error) {
	key := CanonicalName(name)
	r.mu.RLock()
	f, ok := r.factories[key]
	r.mu.RUnlock()
	if !ok {
		return nil, &TypeNotFoundError{Key: key}
	}
	return f, nil
}

// Types returns all registered canonical names, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for k := range r.factories {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// defaultRegistry holds the built-in stimulus types plus anything
// registered via the package-level Register.
var defaultRegistry = NewRegistry()

// Register adds a factory to the default registry.
func Register(name string, f Factory) error {
	return defaultRegistry.Register(name, f)
}

// MustRegister adds a factory to the default registry, panicking on
// conflict.
func MustRegister(name string, f Factory) {
	defaultRegistry.MustRegister(name, f)
}

// Resolve looks up a factory in the default registry.
func Resolve(name string) (Factory, error) {
	return defaultRegistry.Resolve(name)
}

// Types returns the canonical names registered in the default registry.
func Types() []string {
	return defaultRegistry.Types()
}
