package inputs

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry maps tags to component factories. Registering a tag again replaces
// the previous factory, so tests and progressive rollouts can swap variants
// without rebuilding the registry.
type Registry struct {
	mu        sync.RWMutex
	factories map[Tag]Factory
}

// NewRegistry returns a registry with the built-in variants registered.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	for _, variant := range Builtins() {
		r.MustRegister(variant.TypeTag, variant.Factory())
	}
	return r
}

// NewEmptyRegistry returns a registry with no variants.
func NewEmptyRegistry() *Registry {
	return &Registry{factories: make(map[Tag]Factory)}
}

// Register binds tag to factory, overwriting any previous binding.
func (r *Registry) Register(tag Tag, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("inputs: factory is required")
	}
	tag = normalizeTag(tag)
	if tag == "" {
		return fmt.Errorf("inputs: tag is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[tag] = factory
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(tag Tag, factory Factory) {
	if err := r.Register(tag, factory); err != nil {
		panic(err)
	}
}

// RegisterVariant registers a table-driven variant under its own tag.
func (r *Registry) RegisterVariant(v Variant) error {
	return r.Register(v.TypeTag, v.Factory())
}

// Resolve builds the component registered for tag.
func (r *Registry) Resolve(tag Tag) (Component, error) {
	tag = normalizeTag(tag)

	r.mu.RLock()
	factory, ok := r.factories[tag]
	r.mu.RUnlock()

	if !ok {
		return nil, &UnknownInputTypeError{Tag: tag}
	}
	return factory(), nil
}

// ResolveOrFallback builds the registered component, or the placeholder
// component for unknown tags. The boolean reports whether tag is supported.
func (r *Registry) ResolveOrFallback(tag Tag) (Component, bool) {
	component, err := r.Resolve(tag)
	if err != nil {
		return Unsupported(normalizeTag(tag)), false
	}
	return component, true
}

// Has reports whether tag is registered.
func (r *Registry) Has(tag Tag) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[normalizeTag(tag)]
	return ok
}

// Tags returns the registered tags, sorted.
func (r *Registry) Tags() []Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Tag, 0, len(r.factories))
	for tag := range r.factories {
		out = append(out, tag)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func normalizeTag(tag Tag) Tag {
	return Tag(strings.TrimSpace(string(tag)))
}
