package render

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrRendererNotFound is returned when a request names a renderer nobody
	// registered, e.g. `?renderer=pdf`.
	ErrRendererNotFound = errors.New("render: renderer not found")
	// ErrRendererConflict is returned when two renderers claim one name.
	ErrRendererConflict = errors.New("render: renderer already registered")
	// ErrRendererInvalid rejects nil or unnamed renderers.
	ErrRendererInvalid = errors.New("render: renderer needs a name")
)

// Registry maps output names ("vanilla", "tui") to renderers. The first
// renderer added answers requests that do not name one.
type Registry struct {
	mu       sync.RWMutex
	byName   map[string]Renderer
	fallback string
}

// NewRegistry returns a registry with no renderers.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Renderer)}
}

// Register adds renderer under its Name().
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil || renderer.Name() == "" {
		return ErrRendererInvalid
	}
	name := renderer.Name()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byName[name]; taken {
		return fmt.Errorf("%w: %q", ErrRendererConflict, name)
	}
	r.byName[name] = renderer
	if r.fallback == "" {
		r.fallback = name
	}
	return nil
}

// MustRegister is Register for wiring code that cannot recover.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get resolves name, or the fallback renderer when name is empty.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if name == "" {
		name = r.fallback
	}
	if renderer, ok := r.byName[name]; ok {
		return renderer, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
}

// SetDefault picks the renderer used when a request names none.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[name]; !ok {
		return fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	r.fallback = name
	return nil
}

// ContentType reports the media type the named renderer produces.
func (r *Registry) ContentType(name string) (string, error) {
	renderer, err := r.Get(name)
	if err != nil {
		return "", err
	}
	return renderer.ContentType(), nil
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}
