package scriptvec

import (
	"fmt"
	"sort"
	"sync"

	"github.com/scriptvec/scriptvec/safedouble"
)

// Registry manages the named vectors a host exposes to its interpreter.
//
// The Registry owns the safe-integer domain: it constructs and initializes
// one during its own construction and injects it into every vector it
// creates, so initialization order is explicit and validated exactly once.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	dom     *safedouble.Domain
	vectors map[string]*Vector
	opts    []Option
	logger  *Logger
}

// NewRegistry creates an empty Registry. The given options apply to every
// vector the registry creates.
func NewRegistry(opts ...Option) *Registry {
	dom := safedouble.New()
	dom.Initialize()

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Registry{
		dom:     dom,
		vectors: make(map[string]*Vector),
		opts:    opts,
		logger:  o.logger,
	}
}

// Domain returns the registry's safe-integer domain.
func (r *Registry) Domain() *safedouble.Domain {
	return r.dom
}

// Create adds a new empty vector under name.
func (r *Registry) Create(name string) (*Vector, error) {
	if name == "" {
		return nil, fmt.Errorf("vector name must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vectors[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrExists, name)
	}

	vec, err := New(r.dom, r.opts...)
	if err != nil {
		return nil, err
	}
	r.vectors[name] = vec
	r.logger.Debug("vector created", "vector", name)
	return vec, nil
}

// Lookup returns the vector registered under name.
func (r *Registry) Lookup(name string) (*Vector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vec, ok := r.vectors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return vec, nil
}

// Delete removes the vector registered under name.
func (r *Registry) Delete(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vectors[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(r.vectors, name)
	r.logger.Debug("vector deleted", "vector", name)
	return nil
}

// Names returns the registered vector names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.vectors))
	for name := range r.vectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered vectors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.vectors)
}
