package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/arthur-debert/hermes/pkg/errors"
)

// Registry is a thread-safe set of named items, resolved in caller order.
type Registry[T any] interface {
	// Register adds an item under a unique name
	Register(name string, item T) error

	// Resolve retrieves several items, preserving the order of names
	Resolve(names []string) ([]T, error)

	// List returns all registered names
	List() []string
}

type registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// New creates a new Registry instance
func New[T any]() Registry[T] {
	return &registry[T]{
		items: make(map[string]T),
	}
}

// Register adds an item to the registry. Nil funcs, pointers, maps and
// interfaces are rejected.
func (r *registry[T]) Register(name string, item T) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "registry name cannot be empty")
	}
	if isNil(item) {
		return errors.Newf(errors.ErrInvalidInput, "item '%s' cannot be nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "item '%s' is already registered", name)
	}

	r.items[name] = item
	return nil
}

// Resolve returns the items registered under names, in the same order.
// The first unknown name fails the whole lookup.
func (r *registry[T]) Resolve(names []string) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]T, 0, len(names))
	for i, name := range names {
		item, exists := r.items[name]
		if !exists {
			return nil, errors.Newf(errors.ErrNotFound, "item '%s' not found in registry", name).
				WithDetail("name", name).
				WithDetail("index", i)
		}
		items = append(items, item)
	}
	return items, nil
}

// List returns all registered names in sorted order
func (r *registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// MustRegister registers an item and panics if registration fails
// This is useful for init() functions where registration errors are programming errors
func MustRegister[T any](reg Registry[T], name string, item T) {
	if err := reg.Register(name, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}

func isNil(item any) bool {
	if item == nil {
		return true
	}
	v := reflect.ValueOf(item)
	switch v.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Interface, reflect.Chan, reflect.Slice:
		return v.IsNil()
	}
	return false
}
