package registry

import (
	"fmt"
	"sync"

	"github.com/arthur-debert/relink/pkg/errors"
)

// Registry stores items by key and remembers registration order
type Registry[K ~string, T any] interface {
	// Register adds an item; keys may only be registered once
	Register(key K, item T) error

	// Get retrieves an item
	Get(key K) (T, error)

	// Has checks if a key is registered
	Has(key K) bool

	// Keys returns the registered keys in registration order
	Keys() []K

	// Count returns the number of registered items
	Count() int
}

type registry[K ~string, T any] struct {
	mu    sync.RWMutex
	keys  []K
	items map[K]T
}

// New creates an empty Registry
func New[K ~string, T any]() Registry[K, T] {
	return &registry[K, T]{
		items: make(map[K]T),
	}
}

func (r *registry[K, T]) Register(key K, item T) error {
	if key == "" {
		return errors.New(errors.ErrInvalidInput, "registry key cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[key]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "'%s' is already registered", key)
	}

	r.items[key] = item
	r.keys = append(r.keys, key)
	return nil
}

func (r *registry[K, T]) Get(key K) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[key]
	if !exists {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "'%s' is not registered", key)
	}
	return item, nil
}

func (r *registry[K, T]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items[key]
	return exists
}

func (r *registry[K, T]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]K, len(r.keys))
	copy(keys, r.keys)
	return keys
}

func (r *registry[K, T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// MustRegister registers an item and panics if registration fails.
// Registration errors during package initialization are programming errors.
func MustRegister[K ~string, T any](reg Registry[K, T], key K, item T) {
	if err := reg.Register(key, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", key, err))
	}
}
