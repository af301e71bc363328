package draw

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Backend is a PrimitiveRenderer that can be reused across frames.
type Backend interface {
	PrimitiveRenderer

	// Reset discards the output of the previous frame.
	Reset()
}

// BackendFactory creates an empty backend, ready to receive a Replay.
type BackendFactory func() Backend

var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
)

// Register makes a backend available to NewBackend under name. The svg
// and meshrender packages call it from init, so a blank import is enough
// to select them by name:
//
//	import _ "github.com/gogpu/draw/backends/svg"
//
// Register panics if factory is nil or if name is empty or taken.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if name == "" {
		panic("draw: Register name is empty")
	}
	if factory == nil {
		panic("draw: Register factory is nil")
	}
	if _, dup := backends[name]; dup {
		panic("draw: Register called twice for " + name)
	}
	backends[name] = factory
}

// Unregister removes the backend registered under name, if any.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// NewBackend returns a fresh backend registered under name, such as "svg"
// for SVG documents or "mesh" for GPU meshes:
//
//	backend, err := draw.NewBackend("svg")
//	if err != nil {
//	    return err
//	}
//	d.Render(backend)
//
// An unknown name is usually a missing blank import of the backend
// package; the error says so.
func NewBackend(name string) (Backend, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("draw: unknown backend %q (forgotten import?)", name)
	}
	return factory(), nil
}

// MustBackend is like NewBackend but panics if name is unknown.
func MustBackend(name string) Backend {
	b, err := NewBackend(name)
	if err != nil {
		panic(err)
	}
	return b
}

// Backends returns the registered backend names in sorted order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	return slices.Sorted(maps.Keys(backends))
}

// IsRegistered reports whether a backend is registered under name.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Count returns the number of registered backends.
func Count() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(backends)
}
