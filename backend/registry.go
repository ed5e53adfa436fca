package backend

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/gogpu/canvas"
)

// Backend name constants.
const (
	// NameWGPU is the GPU backend over gogpu/wgpu.
	NameWGPU = "wgpu"
	// NameSoftware is the CPU rasterizer.
	NameSoftware = "software"
	// NameRecording is the tracing backend used in tests and debugging.
	NameRecording = "recording"
	// NameVoid discards all drawing.
	NameVoid = "void"
)

// ErrBackendNotAvailable is returned when no registered backend could be
// created.
var ErrBackendNotAvailable = errors.New("backend: not available")

// Factory creates a renderer. A factory may fail, for example when no GPU
// adapter is present; Default then falls back to the next backend.
type Factory func() (canvas.Renderer, error)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Priority order for Default (first that succeeds wins).
	priority = []string{NameWGPU, NameSoftware, NameVoid}
)

// Register registers a renderer factory with the given name.
// This is typically called from init() in backend packages:
//
//	func init() {
//		backend.Register("software", func() (canvas.Renderer, error) {
//			return software.New(), nil
//		})
//	}
//
// Register panics if factory is nil. Registering a name twice replaces the
// previous factory.
func Register(name string, factory Factory) {
	if factory == nil {
		panic("backend: Register factory is nil")
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered backend names in alphabetical order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// New creates a renderer by name. The error for an unknown name includes a
// hint about forgotten imports.
func New(name string) (canvas.Renderer, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("backend: unknown backend %q (forgotten import?)", name)
	}
	r, err := factory()
	if err != nil {
		return nil, fmt.Errorf("backend: create %q: %w", name, err)
	}
	return r, nil
}

// Default returns a renderer from the best available backend.
// Priority order: wgpu > software > void, then any other registered backend
// in alphabetical order. A factory that fails is logged and skipped.
func Default() (canvas.Renderer, string, error) {
	order := make([]string, 0, len(priority))
	order = append(order, priority...)
	for _, name := range Available() {
		if !slices.Contains(priority, name) {
			order = append(order, name)
		}
	}

	for _, name := range order {
		registryMu.RLock()
		factory, ok := factories[name]
		registryMu.RUnlock()
		if !ok {
			continue
		}
		r, err := factory()
		if err != nil {
			canvas.Logger().Warn("backend unavailable, falling back", "backend", name, "err", err)
			continue
		}
		canvas.Logger().Info("backend selected", "backend", name)
		return r, name, nil
	}
	return nil, "", ErrBackendNotAvailable
}

// MustDefault returns the default renderer or panics.
func MustDefault() canvas.Renderer {
	r, _, err := Default()
	if err != nil {
		panic(err)
	}
	return r
}
