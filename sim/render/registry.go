package render

import (
	"sync"
)

// Factory creates a new renderer instance.
type Factory func() Renderer

// registry holds registered renderer factories.
var (
	registryMu sync.RWMutex
	renderers  = make(map[string]Factory)
	// Priority order for default selection (first available wins).
	// Native is preferred when a GPU adapter exists; software is the
	// always-available fallback.
	priority = []string{Native, Software}
)

// Register registers a renderer factory with the given name. This is
// typically called from init() functions in renderer files. If a
// renderer with the same name is already registered, it is replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	renderers[name] = factory
}

// Unregister removes a renderer from the registry. Useful for tests.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(renderers, name)
}

// Available returns the registered renderer names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	return names
}

// Get returns a new renderer instance by name, or nil if the name is
// not registered. The instance is not initialized.
func Get(name string) Renderer {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := renderers[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns a new instance of the best registered renderer by
// priority, or nil when nothing is registered. The instance is not
// initialized; Init may still fail for capability reasons.
func Default() Renderer {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range priority {
		if factory, ok := renderers[name]; ok {
			if r := factory(); r != nil {
				return r
			}
		}
	}
	for _, factory := range renderers {
		if r := factory(); r != nil {
			return r
		}
	}
	return nil
}

// InitDefault walks the priority order and returns the first renderer
// whose Init succeeds. Renderers that fail their capability probe are
// closed and skipped.
func InitDefault() (Renderer, error) {
	registryMu.RLock()
	factories := make([]Factory, 0, len(priority))
	for _, name := range priority {
		if f, ok := renderers[name]; ok {
			factories = append(factories, f)
		}
	}
	registryMu.RUnlock()

	for _, f := range factories {
		r := f()
		if r == nil {
			continue
		}
		if err := r.Init(); err != nil {
			r.Close()
			continue
		}
		return r, nil
	}
	return nil, ErrNotAvailable
}
