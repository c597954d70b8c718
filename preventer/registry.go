package preventer

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a Preventer from configuration.
type Factory func(cfg Config) (Preventer, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a preventer factory available under name. It panics if name
// is empty, factory is nil, or name is already registered.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if name == "" {
		panic("preventer: Register with empty name")
	}
	if factory == nil {
		panic("preventer: Register factory is nil for " + name)
	}
	if _, dup := registry[name]; dup {
		panic("preventer: Register called twice for " + name)
	}
	registry[name] = factory
}

func Lookup(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// Names returns the registered names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build looks up name and builds its preventer from cfg.
func Build(name string, cfg Config) (Preventer, error) {
	factory, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("preventer: unknown preventer %q", name)
	}
	hook, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("preventer: build %q: %w", name, err)
	}
	if hook == nil {
		return nil, fmt.Errorf("preventer: build %q: %w", name, ErrNilPreventer)
	}
	return hook, nil
}
