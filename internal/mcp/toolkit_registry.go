package mcp

import (
	"errors"
	"sort"
	"sync"
)

type ToolkitFactory func() Toolkit

type toolkitRegistry struct {
	mu        sync.RWMutex
	factories map[string]ToolkitFactory
}

var registry = toolkitRegistry{factories: map[string]ToolkitFactory{}}

func RegisterToolkit(name string, factory ToolkitFactory) error {
	if name == "" {
		return errors.New("toolkit name required")
	}
	if factory == nil {
		return errors.New("toolkit factory required")
	}
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, exists := registry.factories[name]; exists {
		return errors.New("toolkit already registered")
	}
	registry.factories[name] = factory
	return nil
}

func MustRegisterToolkit(name string, factory ToolkitFactory) {
	if err := RegisterToolkit(name, factory); err != nil {
		panic(err)
	}
}

func ToolkitFactoryFor(name string) (ToolkitFactory, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	factory, ok := registry.factories[name]
	return factory, ok
}

func RegisteredToolkits() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, 0, len(registry.factories))
	for name := range registry.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
