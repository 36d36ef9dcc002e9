// SPDX-License-Identifier: EPL-2.0

package apm

import (
	"fmt"
	"slices"
	"sync"
)

var (
	factories   = make(map[string]Factory)
	factoriesMu sync.RWMutex
)

// Register makes an engine factory available by name. Engine packages call
// it from init; registering a name twice replaces the earlier factory.
func Register(name string, f Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	factories[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	f, ok := factories[name]
	return f, ok
}

// Engines lists the registered engine names in sorted order.
func Engines() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NewNamed creates a wrapper around the engine registered under name.
func NewNamed(name string, opts ...Option) (*AudioProcessing, error) {
	f, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownEngine)
	}
	return New(f, opts...), nil
}
