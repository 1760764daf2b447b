package backend

import (
	"fmt"
	"sort"
	"sync"
)

var (
	// drivers is the package-level registry map
	drivers = make(map[string]Driver)
	// mu protects concurrent access to drivers map
	mu sync.RWMutex
)

// Register adds a driver to the registry under its reported name.
func Register(d Driver) error {
	if d == nil {
		return fmt.Errorf("cannot register nil driver")
	}

	name := d.Name()
	if name == "" {
		return fmt.Errorf("cannot register driver with empty name")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := drivers[name]; exists {
		return fmt.Errorf("driver already registered: %s", name)
	}

	drivers[name] = d
	return nil
}

// MustRegister registers a driver and panics on failure. Intended for
// driver package init functions, where registration cannot fail softly.
func MustRegister(d Driver) {
	if err := Register(d); err != nil {
		panic(err)
	}
}

// Unregister removes a driver from the registry.
func Unregister(name string) error {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := drivers[name]; !exists {
		return fmt.Errorf("driver not registered: %s", name)
	}

	delete(drivers, name)
	return nil
}

// Lookup retrieves a driver by name.
func Lookup(name string) (Driver, bool) {
	mu.RLock()
	defer mu.RUnlock()

	d, exists := drivers[name]
	return d, exists
}

// Drivers returns the registered driver names in sorted order.
func Drivers() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Clear removes all drivers from the registry. Tests use it to isolate
// registration state.
func Clear() {
	mu.Lock()
	defer mu.Unlock()

	drivers = make(map[string]Driver)
}
