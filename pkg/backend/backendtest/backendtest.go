// Package backendtest provides backend drivers for testing code that
// consumes the backend contract: a ScriptedDriver that replays canned
// findings and records the requests it received, and a HeuristicDriver
// that performs a real (if minimal) missing-docstring scan so end-to-end
// tests can assert on genuine line numbers.
package backendtest

import (
	"testing"

	"github.com/platinummonkey/doclint/pkg/backend"
)

// Install registers d for the duration of the test and removes it on
// cleanup, so tests cannot leak registrations into each other.
func Install(t testing.TB, d backend.Driver) {
	t.Helper()

	if err := backend.Register(d); err != nil {
		t.Fatalf("backendtest: install driver: %v", err)
	}
	t.Cleanup(func() {
		if err := backend.Unregister(d.Name()); err != nil {
			t.Errorf("backendtest: uninstall driver: %v", err)
		}
	})
}

// DefaultConventions returns a compact but realistic convention table in
// the shape real engines expose. Note that pep257 deliberately excludes
// D203 and D213, which makes them useful probes for convention filtering.
func DefaultConventions() backend.Conventions {
	return backend.Conventions{
		"pep257": backend.NewCodeSet(
			"D100", "D101", "D102", "D103", "D104", "D105", "D106", "D107",
			"D200", "D201", "D202", "D205", "D209", "D210", "D300",
			"D400", "D401", "D402", "D403", "D419",
		),
		"numpy": backend.NewCodeSet(
			"D100", "D101", "D102", "D103", "D200", "D205", "D300",
			"D400", "D403", "D404", "D405", "D406", "D407", "D410", "D411", "D414",
		),
		"google": backend.NewCodeSet(
			"D100", "D101", "D102", "D103", "D200", "D201", "D205", "D209",
			"D300", "D400", "D401", "D402", "D403", "D405", "D410", "D415", "D417",
		),
	}
}
