// Package backend defines the driver contract for docstring-checking
// engines and the process-wide registry they install themselves into.
//
// # Overview
//
// Docstring analysis (parsing, convention rules, AST walking) lives in
// external engines. This package treats them as black boxes behind the
// Driver interface: given source text and a filename, a driver returns the
// convention findings it made, each carrying a short code, a description,
// and a 1-based line.
//
// Drivers register themselves by name, database/sql style, usually from an
// init function:
//
//	func init() {
//	    backend.MustRegister(&engine{})
//	}
//
// Consumers then resolve a driver with Lookup. The docstrings plugin
// prefers DriverPydocstyle and falls back to DriverPep257; which optional
// check arguments it passes is negotiated from the driver's name and
// reported version (see pkg/docstrings).
//
// # Optional check arguments
//
// CheckRequest fields beyond Source/Filename/IgnoreDecorators are optional:
// a nil pointer (or nil slice) means the argument was not passed and the
// driver applies its own defaults. A driver handed a configured argument it
// does not implement must fail the check with ErrUnsupportedOption; callers
// are expected to gate those fields on the driver's feature surface so this
// never happens in practice.
//
// # Related Packages
//
//   - pkg/backend/backendtest: scripted and heuristic drivers for tests
//   - pkg/docstrings: the plugin that drives a resolved backend
package backend
