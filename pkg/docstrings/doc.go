// Package docstrings adapts a docstring-convention checking engine to the
// lint checker-plugin contract.
//
// # Overview
//
// This package is a shim, not an engine: the actual convention checking is
// done by whichever backend driver is registered (pydocstyle preferred,
// pep257 as the legacy fallback). The shim resolves the engine once,
// negotiates its feature surface from its version, exposes the engine's
// conventions as host options, and normalizes engine output and engine
// failures into ordered report tuples.
//
// # Engine Resolution
//
// Resolution happens when the factory is constructed and never again:
//
//	pydocstyle: preferred; its version must parse and gates optional
//	            arguments (inline noqa 6.0.0, property decorators 6.2.0,
//	            self-only init 6.3.0)
//	pep257:     legacy fallback; no optional arguments are ever sent
//	neither:    construction fails with ErrNoBackend
//
// # Failure Normalization
//
// A driver failure becomes one synthetic finding at line 0 so hosts can
// surface it through their normal reporting path:
//
//	D998: environment (I/O) failure, message prefixed "EnvironmentError: "
//	D999: engine rejected the file as a whole, first message line only
//
// Findings the driver made before failing are kept ahead of the synthetic
// one. Any other failure aborts the file with an error.
//
// # Usage Example
//
//	factory, err := docstrings.New()
//	if err != nil {
//		return err
//	}
//
//	factory.AddOptions(registry)
//	if err := factory.ParseOptions(values); err != nil {
//		return err
//	}
//
//	checker, _ := factory.NewChecker(file)
//	reports, err := checker.Run()
//
// # Related Packages
//
//   - pkg/backend: driver contract and registry
//   - pkg/backend/backendtest: scripted and heuristic drivers for tests
//   - pkg/runner: file walking, caching, and parallel dispatch
package docstrings
