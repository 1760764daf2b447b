// Package runner hosts checker plugins over real directory trees.
//
// # Overview
//
// The runner is the host side of the checker-plugin contract: it declares
// plugin options, layers configuration file values and command-line
// overrides onto them, binds them exactly once per run, and then drives
// one checker per file across a bounded worker pool. Results keep file
// order regardless of which worker finished first.
//
// # Caching
//
// Per-file reports are memoized in an expiring LRU keyed by file path,
// content hash, option fingerprint, and checker version, so an unchanged
// file under an unchanged configuration never runs twice within the TTL.
//
// # Usage Example
//
//	factory, err := docstrings.New()
//	if err != nil {
//		return err
//	}
//
//	r, err := runner.New(runner.DefaultConfig(), factory, nil)
//	if err != nil {
//		return err
//	}
//
//	result, err := r.Run(ctx, []string{"./src"})
//	for _, file := range result.Files {
//		for _, report := range file.Reports {
//			fmt.Printf("%s:%s\n", file.Path, report)
//		}
//	}
//
// # Related Packages
//
//   - pkg/docstrings: the docstring checker plugin
//   - pkg/cli: command-line frontend over this package
package runner
