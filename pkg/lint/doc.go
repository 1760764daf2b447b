// Package lint defines the plugin contract between a lint host and the
// checkers it drives.
//
// # Overview
//
// A lint host parses configuration once per run, then checks many files.
// This package pins down the handshake both sides agree on:
//
// CheckerFactory: the run-scoped surface (identity, option declaration,
// option binding, per-file construction)
// Checker: the per-file surface (a single Run producing ordered reports)
// Report: the normalized unit of output (position, message, origin)
//
// # Lifecycle
//
// The host must observe this ordering for every run:
//
//	factory.AddOptions(registry)     // declare the option surface
//	factory.ParseOptions(values)     // bind parsed values, exactly once
//	for each file:
//	    checker, err := factory.NewChecker(file)
//	    reports, err := checker.Run()
//
// ParseOptions happens-before any NewChecker call; after that point the
// bound configuration is read-only, so hosts are free to check files
// concurrently with per-file Checker instances.
//
// # Usage Example
//
//	factory, err := docstrings.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	factory.AddOptions(registry)
//	if err := factory.ParseOptions(values); err != nil {
//	    log.Fatal(err)
//	}
//	checker, err := factory.NewChecker(lint.File{Path: path, Lines: lines})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	reports, err := checker.Run()
//
// # Related Packages
//
//   - pkg/docstrings: the docstring-convention checker plugin
//   - pkg/runner: a reference host that drives factories over file trees
package lint
