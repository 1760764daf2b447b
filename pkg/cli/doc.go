// Package cli provides the doclint command-line interface.
//
// # Overview
//
// This package implements the `doclint` CLI tool for developers to check
// Python docstrings against a convention, inspect the available
// conventions, and report which engine the shim resolved, all from the
// terminal.
//
// # Commands
//
// check: Check docstrings under one or more paths
//
//	doclint check ./src \
//		-convention numpy \
//		-ignore-decorators "overrides" \
//		-format text
//
// Continuous checking:
//
//	doclint check ./src -watch
//
// Machine-readable output:
//
//	doclint check ./src -format json
//	doclint check ./src -format github   # GitHub Actions annotations
//
// conventions: List the conventions the resolved engine knows
//
//	doclint conventions
//
// version: Report the shim version, engine, and negotiated features
//
//	doclint version
//
// # Configuration
//
// The check command loads doclint.yaml from the working directory (or the
// file named by -config); command-line flags layer on top of it. Options
// tied to engine capabilities the resolved engine lacks are rejected the
// same way an unknown flag would be.
//
// # Related Packages
//
//   - pkg/runner: Walks trees and drives checkers concurrently
//   - pkg/docstrings: The docstring checker behind every command
package cli
