package performance

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/doclint/pkg/backend/backendtest"
	"github.com/platinummonkey/doclint/pkg/docstrings"
	"github.com/platinummonkey/doclint/pkg/lint"
	"github.com/platinummonkey/doclint/pkg/runner"
)

// benchSource builds a Python module with n undocumented functions.
func benchSource(n int) string {
	var b strings.Builder
	b.WriteString("import os\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "\n\ndef handler_%d(request):\n    return request\n", i)
	}
	return b.String()
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// BenchmarkCheckerRun benchmarks a single checker over one in-memory file
func BenchmarkCheckerRun(b *testing.B) {
	factory, err := docstrings.NewWithDriver(&backendtest.HeuristicDriver{})
	if err != nil {
		b.Fatalf("Failed to create factory: %v", err)
	}

	options := runner.NewOptions()
	factory.AddOptions(options)
	if err := factory.ParseOptions(options); err != nil {
		b.Fatalf("Failed to bind options: %v", err)
	}

	source := benchSource(100)
	file := lint.File{
		Path:  "bench.py",
		Lines: strings.SplitAfter(source, "\n"),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		checker, err := factory.NewChecker(file)
		if err != nil {
			b.Fatalf("Failed to create checker: %v", err)
		}
		if _, err := checker.Run(); err != nil {
			b.Fatalf("Check failed: %v", err)
		}
	}
}

// BenchmarkRunnerRun benchmarks uncached runs over a small tree
func BenchmarkRunnerRun(b *testing.B) {
	if testing.Short() {
		b.Skip("Skipping benchmark in short mode")
	}

	dir := benchTree(b, 20)

	factory, err := docstrings.NewWithDriver(&backendtest.HeuristicDriver{})
	if err != nil {
		b.Fatalf("Failed to create factory: %v", err)
	}

	config := runner.DefaultConfig()
	config.Run.Cache = false

	r, err := runner.New(config, factory, quietLogger())
	if err != nil {
		b.Fatalf("Failed to create runner: %v", err)
	}

	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Run(ctx, []string{dir}); err != nil {
			b.Fatalf("Run failed: %v", err)
		}
	}
}

// BenchmarkRunnerRunCached benchmarks cache-served runs over the same tree
func BenchmarkRunnerRunCached(b *testing.B) {
	if testing.Short() {
		b.Skip("Skipping benchmark in short mode")
	}

	dir := benchTree(b, 20)

	factory, err := docstrings.NewWithDriver(&backendtest.HeuristicDriver{})
	if err != nil {
		b.Fatalf("Failed to create factory: %v", err)
	}

	r, err := runner.New(runner.DefaultConfig(), factory, quietLogger())
	if err != nil {
		b.Fatalf("Failed to create runner: %v", err)
	}

	ctx := context.Background()

	// Warm the cache
	if _, err := r.Run(ctx, []string{dir}); err != nil {
		b.Fatalf("Warm-up run failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Run(ctx, []string{dir}); err != nil {
			b.Fatalf("Run failed: %v", err)
		}
	}
}

func benchTree(b *testing.B, files int) string {
	b.Helper()

	dir := b.TempDir()
	for i := 0; i < files; i++ {
		path := filepath.Join(dir, fmt.Sprintf("module_%02d.py", i))
		if err := os.WriteFile(path, []byte(benchSource(10)), 0644); err != nil {
			b.Fatalf("Failed to write %s: %v", path, err)
		}
	}
	return dir
}
