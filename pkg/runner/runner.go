package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/platinummonkey/doclint/pkg/docstrings"
	"github.com/platinummonkey/doclint/pkg/lint"
)

// FileResult is one file's outcome within a run.
type FileResult struct {
	Path     string        `json:"path"`
	Reports  []lint.Report `json:"reports"`
	Error    string        `json:"error,omitempty"`
	CacheHit bool          `json:"cache_hit,omitempty"`
}

// Result is one run's outcome. Files keep collection order, not worker
// completion order.
type Result struct {
	RunID    string           `json:"run_id"`
	Checker  lint.CheckerInfo `json:"checker"`
	Files    []FileResult     `json:"files"`
	Duration time.Duration    `json:"duration_ns"`
	Cache    *CacheStats      `json:"cache,omitempty"`
}

// ReportCount returns the total number of reports across all files.
func (r *Result) ReportCount() int {
	var n int
	for _, f := range r.Files {
		n += len(f.Reports)
	}
	return n
}

// FailureCount returns the number of files that could not be checked.
func (r *Result) FailureCount() int {
	var n int
	for _, f := range r.Files {
		if f.Error != "" {
			n++
		}
	}
	return n
}

// Runner drives one checker factory across directory trees.
//
// Use New() to create instances. The zero value is not usable.
type Runner struct {
	config  *Config
	factory lint.CheckerFactory
	options *Options
	cache   *ResultCache
	log     *logrus.Logger
}

// New creates a runner hosting factory. The factory's options are
// declared immediately and the configuration file's check block is layered
// onto them; command-line overrides go through Options() afterwards.
func New(config *Config, factory lint.CheckerFactory, log *logrus.Logger) (*Runner, error) {
	if factory == nil {
		return nil, fmt.Errorf("runner: checker factory is required")
	}
	if config == nil {
		config = DefaultConfig()
	}
	if log == nil {
		log = logrus.New()
	}

	options := NewOptions()
	factory.AddOptions(options)
	if err := applyCheckConfig(options, config.Check); err != nil {
		return nil, err
	}

	r := &Runner{
		config:  config,
		factory: factory,
		options: options,
		log:     log,
	}
	if config.Run.Cache {
		r.cache = NewResultCache(DefaultCacheEntries, config.Run.CacheTTLDuration())
	}
	return r, nil
}

// applyCheckConfig binds the config file's check block onto the declared
// options. Options the engine never declared fail here, the same way an
// unknown command-line flag would.
func applyCheckConfig(options *Options, check CheckConfig) error {
	if check.Convention != "" {
		if err := options.Set(docstrings.OptionConvention, check.Convention); err != nil {
			return fmt.Errorf("config check block: %w", err)
		}
	}
	if check.IgnoreDecorators != "" {
		if err := options.Set(docstrings.OptionIgnoreDecorators, check.IgnoreDecorators); err != nil {
			return fmt.Errorf("config check block: %w", err)
		}
	}
	if check.PropertyDecorators != "" {
		if err := options.Set(docstrings.OptionPropertyDecorators, check.PropertyDecorators); err != nil {
			return fmt.Errorf("config check block: %w", err)
		}
	}
	if check.IgnoreSelfOnlyInit {
		if err := options.SetBool(docstrings.OptionIgnoreSelfOnlyInit, true); err != nil {
			return fmt.Errorf("config check block: %w", err)
		}
	}
	return nil
}

// Options returns the runner's option table for command-line layering.
func (r *Runner) Options() *Options {
	return r.options
}

// CacheStats returns current cache statistics, or nil when caching is
// disabled.
func (r *Runner) CacheStats() *CacheStats {
	if r.cache == nil {
		return nil
	}
	stats := r.cache.Stats()
	return &stats
}

// Run checks every matching file under paths. Option values are bound
// once, before any file is dispatched. File failures are recorded on
// their FileResult; Run itself fails only for unusable inputs, an option
// binding error, or context cancellation.
func (r *Runner) Run(ctx context.Context, paths []string) (*Result, error) {
	start := time.Now()
	runID := uuid.New().String()

	files, err := r.collectFiles(paths)
	if err != nil {
		return nil, err
	}

	if err := r.factory.ParseOptions(r.options); err != nil {
		return nil, err
	}

	info := r.factory.Info()
	fingerprint := r.options.Fingerprint()

	r.log.WithFields(logrus.Fields{
		"run_id":  runID,
		"checker": info.Name,
		"files":   len(files),
		"workers": r.workers(),
	}).Info("Starting check run")

	results := make([]FileResult, len(files))
	var mu sync.Mutex

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.workers())

	for i, path := range files {
		i, path := i, path // capture loop variables
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res := r.checkFile(path, fingerprint, info.Version)

			mu.Lock()
			results[i] = res
			mu.Unlock()

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:    runID,
		Checker:  info,
		Files:    results,
		Duration: time.Since(start),
		Cache:    r.CacheStats(),
	}

	r.log.WithFields(logrus.Fields{
		"run_id":   runID,
		"reports":  result.ReportCount(),
		"failures": result.FailureCount(),
		"duration": result.Duration,
	}).Info("Check run complete")

	return result, nil
}

// checkFile checks one file, consulting the cache first.
func (r *Runner) checkFile(path, fingerprint, checkerVersion string) FileResult {
	res := FileResult{Path: path}

	content, err := os.ReadFile(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	var key string
	if r.cache != nil {
		key = cacheKey(path, content, fingerprint, checkerVersion)
		if reports, err := r.cache.Get(key); err == nil {
			res.Reports = reports
			res.CacheHit = true
			return res
		}
	}

	checker, err := r.factory.NewChecker(lint.File{
		Path:  path,
		Lines: splitLines(string(content)),
	})
	if err != nil {
		res.Error = err.Error()
		return res
	}

	reports, err := checker.Run()
	if err != nil {
		res.Error = err.Error()
		r.log.WithError(err).WithField("path", path).Warn("Check failed")
		return res
	}

	res.Reports = reports
	if r.cache != nil {
		r.cache.Set(key, reports)
	}

	r.log.WithFields(logrus.Fields{
		"path":    path,
		"reports": len(reports),
	}).Debug("Checked file")

	return res
}

func (r *Runner) workers() int {
	if r.config.Run.Workers > 0 {
		return r.config.Run.Workers
	}
	return DefaultWorkers
}

// collectFiles expands paths into the ordered, de-duplicated file list.
// Explicitly named files are always included; directories are walked with
// the extension filter, exclude patterns, and dot-entry skipping applied.
func (r *Runner) collectFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && (strings.HasPrefix(d.Name(), ".") || r.excluded(d.Name())) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if r.matchesExtension(path) {
				add(path)
			}
			return nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}

	return files, nil
}

func (r *Runner) excluded(name string) bool {
	for _, pattern := range r.config.Run.Exclude {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

func (r *Runner) matchesExtension(path string) bool {
	ext := filepath.Ext(path)
	if len(r.config.Run.FileExtensions) == 0 {
		return ext == ".py"
	}
	for _, e := range r.config.Run.FileExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// splitLines splits source into lines with their terminators preserved.
func splitLines(source string) []string {
	lines := strings.SplitAfter(source, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
