package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/doclint/pkg/docstrings"
	"github.com/platinummonkey/doclint/pkg/runner"
)

var (
	checkCodeColor = color.New(color.FgRed, color.Bold)
	checkFailColor = color.New(color.FgRed)
	checkPassColor = color.New(color.FgGreen)
)

// checkOptions holds the parsed check command flags.
type checkOptions struct {
	configFile         string
	format             string
	convention         string
	ignoreDecorators   string
	propertyDecorators string
	ignoreSelfOnlyInit bool
	workers            int
	noCache            bool
	watch              bool
	failOnReport       bool
	verbose            bool
}

// newCheckCommand creates a new check command
func newCheckCommand() *Command {
	fs := flag.NewFlagSet("check", flag.ExitOnError)

	var opts checkOptions
	fs.StringVar(&opts.configFile, "config", "", "Path to config file (doclint.yaml)")
	fs.StringVar(&opts.format, "format", "text", "Output format: text, json, github")
	fs.StringVar(&opts.convention, "convention", "", "Docstring convention to enforce, or 'all'")
	fs.StringVar(&opts.ignoreDecorators, "ignore-decorators", "", "Skip definitions decorated by a name matching this regular expression")
	fs.StringVar(&opts.propertyDecorators, "property-decorators", "", "Comma-separated decorators treated as properties")
	fs.BoolVar(&opts.ignoreSelfOnlyInit, "ignore-self-only-init", false, "Skip __init__ methods whose only parameter is self")
	fs.IntVar(&opts.workers, "workers", 0, "Number of concurrent workers (0 uses the configured default)")
	fs.BoolVar(&opts.noCache, "no-cache", false, "Disable the result cache")
	fs.BoolVar(&opts.watch, "watch", false, "Re-run checks when source files change")
	fs.BoolVar(&opts.failOnReport, "fail-on-report", true, "Exit with error code when reports are found")
	fs.BoolVar(&opts.verbose, "verbose", false, "Verbose output")

	return &Command{
		Name:        "check",
		Description: "Check Python docstrings against a convention",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}

			return runCheck(fs.Args(), opts)
		},
	}
}

func runCheck(paths []string, opts checkOptions) error {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	log := logrus.New()
	if opts.verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	// Load configuration
	var config *runner.Config
	var err error
	if opts.configFile != "" {
		config, err = runner.LoadConfig(opts.configFile)
	} else {
		config, err = runner.LoadConfigFromDir(".")
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if opts.workers > 0 {
		config.Run.Workers = opts.workers
	}
	if opts.noCache {
		config.Run.Cache = false
	}

	factory, err := docstrings.New()
	if err != nil {
		return err
	}

	r, err := runner.New(config, factory, log)
	if err != nil {
		return err
	}

	if err := checkApplyFlags(r, opts); err != nil {
		return err
	}

	if opts.watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return r.Watch(ctx, paths, func(result *runner.Result) {
			if err := checkOutput(result, opts); err != nil {
				log.WithError(err).Error("Failed to render results")
			}
		})
	}

	result, err := r.Run(context.Background(), paths)
	if err != nil {
		return err
	}

	if err := checkOutput(result, opts); err != nil {
		return err
	}

	if result.FailureCount() > 0 {
		return fmt.Errorf("check failed: %d files could not be checked", result.FailureCount())
	}
	if opts.failOnReport && result.ReportCount() > 0 {
		return fmt.Errorf("check failed with %d reports", result.ReportCount())
	}

	return nil
}

// checkApplyFlags layers explicit command-line values over the config
// file. Flags for options the resolved engine never declared fail here.
func checkApplyFlags(r *runner.Runner, opts checkOptions) error {
	if opts.convention != "" {
		if err := r.Options().Set(docstrings.OptionConvention, opts.convention); err != nil {
			return err
		}
	}
	if opts.ignoreDecorators != "" {
		if err := r.Options().Set(docstrings.OptionIgnoreDecorators, opts.ignoreDecorators); err != nil {
			return err
		}
	}
	if opts.propertyDecorators != "" {
		if err := r.Options().Set(docstrings.OptionPropertyDecorators, opts.propertyDecorators); err != nil {
			return err
		}
	}
	if opts.ignoreSelfOnlyInit {
		if err := r.Options().SetBool(docstrings.OptionIgnoreSelfOnlyInit, true); err != nil {
			return err
		}
	}
	return nil
}

func checkOutput(result *runner.Result, opts checkOptions) error {
	switch opts.format {
	case "json":
		return checkOutputJSON(result)
	case "github":
		return checkOutputGitHub(result)
	default:
		return checkOutputText(result, opts.verbose)
	}
}

func checkOutputText(result *runner.Result, verbose bool) error {
	for _, file := range result.Files {
		if file.Error != "" {
			fmt.Printf("%s: %s\n", file.Path, checkFailColor.Sprint(file.Error))
			continue
		}

		for _, report := range file.Reports {
			code, rest, _ := strings.Cut(report.Message, " ")
			fmt.Printf("%s:%d:%d: %s %s\n",
				file.Path,
				report.Line,
				report.Column,
				checkCodeColor.Sprint(code),
				rest,
			)
		}
	}

	// Print summary
	fmt.Printf("\n")
	fmt.Printf("Summary:\n")
	fmt.Printf("  Files:    %d\n", len(result.Files))
	fmt.Printf("  Reports:  %d\n", result.ReportCount())
	fmt.Printf("  Failures: %d\n", result.FailureCount())

	if verbose && result.Cache != nil {
		fmt.Printf("  Cache:    %d hits, %d misses\n", result.Cache.Hits, result.Cache.Misses)
	}

	if result.ReportCount() == 0 && result.FailureCount() == 0 {
		fmt.Printf("\n%s\n", checkPassColor.Sprint("✓ All docstrings passed"))
	}

	return nil
}

func checkOutputJSON(result *runner.Result) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func checkOutputGitHub(result *runner.Result) error {
	// GitHub Actions annotation format
	// ::warning file={name},line={line},col={col}::{message}
	for _, file := range result.Files {
		for _, report := range file.Reports {
			fmt.Printf("::warning file=%s,line=%d,col=%d::%s\n",
				file.Path,
				report.Line,
				report.Column,
				report.Message,
			)
		}

		if file.Error != "" {
			fmt.Printf("::error file=%s::%s\n", file.Path, file.Error)
		}
	}

	return nil
}
