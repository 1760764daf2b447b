package lint

import "fmt"

// File is the per-file input a host hands to CheckerFactory.NewChecker.
type File struct {
	// AST is the host's opaque parsed-file handle. The uniform plugin
	// contract requires it even for checkers that never look at it.
	AST any
	// Path is the file path as the host wants it reported.
	Path string
	// Lines holds the raw source lines, line terminators preserved.
	Lines []string
}

// Source returns the file content as a single string.
func (f File) Source() string {
	var n int
	for _, line := range f.Lines {
		n += len(line)
	}
	buf := make([]byte, 0, n)
	for _, line := range f.Lines {
		buf = append(buf, line...)
	}
	return string(buf)
}

// CheckerInfo identifies a checker to the host's reporting UI.
type CheckerInfo struct {
	// Name is the stable checker name (e.g. "doclint-docstrings").
	Name string `json:"name"`
	// Version is the checker's composite version string.
	Version string `json:"version"`
}

// Report is the normalized report tuple a checker emits.
type Report struct {
	// Line is the 1-based line number, or 0 when the position is unknown.
	Line int `json:"line"`
	// Column is the 0-based column number.
	Column int `json:"column"`
	// Message is "<code> <description>".
	Message string `json:"message"`
	// Origin references the checker type that produced the report.
	Origin *CheckerInfo `json:"-"`
}

// String renders the report in the host's line-oriented form.
func (r Report) String() string {
	return fmt.Sprintf("%d:%d: %s", r.Line, r.Column, r.Message)
}

// Checker is a per-file check instance. Instances are single-use: the host
// constructs one per file, calls Run once, and discards it.
type Checker interface {
	// Run performs the check and returns the ordered reports for the file.
	// The slice is finite and produced in the order findings were made.
	Run() ([]Report, error)
}

// CheckerFactory is the run-scoped surface of a checker plugin.
//
// Implementations keep all run-level configuration on the factory (bound by
// ParseOptions) and construct stateless per-file Checker instances from it.
type CheckerFactory interface {
	// Info returns the checker's identity metadata.
	Info() CheckerInfo

	// AddOptions declares the plugin's configuration options against the
	// host's option registry.
	AddOptions(reg OptionRegistry)

	// ParseOptions binds parsed option values. Hosts call it exactly once
	// per run, before any NewChecker call. A returned error aborts the run.
	ParseOptions(values OptionValues) error

	// NewChecker constructs a per-file check instance.
	NewChecker(file File) (Checker, error)
}
