package docstrings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/platinummonkey/doclint/pkg/backend"
	"github.com/platinummonkey/doclint/pkg/lint"
)

// Synthetic codes for failures that occur while checking a file. Both are
// reported at line 0 and pass every convention filter.
const (
	// CodeEnvironmentError reports an I/O failure reading or decoding the
	// file, message prefixed "EnvironmentError: ".
	CodeEnvironmentError = "D998"
	// CodeAllError reports the engine rejecting the file as a whole,
	// message truncated to the failure's first line.
	CodeAllError = "D999"
)

var syntheticCodes = backend.NewCodeSet(CodeEnvironmentError, CodeAllError)

// codeFilter is the membership test applied to finding codes. CodeSet
// implements it for conventions; containsAll implements "all".
type codeFilter interface {
	Contains(code string) bool
}

type containsAll struct{}

func (containsAll) Contains(string) bool {
	return true
}

// checker checks one file. Single use: the host calls Run once and
// discards it.
type checker struct {
	driver   backend.Driver
	features FeatureSet
	settings *Settings
	info     *lint.CheckerInfo
	file     lint.File
}

// Run implements lint.Checker. It drives the engine over the file's
// source, folds engine failures into synthetic findings, filters by the
// configured convention, and renders report tuples in finding order.
func (c *checker) Run() ([]lint.Report, error) {
	findings, err := normalize(c.driver.Check(c.request()))
	if err != nil {
		return nil, err
	}

	codes := c.checkedCodes()
	reports := make([]lint.Report, 0, len(findings))
	for _, finding := range findings {
		if !codes.Contains(finding.Code) {
			continue
		}
		reports = append(reports, lint.Report{
			Line:    finding.Line,
			Column:  0,
			Message: fmt.Sprintf("%s %s", finding.Code, finding.Message),
			Origin:  c.info,
		})
	}
	return reports, nil
}

// request builds the engine invocation for the file. Optional arguments
// are attached only within the negotiated feature surface, so an engine
// never sees an argument its version predates.
func (c *checker) request() backend.CheckRequest {
	req := backend.CheckRequest{
		Source:   c.file.Source(),
		Filename: c.file.Path,
	}

	if c.settings != nil {
		req.IgnoreDecorators = c.settings.IgnoreDecorators
	}

	// Inline suppression is the host's job; a capable engine is always
	// told to leave noqa comments alone, configured or not.
	if c.features.InlineNoqa {
		yes := true
		req.IgnoreInlineNoqa = &yes
	}
	if c.features.PropertyDecorators && c.settings != nil && len(c.settings.PropertyDecorators) > 0 {
		req.PropertyDecorators = c.settings.PropertyDecorators
	}
	if c.features.SelfOnlyInit && c.settings != nil {
		v := c.settings.IgnoreSelfOnlyInit
		req.IgnoreSelfOnlyInit = &v
	}
	return req
}

// checkedCodes returns the membership filter for the bound convention.
// Unbound settings admit only the synthetic failure codes. The synthetic
// codes are always admitted, whatever the convention.
func (c *checker) checkedCodes() codeFilter {
	if c.settings == nil {
		return syntheticCodes
	}
	if c.settings.Convention == ConventionAll {
		return containsAll{}
	}
	return c.driver.Conventions().Codes(c.settings.Convention).Union(syntheticCodes)
}

// normalize folds an engine failure into the finding stream. Findings the
// engine produced before failing are kept, in order, ahead of the
// synthetic finding. Failures outside the two recognized classes abort
// the file.
func normalize(findings []backend.Error, err error) ([]backend.Error, error) {
	if err == nil {
		return findings, nil
	}

	var aggregate *backend.AggregateError
	switch {
	case errors.As(err, &aggregate):
		first, _, _ := strings.Cut(aggregate.Message, "\n")
		return append(findings, backend.Error{
			Code:    CodeAllError,
			Message: first,
			Line:    0,
		}), nil
	case isEnvironmentError(err):
		return append(findings, backend.Error{
			Code:    CodeEnvironmentError,
			Message: "EnvironmentError: " + err.Error(),
			Line:    0,
		}), nil
	default:
		return nil, err
	}
}

// isEnvironmentError reports whether err is an I/O-class failure: a path
// or syscall error anywhere in the chain, or one of the filesystem
// sentinel conditions.
func isEnvironmentError(err error) bool {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return true
	}
	var syscallErr *os.SyscallError
	if errors.As(err, &syscallErr) {
		return true
	}
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission) ||
		errors.Is(err, fs.ErrClosed)
}
