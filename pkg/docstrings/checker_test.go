package docstrings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/doclint/pkg/backend"
	"github.com/platinummonkey/doclint/pkg/backend/backendtest"
	"github.com/platinummonkey/doclint/pkg/lint"
)

func boolPtr(b bool) *bool {
	return &b
}

// pyFile builds a lint.File the way a host does: raw lines with their
// terminators preserved.
func pyFile(path, source string) lint.File {
	lines := strings.SplitAfter(source, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lint.File{Path: path, Lines: lines}
}

// boundFactory builds a factory over d, declares its options, and binds
// the declared defaults with mutate applied on top.
func boundFactory(t *testing.T, d backend.Driver, mutate func(*mockValues)) *Factory {
	t.Helper()

	f, err := NewWithDriver(d)
	require.NoError(t, err)

	reg := &mockRegistry{}
	f.AddOptions(reg)

	values := reg.values()
	if mutate != nil {
		mutate(values)
	}
	require.NoError(t, f.ParseOptions(values))
	return f
}

func runChecker(t *testing.T, f *Factory, file lint.File) []lint.Report {
	t.Helper()

	c, err := f.NewChecker(file)
	require.NoError(t, err)
	reports, err := c.Run()
	require.NoError(t, err)
	return reports
}

// rendered flattens reports to their line-oriented form for comparison.
func rendered(reports []lint.Report) []string {
	out := make([]string, 0, len(reports))
	for _, r := range reports {
		out = append(out, r.String())
	}
	return out
}

func TestCheckerFiltersByConvention(t *testing.T) {
	d := backendtest.NewScripted(backend.DriverPydocstyle, "6.3.0")
	d.Findings = []backend.Error{
		{Code: "D100", Message: "Missing docstring in public module", Line: 1},
		{Code: "D203", Message: "1 blank line required before class docstring", Line: 4},
		{Code: "D403", Message: "First word of the first line should be properly capitalized", Line: 9},
	}

	tests := []struct {
		name       string
		convention string
		want       []string
	}{
		{
			name:       "pep257 drops codes outside the convention",
			convention: "pep257",
			want: []string{
				"1:0: D100 Missing docstring in public module",
				"9:0: D403 First word of the first line should be properly capitalized",
			},
		},
		{
			name:       "all admits every code",
			convention: ConventionAll,
			want: []string{
				"1:0: D100 Missing docstring in public module",
				"4:0: D203 1 blank line required before class docstring",
				"9:0: D403 First word of the first line should be properly capitalized",
			},
		},
		{
			name:       "unknown convention admits only synthetic codes",
			convention: "guido",
			want:       []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := boundFactory(t, d, func(v *mockValues) {
				v.setString(OptionConvention, tt.convention)
			})
			reports := runChecker(t, f, pyFile("pkg/mod.py", "x = 1\n"))
			assert.Equal(t, tt.want, rendered(reports))
		})
	}
}

func TestCheckerUnboundReportsOnlySynthetic(t *testing.T) {
	d := backendtest.NewScripted(backend.DriverPydocstyle, "6.3.0")
	d.Findings = []backend.Error{
		{Code: "D100", Message: "Missing docstring in public module", Line: 1},
	}
	d.Err = &backend.AggregateError{Message: "could not evaluate __all__"}

	f, err := NewWithDriver(d)
	require.NoError(t, err)

	// No AddOptions, no ParseOptions: the factory is unbound.
	reports := runChecker(t, f, pyFile("pkg/mod.py", "x = 1\n"))
	assert.Equal(t, []string{"0:0: D999 could not evaluate __all__"}, rendered(reports))

	// The capability-driven argument still flows; it does not depend on
	// configuration.
	req := d.LastRequest()
	require.NotNil(t, req.IgnoreInlineNoqa)
	assert.True(t, *req.IgnoreInlineNoqa)
	assert.Nil(t, req.IgnoreDecorators)
}

func TestCheckerAggregateFailure(t *testing.T) {
	d := backendtest.NewScripted(backend.DriverPydocstyle, "6.3.0")
	d.Findings = []backend.Error{
		{Code: "D100", Message: "Missing docstring in public module", Line: 1},
	}
	d.Err = &backend.AggregateError{Message: "could not evaluate __all__\ncontext line\nmore context"}

	f := boundFactory(t, d, nil)
	reports := runChecker(t, f, pyFile("pkg/mod.py", "x = 1\n"))

	// Partial findings stay, ordered ahead of the synthetic record, which
	// carries only the first line of the failure.
	assert.Equal(t, []string{
		"1:0: D100 Missing docstring in public module",
		"0:0: D999 could not evaluate __all__",
	}, rendered(reports))
}

func TestCheckerEnvironmentFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "path error",
			err:  &fs.PathError{Op: "open", Path: "missing.py", Err: fs.ErrNotExist},
			want: "0:0: D998 EnvironmentError: open missing.py: file does not exist",
		},
		{
			name: "wrapped permission error",
			err:  fmt.Errorf("read source: %w", os.ErrPermission),
			want: "0:0: D998 EnvironmentError: read source: permission denied",
		},
		{
			name: "syscall error",
			err:  os.NewSyscallError("read", errors.New("input/output error")),
			want: "0:0: D998 EnvironmentError: read: input/output error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := backendtest.NewScripted(backend.DriverPydocstyle, "6.3.0")
			d.Err = tt.err

			f := boundFactory(t, d, nil)
			reports := runChecker(t, f, pyFile("pkg/mod.py", "x = 1\n"))
			assert.Equal(t, []string{tt.want}, rendered(reports))
		})
	}
}

func TestCheckerUnrecognizedFailureAborts(t *testing.T) {
	bang := errors.New("engine crashed")
	d := backendtest.NewScripted(backend.DriverPydocstyle, "6.3.0")
	d.Findings = []backend.Error{
		{Code: "D100", Message: "Missing docstring in public module", Line: 1},
	}
	d.Err = bang

	f := boundFactory(t, d, nil)
	c, err := f.NewChecker(pyFile("pkg/mod.py", "x = 1\n"))
	require.NoError(t, err)

	reports, err := c.Run()
	assert.ErrorIs(t, err, bang)
	assert.Nil(t, reports)
}

func TestCheckerRequestShaping(t *testing.T) {
	const source = "\"\"\"Doc.\"\"\"\n\nx = 1\n"

	tests := []struct {
		name          string
		driverName    string
		driverVersion string
		wantNoqa      *bool
		wantProperty  []string
		wantSelfOnly  *bool
	}{
		{
			name:          "full surface at 6.3",
			driverName:    backend.DriverPydocstyle,
			driverVersion: "6.3.0",
			wantNoqa:      boolPtr(true),
			wantProperty:  []string{"property", "route"},
			wantSelfOnly:  boolPtr(true),
		},
		{
			name:          "property but not self-only at 6.2",
			driverName:    backend.DriverPydocstyle,
			driverVersion: "6.2.3",
			wantNoqa:      boolPtr(true),
			wantProperty:  []string{"property", "route"},
		},
		{
			name:          "noqa only at 6.1",
			driverName:    backend.DriverPydocstyle,
			driverVersion: "6.1.1",
			wantNoqa:      boolPtr(true),
		},
		{
			name:          "nothing optional below 6.0",
			driverName:    backend.DriverPydocstyle,
			driverVersion: "5.1.1",
		},
		{
			name:          "nothing optional for legacy engine",
			driverName:    backend.DriverPep257,
			driverVersion: "0.7.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := backendtest.NewScripted(tt.driverName, tt.driverVersion)
			// The strict driver fails the run outright if an argument
			// leaks outside the negotiated surface.
			f := boundFactory(t, d, func(v *mockValues) {
				v.setString(OptionIgnoreDecorators, "wraps")
				v.setString(OptionPropertyDecorators, "property,route")
				v.setBool(OptionIgnoreSelfOnlyInit, true)
			})
			runChecker(t, f, pyFile("pkg/mod.py", source))

			req := d.LastRequest()
			assert.Equal(t, source, req.Source)
			assert.Equal(t, "pkg/mod.py", req.Filename)
			require.NotNil(t, req.IgnoreDecorators)
			assert.True(t, req.IgnoreDecorators.MatchString("functools.wraps"))

			assert.Equal(t, tt.wantNoqa, req.IgnoreInlineNoqa, "IgnoreInlineNoqa")
			assert.Equal(t, tt.wantProperty, req.PropertyDecorators, "PropertyDecorators")
			assert.Equal(t, tt.wantSelfOnly, req.IgnoreSelfOnlyInit, "IgnoreSelfOnlyInit")
		})
	}
}

func TestCheckerDefaultPropertyDecoratorsFlowToEngine(t *testing.T) {
	d := backendtest.NewScripted(backend.DriverPydocstyle, "6.2.0")

	f := boundFactory(t, d, nil)
	runChecker(t, f, pyFile("pkg/mod.py", "x = 1\n"))

	assert.Equal(t,
		[]string{"property", "cached_property", "functools.cached_property"},
		d.LastRequest().PropertyDecorators)
}

func TestCheckerEndToEnd(t *testing.T) {
	source := `"""Billing helpers."""


def charge(amount):
    return amount


class Invoice:
    """An invoice."""

    def total(self):
        return 0
`

	f := boundFactory(t, &backendtest.HeuristicDriver{}, nil)
	reports := runChecker(t, f, pyFile("billing.py", source))

	assert.Equal(t, []string{
		"4:0: D103 Missing docstring in public function",
		"11:0: D102 Missing docstring in public method",
	}, rendered(reports))

	require.Len(t, reports, 2)
	require.NotNil(t, reports[0].Origin)
	assert.Equal(t, "doclint-docstrings", reports[0].Origin.Name)
	assert.Equal(t, "1.7.0, pydocstyle: 6.3.0", reports[0].Origin.Version)
	assert.Same(t, reports[0].Origin, reports[1].Origin)
}

func TestCheckerDeterministic(t *testing.T) {
	source := `import os


def first():
    return 1


def second():
    return 2
`
	f := boundFactory(t, &backendtest.HeuristicDriver{}, nil)

	file := pyFile("pkg/mod.py", source)
	first := runChecker(t, f, file)
	second := runChecker(t, f, file)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{
		"1:0: D100 Missing docstring in public module",
		"4:0: D103 Missing docstring in public function",
		"8:0: D103 Missing docstring in public function",
	}, rendered(first))
}
