package backendtest

import (
	"fmt"
	"sync"

	"github.com/platinummonkey/doclint/pkg/backend"
)

// ScriptedDriver implements backend.Driver with canned results. It records
// every CheckRequest it receives so tests can assert on exactly what a
// caller passed. When Strict is set, the driver rejects optional arguments
// outside the feature surface implied by its version, the way a real
// engine of that vintage would.
type ScriptedDriver struct {
	DriverName    string
	DriverVersion string

	// ConventionTable overrides DefaultConventions when non-nil.
	ConventionTable backend.Conventions

	// Findings and Err are returned from every Check call. Both may be set
	// at once to model an engine failing midway through a file.
	Findings []backend.Error
	Err      error

	// PropertyDefault overrides the driver's built-in property-decorator
	// list when non-empty.
	PropertyDefault string

	// Strict makes Check fail with backend.ErrUnsupportedOption when it
	// receives an optional argument the driver's version predates.
	Strict bool

	mu       sync.Mutex
	requests []backend.CheckRequest
}

// NewScripted returns a strict ScriptedDriver registered under name with
// the given version.
func NewScripted(name, version string) *ScriptedDriver {
	return &ScriptedDriver{
		DriverName:    name,
		DriverVersion: version,
		Strict:        true,
	}
}

func (d *ScriptedDriver) Name() string {
	return d.DriverName
}

func (d *ScriptedDriver) Version() string {
	return d.DriverVersion
}

func (d *ScriptedDriver) Conventions() backend.Conventions {
	if d.ConventionTable != nil {
		return d.ConventionTable
	}
	return DefaultConventions()
}

// DefaultPropertyDecorators implements backend.PropertyDecoratorDefaulter.
func (d *ScriptedDriver) DefaultPropertyDecorators() string {
	if d.PropertyDefault != "" {
		return d.PropertyDefault
	}
	return backend.DefaultPropertyDecorators
}

func (d *ScriptedDriver) Check(req backend.CheckRequest) ([]backend.Error, error) {
	d.mu.Lock()
	d.requests = append(d.requests, req)
	d.mu.Unlock()

	if d.Strict {
		if err := d.checkSurface(req); err != nil {
			return nil, err
		}
	}

	return d.Findings, d.Err
}

// Requests returns a copy of every request received so far.
func (d *ScriptedDriver) Requests() []backend.CheckRequest {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]backend.CheckRequest, len(d.requests))
	copy(out, d.requests)
	return out
}

// LastRequest returns the most recent request, or a zero request when none
// was made.
func (d *ScriptedDriver) LastRequest() backend.CheckRequest {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.requests) == 0 {
		return backend.CheckRequest{}
	}
	return d.requests[len(d.requests)-1]
}

// checkSurface rejects optional arguments the driver's version predates.
func (d *ScriptedDriver) checkSurface(req backend.CheckRequest) error {
	v, err := backend.ParseVersion(d.DriverVersion)
	if err != nil {
		// Unparseable version models a legacy engine: nothing optional.
		v = backend.Version{}
	}
	if d.DriverName != backend.DriverPydocstyle {
		v = backend.Version{}
	}

	if req.IgnoreInlineNoqa != nil && !v.AtLeast(backend.Version{Major: 6}) {
		return fmt.Errorf("%w: ignore inline noqa (driver %s %s)",
			backend.ErrUnsupportedOption, d.DriverName, d.DriverVersion)
	}
	if req.PropertyDecorators != nil && !v.AtLeast(backend.Version{Major: 6, Minor: 2}) {
		return fmt.Errorf("%w: property decorators (driver %s %s)",
			backend.ErrUnsupportedOption, d.DriverName, d.DriverVersion)
	}
	if req.IgnoreSelfOnlyInit != nil && !v.AtLeast(backend.Version{Major: 6, Minor: 3}) {
		return fmt.Errorf("%w: ignore self-only init (driver %s %s)",
			backend.ErrUnsupportedOption, d.DriverName, d.DriverVersion)
	}

	return nil
}
