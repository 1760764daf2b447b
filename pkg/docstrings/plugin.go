package docstrings

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/platinummonkey/doclint/pkg/backend"
	"github.com/platinummonkey/doclint/pkg/lint"
)

const (
	// Name is the checker name reported to hosts.
	Name = "doclint-docstrings"

	// ShimVersion is this shim's own version, independent of the engine
	// behind it. Hosts see it combined with the engine version, e.g.
	// "1.7.0, pydocstyle: 6.3.0".
	ShimVersion = "1.7.0"
)

// Option names as hosts know them.
const (
	OptionConvention         = "docstring-convention"
	OptionIgnoreDecorators   = "ignore-decorators"
	OptionPropertyDecorators = "property-decorators"
	OptionIgnoreSelfOnlyInit = "ignore-self-only-init"
)

// ConventionAll is the special convention value that enables every code
// the engine can produce.
const ConventionAll = "all"

// DefaultConvention is the convention enforced when hosts leave the
// option alone.
const DefaultConvention = "pep257"

// Settings is one run's parsed configuration. A nil *Settings means
// ParseOptions was never called; checkers then report only the synthetic
// failure codes.
type Settings struct {
	// Convention names the enforced convention, or ConventionAll.
	Convention string
	// IgnoreDecorators skips definitions decorated by a matching name.
	// Nil skips none.
	IgnoreDecorators *regexp.Regexp
	// PropertyDecorators is the comma-split decorator list handed to
	// engines that support it. Nil means the engine's own default.
	PropertyDecorators []string
	// IgnoreSelfOnlyInit skips constructors whose only parameter is the
	// receiver, on engines that support it.
	IgnoreSelfOnlyInit bool
}

// Factory builds per-file docstring checkers over one resolved engine.
// It implements lint.CheckerFactory.
type Factory struct {
	driver   backend.Driver
	features FeatureSet

	settings *Settings
}

// New resolves the checking engine from the backend registry and returns
// a factory bound to it. It fails with ErrNoBackend when no engine is
// registered.
func New() (*Factory, error) {
	d, fs, err := Resolve()
	if err != nil {
		return nil, err
	}
	return &Factory{driver: d, features: fs}, nil
}

// NewWithDriver returns a factory bound to an explicit driver, bypassing
// registry resolution. Capability negotiation still applies.
func NewWithDriver(d backend.Driver) (*Factory, error) {
	fs, err := featuresFor(d)
	if err != nil {
		return nil, err
	}
	return &Factory{driver: d, features: fs}, nil
}

// Info implements lint.CheckerFactory.
func (f *Factory) Info() lint.CheckerInfo {
	return lint.CheckerInfo{
		Name:    Name,
		Version: fmt.Sprintf("%s, %s: %s", ShimVersion, f.features.Backend, f.features.RawVersion),
	}
}

// Features returns the negotiated capability surface.
func (f *Factory) Features() FeatureSet {
	return f.features
}

// Conventions returns the resolved engine's convention table.
func (f *Factory) Conventions() backend.Conventions {
	return f.driver.Conventions()
}

// AddOptions implements lint.CheckerFactory. Options for capabilities the
// engine lacks are not declared at all, the way the engine's own CLI would
// not know them.
func (f *Factory) AddOptions(reg lint.OptionRegistry) {
	choices := append(f.driver.Conventions().Names(), ConventionAll)
	reg.ChoiceOption(OptionConvention, DefaultConvention, choices,
		"docstring convention to enforce, or 'all' to enable every code "+
			"(some codes conflict, so 'all' usually needs excludes)")

	reg.StringOption(OptionIgnoreDecorators, "",
		"skip functions and methods decorated by a name matching this "+
			"regular expression; empty skips none")

	if f.features.PropertyDecorators {
		def := backend.DefaultPropertyDecorators
		if pd, ok := f.driver.(backend.PropertyDecoratorDefaulter); ok {
			def = pd.DefaultPropertyDecorators()
		}
		reg.StringOption(OptionPropertyDecorators, def,
			"treat methods decorated with one of these comma-separated "+
				"decorators as properties, allowing docstrings that are "+
				"not in imperative mood")
	}

	if f.features.SelfOnlyInit {
		reg.BoolOption(OptionIgnoreSelfOnlyInit, false,
			"skip __init__ methods whose only parameter is self")
	}
}

// ParseOptions implements lint.CheckerFactory. It binds one run's
// configuration; hosts call it exactly once, before any NewChecker call.
func (f *Factory) ParseOptions(values lint.OptionValues) error {
	s := Settings{Convention: values.String(OptionConvention)}

	if pattern := values.String(OptionIgnoreDecorators); pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("docstrings: compile %s pattern %q: %w",
				OptionIgnoreDecorators, pattern, err)
		}
		s.IgnoreDecorators = re
	}

	if f.features.PropertyDecorators {
		if raw := values.String(OptionPropertyDecorators); raw != "" {
			s.PropertyDecorators = strings.Split(raw, ",")
		}
	}

	if f.features.SelfOnlyInit {
		s.IgnoreSelfOnlyInit = values.Bool(OptionIgnoreSelfOnlyInit)
	}

	f.settings = &s
	return nil
}

// NewChecker implements lint.CheckerFactory. The checker snapshots the
// factory's current settings; a factory left unbound produces checkers
// that report only synthetic failure codes.
func (f *Factory) NewChecker(file lint.File) (lint.Checker, error) {
	info := f.Info()
	return &checker{
		driver:   f.driver,
		features: f.features,
		settings: f.settings,
		info:     &info,
		file:     file,
	}, nil
}
