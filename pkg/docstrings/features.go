package docstrings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/platinummonkey/doclint/pkg/backend"
)

// ErrNoBackend is returned by New when neither the preferred nor the
// legacy checking engine is registered. There is nothing to shim; callers
// should treat it as fatal.
var ErrNoBackend = errors.New("docstrings: no checking backend registered")

// Engine versions that introduced each optional check argument.
var (
	inlineNoqaMin         = backend.Version{Major: 6}
	propertyDecoratorsMin = backend.Version{Major: 6, Minor: 2}
	selfOnlyInitMin       = backend.Version{Major: 6, Minor: 3}
)

// FeatureSet is the negotiated capability surface of a resolved engine.
// It is computed once at factory construction and never re-probed.
type FeatureSet struct {
	// Backend is the resolved driver's name.
	Backend string
	// RawVersion is the driver-reported version string, kept verbatim for
	// the composite version banner.
	RawVersion string
	// Version is the parsed version. Zero when the driver is a legacy
	// engine with an unparseable version string.
	Version backend.Version

	// InlineNoqa: the engine accepts being told to ignore its own inline
	// suppression comments.
	InlineNoqa bool
	// PropertyDecorators: the engine accepts a property-decorator list.
	PropertyDecorators bool
	// SelfOnlyInit: the engine accepts skipping self-only constructors.
	SelfOnlyInit bool
}

// String renders the feature set for log output.
func (fs FeatureSet) String() string {
	var caps []string
	if fs.InlineNoqa {
		caps = append(caps, "inline-noqa")
	}
	if fs.PropertyDecorators {
		caps = append(caps, "property-decorators")
	}
	if fs.SelfOnlyInit {
		caps = append(caps, "self-only-init")
	}
	if len(caps) == 0 {
		return fmt.Sprintf("%s %s", fs.Backend, fs.RawVersion)
	}
	return fmt.Sprintf("%s %s (%s)", fs.Backend, fs.RawVersion, strings.Join(caps, ", "))
}

// Resolve picks the checking engine: the preferred driver when registered,
// otherwise the legacy driver, otherwise ErrNoBackend.
func Resolve() (backend.Driver, FeatureSet, error) {
	for _, name := range []string{backend.DriverPydocstyle, backend.DriverPep257} {
		d, ok := backend.Lookup(name)
		if !ok {
			continue
		}
		fs, err := featuresFor(d)
		if err != nil {
			return nil, FeatureSet{}, err
		}
		return d, fs, nil
	}
	return nil, FeatureSet{}, ErrNoBackend
}

// featuresFor computes the capability surface for a resolved driver.
//
// Only the preferred engine negotiates capabilities, and its version must
// parse: a preferred engine whose version cannot be ordered cannot be
// driven safely. Legacy engines get no optional arguments no matter what
// version they report.
func featuresFor(d backend.Driver) (FeatureSet, error) {
	fs := FeatureSet{Backend: d.Name(), RawVersion: d.Version()}

	if d.Name() != backend.DriverPydocstyle {
		if v, err := backend.ParseVersion(d.Version()); err == nil {
			fs.Version = v
		}
		return fs, nil
	}

	v, err := backend.ParseVersion(d.Version())
	if err != nil {
		return FeatureSet{}, fmt.Errorf("docstrings: parse %s version %q: %w",
			d.Name(), d.Version(), err)
	}

	fs.Version = v
	fs.InlineNoqa = v.AtLeast(inlineNoqaMin)
	fs.PropertyDecorators = v.AtLeast(propertyDecoratorsMin)
	fs.SelfOnlyInit = v.AtLeast(selfOnlyInitMin)
	return fs, nil
}
