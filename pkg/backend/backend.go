package backend

import (
	"errors"
	"regexp"
)

// Well-known driver names. The docstrings plugin resolves DriverPydocstyle
// first and falls back to DriverPep257, which predates every optional
// check argument.
const (
	DriverPydocstyle = "pydocstyle"
	DriverPep257     = "pep257"
)

// DefaultPropertyDecorators is the documented built-in decorator list used
// when a driver supporting property-decorator recognition is given none.
const DefaultPropertyDecorators = "property,cached_property,functools.cached_property"

// ErrUnsupportedOption is returned (wrapped) by drivers handed a configured
// CheckRequest argument outside their feature surface.
var ErrUnsupportedOption = errors.New("backend: unsupported check option")

// Driver is a docstring-checking engine.
type Driver interface {
	// Name returns the engine's registry name, e.g. "pydocstyle".
	Name() string

	// Version returns the engine's version string. The preferred driver
	// must report a parseable semantic version; capability negotiation
	// depends on it.
	Version() string

	// Conventions returns the engine's convention table: convention name
	// to the set of codes that convention enables.
	Conventions() Conventions

	// Check analyzes source and returns its findings in the order they
	// were made. A driver may return partial findings together with an
	// error when it fails midway through a file.
	Check(req CheckRequest) ([]Error, error)
}

// PropertyDecoratorDefaulter is implemented by drivers that expose their
// own built-in property-decorator list. Callers fall back to
// DefaultPropertyDecorators when a driver does not implement it.
type PropertyDecoratorDefaulter interface {
	DefaultPropertyDecorators() string
}

// CheckRequest carries one file's check invocation.
//
// IgnoreDecorators is always meaningful: nil ignores no decorated
// definitions. The remaining optional fields model arguments that only
// newer engines accept; nil means "not passed".
type CheckRequest struct {
	// Source is the file content as one string.
	Source string
	// Filename is the path the engine should attribute findings to.
	Filename string
	// IgnoreDecorators skips definitions decorated by a name matching the
	// pattern. Nil means no decorated definition is ignored.
	IgnoreDecorators *regexp.Regexp

	// IgnoreInlineNoqa disables the engine's own inline suppression
	// handling. Nil leaves the engine's default in place.
	IgnoreInlineNoqa *bool
	// PropertyDecorators lists decorator names treated as property
	// accessors. Nil means the engine's own default set.
	PropertyDecorators []string
	// IgnoreSelfOnlyInit skips constructor methods whose only parameter is
	// the receiver. Nil leaves the engine's default in place.
	IgnoreSelfOnlyInit *bool
}

// Error is a single convention finding. Findings are a driver's normal
// output, not failures.
type Error struct {
	// Code is the short error code, e.g. "D103".
	Code string
	// Message is the human-readable short description.
	Message string
	// Line is the 1-based line the finding is anchored to.
	Line int
}

// AggregateError reports that the engine could not process the file as a
// whole. It carries no position information.
type AggregateError struct {
	Message string
}

func (e *AggregateError) Error() string {
	return e.Message
}
