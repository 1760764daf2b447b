package runner

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// OptionKind discriminates the declared option shapes.
type OptionKind string

const (
	OptionString OptionKind = "string"
	OptionChoice OptionKind = "choice"
	OptionBool   OptionKind = "bool"
)

// Declaration describes one option a plugin declared.
type Declaration struct {
	Name        string
	Kind        OptionKind
	Default     string
	BoolDefault bool
	Choices     []string
	Usage       string
}

// Options is the host side of the option contract. It implements both
// lint.OptionRegistry (plugins declare against it) and lint.OptionValues
// (plugins read bound values from it), with configuration-file values and
// command-line overrides layered onto declared defaults in between.
type Options struct {
	decls   map[string]Declaration
	order   []string
	strings map[string]string
	bools   map[string]bool
	set     map[string]bool
}

// NewOptions returns an empty option table.
func NewOptions() *Options {
	return &Options{
		decls:   make(map[string]Declaration),
		strings: make(map[string]string),
		bools:   make(map[string]bool),
		set:     make(map[string]bool),
	}
}

// StringOption implements lint.OptionRegistry.
func (o *Options) StringOption(name, def, usage string) {
	o.declare(Declaration{Name: name, Kind: OptionString, Default: def, Usage: usage})
	o.strings[name] = def
}

// ChoiceOption implements lint.OptionRegistry.
func (o *Options) ChoiceOption(name, def string, choices []string, usage string) {
	o.declare(Declaration{Name: name, Kind: OptionChoice, Default: def, Choices: choices, Usage: usage})
	o.strings[name] = def
}

// BoolOption implements lint.OptionRegistry.
func (o *Options) BoolOption(name string, def bool, usage string) {
	o.declare(Declaration{Name: name, Kind: OptionBool, BoolDefault: def, Usage: usage})
	o.bools[name] = def
}

func (o *Options) declare(d Declaration) {
	if _, exists := o.decls[d.Name]; !exists {
		o.order = append(o.order, d.Name)
	}
	o.decls[d.Name] = d
}

// String implements lint.OptionValues.
func (o *Options) String(name string) string {
	return o.strings[name]
}

// Bool implements lint.OptionValues.
func (o *Options) Bool(name string) bool {
	return o.bools[name]
}

// IsSet implements lint.OptionValues.
func (o *Options) IsSet(name string) bool {
	return o.set[name]
}

// Set binds an explicit value onto a declared option. Choice options
// validate membership; bool options parse with strconv.ParseBool.
func (o *Options) Set(name, value string) error {
	decl, ok := o.decls[name]
	if !ok {
		return fmt.Errorf("unknown option: %s", name)
	}

	switch decl.Kind {
	case OptionBool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for option %s: want a boolean", value, name)
		}
		o.bools[name] = v
	case OptionChoice:
		if !containsString(decl.Choices, value) {
			return fmt.Errorf("invalid value %q for option %s (choices: %s)",
				value, name, strings.Join(decl.Choices, ", "))
		}
		o.strings[name] = value
	default:
		o.strings[name] = value
	}

	o.set[name] = true
	return nil
}

// SetBool binds an explicit boolean value onto a declared bool option.
func (o *Options) SetBool(name string, value bool) error {
	decl, ok := o.decls[name]
	if !ok {
		return fmt.Errorf("unknown option: %s", name)
	}
	if decl.Kind != OptionBool {
		return fmt.Errorf("option %s is not boolean", name)
	}

	o.bools[name] = value
	o.set[name] = true
	return nil
}

// Has reports whether name was declared.
func (o *Options) Has(name string) bool {
	_, ok := o.decls[name]
	return ok
}

// Declarations returns the declared options in declaration order.
func (o *Options) Declarations() []Declaration {
	decls := make([]Declaration, 0, len(o.order))
	for _, name := range o.order {
		decls = append(decls, o.decls[name])
	}
	return decls
}

// Fingerprint returns a stable hash of every declared option's current
// value. Identical configurations produce identical fingerprints
// regardless of declaration or binding order.
func (o *Options) Fingerprint() string {
	names := make([]string, 0, len(o.decls))
	for name := range o.decls {
		names = append(names, name)
	}
	sort.Strings(names)

	hasher := sha256.New()
	for _, name := range names {
		value := o.strings[name]
		if o.decls[name].Kind == OptionBool {
			value = strconv.FormatBool(o.bools[name])
		}
		hasher.Write([]byte(name))
		hasher.Write([]byte{0})
		hasher.Write([]byte(value))
		hasher.Write([]byte{0})
	}

	return hex.EncodeToString(hasher.Sum(nil))[:16]
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
