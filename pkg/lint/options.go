package lint

// OptionRegistry is the registration handle a host passes to
// CheckerFactory.AddOptions. Every option declared here is overridable from
// the host's configuration file as well as its command line.
type OptionRegistry interface {
	// StringOption declares a free-form string option.
	StringOption(name, def, usage string)

	// ChoiceOption declares a string option constrained to choices.
	ChoiceOption(name, def string, choices []string, usage string)

	// BoolOption declares a boolean flag option.
	BoolOption(name string, def bool, usage string)
}

// OptionValues is the parsed-values handle a host passes to
// CheckerFactory.ParseOptions.
type OptionValues interface {
	// String returns the value of a string or choice option, or the
	// declared default when the option was never set.
	String(name string) string

	// Bool returns the value of a boolean option, or its default.
	Bool(name string) bool

	// IsSet reports whether the option was set explicitly (command line or
	// configuration file) rather than defaulted.
	IsSet(name string) bool
}
