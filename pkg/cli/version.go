package cli

import (
	"flag"
	"fmt"

	"github.com/platinummonkey/doclint/pkg/docstrings"
)

// newVersionCommand creates a new version command
func newVersionCommand() *Command {
	fs := flag.NewFlagSet("version", flag.ExitOnError)

	return &Command{
		Name:        "version",
		Description: "Report the shim version, engine, and negotiated features",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}

			return runVersion()
		},
	}
}

func runVersion() error {
	factory, err := docstrings.New()
	if err != nil {
		return err
	}

	info := factory.Info()
	features := factory.Features()

	fmt.Printf("%s %s\n", info.Name, info.Version)
	fmt.Printf("  engine:   %s\n", features.String())
	fmt.Printf("  features: inline-noqa=%t property-decorators=%t self-only-init=%t\n",
		features.InlineNoqa,
		features.PropertyDecorators,
		features.SelfOnlyInit,
	)

	return nil
}
