package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/platinummonkey/doclint/pkg/docstrings"
)

// newConventionsCommand creates a new conventions command
func newConventionsCommand() *Command {
	fs := flag.NewFlagSet("conventions", flag.ExitOnError)

	codes := fs.Bool("codes", false, "Also list every error code each convention enables")

	return &Command{
		Name:        "conventions",
		Description: "List the docstring conventions the resolved engine knows",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}

			return runConventions(*codes)
		},
	}
}

func runConventions(withCodes bool) error {
	factory, err := docstrings.New()
	if err != nil {
		return err
	}

	conventions := factory.Conventions()
	names := conventions.Names()

	fmt.Printf("Available docstring conventions (%d):\n\n", len(names))

	for _, name := range names {
		codes := conventions.Codes(name).List()
		fmt.Printf("  %-10s %d checks\n", name, len(codes))
		if withCodes {
			fmt.Printf("    %s\n", strings.Join(codes, ", "))
		}
	}

	fmt.Printf("\nUse %q to enable every check the engine knows.\n", docstrings.ConventionAll)

	return nil
}
