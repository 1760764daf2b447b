package cli

import (
	"flag"
	"fmt"
	"sort"
)

// Command is one CLI command: the root dispatcher or a leaf with a Run
// function and its own flag set.
type Command struct {
	Name        string
	Description string
	Run         func(args []string) error
	Subcommands map[string]*Command
	Flags       *flag.FlagSet
}

// NewRootCommand assembles the doclint command tree.
func NewRootCommand() *Command {
	root := &Command{
		Name:        "doclint",
		Description: "doclint - Python Docstring Checker",
		Subcommands: make(map[string]*Command),
		Flags:       flag.NewFlagSet("doclint", flag.ExitOnError),
	}

	for _, cmd := range []*Command{
		newCheckCommand(),
		newConventionsCommand(),
		newVersionCommand(),
	} {
		root.Subcommands[cmd.Name] = cmd
	}

	return root
}

// Execute dispatches args, the program arguments without the binary name.
func (c *Command) Execute(args []string) error {
	if len(args) == 0 {
		return c.usage()
	}

	switch args[0] {
	case "help", "-h", "--help":
		return c.usage()
	}

	sub, ok := c.Subcommands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command: %s (run '%s help' for usage)", args[0], c.Name)
	}
	return sub.Run(args[1:])
}

// usage prints the command listing, sorted so output is stable.
func (c *Command) usage() error {
	names := make([]string, 0, len(c.Subcommands))
	width := 0
	for name := range c.Subcommands {
		names = append(names, name)
		if len(name) > width {
			width = len(name)
		}
	}
	sort.Strings(names)

	fmt.Printf("Usage: %s <command> [args]\n\n", c.Name)
	fmt.Println("Commands:")
	for _, name := range names {
		fmt.Printf("  %-*s  %s\n", width, name, c.Subcommands[name].Description)
	}
	fmt.Printf("\nRun '%s <command> -h' for command-specific flags.\n", c.Name)
	return nil
}
