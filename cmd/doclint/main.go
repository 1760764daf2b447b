package main

import (
	"fmt"
	"os"

	"github.com/platinummonkey/doclint/pkg/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "doclint: %v\n", err)
		os.Exit(1)
	}
}
