package main

import (
	"fmt"

	"github.com/alnah/go-mdpreview"
)

// runStyles lists the document styles and highlight styles.
func runStyles(args []string, env *Environment) error {
	flags, err := parseStylesFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	names, err := mdpreview.ListStyles(flags.assetPath)
	if err != nil {
		return err
	}

	fmt.Fprintln(env.Stdout, "Document styles:")
	for _, name := range names {
		fmt.Fprintf(env.Stdout, "  %s\n", name)
	}

	fmt.Fprintln(env.Stdout)
	fmt.Fprintln(env.Stdout, "Highlight styles:")
	for _, name := range mdpreview.HighlightStyles() {
		fmt.Fprintf(env.Stdout, "  %s\n", name)
	}
	return nil
}
