package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// styleFlags holds styling flags.
type styleFlags struct {
	name      string // Name, path, or inline CSS for the document style
	cssFile   string // Extra stylesheet appended last
	assetPath string // Override asset directory
}

// highlightFlags holds fenced code highlighting flags.
type highlightFlags struct {
	enabled bool
	style   string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	output    string
	workers   int
	timeout   string
	title     string
	engine    string
	stdout    bool
	style     styleFlags
	highlight highlightFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addStyleFlags adds styling flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.name, "style", "", "style name, CSS file path, or inline CSS")
	fs.StringVar(&f.cssFile, "css", "", "extra CSS file appended after the style")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addHighlightFlags adds highlighting flags to a FlagSet.
func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.BoolVar(&f.enabled, "highlight", false, "highlight fenced code blocks")
	fs.StringVar(&f.style, "highlight-style", "", "highlight style (implies --highlight)")
}

// newConvertFlagSet registers every convert flag on a new FlagSet.
// Shared by parsing and shell completion so both see the same flags.
func newConvertFlagSet(w io.Writer) (*flag.FlagSet, *convertFlags) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(w)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-file conversion timeout (e.g., 5s, 1m)")
	fs.BoolVar(&f.stdout, "stdout", false, "write HTML to standard output")

	// Document flags
	fs.StringVar(&f.title, "title", "", "document title (empty = first H1)")
	fs.StringVar(&f.engine, "engine", "", "markdown engine: native, goldmark")

	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	addHighlightFlags(fs, &f.highlight)

	fs.Usage = func() { printConvertUsage(w) }
	return fs, f
}

// parseConvertFlags parses convert command flags and returns positional args.
// Usage goes to w on -h or on a parse error.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	fs, f := newConvertFlagSet(w)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	return f, fs.Args(), nil
}

// stylesFlags holds flags for the styles command.
type stylesFlags struct {
	assetPath string
}

// newStylesFlagSet registers the styles command flags.
func newStylesFlagSet(w io.Writer) (*flag.FlagSet, *stylesFlags) {
	fs := flag.NewFlagSet("styles", flag.ContinueOnError)
	fs.SetOutput(w)
	f := &stylesFlags{}
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.Usage = func() { printStylesUsage(w) }
	return fs, f
}

// parseStylesFlags parses styles command flags.
func parseStylesFlags(args []string, w io.Writer) (*stylesFlags, error) {
	fs, f := newStylesFlagSet(w)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: styles takes no arguments", ErrUsage)
	}
	return f, nil
}
