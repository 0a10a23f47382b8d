package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-mdpreview"
	"github.com/alnah/go-mdpreview/internal/config"
	"github.com/alnah/go-mdpreview/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrReadCSS          = errors.New("failed to read CSS file")
	ErrReadMarkdown     = errors.New("failed to read markdown")
	ErrWriteHTML        = errors.New("failed to write HTML file")
	ErrInvalidTimeout   = errors.New("invalid timeout")
	ErrStdoutWithDir    = errors.New("--stdout requires a single input file")
	ErrNoMarkdownFiles  = errors.New("no markdown files found")
	ErrConversionFailed = errors.New("conversion failed")
)

// stdinArg is the input argument that reads Markdown from standard input.
const stdinArg = "-"

// conversionParams groups values shared by every file in a run.
type conversionParams struct {
	title   string
	css     string
	stdout  bool
	quiet   bool
	verbose bool
}

// runConvertCmd parses flags and runs a conversion.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	return runConvert(ctx, positional, flags, env)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if len(positionalArgs) > 1 {
		return fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(positionalArgs))
	}

	warnUnknownEnvVars(env.Stderr, env.environ())
	envCfg := loadEnvConfig(env)

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs)
	if err != nil {
		return err
	}

	css, err := resolveCSSContent(flags.style.cssFile, cfg)
	if err != nil {
		return err
	}

	conv, err := buildConverter(cfg, timeout)
	if err != nil {
		return err
	}

	params := &conversionParams{
		title:   cfg.Document.Title,
		css:     css,
		stdout:  flags.stdout,
		quiet:   flags.common.quiet,
		verbose: flags.common.verbose,
	}

	if inputPath == stdinArg {
		return convertStdin(ctx, conv, params, env)
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	outputDir := resolveOutputDir(flags.output, cfg)

	if !info.IsDir() {
		return convertSingle(ctx, conv, inputPath, outputDir, params, env)
	}

	if params.stdout {
		return ErrStdoutWithDir
	}

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoMarkdownFiles, inputPath)
	}

	workers := mdpreview.ResolveWorkers(cfg.Workers)
	if params.verbose {
		fmt.Fprintf(env.Stderr, "Workers: %d\n", workers)
	}

	start := env.Now()
	results := convertBatch(ctx, conv, workers, files, params)

	failed := printResultsWithWriter(results, params.quiet, params.verbose, env)
	if params.verbose {
		fmt.Fprintf(env.Stderr, "Total: %v\n", env.Now().Sub(start).Round(time.Millisecond))
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", ErrConversionFailed, failed, len(results))
	}
	return nil
}

// loadConfig loads the config named by the flag, then the environment.
// Without either, defaults are returned.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.title != "" {
		cfg.Document.Title = flags.title
	}
	if flags.engine != "" {
		cfg.Engine = flags.engine
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}

	// Style flags
	if flags.style.name != "" {
		cfg.Style.Name = flags.style.name
	}
	if flags.style.assetPath != "" {
		cfg.Assets.BasePath = flags.style.assetPath
	}

	// Highlight flags; naming a style turns highlighting on
	if flags.highlight.enabled {
		cfg.Highlight.Enabled = true
	}
	if flags.highlight.style != "" {
		cfg.Highlight.Style = flags.highlight.style
		cfg.Highlight.Enabled = true
	}
}

// resolveTimeout picks the flag value, then the environment value.
// Zero means the converter default applies.
func resolveTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, flagValue)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: must be positive, got %v", ErrInvalidTimeout, d)
		}
		return d, nil
	}
	return envValue, nil
}

// resolveInputPath returns the single positional input.
func resolveInputPath(args []string) (string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", ErrNoInput
	}
	return args[0], nil
}

// resolveOutputDir determines the output location from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// resolveCSSContent joins the config's inline CSS with the --css file.
func resolveCSSContent(cssFile string, cfg *config.Config) (string, error) {
	css := cfg.Style.CSS
	if cssFile == "" {
		return css, nil
	}

	content, err := os.ReadFile(cssFile) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadCSS, err)
	}
	if css == "" {
		return string(content), nil
	}
	return css + "\n" + string(content), nil
}

// buildConverter translates the merged config into converter options.
func buildConverter(cfg *config.Config, timeout time.Duration) (*mdpreview.Converter, error) {
	engine, err := mdpreview.ParseEngine(cfg.Engine)
	if err != nil {
		return nil, fmt.Errorf("%w%s", err, hints.ForEngine(mdpreview.Engines))
	}

	opts := []mdpreview.Option{mdpreview.WithEngine(engine)}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, mdpreview.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Style.Name != "" {
		opts = append(opts, mdpreview.WithStyle(cfg.Style.Name))
	}
	if cfg.Highlight.Enabled {
		opts = append(opts, mdpreview.WithHighlighting(cfg.Highlight.Style))
	}
	if timeout > 0 {
		opts = append(opts, mdpreview.WithTimeout(timeout))
	}

	conv, err := mdpreview.NewConverter(opts...)
	switch {
	case err == nil:
		return conv, nil
	case errors.Is(err, mdpreview.ErrStyleNotFound):
		available, _ := mdpreview.ListStyles(cfg.Assets.BasePath)
		return nil, fmt.Errorf("%w%s", err, hints.ForStyleNotFound(available))
	case errors.Is(err, mdpreview.ErrUnknownHighlightStyle):
		return nil, fmt.Errorf("%w%s", err, hints.ForHighlightStyle())
	default:
		return nil, err
	}
}

// convertStdin converts Markdown read from standard input to standard output.
func convertStdin(ctx context.Context, conv CLIConverter, params *conversionParams, env *Environment) error {
	content, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: stdin: %w", ErrReadMarkdown, err)
	}

	result, err := conv.Convert(ctx, mdpreview.Input{
		Markdown: string(content),
		Title:    params.title,
		CSS:      params.css,
	})
	if err != nil {
		return withTimeoutHint(err)
	}

	_, err = env.Stdout.Write(result.HTML)
	return err
}

// convertSingle converts one file, to disk or to standard output.
// Errors are returned unprinted so the exit code reflects their cause.
func convertSingle(ctx context.Context, conv CLIConverter, inputPath, outputDir string, params *conversionParams, env *Environment) error {
	if err := validateMarkdownExtension(inputPath); err != nil {
		return err
	}

	if params.stdout {
		content, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
		}
		result, err := conv.Convert(ctx, buildInput(inputPath, string(content), params))
		if err != nil {
			return withTimeoutHint(err)
		}
		_, err = env.Stdout.Write(result.HTML)
		return err
	}

	outPath, err := resolveOutputPath(inputPath, outputDir, "")
	if err != nil {
		return err
	}

	r := convertFile(ctx, conv, FileToConvert{InputPath: inputPath, OutputPath: outPath}, params)
	if r.Err != nil {
		return r.Err
	}
	printResultsWithWriter([]ConversionResult{r}, params.quiet, params.verbose, env)
	return nil
}

// withTimeoutHint appends the timeout hint to deadline errors.
func withTimeoutHint(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	}
	return err
}
