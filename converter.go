package mdpreview

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-mdpreview/internal/assets"
	"github.com/alnah/go-mdpreview/internal/fileutil"
	"github.com/alnah/go-mdpreview/internal/pipeline"
)

// Converter orchestrates the Markdown to HTML preview pipeline.
// Create with NewConverter and call Convert; it holds no resources that
// need closing and is safe for concurrent use.
type Converter struct {
	cfg           converterConfig
	styleLoader   assets.StyleLoader
	htmlConverter pipeline.HTMLConverter
	highlightCSS  string
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithEngine, WithStyle, WithTimeout).
// Returns error if the asset path, style, or highlight style is invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:         converterConfig{engine: EngineNative, timeout: defaultTimeout},
		styleLoader: assets.NewEmbeddedLoader(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.styleLoader = resolver
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	if err := c.buildEngine(); err != nil {
		return nil, err
	}

	return c, nil
}

// Engine reports the configured body compiler.
func (c *Converter) Engine() Engine {
	return c.cfg.engine
}

// Convert runs the pipeline and returns the assembled document.
// The context is used for cancellation; the converter timeout applies on top.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	body, err := c.htmlConverter.ToHTML(ctx, input.Markdown)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	if c.cfg.engine == EngineGoldmark {
		body, err = pipeline.DecorateLinks(body, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("decorating links: %w", err)
		}
	}

	title := resolveTitle(input)

	// Order matters: highlight classes first, converter style, user CSS last.
	css := joinCSS(c.highlightCSS, c.cfg.resolvedStyle, input.CSS)

	doc := pipeline.AssembleDocument(body, pipeline.Document{Title: title, CSS: css})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &ConvertResult{HTML: []byte(doc), Title: title}, nil
}

// buildEngine creates the body compiler for the configured engine.
func (c *Converter) buildEngine() error {
	var highlightStyle string
	if c.cfg.highlight {
		highlightStyle = c.cfg.highlightStyle
		if highlightStyle == "" {
			highlightStyle = pipeline.DefaultHighlightStyle
		}
		css, err := pipeline.HighlightCSS(highlightStyle)
		if err != nil {
			return err
		}
		c.highlightCSS = css
	}

	switch c.cfg.engine {
	case EngineNative:
		var hl pipeline.Highlighter
		if c.cfg.highlight {
			chroma, err := pipeline.NewChromaHighlighter(highlightStyle)
			if err != nil {
				return err
			}
			hl = chroma
		}
		c.htmlConverter = pipeline.NewNativeConverter(hl)
	case EngineGoldmark:
		c.htmlConverter = pipeline.NewGoldmarkConverter(highlightStyle)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidEngine, c.cfg.engine)
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
// Called during NewConverter after options are applied and the loader is configured.
func (c *Converter) resolveStyle() error {
	input := strings.TrimSpace(c.cfg.styleInput)
	if input == "" {
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrStyleLoad, input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	css, err := c.styleLoader.LoadStyle(input)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return err
		}
		return fmt.Errorf("%w: %q: %v", ErrStyleLoad, input, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}

// ListStyles returns the style names usable with WithStyle, including those
// found under assetPath (which may be empty).
func ListStyles(assetPath string) ([]string, error) {
	resolver, err := assets.NewAssetResolver(assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	return resolver.ListStyles(), nil
}

// HighlightStyles returns the style names usable with WithHighlighting.
func HighlightStyles() []string {
	return pipeline.HighlightStyles()
}

// resolveTitle picks the explicit title, then the first H1, then the default.
func resolveTitle(input Input) string {
	if title := strings.TrimSpace(input.Title); title != "" {
		return title
	}
	if title := ExtractTitle(input.Markdown); title != "" {
		return title
	}
	return DefaultTitle
}

// joinCSS concatenates non-blank stylesheets with newlines.
func joinCSS(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}
