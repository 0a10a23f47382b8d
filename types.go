package mdpreview

import (
	"fmt"
	"strings"
	"time"
)

// Engine selects the Markdown to HTML body compiler.
type Engine int

const (
	// EngineNative is the built-in preview compiler (default).
	EngineNative Engine = iota
	// EngineGoldmark uses goldmark with GFM extensions.
	EngineGoldmark
)

// Engines lists the accepted engine names, default first.
var Engines = []string{"native", "goldmark"}

// String returns the engine name.
func (e Engine) String() string {
	if e >= 0 && int(e) < len(Engines) {
		return Engines[e]
	}
	return fmt.Sprintf("Engine(%d)", int(e))
}

// ParseEngine maps an engine name (case-insensitive) to an Engine.
// The empty string selects EngineNative.
func ParseEngine(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "native":
		return EngineNative, nil
	case "goldmark":
		return EngineGoldmark, nil
	default:
		return EngineNative, fmt.Errorf("%w: %q", ErrInvalidEngine, name)
	}
}

// DocumentOptions tunes the package-level Convert function.
type DocumentOptions struct {
	Title string // Blank means DefaultTitle
}

// Input contains per-conversion parameters.
type Input struct {
	Markdown  string // Markdown source; empty yields an empty document
	Title     string // Optional; falls back to the first H1, then DefaultTitle
	CSS       string // Extra CSS appended after the converter style
	SourceDir string // Resolves relative links and images (goldmark engine)
}

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	HTML  []byte // Complete HTML document
	Title string // Title actually used
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	engine         Engine
	timeout        time.Duration
	styleInput     string // name, path, or CSS content
	resolvedStyle  string // CSS content after resolution
	assetPath      string
	highlight      bool
	highlightStyle string
}

// defaultTimeout bounds a single conversion.
const defaultTimeout = 10 * time.Second

// WithEngine selects the body compiler.
func WithEngine(e Engine) Option {
	return func(c *Converter) {
		c.cfg.engine = e
	}
}

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdpreview: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle sets the stylesheet appended after the built-in one.
// Accepts a style name ("dark"), a file path ("./custom.css"), or CSS
// content ("body { ... }").
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath adds a directory searched for {path}/styles/{name}.css
// before the embedded styles.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithHighlighting enables chroma highlighting of fenced code with the named
// style. An empty name selects the default style.
func WithHighlighting(style string) Option {
	return func(c *Converter) {
		c.cfg.highlight = true
		c.cfg.highlightStyle = style
	}
}
