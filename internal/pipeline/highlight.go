package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrUnknownHighlightStyle indicates the chroma style does not exist.
var ErrUnknownHighlightStyle = errors.New("unknown highlight style")

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// ChromaHighlighter highlights fenced code with chroma, emitting CSS classes
// so that a single stylesheet from HighlightCSS styles every block.
type ChromaHighlighter struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

// NewChromaHighlighter creates a highlighter for the named chroma style.
func NewChromaHighlighter(styleName string) (*ChromaHighlighter, error) {
	style, err := lookupStyle(styleName)
	if err != nil {
		return nil, err
	}
	return &ChromaHighlighter{
		formatter: newChromaFormatter(),
		style:     style,
	}, nil
}

// Highlight renders code for lang. Unknown or empty languages are left to
// the caller's plain escaping.
func (h *ChromaHighlighter) Highlight(code, lang string) (string, bool) {
	if lang == "" {
		return "", false
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}

	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, it); err != nil {
		return "", false
	}
	return sb.String(), true
}

// CSS returns the stylesheet for the highlighter's style.
func (h *ChromaHighlighter) CSS() string {
	var sb strings.Builder
	// Writing to a strings.Builder cannot fail.
	_ = h.formatter.WriteCSS(&sb, h.style)
	return sb.String()
}

// HighlightCSS returns the class stylesheet for a chroma style name.
func HighlightCSS(styleName string) (string, error) {
	h, err := NewChromaHighlighter(styleName)
	if err != nil {
		return "", err
	}
	return h.CSS(), nil
}

// HighlightStyles lists the available chroma style names, sorted.
func HighlightStyles() []string {
	names := styles.Names()
	sort.Strings(names)
	return names
}

// ValidateHighlightStyle checks that a chroma style exists.
func ValidateHighlightStyle(styleName string) error {
	_, err := lookupStyle(styleName)
	return err
}

// newChromaFormatter builds the class-based formatter without <pre>, since
// the fence renderer provides its own wrapper.
func newChromaFormatter() *chromahtml.Formatter {
	return chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.PreventSurroundingPre(true),
	)
}

func lookupStyle(name string) (*chroma.Style, error) {
	if name == "" {
		name = DefaultHighlightStyle
	}
	style, ok := styles.Registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, name)
	}
	return style, nil
}
