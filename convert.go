package mdpreview

import (
	"regexp"
	"strings"

	"github.com/alnah/go-mdpreview/internal/pipeline"
)

// DefaultTitle is the <title> used when none is given or found.
const DefaultTitle = pipeline.DefaultTitle

// firstH1 matches a level-one ATX heading line.
var firstH1 = regexp.MustCompile(`(?m)^#[ \t]+(.+?)[ \t#]*$`)

// Convert renders markdown into a complete HTML document with the native
// engine and the default style. It is pure and total: any input, including
// the empty string, yields a document with a single <html> root.
func Convert(markdown string, opts *DocumentOptions) string {
	var title string
	if opts != nil {
		title = opts.Title
	}
	body := pipeline.Compile(markdown, pipeline.CompileOptions{})
	return pipeline.AssembleDocument(body, pipeline.Document{Title: title})
}

// Compile renders markdown into a block-level HTML fragment without the
// document skeleton.
func Compile(markdown string) string {
	return pipeline.Compile(markdown, pipeline.CompileOptions{})
}

// ExtractTitle returns the text of the first "# " heading outside fenced
// code, or "" if there is none. Inline markers are kept as written.
func ExtractTitle(markdown string) string {
	text, _ := pipeline.ExtractCodeFences(pipeline.NormalizeLineEndings(markdown), nil)
	m := firstH1.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
