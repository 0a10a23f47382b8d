package pipeline

import "strings"

// CompileOptions tunes the native compiler.
type CompileOptions struct {
	// Highlighter renders fenced code; nil keeps plain escaped code.
	Highlighter Highlighter
}

// Compile converts Markdown source into a block-level HTML fragment.
// It never fails: malformed constructs degrade to literal text.
func Compile(src string, opts CompileOptions) string {
	src = guardPlaceholders(NormalizeLineEndings(src))
	text, frags := ExtractCodeFences(src, opts.Highlighter)
	lines := strings.Split(EscapeHTML(text), "\n")
	return releasePlaceholders(RenderBlocks(lines, frags))
}
