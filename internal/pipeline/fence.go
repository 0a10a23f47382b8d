package pipeline

import (
	"regexp"
	"strings"
)

// fencedCodeBlock matches a ``` fence with an optional language tag, up to the
// first closing ``` line. Capture groups:
//  1. fence indentation
//  2. language tag
//  3. body (including its trailing newline, if any)
var fencedCodeBlock = regexp.MustCompile("(?m)^([ \\t]*)```[ \\t]*([^\\s`]*)[^\\n]*\\n((?s:.*?))^[ \\t]*```[ \\t]*$")

// CodeFragment is a rendered fenced code block, referenced from the line
// stream by its index through a @@CODEBLOCK_<n>@@ placeholder line.
type CodeFragment struct {
	Index int
	HTML  string
}

// Highlighter turns fenced code into class-annotated, escaped HTML.
// Returning false makes the extractor fall back to plain escaping.
type Highlighter interface {
	Highlight(code, lang string) (string, bool)
}

// ExtractCodeFences replaces every terminated code fence of src with a
// placeholder line surrounded by blank lines and returns the rendered
// fragments in discovery order. Unterminated fences are left untouched.
// hl may be nil.
func ExtractCodeFences(src string, hl Highlighter) (string, []CodeFragment) {
	matches := fencedCodeBlock.FindAllStringSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src, nil
	}

	var sb strings.Builder
	frags := make([]CodeFragment, 0, len(matches))
	last := 0
	for _, m := range matches {
		indent := src[m[2]:m[3]]
		lang := releasePlaceholders(src[m[4]:m[5]])
		body := releasePlaceholders(src[m[6]:m[7]])

		frag := CodeFragment{
			Index: len(frags),
			HTML:  renderCodeFragment(dedentBlock(body, len(indent)), lang, hl),
		}
		frags = append(frags, frag)

		sb.WriteString(src[last:m[0]])
		sb.WriteString("\n")
		sb.WriteString(indent)
		sb.WriteString(codeBlockToken(frag.Index))
		sb.WriteString("\n")
		last = m[1]
	}
	sb.WriteString(src[last:])

	return sb.String(), frags
}

// renderCodeFragment builds the <pre><code> markup of one fence.
func renderCodeFragment(body, lang string, hl Highlighter) string {
	body = strings.TrimSuffix(body, "\n")

	code := ""
	highlighted := false
	if hl != nil {
		code, highlighted = hl.Highlight(body, lang)
	}
	if !highlighted {
		code = EscapeHTML(body)
	}

	var sb strings.Builder
	sb.WriteString(`<pre class="md-code"><code`)
	if lang != "" {
		sb.WriteString(` data-lang="`)
		sb.WriteString(EscapeHTML(lang))
		sb.WriteString(`"`)
	}
	sb.WriteString(">")
	sb.WriteString(code)
	sb.WriteString("</code></pre>")
	return sb.String()
}

// dedentBlock strips up to n leading blanks from every line of s.
func dedentBlock(s string, n int) string {
	if n == 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = dedentLine(line, n)
	}
	return strings.Join(lines, "\n")
}

// dedentLine removes at most n leading spaces or tabs from line.
func dedentLine(line string, n int) string {
	i := 0
	for i < n && i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[i:]
}
