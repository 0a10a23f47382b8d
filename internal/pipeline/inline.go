package pipeline

import (
	"regexp"
	"strings"
)

var (
	codeSpanPattern = regexp.MustCompile("`([^`]+)`")
	linkPattern     = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	boldPattern     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern   = regexp.MustCompile(`\*(.+?)\*`)

	// Schemes that must never reach an href. Input is already escaped,
	// so leading whitespace is the only obfuscation left to handle.
	unsafeLinkScheme = regexp.MustCompile(`(?i)^\s*(javascript|vbscript|data):`)
)

// inlineTokens maps placeholder tokens to the HTML they stand for.
// It lives for a single RenderInline call.
type inlineTokens struct {
	pairs []string
	n     int
}

func (t *inlineTokens) add(token, html string) string {
	t.pairs = append(t.pairs, token, html)
	t.n++
	return token
}

func (t *inlineTokens) restore(s string) string {
	if len(t.pairs) == 0 {
		return s
	}
	// Links are restored before the code spans they may contain.
	for i := len(t.pairs) - 2; i >= 0; i -= 2 {
		s = strings.ReplaceAll(s, t.pairs[i], t.pairs[i+1])
	}
	return s
}

// RenderInline renders code spans, links, bold and italic in text that has
// already been HTML-escaped. The order is fixed: code spans are lifted out
// first so nothing inside them is interpreted, and restored last.
func RenderInline(s string) string {
	tokens := &inlineTokens{}
	s = extractCodeSpans(s, tokens)
	s = renderLinks(s, tokens)
	s = renderBold(s)
	s = renderItalic(s)
	return tokens.restore(s)
}

// extractCodeSpans replaces `code` with @@CODESPAN_<n>@@ tokens.
func extractCodeSpans(s string, tokens *inlineTokens) string {
	return codeSpanPattern.ReplaceAllStringFunc(s, func(m string) string {
		body := m[1 : len(m)-1]
		return tokens.add(codeSpanToken(tokens.n), "<code>"+body+"</code>")
	})
}

// renderLinks turns [label](url) into an anchor opening in a new tab.
// The opening tag is tokenized so emphasis passes never rewrite the href.
func renderLinks(s string, tokens *inlineTokens) string {
	return linkPattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := linkPattern.FindStringSubmatch(m)
		label, href := sub[1], safeHref(sub[2])
		open := `<a href="` + href + `" target="_blank" rel="noopener noreferrer">`
		return tokens.add(linkToken(tokens.n), open) + label + "</a>"
	})
}

// safeHref trims url and replaces script-capable schemes with "#".
func safeHref(url string) string {
	url = strings.TrimSpace(url)
	if unsafeLinkScheme.MatchString(releasePlaceholders(url)) {
		return "#"
	}
	return url
}

func renderBold(s string) string {
	return boldPattern.ReplaceAllString(s, "<strong>$1</strong>")
}

func renderItalic(s string) string {
	return italicPattern.ReplaceAllString(s, "<em>$1</em>")
}
