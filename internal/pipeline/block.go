package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

	// Blockquote marker on escaped text: ">" has become "&gt;".
	blockquotePrefix = regexp.MustCompile(`^\s*&gt;\s?`)
)

// RenderBlocks renders escaped lines into a block-level HTML fragment.
// Blocks are separated by newlines. Every iteration consumes at least one
// line, so rendering always terminates.
func RenderBlocks(lines []string, frags []CodeFragment) string {
	var blocks []string
	for i := 0; i < len(lines); {
		if isBlank(lines[i]) {
			i++
			continue
		}
		html, n := renderBlock(lines[i:], frags)
		if html != "" {
			blocks = append(blocks, html)
		}
		i += max(n, 1)
	}
	return strings.Join(blocks, "\n")
}

// renderBlock dispatches lines[0] to the first matching handler. The
// paragraph fallback applies to any non-blank line.
func renderBlock(lines []string, frags []CodeFragment) (string, int) {
	if html, n, ok := renderCodeBlock(lines, frags); ok {
		return html, n
	}
	if html, n, ok := renderHeading(lines); ok {
		return html, n
	}
	if html, n, ok := renderBlockquote(lines); ok {
		return html, n
	}
	if html, n, ok := renderTable(lines); ok {
		return html, n
	}
	if html, n, ok := renderList(lines, frags); ok {
		return html, n
	}
	if html, n, ok := renderParagraph(lines); ok {
		return html, n
	}
	return "", 1
}

// renderCodeBlock emits the fragment referenced by a placeholder line.
func renderCodeBlock(lines []string, frags []CodeFragment) (string, int, bool) {
	idx, ok := codeBlockIndex(lines[0])
	if !ok || idx < 0 || idx >= len(frags) {
		return "", 0, false
	}
	return frags[idx].HTML, 1, true
}

// renderHeading renders a # to ###### heading.
func renderHeading(lines []string) (string, int, bool) {
	m := headingPattern.FindStringSubmatch(lines[0])
	if m == nil {
		return "", 0, false
	}
	level := strconv.Itoa(len(m[1]))
	text := RenderInline(strings.TrimSpace(m[2]))
	return "<h" + level + ">" + text + "</h" + level + ">", 1, true
}

// renderBlockquote merges a run of quoted lines into one blockquote.
// Quotes hold inline content only.
func renderBlockquote(lines []string) (string, int, bool) {
	var quoted []string
	for _, line := range lines {
		loc := blockquotePrefix.FindStringIndex(line)
		if loc == nil {
			break
		}
		quoted = append(quoted, line[loc[1]:])
	}
	if len(quoted) == 0 {
		return "", 0, false
	}
	text := RenderInline(strings.Join(quoted, "<br/>"))
	return "<blockquote>" + text + "</blockquote>", len(quoted), true
}

// renderParagraph collects lines up to the next blank line.
func renderParagraph(lines []string) (string, int, bool) {
	var para []string
	for _, line := range lines {
		if isBlank(line) {
			break
		}
		para = append(para, strings.TrimSpace(line))
	}
	if len(para) == 0 {
		return "", 0, false
	}
	return "<p>" + RenderInline(strings.Join(para, "<br/>")) + "</p>", len(para), true
}

// isBlank reports whether line holds only whitespace.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
