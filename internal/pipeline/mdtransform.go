package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// placeholderGuard is a Unicode Private Use Area rune inserted after every
// "@" of the source so that user text never contains "@@" while placeholder
// tokens are live. releasePlaceholders removes it again.
const placeholderGuard = "\uE000" // U+E000: Private Use Area

// Placeholder token shapes. Indices make them unique within one call.
const (
	codeBlockTokenPrefix = "@@CODEBLOCK_"
	codeSpanTokenPrefix  = "@@CODESPAN_"
	linkTokenPrefix      = "@@LINK_"
	tokenSuffix          = "@@"
)

var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// A code block placeholder alone on its line, possibly indented
	codeBlockLine = regexp.MustCompile(`^\s*@@CODEBLOCK_(\d+)@@\s*$`)
)

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// guardPlaceholders makes "@@" impossible in user text.
func guardPlaceholders(content string) string {
	return strings.ReplaceAll(content, "@", "@"+placeholderGuard)
}

// releasePlaceholders undoes guardPlaceholders on rendered output.
func releasePlaceholders(content string) string {
	return strings.ReplaceAll(content, "@"+placeholderGuard, "@")
}

func codeBlockToken(i int) string {
	return codeBlockTokenPrefix + strconv.Itoa(i) + tokenSuffix
}

func codeSpanToken(i int) string {
	return codeSpanTokenPrefix + strconv.Itoa(i) + tokenSuffix
}

func linkToken(i int) string {
	return linkTokenPrefix + strconv.Itoa(i) + tokenSuffix
}

// codeBlockIndex returns the fragment index of a placeholder line.
func codeBlockIndex(line string) (int, bool) {
	m := codeBlockLine.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// isCodeBlockLine reports whether line is a code block placeholder.
func isCodeBlockLine(line string) bool {
	return codeBlockLine.MatchString(line)
}
