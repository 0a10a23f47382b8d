package pipeline

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML replaces & < > " ' with their HTML entities in a single pass.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
