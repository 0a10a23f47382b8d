package pipeline

import (
	"fmt"
	"strings"

	"github.com/alnah/go-mdpreview/internal/assets"
)

// DefaultTitle is used when a document has no title.
const DefaultTitle = "Preview"

// documentTemplate is the fixed preview skeleton. Arguments: title, CSS, body.
const documentTemplate = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<style>
%s
</style>
</head>
<body>
%s
</body>
</html>
`

// Document holds the parameters of the preview skeleton.
type Document struct {
	Title string // Escaped before insertion; blank means DefaultTitle
	CSS   string // Appended after the built-in style
}

// AssembleDocument wraps a body fragment in a complete HTML document.
// The body is inserted verbatim.
func AssembleDocument(body string, doc Document) string {
	title := strings.TrimSpace(doc.Title)
	if title == "" {
		title = DefaultTitle
	}

	css := assets.DefaultStyle()
	if extra := strings.TrimSpace(doc.CSS); extra != "" {
		css += "\n" + sanitizeCSS(extra)
	}

	return fmt.Sprintf(documentTemplate, EscapeHTML(title), css, body)
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
