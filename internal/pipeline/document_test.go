package pipeline

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// countElements counts element nodes with the given atom in the tree.
func countElements(n *html.Node, a atom.Atom) int {
	count := 0
	if n.Type == html.ElementNode && n.DataAtom == a {
		count++
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += countElements(c, a)
	}
	return count
}

// findElement returns the first element with the given atom, or nil.
func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func parseDocument(t *testing.T, doc string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("html.Parse() error = %v", err)
	}
	return root
}

// ---------------------------------------------------------------------------
// TestAssembleDocument - Skeleton, title, CSS
// ---------------------------------------------------------------------------

func TestAssembleDocument(t *testing.T) {
	t.Parallel()

	t.Run("default title and body verbatim", func(t *testing.T) {
		t.Parallel()

		got := AssembleDocument("<p>Hi</p>", Document{})
		if !strings.HasPrefix(got, "<!doctype html>\n") {
			t.Errorf("missing doctype: %q", got[:min(len(got), 40)])
		}
		if !strings.Contains(got, "<title>Preview</title>") {
			t.Error("expected default title")
		}
		if !strings.Contains(got, "<body>\n<p>Hi</p>\n</body>") {
			t.Error("body not inserted verbatim")
		}
	})

	t.Run("title is escaped", func(t *testing.T) {
		t.Parallel()

		got := AssembleDocument("", Document{Title: "</title><script>x</script>"})
		if !strings.Contains(got, "<title>&lt;/title&gt;&lt;script&gt;x&lt;/script&gt;</title>") {
			t.Errorf("title not escaped: %q", got)
		}
		root := parseDocument(t, got)
		if n := countElements(root, atom.Script); n != 0 {
			t.Errorf("found %d <script> elements, want 0", n)
		}
	})

	t.Run("blank title falls back", func(t *testing.T) {
		t.Parallel()

		if got := AssembleDocument("", Document{Title: "   "}); !strings.Contains(got, "<title>Preview</title>") {
			t.Error("expected default title for blank input")
		}
	})

	t.Run("extra css appended after default style", func(t *testing.T) {
		t.Parallel()

		got := AssembleDocument("", Document{CSS: "h1 { color: red; }"})
		base := strings.Index(got, "table.md-table")
		extra := strings.Index(got, "h1 { color: red; }")
		if base < 0 || extra < 0 || extra < base {
			t.Errorf("extra CSS must follow the default style (base=%d, extra=%d)", base, extra)
		}
	})

	t.Run("css cannot close the style block", func(t *testing.T) {
		t.Parallel()

		got := AssembleDocument("", Document{CSS: "</style><script>alert(1)</script>"})
		root := parseDocument(t, got)
		if n := countElements(root, atom.Script); n != 0 {
			t.Errorf("found %d <script> elements, want 0", n)
		}
		if n := countElements(root, atom.Style); n != 1 {
			t.Errorf("found %d <style> elements, want 1", n)
		}
	})
}

// ---------------------------------------------------------------------------
// TestAssembleDocument_Structure - Parsed output of compiled documents
// ---------------------------------------------------------------------------

func TestAssembleDocument_Structure(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"# Kitchen\n\n> Wash hands\n\n- a\n  - b\n\n| x |\n|---|\n| 1 |",
		"<html><body>nested</body></html>",
		"```html\n</pre></code><html>\n```",
		"[x](javascript:alert(1)) <img src=x onerror=alert(1)>",
	}

	for _, in := range inputs {
		doc := AssembleDocument(Compile(in, CompileOptions{}), Document{Title: "T"})
		root := parseDocument(t, doc)

		if n := countElements(root, atom.Html); n != 1 {
			t.Errorf("input %q: found %d <html> elements, want 1", in, n)
		}
		if n := countElements(root, atom.Script); n != 0 {
			t.Errorf("input %q: found %d <script> elements, want 0", in, n)
		}
		if n := countElements(root, atom.Img); n != 0 {
			t.Errorf("input %q: found %d <img> elements, want 0", in, n)
		}
		if body := findElement(root, atom.Body); body == nil {
			t.Errorf("input %q: missing <body>", in)
		}
	}
}

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	if got := sanitizeCSS("a</style>b</STYLE>"); got != `a<\/style>b<\/STYLE>` {
		t.Errorf("sanitizeCSS() = %q", got)
	}
}
