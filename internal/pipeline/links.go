package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// External anchor attributes shared by both engines.
const (
	linkTarget = "_blank"
	linkRel    = "noopener noreferrer"
)

// DecorateLinks post-processes a goldmark fragment so its links behave like
// the native engine's: every <a href> opens in a new tab with a safe rel.
// When sourceDir is set, relative img[src] and a[href] paths are turned into
// file:// URLs under it. Paths that would leave sourceDir are left as-is.
func DecorateLinks(fragment, sourceDir string) (string, error) {
	if !strings.Contains(fragment, "<a") && (sourceDir == "" || !strings.Contains(fragment, "<img")) {
		return fragment, nil
	}

	if sourceDir != "" {
		abs, err := filepath.Abs(sourceDir)
		if err != nil {
			return "", err
		}
		sourceDir = abs
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, n := range nodes {
		decorateNode(n, sourceDir)
		if err := html.Render(&sb, n); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func decorateNode(n *html.Node, sourceDir string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.A:
			if _, ok := attr(n, "href"); ok {
				setAttr(n, "target", linkTarget)
				setAttr(n, "rel", linkRel)
				resolveAttr(n, "href", sourceDir)
			}
		case atom.Img:
			resolveAttr(n, "src", sourceDir)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		decorateNode(c, sourceDir)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// resolveAttr rewrites a relative path attribute against sourceDir.
func resolveAttr(n *html.Node, key, sourceDir string) {
	if sourceDir == "" {
		return
	}
	val, ok := attr(n, key)
	if !ok || !isLocalRelative(val) {
		return
	}
	target := filepath.Join(sourceDir, filepath.FromSlash(val))
	if !withinDir(target, sourceDir) {
		return
	}
	setAttr(n, key, (&url.URL{Scheme: "file", Path: filepath.ToSlash(target)}).String())
}

// isLocalRelative reports whether ref is a relative filesystem path rather
// than a URL, an anchor or an absolute path.
func isLocalRelative(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	if u, err := url.Parse(ref); err != nil || u.Scheme != "" {
		return false
	}
	return !filepath.IsAbs(ref) && !strings.HasPrefix(ref, "/")
}

func withinDir(path, dir string) bool {
	rel, err := filepath.Rel(dir, filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
