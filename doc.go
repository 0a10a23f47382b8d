// Package mdpreview converts Markdown into self-contained HTML preview documents.
//
// # Quick Start
//
// The simplest entry point is the total, pure Convert function:
//
//	page := mdpreview.Convert("# Hello\n\nWorld", nil)
//
// It never fails: malformed Markdown degrades to literal text, raw HTML is
// escaped, and javascript:, vbscript: and data: link targets become "#".
//
// # Converter
//
// For styling, highlighting or the goldmark engine, build a Converter with
// functional options:
//
//	conv, err := mdpreview.NewConverter(
//	    mdpreview.WithStyle("dark"),
//	    mdpreview.WithHighlighting("github"),
//	    mdpreview.WithTimeout(5 * time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, mdpreview.Input{
//	    Markdown: content,
//	    Title:    "Kitchen rules",
//	})
//
// A Converter is immutable after construction and safe for concurrent use.
//
// # Conversion Pipeline
//
// The native engine runs these stages, each a pure transform:
//
//  1. Line normalization (\r\n and \r become \n)
//  2. Code-fence extraction into indexed fragments
//  3. HTML escaping of the remaining text
//  4. Block rendering (headings, blockquotes, tables, nested lists, paragraphs)
//  5. Inline rendering (code spans, links, bold, italic)
//  6. Document assembly (fixed skeleton, title, stylesheet)
//
// EngineGoldmark swaps stages 1-5 for goldmark with GFM extensions and keeps
// the same document skeleton.
//
// # Custom Assets
//
// Styles are looked up in {assetPath}/styles/{name}.css before the embedded
// set (default, dark, print):
//
//	conv, err := mdpreview.NewConverter(mdpreview.WithAssetPath("/path/to/assets"))
package mdpreview
