// Package pipeline implements the Markdown-to-HTML preview compiler.
//
// The native engine is a small recursive-descent compiler made of pure stages,
// composed in a fixed order by Compile:
//   - Line normalization (\r\n and \r become \n)
//   - Code-fence extraction into indexed fragments and placeholder lines
//   - HTML escaping of the remaining prose
//   - Block rendering (headings, blockquotes, tables, lists, paragraphs),
//     recursing into itself for list item children
//   - Inline rendering (code spans, links, bold, italic) of every leaf
//
// AssembleDocument wraps a body fragment in the fixed preview skeleton.
// GoldmarkConverter offers a full GFM alternative that shares the skeleton.
//
// Every stage is total: malformed input degrades to literal text and nothing
// in the package returns an error except the goldmark engine.
package pipeline
