package pipeline

import (
	"regexp"
	"strings"
)

// listMarker matches a list item line. Capture groups:
//  1. indentation
//  2. marker (-, * or 1.)
//  3. item text
var listMarker = regexp.MustCompile(`^( *)([-*]|\d+\.)\s+(.*)$`)

// listItem is one marker line of a list.
type listItem struct {
	indent  int
	ordered bool
	head    string
}

// parseListItem reports whether line starts a list item.
func parseListItem(line string) (listItem, bool) {
	m := listMarker.FindStringSubmatch(line)
	if m == nil {
		return listItem{}, false
	}
	return listItem{
		indent:  len(m[1]),
		ordered: m[2] != "-" && m[2] != "*",
		head:    m[3],
	}, true
}

// sameList reports whether it shares the (indent, type) signature of first.
func (it listItem) sameList(first listItem) bool {
	return it.indent == first.indent && it.ordered == first.ordered
}

// renderList renders the list starting at lines[0]. Only items sharing the
// first item's signature are siblings; any other line ends the list. Child
// lines of an item are dedented and rendered recursively by RenderBlocks.
func renderList(lines []string, frags []CodeFragment) (html string, consumed int, ok bool) {
	first, ok := parseListItem(lines[0])
	if !ok {
		return "", 0, false
	}

	var items []string
	i := 0
	for i < len(lines) {
		if isBlank(lines[i]) {
			next := nextNonBlank(lines, i)
			if next < 0 || !isSibling(lines[next], first) {
				break
			}
			i = next
		}

		item, ok := parseListItem(lines[i])
		if !ok || !item.sameList(first) {
			break
		}
		i++

		start := i
		i = scanItemChildren(lines, i, first.indent)
		items = append(items, renderListItem(item, lines[start:i], first.indent, frags))
	}

	tag := "ul"
	if first.ordered {
		tag = "ol"
	}
	return "<" + tag + ">\n" + strings.Join(items, "\n") + "\n</" + tag + ">", i, true
}

// scanItemChildren returns the index just past the child lines of an item
// whose marker sits at indent. Blank lines are kept only when the next
// non-blank line is still more indented than the marker.
func scanItemChildren(lines []string, i, indent int) int {
	for i < len(lines) {
		if isBlank(lines[i]) {
			next := nextNonBlank(lines, i)
			if next < 0 || leadingSpaces(lines[next]) <= indent {
				return i
			}
			i = next
			continue
		}
		if leadingSpaces(lines[i]) <= indent {
			return i
		}
		i++
	}
	return i
}

// renderListItem renders one <li>, recursing into its dedented children.
func renderListItem(item listItem, children []string, indent int, frags []CodeFragment) string {
	head := RenderInline(strings.TrimSpace(item.head))
	if len(children) == 0 {
		return "<li>" + head + "</li>"
	}

	dedented := make([]string, len(children))
	for i, line := range children {
		dedented[i] = line[min(indent+2, leadingSpaces(line)):]
	}
	body := RenderBlocks(dedented, frags)
	if body == "" {
		return "<li>" + head + "</li>"
	}
	return "<li>" + head + "\n" + body + "</li>"
}

// isSibling reports whether line is another item of the list opened by first.
func isSibling(line string, first listItem) bool {
	item, ok := parseListItem(line)
	return ok && item.sameList(first)
}

// nextNonBlank returns the index of the first non-blank line after i, or -1.
func nextNonBlank(lines []string, i int) int {
	for j := i + 1; j < len(lines); j++ {
		if !isBlank(lines[j]) {
			return j
		}
	}
	return -1
}

// leadingSpaces counts the spaces at the start of line.
func leadingSpaces(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}
